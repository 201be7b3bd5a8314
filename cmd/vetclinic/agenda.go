package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/agenda"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/citas"

	"github.com/spf13/cobra"
)

func (c *cli) agendaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Horarios disponibles y agendamiento de citas",
	}
	cmd.AddCommand(c.agendaHorariosCmd(), c.agendaValidarCmd(), c.agendaAgendarCmd())
	return cmd
}

func (c *cli) agendaHorariosCmd() *cobra.Command {
	var (
		vetID  int64
		fecha  string
		elegir string
	)
	cmd := &cobra.Command{
		Use:   "horarios",
		Short: "Muestra los slots de un veterinario agrupados por franja",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := c.autenticado(cmd.Context())
			if err != nil {
				return err
			}
			w := agenda.NewWidget(c.app.Agenda)
			vista, err := w.Seleccionar(ctx, vetID, fecha)
			imprimirVista(cmd.OutOrStdout(), vista)
			if err != nil {
				return err
			}
			if elegir == "" {
				return nil
			}

			slot, adv, err := w.Elegir(ctx, vista.Fecha+"T"+elegir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nElegido: %s\n", slot.FechaHora)
			imprimirAdvertencias(cmd.OutOrStdout(), adv)
			return nil
		},
	}
	cmd.Flags().Int64Var(&vetID, "veterinario", 0, "id del veterinario")
	cmd.Flags().StringVar(&fecha, "fecha", "", "fecha YYYY-MM-DD")
	cmd.Flags().StringVar(&elegir, "elegir", "", "hora HH:MM a seleccionar de la vista")
	_ = cmd.MarkFlagRequired("fecha")
	return cmd
}

func (c *cli) agendaValidarCmd() *cobra.Command {
	var fechaHora string
	cmd := &cobra.Command{
		Use:   "validar",
		Short: "Pre-valida una fecha y hora contra el horario de atención",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := c.autenticado(cmd.Context())
			if err != nil {
				return err
			}
			adv, err := c.app.Agenda.Validar(ctx, fechaHora)
			if err != nil {
				return err
			}
			if len(adv) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "OK: el horario cumple la política de atención")
				return nil
			}
			imprimirAdvertencias(cmd.OutOrStdout(), adv)
			return adv
		},
	}
	cmd.Flags().StringVar(&fechaHora, "fecha-hora", "", "fecha y hora YYYY-MM-DDTHH:MM")
	_ = cmd.MarkFlagRequired("fecha-hora")
	return cmd
}

func (c *cli) agendaAgendarCmd() *cobra.Command {
	var in citas.CrearInput
	var triage string
	cmd := &cobra.Command{
		Use:   "agendar",
		Short: "Agenda una cita (verifica disponibilidad en el servidor antes de crear)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := c.autenticado(cmd.Context())
			if err != nil {
				return err
			}
			in.TriageNivel = citas.Triage(strings.ToUpper(triage))
			cita, err := c.app.Agenda.Agendar(ctx, in)
			var adv agenda.Advertencias
			if errors.As(err, &adv) {
				imprimirAdvertencias(cmd.OutOrStdout(), adv)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cita agendada correctamente: #%d %s\n", cita.ID, cita.FechaHora)
			return nil
		},
	}
	f := cmd.Flags()
	f.Int64Var(&in.PacienteID, "paciente", 0, "id del paciente")
	f.Int64Var(&in.VeterinarioID, "veterinario", 0, "id del veterinario")
	f.StringVar(&in.FechaHora, "fecha-hora", "", "fecha y hora YYYY-MM-DDTHH:MM")
	f.StringVar(&in.TipoServicio, "servicio", "CONSULTA", "tipo de servicio")
	f.StringVar(&in.Motivo, "motivo", "", "motivo de la consulta")
	f.StringVar(&triage, "triage", "", "BAJO | MEDIO | ALTO | URGENTE")
	f.StringVar(&in.Observaciones, "observaciones", "", "observaciones")
	return cmd
}

func imprimirVista(out io.Writer, v agenda.Vista) {
	switch v.Estado {
	case agenda.VistaSinVeterinario:
		fmt.Fprintln(out, "Selecciona un veterinario para ver sus horarios")
		return
	case agenda.VistaError:
		fmt.Fprintf(out, "No se pudieron cargar los horarios: %s\n", v.Error)
		return
	}
	if v.Cerrado {
		fmt.Fprintf(out, "%s: la clínica no atiende este día\n", v.Fecha)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, g := range v.Grupos {
		titulo := g.Nombre
		if g.Desde != "" {
			titulo = fmt.Sprintf("%s (%s - %s)", g.Nombre, g.Desde, g.Hasta)
		}
		fmt.Fprintf(tw, "%s\n", strings.ToUpper(titulo))
		if len(g.Slots) == 0 {
			fmt.Fprintf(tw, "  sin horarios\n")
		}
		for _, s := range g.Slots {
			marca := " "
			if s.Seleccionable {
				marca = "*"
			}
			fmt.Fprintf(tw, "  %s %s\t%s\t%s\n", marca, s.Hora, s.Etiqueta, s.Motivo)
		}
	}
	_ = tw.Flush()
}

func imprimirAdvertencias(out io.Writer, adv agenda.Advertencias) {
	for _, a := range adv {
		fmt.Fprintf(out, "! %s\n", a.Mensaje)
	}
}
