package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/citas"

	"github.com/spf13/cobra"
)

func (c *cli) citasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "citas",
		Short: "Consulta y cancelación de citas",
	}
	cmd.AddCommand(c.citasListarCmd(), c.citasCancelarCmd())
	return cmd
}

func (c *cli) citasListarCmd() *cobra.Command {
	var (
		f      citas.Filtro
		estado string
	)
	cmd := &cobra.Command{
		Use:   "listar",
		Short: "Lista citas filtradas por fecha, veterinario o estado",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := c.autenticado(cmd.Context())
			if err != nil {
				return err
			}
			f.Estado = citas.Estado(strings.ToUpper(strings.TrimSpace(estado)))
			items, err := c.app.Citas.Listar(ctx, f)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tFECHA\tESTADO\tPACIENTE\tVETERINARIO\tSERVICIO")
			for _, ci := range items {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
					ci.ID, ci.FechaHora, ci.Estado, ci.Paciente.Nombre, ci.Veterinario.Nombre, ci.TipoServicio)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&f.Fecha, "fecha", "", "fecha YYYY-MM-DD")
	cmd.Flags().Int64Var(&f.VeterinarioID, "veterinario", 0, "id del veterinario")
	cmd.Flags().Int64Var(&f.PacienteID, "paciente", 0, "id del paciente")
	cmd.Flags().StringVar(&estado, "estado", "", "PROGRAMADA | COMPLETADA | CANCELADA")
	return cmd
}

func (c *cli) citasCancelarCmd() *cobra.Command {
	var motivo string
	cmd := &cobra.Command{
		Use:   "cancelar CITA_ID",
		Short: "Cancela una cita programada",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("id de cita inválido: %q", args[0])
			}
			ctx, err := c.autenticado(cmd.Context())
			if err != nil {
				return err
			}
			cita, err := c.app.Citas.Cancelar(ctx, id, motivo)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cita #%d cancelada (%s)\n", cita.ID, cita.FechaHora)
			return nil
		},
	}
	cmd.Flags().StringVar(&motivo, "motivo", "", "motivo de la cancelación")
	_ = cmd.MarkFlagRequired("motivo")
	return cmd
}
