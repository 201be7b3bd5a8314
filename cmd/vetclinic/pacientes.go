package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *cli) pacientesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pacientes",
		Short: "Utilidades sobre pacientes",
	}
	cmd.AddCommand(c.pacientesDuplicadosCmd())
	return cmd
}

func (c *cli) pacientesDuplicadosCmd() *cobra.Command {
	var (
		nombre    string
		clienteID int64
	)
	cmd := &cobra.Command{
		Use:   "duplicados",
		Short: "Busca pacientes con nombre parecido antes de registrar uno nuevo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := c.autenticado(cmd.Context())
			if err != nil {
				return err
			}
			items, err := c.app.Pacientes.PosiblesDuplicados(ctx, nombre, clienteID, 0)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintf(out, "Sin coincidencias para %q\n", nombre)
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNOMBRE\tESPECIE\tCLIENTE\tSIMILITUD\tNIVEL")
			for _, m := range items {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.0f%%\t%s\n",
					m.Paciente.ID, m.Paciente.Nombre, m.Paciente.Especie, m.Paciente.ClienteID, m.Similitud*100, m.Nivel)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&nombre, "nombre", "", "nombre del paciente a registrar")
	cmd.Flags().Int64Var(&clienteID, "cliente", 0, "limita la búsqueda a los pacientes del cliente")
	_ = cmd.MarkFlagRequired("nombre")
	return cmd
}
