package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/facturas"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/fechas"

	"github.com/spf13/cobra"
)

func (c *cli) facturasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facturas",
		Short: "Consulta de facturas y descarga de PDF",
	}
	cmd.AddCommand(c.facturasListarCmd(), c.facturasPDFCmd())
	return cmd
}

func (c *cli) facturasListarCmd() *cobra.Command {
	var (
		estado       string
		clienteID    int64
		desde, hasta string
	)
	cmd := &cobra.Command{
		Use:   "listar",
		Short: "Lista facturas por estado, cliente y rango de fechas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := c.autenticado(cmd.Context())
			if err != nil {
				return err
			}
			f := facturas.Filtro{
				Estado:    facturas.Estado(strings.ToUpper(strings.TrimSpace(estado))),
				ClienteID: clienteID,
			}
			if f.Desde, err = fechaOpcional(desde, c.cfg.Location()); err != nil {
				return err
			}
			if f.Hasta, err = fechaOpcional(hasta, c.cfg.Location()); err != nil {
				return err
			}

			items, err := c.app.Facturas.Listar(ctx, f)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNUMERO\tFECHA\tCLIENTE\tESTADO\tTOTAL")
			var total float64
			for _, fa := range items {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.2f\n", fa.ID, fa.Numero, fa.FechaEmision, fa.ClienteNombre, fa.Estado, fa.Total)
				if fa.Estado != facturas.EstadoAnulada {
					total += fa.Total
				}
			}
			fmt.Fprintf(tw, "\t\t\t\tTOTAL\t%.2f\n", total)
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&estado, "estado", "", "PENDIENTE | PAGADA | ANULADA")
	cmd.Flags().Int64Var(&clienteID, "cliente", 0, "id del cliente")
	cmd.Flags().StringVar(&desde, "desde", "", "fecha inicial YYYY-MM-DD")
	cmd.Flags().StringVar(&hasta, "hasta", "", "fecha final YYYY-MM-DD (inclusive)")
	return cmd
}

func (c *cli) facturasPDFCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "pdf FACTURA_ID",
		Short: "Descarga el PDF de una factura",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("id de factura inválido: %q", args[0])
			}
			ctx, err := c.autenticado(cmd.Context())
			if err != nil {
				return err
			}
			b, err := c.app.Facturas.DescargarPDF(ctx, id)
			if err != nil {
				return err
			}
			path, err := b.Guardar(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "PDF guardado en %s (%d bytes)\n", path, len(b.Datos))
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directorio de destino")
	return cmd
}

func fechaOpcional(s string, loc *time.Location) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := fechas.ParseFecha(s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
