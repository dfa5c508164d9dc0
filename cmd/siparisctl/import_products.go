package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Siparis-api/internal/application/catalog"
	"github.com/jhoicas/Siparis-api/internal/infrastructure/postgres"
)

var skipInvalid bool

var importProductsCmd = &cobra.Command{
	Use:   "import-products <archivo.csv>",
	Short: "Importa productos (code;name;unit;price;currency;min_stock), upsert por código",
	Long: `Lee un CSV separado por ';' en UTF-8 o Windows-1254. El precio admite coma o punto
decimal. El stock no se modifica: solo cambia vía movimientos.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		products, rejected, err := catalog.Parse(catalog.Decode(data))
		if err != nil {
			return err
		}
		for _, r := range rejected {
			log.Warn().Int("line", r.Line).Str("reason", r.Reason).Msg("fila rechazada")
		}
		if len(rejected) > 0 && !skipInvalid {
			return fmt.Errorf("%d filas inválidas; corrija el archivo o use --skip-invalid", len(rejected))
		}

		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		res, err := catalog.NewImportUseCase(postgres.NewTxRunner(pool)).Import(ctx, products)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "creados: %d, actualizados: %d, rechazados: %d\n", res.Created, res.Updated, len(rejected))
		return nil
	},
}

func init() {
	importProductsCmd.Flags().BoolVar(&skipInvalid, "skip-invalid", false, "importar las filas válidas aunque haya rechazadas")
}
