package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Siparis-api/internal/application/inventory"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
	"github.com/jhoicas/Siparis-api/internal/infrastructure/postgres"
)

var fixDrift bool

var reconcileCmd = &cobra.Command{
	Use:   "reconcile-stock",
	Short: "Compara el stock cacheado de cada producto con la suma de su ledger",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		uc := inventory.NewReconcileUseCase(postgres.NewTxRunner(pool), postgres.NewStockMovementRepository(pool))
		var drift []repository.StockDrift
		if fixDrift {
			drift, err = uc.Fix(ctx)
		} else {
			drift, err = uc.Check(ctx)
		}
		if err != nil {
			return err
		}
		if len(drift) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "stock y ledger coinciden")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tCACHED\tLEDGER\tDIFF")
		for _, d := range drift {
			fmt.Fprintf(w, "%s\t%d\t%d\t%+d\n", d.ProductCode, d.Cached, d.LedgerSum, d.LedgerSum-d.Cached)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if fixDrift {
			log.Info().Int("products", len(drift)).Msg("stock cacheado corregido")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "use --fix para reescribir el stock cacheado")
		}
		return nil
	},
}

func init() {
	reconcileCmd.Flags().BoolVar(&fixDrift, "fix", false, "reescribir el stock cacheado con la suma del ledger")
}
