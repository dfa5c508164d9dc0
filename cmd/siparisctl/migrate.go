package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Siparis-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones SQL pendientes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		applied, err := postgres.Migrate(ctx, pool)
		for _, name := range applied {
			log.Info().Str("migration", name).Msg("aplicada")
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d migraciones aplicadas\n", len(applied))
		return nil
	},
}
