package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Siparis-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Siparis-api/pkg/config"
	"github.com/jhoicas/Siparis-api/pkg/logger"
)

var (
	envFile string
	cfg     *config.Config
	log     *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "siparisctl",
	Short:         "Herramientas de operación de Siparis API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// El .env es opcional; las variables ya exportadas tienen prioridad.
		if err := godotenv.Load(envFile); err != nil && cmd.Flags().Changed("env") {
			return fmt.Errorf("cargar %s: %w", envFile, err)
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: cmd.ErrOrStderr()})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "archivo de variables de entorno")
	rootCmd.AddCommand(migrateCmd, importProductsCmd, reconcileCmd)
}

// openPool abre el pool de PostgreSQL con la configuración cargada.
func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return pool, nil
}
