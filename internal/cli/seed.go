package cli

import (
	"eco-quest-service/internal/infra/postgres"
	"eco-quest-service/internal/questionbank"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewSeedCmd writes the built-in question bank into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var bankID string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store the built-in question bank in Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if err := runMigrationsWithConfig(cmd.Context(), cfg); err != nil {
				return err
			}
			db, err := openBunDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			bank := questionbank.Default()
			bank.ID = bankID
			if err := postgres.SeedBank(cmd.Context(), db, bank); err != nil {
				return err
			}
			log.Info().Str("bank", bank.ID).Int("quiz", len(bank.Quiz)).Int("pictures", len(bank.Pictures)).Msg("bank seeded")
			return nil
		},
	}
	cmd.Flags().StringVar(&bankID, "bank", questionbank.DefaultID, "bank id to write")
	return cmd
}
