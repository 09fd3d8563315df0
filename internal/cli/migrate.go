package cli

import (
	"github.com/deppfellow/bookmarks/internal/database"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long:  `migrate brings the bookmarks schema to the latest embedded version and exits.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, loggerService, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			if err := database.Migrate(cmd.Context(), log, cfg); err != nil {
				log.Error().Err(err).Msg("migration failed")
				return errors.Wrap(err, "failed to migrate database")
			}

			return nil
		},
	}
}
