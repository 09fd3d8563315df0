// Package cli holds the cobra commands of the bookmarks binary.
package cli

import (
	"github.com/deppfellow/bookmarks/internal/config"
	"github.com/deppfellow/bookmarks/internal/logger"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRootCmd returns the bookmarks command with its subcommands attached.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bookmarks",
		Short: "Bookmark management REST API",
		Long: `bookmarks stores, lists, fetches and deletes bookmarks over HTTP.

Configuration is read from BOOKMARKS_* environment variables (and a .env
file when present), for example BOOKMARKS_DATABASE__HOST.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd())

	return root
}

// bootstrap loads config and builds the root logger shared by every
// command. The returned LoggerService must be shut down by the caller.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to load config")
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)
	if err != nil {
		log.Warn().Err(err).Msg("New Relic disabled")
	}

	return cfg, &log, loggerService, nil
}
