// Package cli implements the psychodash command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/psychodash/practice-dashboard/internal/app"
	"github.com/psychodash/practice-dashboard/internal/infrastructure/config"
	"github.com/psychodash/practice-dashboard/pkg/logger"
)

func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "psychodash",
		Short:         "Clinical practice dashboard",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newWhoamiCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newStatsCmd())
	return root
}

// withApp loads the configuration from the environment, opens the store and
// runs fn. Logs go to stderr so command output can be piped.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Output:  cmd.ErrOrStderr(),
		Service: "psychodash",
	})

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}
