package cmd

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/bouncer/internal/bouncer/app"
	"github.com/aussiebroadwan/bouncer/internal/bouncer/service"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo accounts into an empty store",
	Long: `Seed the demo accounts (admin, user, disabled - all with password
"password") into the store. A store that already has accounts is left
untouched. For local development only.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUserService(func(ctx context.Context, cfg app.Config, users *service.UserService) error {
			return app.SeedDemoUsers(ctx, users, slog.Default())
		})
	},
}
