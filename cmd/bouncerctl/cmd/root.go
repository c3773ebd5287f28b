package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/aussiebroadwan/bouncer/internal/bouncer/app"
	"github.com/aussiebroadwan/bouncer/internal/bouncer/service"
	"github.com/aussiebroadwan/bouncer/pkg/cryptox"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bouncerctl",
	Short: "Bouncer account administration",
	Long: `bouncerctl manages user accounts in the bouncer store directly.
The service deliberately has no HTTP surface for account mutations;
provisioning, deactivation, password resets and TOTP enrollment all go
through this tool.

Store configuration comes from the same BOUNCER_* environment variables
the service reads, so pointing bouncerctl at a deployment is just a matter
of sharing its environment.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(seedCmd)
}

// withUserService opens the configured store, applies migrations, and runs
// fn against a UserService. The store is closed on return.
func withUserService(fn func(ctx context.Context, cfg app.Config, users *service.UserService) error) error {
	cfg := app.LoadConfig()
	cryptox.SetPepperPath(cfg.PepperFile)

	st, err := app.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return fn(context.Background(), cfg, &service.UserService{Store: st})
}
