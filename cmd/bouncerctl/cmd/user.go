package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/bouncer/internal/bouncer/app"
	"github.com/aussiebroadwan/bouncer/internal/bouncer/domain"
	"github.com/aussiebroadwan/bouncer/internal/bouncer/service"
	"github.com/aussiebroadwan/bouncer/pkg/cryptox"
	"github.com/spf13/cobra"
)

// userCmd is the parent command for account operations
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
	Long:  `Commands for creating, listing and updating user accounts in the store.`,
}

var (
	createPassword string
	createRoles    []string
	createInactive bool
	resetPassword  string
)

func init() {
	createCmd.Flags().StringVar(&createPassword, "password", "", "Password for the account (generated and printed when omitted)")
	createCmd.Flags().StringSliceVar(&createRoles, "roles", []string{"USER"}, "Roles to grant (e.g. --roles USER,ADMIN)")
	createCmd.Flags().BoolVar(&createInactive, "inactive", false, "Create the account disabled")

	setPasswordCmd.Flags().StringVar(&resetPassword, "password", "", "New password (generated and printed when omitted)")

	userCmd.AddCommand(createCmd)
	userCmd.AddCommand(listCmd)
	userCmd.AddCommand(enableCmd)
	userCmd.AddCommand(disableCmd)
	userCmd.AddCommand(setPasswordCmd)
	userCmd.AddCommand(enrollTOTPCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUserService(func(ctx context.Context, cfg app.Config, users *service.UserService) error {
			password := createPassword
			generated := false
			if password == "" {
				var err error
				password, err = cryptox.GeneratePassword()
				if err != nil {
					return fmt.Errorf("failed to generate password: %w", err)
				}
				generated = true
			}

			user, err := users.CreateUser(ctx, args[0], password, domain.ParseRoles(createRoles), !createInactive)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			fmt.Printf("created user %s (%s) roles=%v active=%v\n",
				user.Username, user.ID, user.Roles.Strings(), user.Active)
			if generated {
				fmt.Printf("generated password: %s\n", password)
			}
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all user accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUserService(func(ctx context.Context, cfg app.Config, users *service.UserService) error {
			all, err := users.ListUsers(ctx)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tUSERNAME\tROLES\tACTIVE\tTOTP\tCREATED AT")
			for _, u := range all {
				totp := "no"
				if u.TOTPSecret != nil {
					totp = "yes"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%v\t%v\t%s\t%s\n",
					u.ID, u.Username, u.Roles.Strings(), u.Active, totp, u.CreatedAt.Format(time.RFC3339))
			}
			_ = w.Flush()

			return nil
		})
	},
}

var enableCmd = &cobra.Command{
	Use:   "enable <username>",
	Short: "Enable a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setActive(args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <username>",
	Short: "Disable a user account",
	Long: `Disable a user account. Outstanding tokens for the account stop
working on their next request; no token revocation step is needed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setActive(args[0], false)
	},
}

func setActive(username string, active bool) error {
	return withUserService(func(ctx context.Context, cfg app.Config, users *service.UserService) error {
		if err := users.SetActive(ctx, username, active); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		state := "disabled"
		if active {
			state = "enabled"
		}
		fmt.Printf("user %s %s\n", username, state)
		return nil
	})
}

var setPasswordCmd = &cobra.Command{
	Use:   "set-password <username>",
	Short: "Replace a user's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUserService(func(ctx context.Context, cfg app.Config, users *service.UserService) error {
			password := resetPassword
			generated := false
			if password == "" {
				var err error
				password, err = cryptox.GeneratePassword()
				if err != nil {
					return fmt.Errorf("failed to generate password: %w", err)
				}
				generated = true
			}

			if err := users.SetPassword(ctx, args[0], password); err != nil {
				return fmt.Errorf("failed to set password: %w", err)
			}

			fmt.Printf("password updated for %s\n", args[0])
			if generated {
				fmt.Printf("generated password: %s\n", password)
			}
			return nil
		})
	},
}

var enrollTOTPCmd = &cobra.Command{
	Use:   "enroll-totp <username>",
	Short: "Enroll a user in TOTP",
	Long: `Generate and store a TOTP secret for the account. After enrollment the
user must supply a current code alongside their password at login.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUserService(func(ctx context.Context, cfg app.Config, users *service.UserService) error {
			secret, url, err := users.EnrollTOTP(ctx, cfg.Issuer, args[0])
			if err != nil {
				return fmt.Errorf("failed to enroll TOTP: %w", err)
			}

			fmt.Printf("TOTP enrolled for %s\n", args[0])
			fmt.Printf("secret: %s\n", secret)
			fmt.Printf("otpauth url: %s\n", url)
			return nil
		})
	},
}
