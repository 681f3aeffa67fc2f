package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetNewPassword string

var resetRequestCmd = &cobra.Command{
	Use:   "reset-request <email>",
	Short: "Issue a password reset token for an account",
	Long: `Issue a time-limited password reset token for the account registered
under the given email. Delivering the token to the user (normally by
email) is up to the operator; this command prints it.`,
	Args: cobra.ExactArgs(1),
	RunE: runResetRequest,
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password <token>",
	Short: "Set a new password using a reset token",
	Args:  cobra.ExactArgs(1),
	RunE:  runResetPassword,
}

func init() {
	resetPasswordCmd.Flags().StringVarP(&resetNewPassword, "password", "p", "", "new password (required)")
	_ = resetPasswordCmd.MarkFlagRequired("password")
}

func runResetRequest(cmd *cobra.Command, args []string) error {
	ctx, cancel := opCtx()
	defer cancel()

	token, err := app.PasswordReset.RequestReset(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("reset token (valid %s):\n%s\n", app.Config.ResetTokenTTL, token)
	return nil
}

func runResetPassword(cmd *cobra.Command, args []string) error {
	ctx, cancel := opCtx()
	defer cancel()

	if err := app.PasswordReset.ResetPassword(ctx, args[0], resetNewPassword); err != nil {
		return err
	}

	fmt.Println("your password has been reset")
	return nil
}
