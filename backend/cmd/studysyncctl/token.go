package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"studysync/backend/internal/auth"
)

var (
	tokenUser string
	tokenRole string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token signed with the configured JWT secret",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, expires, err := auth.NewAuthService(config).GenerateToken(tokenUser, tokenRole)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		cmd.PrintErrf("expires %s\n", expires.Format(time.RFC3339))
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "local-user", "subject user id")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "student", "role claim")
	rootCmd.AddCommand(tokenCmd)
}
