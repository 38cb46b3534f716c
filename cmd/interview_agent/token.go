package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonkmatsumo/interview-agent/internal/config"
	"github.com/jonkmatsumo/interview-agent/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token [subject]",
	Short: "Mint a bearer token for the API",
	Long: `Signs a JWT against the same JWT_SECRET the server reads at startup and
prints it. Pass the token to chat/send via --token or INTERVIEW_AUTH_TOKEN.
The subject names the token holder and shows up in server logs; it defaults
to "operator".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, args []string) error {
	subject := "operator"
	if len(args) == 1 {
		subject = args[0]
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("auth is not configured: %w", err)
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(subject)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, token)
	return nil
}
