package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/athena/internal/access"
	"github.com/spf13/cobra"
)

var errUnknownRole = errors.New("role is not a tenant role")

func newTokenCmd(c *cli) *cobra.Command {
	token := &cobra.Command{
		Use:   "token",
		Short: "Manage session tokens",
	}

	var (
		name   string
		role   string
		ttl    time.Duration
		secret string
	)
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Issue a signed session token",
		Long: `Issue prints a session token for the given user and role. Paste it
into the sign-in page or send it as "Authorization: Bearer <token>".

Example:
  hrisctl token issue --name olena --role "HR Manager"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !c.app.IsTenantRole(role) {
				return fmt.Errorf("%w: %q (valid: %v)", errUnknownRole, role, c.app.TenantRoles())
			}
			if secret == "" {
				secret = c.cfg.Auth.JWTSecret
			}
			if ttl <= 0 {
				ttl = c.cfg.Auth.SessionTTL
			}

			tok, err := access.IssueToken(secret, name, role, ttl)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}

			if c.jsonOut {
				return c.printJSON(cmd.OutOrStdout(), map[string]string{
					"token":      tok,
					"name":       name,
					"role":       role,
					"expires_in": ttl.String(),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	issue.Flags().StringVar(&name, "name", "", "user name stored in the token")
	issue.Flags().StringVar(&role, "role", "", "tenant role stored in the token")
	issue.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default: auth.session_ttl)")
	issue.Flags().StringVar(&secret, "secret", "", "signing secret (default: JWT_SECRET)")
	_ = issue.MarkFlagRequired("name")
	_ = issue.MarkFlagRequired("role")

	token.AddCommand(issue)
	return token
}
