package cli

import (
	"errors"
	"fmt"
	"time"

	"talent-match/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var errNoSecret = errors.New("JWT_ACCESS_SECRET is not set")

func newTokenCmd(e *env) *cobra.Command {
	var (
		user  string
		email string
		role  string
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for local testing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if e.cfg.JWT.AccessSecret == "" {
				return errNoSecret
			}
			switch role {
			case jwt.RoleCandidate, jwt.RoleRecruiter:
			default:
				return fmt.Errorf("role must be %s or %s", jwt.RoleCandidate, jwt.RoleRecruiter)
			}

			id := uuid.New()
			if user != "" {
				parsed, err := uuid.Parse(user)
				if err != nil {
					return fmt.Errorf("invalid user id: %w", err)
				}
				id = parsed
			}

			tok, err := jwt.NewHMACService(e.cfg.JWT.AccessSecret, ttl).IssueAccessToken(id, email, role)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "user id (random when empty)")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringVar(&role, "role", jwt.RoleCandidate, "candidate or recruiter")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
