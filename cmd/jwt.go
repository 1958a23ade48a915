package main

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"linkshield/internal/config"
	"linkshield/pkg/logger"
)

// JWTCommand constructs the 'jwt' subcommand. It signs an RS256 bearer token
// for the given user ID with the configured private key, mainly useful for
// local development and smoke tests.
func JWTCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jwt",
		Short: "Generates a signed bearer token for a user ID",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			subject, _ := cmd.Flags().GetString("subject")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			// the API only accepts UUID subjects, so reject anything else early
			if _, err := uuid.Parse(subject); err != nil {
				logger.Fatal(ctx, "subject must be a UUID", zap.String("subject", subject))
			}

			key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.JWT.PrivateKey))
			if err != nil {
				logger.Fatal(ctx, "could not parse RSA private key", zap.Error(err))
			}

			now := time.Now()
			token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
				Subject:   subject,
				IssuedAt:  jwt.NewNumericDate(now),
				NotBefore: jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			})
			signed, err := token.SignedString(key)
			if err != nil {
				logger.Fatal(ctx, "could not sign token", zap.Error(err))
			}

			fmt.Println(signed) //nolint: forbidigo
		},
	}

	cmd.Flags().String("subject", "", "user ID to issue the token for")
	cmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime (e.g. 15m, 1h)")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
