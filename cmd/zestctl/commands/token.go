// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zestdev/zest/database/repositories"
	"github.com/zestdev/zest/shared"
)

func NewTokenCommand() *cobra.Command {
	token := cobra.Command{
		Use:   "token <appSlug>",
		Short: "Mint an access token for running an app",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			userFlag, _ := cmd.Flags().GetString("user")
			userID, err := uuid.Parse(userFlag)
			if err != nil {
				slog.Error("invalid user id", "err", err)
				return
			}
			ttl, _ := cmd.Flags().GetDuration("ttl")

			secret, _ := cmd.Flags().GetString("access-token-secret")
			if secret == "" {
				secret = os.Getenv("ACCESS_TOKEN_SECRET")
			}
			if secret == "" {
				slog.Error("no access token secret configured")
				return
			}

			db, err := connectDatabase()
			if err != nil {
				slog.Error("could not connect to database", "err", err)
				return
			}

			app, err := repositories.NewAppRepository(db).ReadBySlug(args[0])
			if err != nil {
				slog.Error("could not find app", "slug", args[0], "err", err)
				return
			}

			signer := shared.NewAccessTokenSigner(secret)
			fmt.Println(signer.Sign(userID, app.ID, ttl))
		},
	}

	token.Flags().String("user", "", "id of the user the token acts as")
	token.Flags().Duration("ttl", time.Hour, "how long the token stays valid")
	token.Flags().String("access-token-secret", "", "secret the server signs access tokens with")

	return &token
}
