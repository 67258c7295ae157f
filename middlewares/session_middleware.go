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

package middlewares

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/zestdev/zest/shared"
)

// SessionMiddleware resolves the caller identity. Authentication itself is
// handled by the fronting identity proxy, which forwards the verified user id
// in the X-User-Id header. Bearer tokens are the short-lived access tokens
// minted for schedule-triggered runs.
func SessionMiddleware(signer *shared.AccessTokenSigner) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			authorization := ctx.Request().Header.Get("Authorization")
			if token, found := strings.CutPrefix(authorization, "Bearer "); found {
				userID, appID, err := signer.Verify(token)
				if err != nil {
					// an invalid token does not abort the request - the
					// target might still be public
					slog.Warn("invalid access token", "err", err)
					shared.SetSession(ctx, shared.NoSession)
					return next(ctx)
				}
				shared.SetSession(ctx, shared.NewSession(userID, []string{"run"}))
				ctx.Set("tokenAppID", appID)
				return next(ctx)
			}

			if header := ctx.Request().Header.Get("X-User-Id"); header != "" {
				userID, err := uuid.Parse(header)
				if err != nil {
					return echo.NewHTTPError(401, "invalid user id")
				}
				shared.SetSession(ctx, shared.NewSession(userID, []string{"manage", "run"}))
				return next(ctx)
			}

			shared.SetSession(ctx, shared.NoSession)
			return next(ctx)
		}
	}
}

// SessionRequired rejects unauthenticated requests. Used on every mutating
// route; read routes decide per app visibility instead.
func SessionRequired() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if shared.GetSession(ctx).GetUserID() == uuid.Nil {
				return echo.NewHTTPError(401, "authentication required")
			}
			return next(ctx)
		}
	}
}
