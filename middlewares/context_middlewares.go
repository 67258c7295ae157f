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
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/shared"
)

// all middlewares which modify the current request context and fetch some
// data from the database

// AppMiddleware resolves the appSlug route parameter into the app model and
// enforces visibility: private apps are only reachable by their creator, a
// permission failure surfaces before any build or run work starts.
func AppMiddleware(appRepository shared.AppRepository) shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx shared.Context) error {
			appSlug, err := shared.GetAppSlug(ctx)
			if err != nil {
				return echo.NewHTTPError(400, "invalid app slug")
			}

			app, err := appRepository.ReadBySlug(appSlug)
			if err != nil {
				return echo.NewHTTPError(404, "could not find app").WithInternal(err)
			}

			session := shared.GetSession(ctx)
			if app.IsPrivate {
				if session.GetUserID() == uuid.Nil {
					return echo.NewHTTPError(401, "authentication required")
				}
				if session.GetUserID() != app.CreatedByID {
					return echo.NewHTTPError(403, "no access to this app")
				}
			} else {
				shared.SetIsPublicRequest(ctx)
			}

			shared.SetApp(ctx, app)
			return next(ctx)
		}
	}
}

// ScriptMiddleware resolves the filename route parameter into a script of the
// current app.
func ScriptMiddleware(scriptRepository shared.ScriptRepository) shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx shared.Context) error {
			app := shared.GetApp(ctx)

			filename, err := shared.GetScriptFilename(ctx)
			if err != nil {
				return echo.NewHTTPError(400, "invalid script filename")
			}

			script, err := scriptRepository.ReadByFilename(app.ID, models.DefaultBranchName, filename)
			if err != nil {
				return echo.NewHTTPError(404, "could not find script").WithInternal(err)
			}

			shared.SetScript(ctx, script)
			return next(ctx)
		}
	}
}
