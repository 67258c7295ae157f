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

package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zestdev/zest/database"
	"github.com/zestdev/zest/middlewares"
	"github.com/zestdev/zest/shared"
)

type APIV1Router struct {
	*echo.Group
}

func NewAPIV1Router(e *echo.Echo, signer *shared.AccessTokenSigner, db shared.DB) APIV1Router {
	apiV1Router := e.Group("/api/v1")
	apiV1Router.Use(middlewares.SessionMiddleware(signer))

	apiV1Router.GET("/health/", func(ctx echo.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return echo.NewHTTPError(503, "database unavailable").WithInternal(err)
		}
		if err := sqlDB.Ping(); err != nil {
			return echo.NewHTTPError(503, "database unavailable").WithInternal(err)
		}

		migrationVersion, dirty, _ := database.GetMigrationVersionWithDB(db)
		return ctx.JSON(200, map[string]any{
			"status":           "ok",
			"migrationVersion": migrationVersion,
			"migrationDirty":   dirty,
		})
	})

	apiV1Router.GET("/metrics/", echo.WrapHandler(promhttp.Handler()))

	return APIV1Router{Group: apiV1Router}
}
