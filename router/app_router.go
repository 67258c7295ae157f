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

	"github.com/zestdev/zest/controllers"
	"github.com/zestdev/zest/middlewares"
	"github.com/zestdev/zest/shared"
)

type AppRouter struct {
	*echo.Group
}

func NewAppRouter(
	apiV1Router APIV1Router,
	appController *controllers.AppController,
	scriptController *controllers.ScriptController,
	secretController *controllers.SecretController,
	versionController *controllers.VersionController,
	scheduleController *controllers.ScheduleController,
	appRepository shared.AppRepository,
	scriptRepository shared.ScriptRepository,
) AppRouter {
	sessionRequired := middlewares.SessionRequired()

	apiV1Router.POST("/apps/", appController.Create, sessionRequired)

	/**
	App scoped router
	All routes below this line are scoped to a specific app.
	*/
	appRouter := apiV1Router.Group.Group("/apps/:appSlug", middlewares.AppMiddleware(appRepository))
	appRouter.GET("/", appController.Read)
	appRouter.PATCH("/", appController.Update, sessionRequired)
	appRouter.DELETE("/", appController.Delete, sessionRequired)
	appRouter.POST("/fork/", appController.Fork, sessionRequired)
	appRouter.GET("/runs/", appController.ListRuns, sessionRequired)

	appRouter.GET("/scripts/", scriptController.List)
	appRouter.POST("/scripts/", scriptController.Create, sessionRequired)

	scriptRouter := appRouter.Group("/scripts/:filename", middlewares.ScriptMiddleware(scriptRepository))
	scriptRouter.GET("/", scriptController.Read)
	scriptRouter.PUT("/", scriptController.Save, sessionRequired)
	scriptRouter.DELETE("/", scriptController.Delete, sessionRequired)

	appRouter.GET("/secrets/", secretController.List, sessionRequired)
	appRouter.POST("/secrets/", secretController.Set, sessionRequired)
	appRouter.GET("/secrets/:key/reveal/", secretController.Reveal, sessionRequired)
	appRouter.DELETE("/secrets/:key/", secretController.Delete, sessionRequired)

	appRouter.GET("/versions/", versionController.List)
	appRouter.POST("/versions/build/", versionController.Build, sessionRequired)
	appRouter.POST("/versions/boot/", versionController.Boot)
	appRouter.POST("/versions/run/", versionController.Run)
	appRouter.POST("/versions/:version/promote/", versionController.Promote, sessionRequired)
	appRouter.POST("/versions/:version/restore/", versionController.Restore, sessionRequired)
	// the execution tier pulls and pushes compiled artifacts with a run token
	appRouter.GET("/versions/:version/artifact/", versionController.GetArtifact, sessionRequired)
	appRouter.PUT("/versions/:version/artifact/", versionController.PutArtifact, sessionRequired)

	appRouter.GET("/schedules/", scheduleController.List, sessionRequired)
	appRouter.POST("/schedules/", scheduleController.Create, sessionRequired)
	appRouter.POST("/schedules/:scheduleID/toggle/", scheduleController.Toggle, sessionRequired)
	appRouter.DELETE("/schedules/:scheduleID/", scheduleController.Delete, sessionRequired)

	return AppRouter{Group: appRouter}
}
