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

package controllers

import (
	"github.com/labstack/echo/v4"

	"github.com/zestdev/zest/dtos"
	"github.com/zestdev/zest/shared"
	"github.com/zestdev/zest/transformer"
)

type AppController struct {
	appRepository    shared.AppRepository
	appRunRepository shared.AppRunRepository
	appService       shared.AppService
}

func NewAppController(appRepository shared.AppRepository, appRunRepository shared.AppRunRepository, appService shared.AppService) *AppController {
	return &AppController{
		appRepository:    appRepository,
		appRunRepository: appRunRepository,
		appService:       appService,
	}
}

func (a *AppController) Create(ctx shared.Context) error {
	var req dtos.CreateAppRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	app, err := a.appService.CreateApp(ctx.Request().Context(), req, shared.GetSession(ctx).GetUserID())
	if err != nil {
		return echo.NewHTTPError(500, "could not create app").WithInternal(err)
	}

	return ctx.JSON(201, transformer.AppModelToDTO(app))
}

func (a *AppController) Read(ctx shared.Context) error {
	app := shared.GetApp(ctx)
	return ctx.JSON(200, transformer.AppModelToDTO(app))
}

func (a *AppController) Update(ctx shared.Context) error {
	app := shared.GetApp(ctx)

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsPrivate   *bool   `json:"isPrivate"`
	}
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if req.Name != nil {
		app.Name = *req.Name
	}
	if req.Description != nil {
		app.Description = *req.Description
	}
	if req.IsPrivate != nil {
		app.IsPrivate = *req.IsPrivate
	}

	if err := a.appRepository.Save(nil, &app); err != nil {
		return echo.NewHTTPError(500, "could not update app").WithInternal(err)
	}
	return ctx.JSON(200, transformer.AppModelToDTO(app))
}

func (a *AppController) Fork(ctx shared.Context) error {
	app := shared.GetApp(ctx)

	var req dtos.ForkAppRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	fork, err := a.appService.ForkApp(ctx.Request().Context(), app, req.Name, shared.GetSession(ctx).GetUserID())
	if err != nil {
		return echo.NewHTTPError(500, "could not fork app").WithInternal(err)
	}
	return ctx.JSON(201, transformer.AppModelToDTO(fork))
}

func (a *AppController) Delete(ctx shared.Context) error {
	app := shared.GetApp(ctx)
	if err := a.appService.DeleteApp(app); err != nil {
		return echo.NewHTTPError(500, "could not delete app").WithInternal(err)
	}
	return ctx.NoContent(204)
}

func (a *AppController) ListRuns(ctx shared.Context) error {
	app := shared.GetApp(ctx)

	page := shared.ParsePageQuery(ctx)
	runs, err := a.appRunRepository.ListByApp(app.ID, page.Limit, page.Offset)
	if err != nil {
		return echo.NewHTTPError(500, "could not list runs").WithInternal(err)
	}
	return ctx.JSON(200, transformer.AppRunModelsToDTOs(runs))
}
