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

	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/dtos"
	"github.com/zestdev/zest/shared"
	"github.com/zestdev/zest/transformer"
)

type ScriptController struct {
	scriptRepository shared.ScriptRepository
	scriptService    shared.ScriptService
}

func NewScriptController(scriptRepository shared.ScriptRepository, scriptService shared.ScriptService) *ScriptController {
	return &ScriptController{
		scriptRepository: scriptRepository,
		scriptService:    scriptService,
	}
}

func (s *ScriptController) List(ctx shared.Context) error {
	app := shared.GetApp(ctx)

	scripts, err := s.scriptRepository.ListByApp(app.ID, models.DefaultBranchName)
	if err != nil {
		return echo.NewHTTPError(500, "could not list scripts").WithInternal(err)
	}
	return ctx.JSON(200, transformer.ScriptModelsToDTOs(scripts))
}

func (s *ScriptController) Read(ctx shared.Context) error {
	script := shared.GetScript(ctx)
	return ctx.JSON(200, transformer.ScriptModelToDTO(script))
}

func (s *ScriptController) Create(ctx shared.Context) error {
	app := shared.GetApp(ctx)

	var req dtos.CreateScriptRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	script, err := s.scriptService.CreateScript(ctx.Request().Context(), app, req, shared.GetSession(ctx).GetUserID())
	if err != nil {
		return echo.NewHTTPError(500, "could not create script").WithInternal(err)
	}
	return ctx.JSON(201, transformer.ScriptModelToDTO(script))
}

func (s *ScriptController) Save(ctx shared.Context) error {
	app := shared.GetApp(ctx)
	script := shared.GetScript(ctx)

	var req dtos.SaveScriptRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	saved, err := s.scriptService.SaveScript(ctx.Request().Context(), app, script, req.Code, shared.GetSession(ctx).GetUserID())
	if err != nil {
		return echo.NewHTTPError(500, "could not save script").WithInternal(err)
	}
	return ctx.JSON(200, transformer.ScriptModelToDTO(saved))
}

func (s *ScriptController) Delete(ctx shared.Context) error {
	app := shared.GetApp(ctx)
	script := shared.GetScript(ctx)

	if err := s.scriptService.DeleteScript(ctx.Request().Context(), app, script, shared.GetSession(ctx).GetUserID()); err != nil {
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	}
	return ctx.NoContent(204)
}
