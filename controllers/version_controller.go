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
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/zestdev/zest/dtos"
	"github.com/zestdev/zest/shared"
	"github.com/zestdev/zest/transformer"
)

type VersionController struct {
	versionService    shared.VersionService
	versionRepository shared.VersionRepository
	versionStorage    shared.VersionStorage
}

func NewVersionController(versionService shared.VersionService, versionRepository shared.VersionRepository, versionStorage shared.VersionStorage) *VersionController {
	return &VersionController{
		versionService:    versionService,
		versionRepository: versionRepository,
		versionStorage:    versionStorage,
	}
}

func (v *VersionController) List(ctx shared.Context) error {
	app := shared.GetApp(ctx)

	versions, err := v.versionService.ListVersions(app.ID)
	if err != nil {
		return echo.NewHTTPError(500, "could not list versions").WithInternal(err)
	}
	return ctx.JSON(200, transformer.VersionModelsToDTOs(versions))
}

func (v *VersionController) Build(ctx shared.Context) error {
	app := shared.GetApp(ctx)

	version, built, err := v.versionService.BuildIfChanged(ctx.Request().Context(), &app, shared.GetSession(ctx).GetUserID())
	if err != nil {
		return echo.NewHTTPError(500, "could not build version").WithInternal(err)
	}

	return ctx.JSON(200, dtos.BuildResult{
		Version: version.VersionString(),
		Hash:    version.Hash,
		Built:   built,
	})
}

func (v *VersionController) Boot(ctx shared.Context) error {
	app := shared.GetApp(ctx)
	branchName := ctx.QueryParam("branch")

	result, err := v.versionService.Boot(ctx.Request().Context(), app, branchName)
	if err != nil {
		return echo.NewHTTPError(500, "could not boot app").WithInternal(err)
	}
	return ctx.JSON(200, result)
}

func (v *VersionController) Run(ctx shared.Context) error {
	app := shared.GetApp(ctx)

	var req dtos.RunRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	runID, err := uuid.Parse(req.RunID)
	if err != nil {
		return echo.NewHTTPError(400, "invalid run id")
	}

	result, err := v.versionService.Run(ctx.Request().Context(), app, req.ScriptID, req.Inputs, runID, ctx.QueryParam("branch"), nil)
	if err != nil {
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	}
	return ctx.JSON(200, result)
}

func (v *VersionController) Promote(ctx shared.Context) error {
	app := shared.GetApp(ctx)
	version := ctx.Param("version")

	promoted, err := v.versionService.Promote(app, version)
	if err != nil {
		return echo.NewHTTPError(404, "version not found").WithInternal(err)
	}
	return ctx.JSON(200, transformer.VersionModelToDTO(promoted))
}

// GetArtifact serves the compiled artifact of a version to the execution
// tier. A missing artifact is a 404, the caller compiles from source then.
func (v *VersionController) GetArtifact(ctx shared.Context) error {
	app := shared.GetApp(ctx)

	version, err := v.versionRepository.FindByVersion(app.ID, ctx.Param("version"))
	if err != nil {
		return echo.NewHTTPError(404, "version not found")
	}

	eszip, err := v.versionStorage.GetVersionESZip(ctx.Request().Context(), app.ID, version.VersionString())
	if err != nil {
		if errors.Is(err, shared.ErrObjectNotFound) {
			return echo.NewHTTPError(404, "no compiled artifact for this version")
		}
		return echo.NewHTTPError(500, "could not read compiled artifact").WithInternal(err)
	}
	return ctx.Blob(200, "application/octet-stream", eszip)
}

// PutArtifact accepts the compiled artifact the execution tier pushes after
// compiling a version. Unlike the source bundle it may be overwritten, a
// secret rotation forces a recompile of the same version.
func (v *VersionController) PutArtifact(ctx shared.Context) error {
	app := shared.GetApp(ctx)

	version, err := v.versionRepository.FindByVersion(app.ID, ctx.Param("version"))
	if err != nil {
		return echo.NewHTTPError(404, "version not found")
	}

	eszip, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return echo.NewHTTPError(400, "unable to read artifact").WithInternal(err)
	}
	if len(eszip) == 0 {
		return echo.NewHTTPError(400, "empty artifact")
	}

	if err := v.versionStorage.StoreVersionESZip(ctx.Request().Context(), app.ID, version.VersionString(), eszip); err != nil {
		return echo.NewHTTPError(500, "could not store compiled artifact").WithInternal(err)
	}
	return ctx.NoContent(204)
}

func (v *VersionController) Restore(ctx shared.Context) error {
	app := shared.GetApp(ctx)
	version := ctx.Param("version")

	if err := v.versionService.Restore(ctx.Request().Context(), app, version, shared.GetSession(ctx).GetUserID()); err != nil {
		return echo.NewHTTPError(400, "could not restore version").WithInternal(err)
	}
	return ctx.NoContent(204)
}
