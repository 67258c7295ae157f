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

// Package transformer maps database models to their API representations.
package transformer

import (
	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/dtos"
	"github.com/zestdev/zest/utils"
)

func AppModelToDTO(app models.App) dtos.AppDTO {
	return dtos.AppDTO{
		ID:                    app.ID,
		Slug:                  app.Slug,
		Name:                  app.Name,
		Description:           app.Description,
		IsPrivate:             app.IsPrivate,
		Hash:                  app.Hash,
		SecretsHash:           app.SecretsHash,
		LastDeploymentVersion: app.LastDeploymentVersion,
		PlaygroundVersionHash: app.PlaygroundVersionHash,
		PublishedVersionHash:  app.PublishedVersionHash,
		CreatedAt:             app.CreatedAt,
		UpdatedAt:             app.UpdatedAt,
	}
}

func ScriptModelToDTO(script models.Script) dtos.ScriptDTO {
	return dtos.ScriptDTO{
		ID:          script.ID,
		AppID:       script.AppID,
		BranchName:  script.BranchName,
		Filename:    script.Filename,
		Code:        script.Code,
		IsRunnable:  script.IsRunnable,
		ConnectorID: script.ConnectorID,
		Hash:        script.Hash,
		CreatedAt:   script.CreatedAt,
		UpdatedAt:   script.UpdatedAt,
	}
}

func ScriptModelsToDTOs(scripts []models.Script) []dtos.ScriptDTO {
	return utils.Map(scripts, ScriptModelToDTO)
}

func VersionModelToDTO(version models.Version) dtos.VersionDTO {
	return dtos.VersionDTO{
		Version:     version.VersionString(),
		Hash:        version.Hash,
		IsPublished: version.IsPublished,
		UserID:      version.UserID,
		CreatedAt:   version.CreatedAt,
	}
}

func VersionModelsToDTOs(versions []models.Version) []dtos.VersionDTO {
	return utils.Map(versions, VersionModelToDTO)
}

func AppRunModelToDTO(run models.AppRun) dtos.AppRunDTO {
	return dtos.AppRunDTO{
		ID:           run.ID,
		RunID:        run.RunID,
		ScheduleID:   run.ScheduleID,
		Version:      run.Version,
		DeploymentID: run.DeploymentID,
		Path:         run.Path,
		Success:      run.Success,
		Result:       run.Result,
		CreatedAt:    run.CreatedAt,
	}
}

func AppRunModelsToDTOs(runs []models.AppRun) []dtos.AppRunDTO {
	return utils.Map(runs, AppRunModelToDTO)
}
