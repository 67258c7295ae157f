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

package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/zestdev/zest/contenthash"
	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/dtos"
	"github.com/zestdev/zest/shared"
)

type scriptService struct {
	scriptRepository shared.ScriptRepository
	versionService   shared.VersionService
}

func NewScriptService(scriptRepository shared.ScriptRepository, versionService shared.VersionService) *scriptService {
	return &scriptService{
		scriptRepository: scriptRepository,
		versionService:   versionService,
	}
}

func (s *scriptService) CreateScript(ctx context.Context, app models.App, req dtos.CreateScriptRequest, userID uuid.UUID) (models.Script, error) {
	script := models.Script{
		AppID:       app.ID,
		BranchName:  models.DefaultBranchName,
		Filename:    req.Filename,
		Code:        req.Code,
		IsRunnable:  req.IsRunnable,
		ConnectorID: req.ConnectorID,
	}
	script.ID = uuid.New()
	script.Hash = contenthash.HashScript(script.ID, script.Filename, script.Code)

	if err := s.scriptRepository.Save(nil, &script); err != nil {
		return models.Script{}, errors.Wrap(err, "could not create script")
	}

	if _, _, err := s.versionService.BuildIfChanged(ctx, &app, userID); err != nil {
		return models.Script{}, err
	}
	return script, nil
}

// SaveScript persists a code edit, recomputes the script hash and kicks off a
// rebuild cycle.
func (s *scriptService) SaveScript(ctx context.Context, app models.App, script models.Script, code string, userID uuid.UUID) (models.Script, error) {
	script.Code = code
	script.Hash = contenthash.HashScript(script.ID, script.Filename, code)

	if err := s.scriptRepository.Save(nil, &script); err != nil {
		return models.Script{}, errors.Wrap(err, "could not save script")
	}

	if _, _, err := s.versionService.BuildIfChanged(ctx, &app, userID); err != nil {
		return models.Script{}, err
	}
	return script, nil
}

func (s *scriptService) DeleteScript(ctx context.Context, app models.App, script models.Script, userID uuid.UUID) error {
	if script.Filename == models.MainFilename {
		return errors.New("the entry script cannot be deleted")
	}

	if err := s.scriptRepository.Delete(nil, script.ID); err != nil {
		return errors.Wrap(err, "could not delete script")
	}

	_, _, err := s.versionService.BuildIfChanged(ctx, &app, userID)
	return err
}
