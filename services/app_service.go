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
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"

	"github.com/zestdev/zest/contenthash"
	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/dtos"
	"github.com/zestdev/zest/shared"
)

// defaultMainScript is the runnable entry file every new app starts with.
const defaultMainScript = `export default async function main() {
  return { message: "hello from zest" };
}
`

type appService struct {
	appRepository    shared.AppRepository
	scriptRepository shared.ScriptRepository
	versionService   shared.VersionService
}

func NewAppService(appRepository shared.AppRepository, scriptRepository shared.ScriptRepository, versionService shared.VersionService) *appService {
	return &appService{
		appRepository:    appRepository,
		scriptRepository: scriptRepository,
		versionService:   versionService,
	}
}

// uniqueSlug derives a globally unique slug from the app name by suffixing a
// counter on collision.
func (s *appService) uniqueSlug(name string) (string, error) {
	base := slug.Make(name)
	candidate := base
	for i := 1; ; i++ {
		exists, err := s.appRepository.SlugExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// CreateApp creates the app together with its default runnable entry script
// and builds the initial version.
func (s *appService) CreateApp(ctx context.Context, req dtos.CreateAppRequest, userID uuid.UUID) (models.App, error) {
	appSlug, err := s.uniqueSlug(req.Name)
	if err != nil {
		return models.App{}, errors.Wrap(err, "could not derive slug")
	}

	app := models.App{
		Name:        req.Name,
		Slug:        appSlug,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
		CreatedByID: userID,
	}

	err = s.appRepository.Transaction(func(tx shared.DB) error {
		if err := s.appRepository.Save(tx, &app); err != nil {
			return err
		}

		script := models.Script{
			AppID:      app.ID,
			BranchName: models.DefaultBranchName,
			Filename:   models.MainFilename,
			Code:       defaultMainScript,
			IsRunnable: true,
		}
		script.ID = uuid.New()
		script.Hash = contenthash.HashScript(script.ID, script.Filename, script.Code)
		return s.scriptRepository.Save(tx, &script)
	})
	if err != nil {
		return models.App{}, errors.Wrap(err, "could not create app")
	}

	if _, _, err := s.versionService.BuildIfChanged(ctx, &app, userID); err != nil {
		return models.App{}, errors.Wrap(err, "could not build initial version")
	}

	slog.Info("created app", "appId", app.ID, "slug", app.Slug)
	return app, nil
}

// ForkApp clones an app's live script set into a fresh app owned by the
// forking user. Secrets are deliberately not copied.
func (s *appService) ForkApp(ctx context.Context, app models.App, name string, userID uuid.UUID) (models.App, error) {
	scripts, err := s.scriptRepository.ListByApp(app.ID, models.DefaultBranchName)
	if err != nil {
		return models.App{}, errors.Wrap(err, "could not load scripts to fork")
	}

	forkSlug, err := s.uniqueSlug(name)
	if err != nil {
		return models.App{}, errors.Wrap(err, "could not derive slug")
	}

	fork := models.App{
		Name:        name,
		Slug:        forkSlug,
		Description: app.Description,
		IsPrivate:   app.IsPrivate,
		CreatedByID: userID,
	}

	err = s.appRepository.Transaction(func(tx shared.DB) error {
		if err := s.appRepository.Save(tx, &fork); err != nil {
			return err
		}

		for i := range scripts {
			scripts[i].ID = uuid.New()
			scripts[i].AppID = fork.ID
			scripts[i].Hash = contenthash.HashScript(scripts[i].ID, scripts[i].Filename, scripts[i].Code)
		}
		if len(scripts) == 0 {
			return nil
		}
		return s.scriptRepository.CreateBatch(tx, scripts)
	})
	if err != nil {
		return models.App{}, errors.Wrap(err, "could not fork app")
	}

	if _, _, err := s.versionService.BuildIfChanged(ctx, &fork, userID); err != nil {
		return models.App{}, errors.Wrap(err, "could not build forked version")
	}

	slog.Info("forked app", "sourceAppId", app.ID, "appId", fork.ID, "slug", fork.Slug)
	return fork, nil
}

func (s *appService) DeleteApp(app models.App) error {
	return s.appRepository.Delete(nil, app.ID)
}
