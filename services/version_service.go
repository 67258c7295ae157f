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
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/zestdev/zest/contenthash"
	"github.com/zestdev/zest/database/models"
	databasetypes "github.com/zestdev/zest/database/types"
	"github.com/zestdev/zest/dtos"
	"github.com/zestdev/zest/monitoring"
	"github.com/zestdev/zest/shared"
	"github.com/zestdev/zest/storage"
	"github.com/zestdev/zest/utils"
)

type versionService struct {
	appRepository     shared.AppRepository
	scriptRepository  shared.ScriptRepository
	versionRepository shared.VersionRepository
	appRunRepository  shared.AppRunRepository
	versionStorage    shared.VersionStorage
	relayClient       shared.RelayClient
}

func NewVersionService(appRepository shared.AppRepository, scriptRepository shared.ScriptRepository, versionRepository shared.VersionRepository, appRunRepository shared.AppRunRepository, versionStorage shared.VersionStorage, relayClient shared.RelayClient) *versionService {
	return &versionService{
		appRepository:     appRepository,
		scriptRepository:  scriptRepository,
		versionRepository: versionRepository,
		appRunRepository:  appRunRepository,
		versionStorage:    versionStorage,
		relayClient:       relayClient,
	}
}

// BuildIfChanged recomputes the app's content hash from its live scripts and
// runs a build cycle when the hash moved, or when the current hash has no
// version row yet. The bundle is stored before any metadata is touched, so a
// version pointer can never advance ahead of its artifact.
func (s *versionService) BuildIfChanged(ctx context.Context, app *models.App, userID uuid.UUID) (models.Version, bool, error) {
	scripts, err := s.scriptRepository.ListByApp(app.ID, models.DefaultBranchName)
	if err != nil {
		return models.Version{}, false, errors.Wrap(err, "could not load scripts for build")
	}

	newHash := contenthash.HashApp(app.ID, app.Name, utils.Map(scripts, func(script models.Script) contenthash.ScriptHash {
		return contenthash.ScriptHash{ID: script.ID, Hash: script.Hash}
	}))

	if newHash == app.Hash {
		existing, err := s.versionRepository.Read(app.ID, newHash)
		if err == nil {
			return existing, false, nil
		}
		// hash unchanged but no version row: a secret rotation or a
		// half-finished earlier build. Fall through and build.
	}

	start := time.Now()
	version := models.Version{
		AppID:  app.ID,
		Hash:   newHash,
		UserID: userID,
	}

	bundle, err := storage.PackScripts(scripts)
	if err != nil {
		return models.Version{}, false, err
	}

	// durably store the artifact first, metadata second
	if err := s.versionStorage.StoreVersionCode(ctx, app.ID, version.VersionString(), bundle); err != nil {
		return models.Version{}, false, errors.Wrap(err, "could not store version bundle")
	}

	err = s.appRepository.Transaction(func(tx shared.DB) error {
		if err := s.versionRepository.UpsertVersion(tx, &version); err != nil {
			return err
		}

		app.Hash = newHash
		app.LastDeploymentVersion = version.VersionString()
		app.PlaygroundVersionHash = newHash
		return s.appRepository.Save(tx, app)
	})
	if err != nil {
		return models.Version{}, false, errors.Wrap(err, "could not persist version metadata")
	}

	monitoring.VersionBuildDuration.Observe(time.Since(start).Seconds())
	monitoring.VersionBuildsTotal.Inc()

	slog.Info("built new version", "appId", app.ID, "version", version.VersionString())
	return version, true, nil
}

// Boot initializes the execution tier for the app's current version. The
// execution tier echoes the version it actually loaded; a mismatch is a
// consistency error and must not advance the deployment pointer.
func (s *versionService) Boot(ctx context.Context, app models.App, branchName string) (dtos.BootResult, error) {
	version := app.LastDeploymentVersion

	resp, err := s.relayClient.Boot(ctx, app.Slug, version, branchName)
	if err != nil {
		monitoring.BootFailuresTotal.WithLabelValues("transport").Inc()
		slog.Error("boot call failed", "appId", app.ID, "version", version, "err", err)
		return dtos.BootResult{OK: false, Error: err.Error()}, nil
	}

	if !resp.OK {
		monitoring.BootFailuresTotal.WithLabelValues("rejected").Inc()
		return dtos.BootResult{OK: false, Error: "execution tier rejected boot"}, nil
	}

	if version != "" && resp.Version != version {
		monitoring.BootFailuresTotal.WithLabelValues("version_mismatch").Inc()
		monitoring.Alert("boot version check failed", fmt.Errorf("requested %s, got %s", version, resp.Version))
		return dtos.BootResult{OK: false, Error: "boot version mismatch"}, nil
	}

	app.LastDeploymentVersion = resp.Version
	if err := s.appRepository.Save(nil, &app); err != nil {
		return dtos.BootResult{}, errors.Wrap(err, "could not update deployment version")
	}

	return dtos.BootResult{
		OK:      true,
		Version: resp.Version,
		Configs: resp.Configs,
	}, nil
}

// Run invokes one script of the app's current version on the execution tier
// and records an audit row. A failed downstream call is a normal result, not
// an error.
func (s *versionService) Run(ctx context.Context, app models.App, scriptID *uuid.UUID, inputs map[string]string, runID uuid.UUID, branchName string, scheduleID *uuid.UUID) (dtos.RunResult, error) {
	if branchName == "" {
		branchName = models.DefaultBranchName
	}

	script, err := s.resolveScript(app, scriptID, branchName)
	if err != nil {
		return dtos.RunResult{}, err
	}
	if !script.IsRunnable {
		return dtos.RunResult{}, errors.Errorf("script %s is not runnable", script.Filename)
	}

	version := app.LastDeploymentVersion
	typed := CoerceInputs(inputs)

	start := time.Now()
	result, runErr := s.relayClient.Run(ctx, app.Slug, version, script.Filename, runID.String(), branchName, typed)
	monitoring.RunDuration.Observe(time.Since(start).Seconds())
	monitoring.RunsTotal.WithLabelValues(strconv.FormatBool(runErr == nil)).Inc()

	appRun := models.AppRun{
		AppID:        app.ID,
		RunID:        runID,
		ScheduleID:   scheduleID,
		Version:      version,
		DeploymentID: fmt.Sprintf("%s@%s", app.Slug, version),
		Path:         script.Filename,
		Inputs:       databasetypes.JSONB(typed),
		Success:      runErr == nil,
		Result:       string(result),
	}
	if err := s.appRunRepository.Create(nil, &appRun); err != nil {
		// the audit row must not mask the run result
		monitoring.Alert("could not record app run", err)
	}

	if runErr != nil {
		slog.Error("run call failed", "appId", app.ID, "version", version, "path", script.Filename, "err", runErr)
		return dtos.RunResult{OK: false, Version: version, RunID: runID.String(), Error: runErr.Error()}, nil
	}

	return dtos.RunResult{
		OK:      true,
		Version: version,
		RunID:   runID.String(),
		Result:  string(result),
	}, nil
}

func (s *versionService) resolveScript(app models.App, scriptID *uuid.UUID, branchName string) (models.Script, error) {
	if scriptID != nil {
		script, err := s.scriptRepository.Read(*scriptID)
		if err != nil {
			return models.Script{}, errors.Wrap(err, "could not find script")
		}
		if script.AppID != app.ID {
			return models.Script{}, errors.New("script does not belong to app")
		}
		return script, nil
	}
	return s.scriptRepository.ReadByFilename(app.ID, branchName, models.MainFilename)
}

// Promote marks a version as published and repoints the app's published hash.
// Promoting an already published version is a no-op success.
func (s *versionService) Promote(app models.App, version string) (models.Version, error) {
	v, err := s.versionRepository.FindByVersion(app.ID, version)
	if err != nil {
		return models.Version{}, errors.Wrap(err, "could not find version")
	}

	if v.IsPublished && app.PublishedVersionHash == v.Hash {
		return v, nil
	}

	err = s.appRepository.Transaction(func(tx shared.DB) error {
		v.IsPublished = true
		if err := s.versionRepository.Save(tx, &v); err != nil {
			return err
		}

		app.PublishedVersionHash = v.Hash
		return s.appRepository.Save(tx, &app)
	})
	if err != nil {
		return models.Version{}, errors.Wrap(err, "could not promote version")
	}

	slog.Info("promoted version", "appId", app.ID, "version", version)
	return v, nil
}

// Restore replaces the app's live script set with a historical version's
// bundle. The swap happens in one transaction so a failure cannot leave a mix
// of old and new scripts; the version history itself stays untouched.
func (s *versionService) Restore(ctx context.Context, app models.App, version string, userID uuid.UUID) error {
	v, err := s.versionRepository.FindByVersion(app.ID, version)
	if err != nil {
		return errors.Wrap(err, "could not find version")
	}

	scripts, err := s.versionStorage.GetVersionCode(ctx, app.ID, v.VersionString())
	if err != nil {
		return errors.Wrap(err, "could not load version bundle")
	}

	for i := range scripts {
		scripts[i].ID = uuid.New()
		scripts[i].AppID = app.ID
		scripts[i].BranchName = models.DefaultBranchName
		scripts[i].Hash = contenthash.HashScript(scripts[i].ID, scripts[i].Filename, scripts[i].Code)
	}

	err = s.appRepository.Transaction(func(tx shared.DB) error {
		if err := s.scriptRepository.DeleteByApp(tx, app.ID, models.DefaultBranchName); err != nil {
			return err
		}
		if len(scripts) > 0 {
			if err := s.scriptRepository.CreateBatch(tx, scripts); err != nil {
				return err
			}
		}

		// the restored scripts have fresh ids, so the recomputed app hash
		// diverges from the version's hash. The playground pointer still
		// denotes the restored snapshot.
		app.PlaygroundVersionHash = v.Hash
		return s.appRepository.Save(tx, &app)
	})
	if err != nil {
		monitoring.Alert("restore failed", err)
		return errors.Wrap(err, "could not restore version")
	}

	slog.Info("restored version", "appId", app.ID, "version", version, "userId", userID)
	return nil
}

func (s *versionService) ListVersions(appID uuid.UUID) ([]models.Version, error) {
	return s.versionRepository.ListByApp(appID)
}
