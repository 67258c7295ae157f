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
package shared

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/dtos"
)

// ErrObjectNotFound is returned by ObjectStorage implementations when the
// requested key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStorage is the minimal contract against the external blob store.
// Keys are treated as append-only: a stored object is never mutated in place.
type ObjectStorage interface {
	PutObject(ctx context.Context, key string, data []byte) error
	GetObject(ctx context.Context, key string) ([]byte, error)
	DeleteObject(ctx context.Context, key string) error
}

// VersionStorage reads and writes version bundles, keyed by (appID, version).
type VersionStorage interface {
	StoreVersionCode(ctx context.Context, appID uuid.UUID, version string, zipData []byte) error
	GetVersionCode(ctx context.Context, appID uuid.UUID, version string) ([]models.Script, error)
	StoreVersionESZip(ctx context.Context, appID uuid.UUID, version string, eszip []byte) error
	GetVersionESZip(ctx context.Context, appID uuid.UUID, version string) ([]byte, error)
	DeleteVersionESZip(ctx context.Context, appID uuid.UUID, version string) error
}

// RelayClient talks to the execution tier.
type RelayClient interface {
	Boot(ctx context.Context, slug, version, branchName string) (dtos.BootResponse, error)
	Run(ctx context.Context, slug, version, filename, runID, branchName string, inputs map[string]any) ([]byte, error)
}

// SecretCipher encrypts secret values at rest.
type SecretCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

type AppRepository interface {
	Read(id uuid.UUID) (models.App, error)
	ReadBySlug(slug string) (models.App, error)
	SlugExists(slug string) (bool, error)
	Save(tx DB, app *models.App) error
	Delete(tx DB, id uuid.UUID) error
	Transaction(fn func(tx DB) error) error
}

type ScriptRepository interface {
	Read(id uuid.UUID) (models.Script, error)
	ReadByFilename(appID uuid.UUID, branchName, filename string) (models.Script, error)
	ListByApp(appID uuid.UUID, branchName string) ([]models.Script, error)
	Save(tx DB, script *models.Script) error
	CreateBatch(tx DB, scripts []models.Script) error
	Delete(tx DB, id uuid.UUID) error
	DeleteByApp(tx DB, appID uuid.UUID, branchName string) error
}

type SecretRepository interface {
	ReadByKey(appID uuid.UUID, key string) (models.Secret, error)
	// ListByApp returns the app's secrets ordered by key.
	ListByApp(appID uuid.UUID) ([]models.Secret, error)
	Upsert(secret *models.Secret) error
	Delete(tx DB, id uuid.UUID) error
}

type VersionRepository interface {
	Read(appID uuid.UUID, hash string) (models.Version, error)
	// FindByVersion resolves a short version string with a starts-with match
	// against the stored full hashes.
	FindByVersion(appID uuid.UUID, version string) (models.Version, error)
	ListByApp(appID uuid.UUID) ([]models.Version, error)
	// UpsertVersion is idempotent on the (appID, hash) composite key so that
	// two concurrent builds landing on the same content hash create exactly
	// one row.
	UpsertVersion(tx DB, version *models.Version) error
	Save(tx DB, version *models.Version) error
}

type AppRunRepository interface {
	Create(tx DB, run *models.AppRun) error
	ListByApp(appID uuid.UUID, limit, offset int) ([]models.AppRun, error)
}

type ScheduleRepository interface {
	Read(id uuid.UUID) (models.Schedule, error)
	ListByApp(appID uuid.UUID) ([]models.Schedule, error)
	ListEnabled() ([]models.Schedule, error)
	Save(tx DB, schedule *models.Schedule) error
	Delete(tx DB, id uuid.UUID) error
}

type AppService interface {
	CreateApp(ctx context.Context, req dtos.CreateAppRequest, userID uuid.UUID) (models.App, error)
	ForkApp(ctx context.Context, app models.App, name string, userID uuid.UUID) (models.App, error)
	DeleteApp(app models.App) error
}

type ScriptService interface {
	CreateScript(ctx context.Context, app models.App, req dtos.CreateScriptRequest, userID uuid.UUID) (models.Script, error)
	SaveScript(ctx context.Context, app models.App, script models.Script, code string, userID uuid.UUID) (models.Script, error)
	DeleteScript(ctx context.Context, app models.App, script models.Script, userID uuid.UUID) error
}

type SecretService interface {
	SetSecret(ctx context.Context, app models.App, key, value string, userID uuid.UUID) (models.Secret, error)
	DeleteSecret(ctx context.Context, app models.App, key string, userID uuid.UUID) error
	RevealSecret(app models.App, key string) (string, error)
	// UpdateSecretsHash recomputes and persists the app's secretsHash and, if
	// it changed, triggers a rebuild cycle.
	UpdateSecretsHash(ctx context.Context, appID uuid.UUID, userID uuid.UUID) error
}

type VersionService interface {
	// BuildIfChanged compares the computed content hash against the app's
	// stored one and creates a new version when they differ, or when no
	// version row exists yet for the current hash (a secret rotation changes
	// the build inputs without changing the content hash). The returned bool
	// reports whether a build happened.
	BuildIfChanged(ctx context.Context, app *models.App, userID uuid.UUID) (models.Version, bool, error)
	Boot(ctx context.Context, app models.App, branchName string) (dtos.BootResult, error)
	Run(ctx context.Context, app models.App, scriptID *uuid.UUID, inputs map[string]string, runID uuid.UUID, branchName string, scheduleID *uuid.UUID) (dtos.RunResult, error)
	Promote(app models.App, version string) (models.Version, error)
	Restore(ctx context.Context, app models.App, version string, userID uuid.UUID) error
	ListVersions(appID uuid.UUID) ([]models.Version, error)
}

type ScheduleService interface {
	CreateSchedule(app models.App, req dtos.CreateScheduleRequest, userID uuid.UUID) (models.Schedule, error)
	DeleteSchedule(app models.App, scheduleID uuid.UUID) error
	ListSchedules(appID uuid.UUID) ([]models.Schedule, error)
	// DispatchDue publishes a ScheduleDue message for every enabled schedule
	// whose crontab has fired since its last run.
	DispatchDue(ctx context.Context, now time.Time) error
	// HandleScheduleJob consumes one {scheduleId} payload from the queue.
	HandleScheduleJob(ctx context.Context, payload map[string]any) error
}
