package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zestdev/zest/contenthash"
	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/dtos"
	"github.com/zestdev/zest/mocks"
	"github.com/zestdev/zest/shared"
)

func runTransaction(args mock.Arguments) {
	args.Get(0).(func(shared.DB) error)(nil) //nolint:errcheck
}

func newApp() models.App {
	app := models.App{
		Name: "my app",
		Slug: "my-app",
	}
	app.ID = uuid.New()
	return app
}

func appHashFor(app models.App, scripts []models.Script) string {
	hashes := make([]contenthash.ScriptHash, len(scripts))
	for i, s := range scripts {
		hashes[i] = contenthash.ScriptHash{ID: s.ID, Hash: s.Hash}
	}
	return contenthash.HashApp(app.ID, app.Name, hashes)
}

func TestBuildIfChanged(t *testing.T) {
	t.Run("should not build when the hash is unchanged and a version exists", func(t *testing.T) {
		app := newApp()
		script := models.Script{Filename: "main.ts", Code: "export const x=1"}
		script.ID = uuid.New()
		script.Hash = contenthash.HashScript(script.ID, script.Filename, script.Code)
		scripts := []models.Script{script}
		app.Hash = appHashFor(app, scripts)

		scriptRepository := &mocks.ScriptRepository{}
		scriptRepository.On("ListByApp", app.ID, "main").Return(scripts, nil)

		versionRepository := &mocks.VersionRepository{}
		versionRepository.On("Read", app.ID, app.Hash).Return(models.Version{AppID: app.ID, Hash: app.Hash}, nil)

		versionStorage := &mocks.VersionStorage{}
		appRepository := &mocks.AppRepository{}

		service := NewVersionService(appRepository, scriptRepository, versionRepository, &mocks.AppRunRepository{}, versionStorage, &mocks.RelayClient{})

		version, built, err := service.BuildIfChanged(context.Background(), &app, uuid.New())
		require.NoError(t, err)

		assert.False(t, built)
		assert.Equal(t, app.Hash, version.Hash)
		versionStorage.AssertNotCalled(t, "StoreVersionCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		appRepository.AssertNotCalled(t, "Transaction", mock.Anything)
	})

	t.Run("should build and advance the pointers when the content changed", func(t *testing.T) {
		app := newApp()
		app.Hash = "somethingelse"

		script := models.Script{Filename: "main.ts", Code: "export const x=2"}
		script.ID = uuid.New()
		script.Hash = contenthash.HashScript(script.ID, script.Filename, script.Code)
		scripts := []models.Script{script}
		expectedHash := appHashFor(app, scripts)

		scriptRepository := &mocks.ScriptRepository{}
		scriptRepository.On("ListByApp", app.ID, "main").Return(scripts, nil)

		versionStorage := &mocks.VersionStorage{}
		versionStorage.On("StoreVersionCode", mock.Anything, app.ID, contenthash.VersionFromHash(expectedHash), mock.Anything).Return(nil)

		versionRepository := &mocks.VersionRepository{}
		versionRepository.On("UpsertVersion", mock.Anything, mock.Anything).Return(nil)

		appRepository := &mocks.AppRepository{}
		appRepository.On("Transaction", mock.Anything).Return(nil).Run(runTransaction)
		appRepository.On("Save", mock.Anything, &app).Return(nil)

		service := NewVersionService(appRepository, scriptRepository, versionRepository, &mocks.AppRunRepository{}, versionStorage, &mocks.RelayClient{})

		userID := uuid.New()
		version, built, err := service.BuildIfChanged(context.Background(), &app, userID)
		require.NoError(t, err)

		assert.True(t, built)
		assert.Equal(t, expectedHash, version.Hash)
		assert.Equal(t, userID, version.UserID)

		assert.Equal(t, expectedHash, app.Hash)
		assert.Equal(t, expectedHash, app.PlaygroundVersionHash)
		assert.Equal(t, contenthash.VersionFromHash(expectedHash), app.LastDeploymentVersion)

		versionStorage.AssertExpectations(t)
		appRepository.AssertExpectations(t)
	})

	t.Run("should build when the hash is unchanged but no version row exists", func(t *testing.T) {
		// a secret rotation changes the build inputs without moving the
		// content hash
		app := newApp()
		script := models.Script{Filename: "main.ts", Code: "export const x=1"}
		script.ID = uuid.New()
		script.Hash = contenthash.HashScript(script.ID, script.Filename, script.Code)
		scripts := []models.Script{script}
		app.Hash = appHashFor(app, scripts)

		scriptRepository := &mocks.ScriptRepository{}
		scriptRepository.On("ListByApp", app.ID, "main").Return(scripts, nil)

		versionRepository := &mocks.VersionRepository{}
		versionRepository.On("Read", app.ID, app.Hash).Return(models.Version{}, errors.New("not found"))
		versionRepository.On("UpsertVersion", mock.Anything, mock.Anything).Return(nil)

		versionStorage := &mocks.VersionStorage{}
		versionStorage.On("StoreVersionCode", mock.Anything, app.ID, mock.Anything, mock.Anything).Return(nil)

		appRepository := &mocks.AppRepository{}
		appRepository.On("Transaction", mock.Anything).Return(nil).Run(runTransaction)
		appRepository.On("Save", mock.Anything, &app).Return(nil)

		service := NewVersionService(appRepository, scriptRepository, versionRepository, &mocks.AppRunRepository{}, versionStorage, &mocks.RelayClient{})

		_, built, err := service.BuildIfChanged(context.Background(), &app, uuid.New())
		require.NoError(t, err)
		assert.True(t, built)
	})

	t.Run("should not touch metadata when the bundle store fails", func(t *testing.T) {
		app := newApp()
		app.Hash = "somethingelse"
		app.LastDeploymentVersion = "oldversion"

		script := models.Script{Filename: "main.ts", Code: "export const x=2"}
		script.ID = uuid.New()
		script.Hash = contenthash.HashScript(script.ID, script.Filename, script.Code)

		scriptRepository := &mocks.ScriptRepository{}
		scriptRepository.On("ListByApp", app.ID, "main").Return([]models.Script{script}, nil)

		versionStorage := &mocks.VersionStorage{}
		versionStorage.On("StoreVersionCode", mock.Anything, app.ID, mock.Anything, mock.Anything).Return(errors.New("object store down"))

		appRepository := &mocks.AppRepository{}

		service := NewVersionService(appRepository, scriptRepository, &mocks.VersionRepository{}, &mocks.AppRunRepository{}, versionStorage, &mocks.RelayClient{})

		_, _, err := service.BuildIfChanged(context.Background(), &app, uuid.New())
		require.Error(t, err)

		assert.Equal(t, "oldversion", app.LastDeploymentVersion)
		appRepository.AssertNotCalled(t, "Transaction", mock.Anything)
	})
}

func TestBoot(t *testing.T) {
	t.Run("should update the deployment version on success", func(t *testing.T) {
		app := newApp()
		app.LastDeploymentVersion = "deadbeef"

		relayClient := &mocks.RelayClient{}
		relayClient.On("Boot", mock.Anything, "my-app", "deadbeef", "").Return(dtos.BootResponse{
			OK:      true,
			Version: "deadbeef",
			Configs: map[string]any{"region": "eu"},
		}, nil)

		appRepository := &mocks.AppRepository{}
		appRepository.On("Save", mock.Anything, mock.Anything).Return(nil)

		service := NewVersionService(appRepository, &mocks.ScriptRepository{}, &mocks.VersionRepository{}, &mocks.AppRunRepository{}, &mocks.VersionStorage{}, relayClient)

		result, err := service.Boot(context.Background(), app, "")
		require.NoError(t, err)

		assert.True(t, result.OK)
		assert.Equal(t, "deadbeef", result.Version)
		assert.Equal(t, map[string]any{"region": "eu"}, result.Configs)
		appRepository.AssertExpectations(t)
	})

	t.Run("should fail on a version mismatch without touching the pointer", func(t *testing.T) {
		app := newApp()
		app.LastDeploymentVersion = "deadbeef"

		relayClient := &mocks.RelayClient{}
		relayClient.On("Boot", mock.Anything, "my-app", "deadbeef", "").Return(dtos.BootResponse{
			OK:      true,
			Version: "cafebabe",
		}, nil)

		appRepository := &mocks.AppRepository{}

		service := NewVersionService(appRepository, &mocks.ScriptRepository{}, &mocks.VersionRepository{}, &mocks.AppRunRepository{}, &mocks.VersionStorage{}, relayClient)

		result, err := service.Boot(context.Background(), app, "")
		require.NoError(t, err)

		assert.False(t, result.OK)
		appRepository.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("should report a transport failure as a normal result", func(t *testing.T) {
		app := newApp()
		app.LastDeploymentVersion = "deadbeef"

		relayClient := &mocks.RelayClient{}
		relayClient.On("Boot", mock.Anything, "my-app", "deadbeef", "").Return(dtos.BootResponse{}, errors.New("connection refused"))

		service := NewVersionService(&mocks.AppRepository{}, &mocks.ScriptRepository{}, &mocks.VersionRepository{}, &mocks.AppRunRepository{}, &mocks.VersionStorage{}, relayClient)

		result, err := service.Boot(context.Background(), app, "")
		require.NoError(t, err)
		assert.False(t, result.OK)
		assert.Contains(t, result.Error, "connection refused")
	})
}

func TestRun(t *testing.T) {
	t.Run("should run the entry script with coerced inputs and record an audit row", func(t *testing.T) {
		app := newApp()
		app.LastDeploymentVersion = "deadbeef"
		runID := uuid.New()

		script := models.Script{AppID: app.ID, Filename: "main.ts", IsRunnable: true}
		script.ID = uuid.New()

		scriptRepository := &mocks.ScriptRepository{}
		scriptRepository.On("ReadByFilename", app.ID, "main", "main.ts").Return(script, nil)

		relayClient := &mocks.RelayClient{}
		relayClient.On("Run", mock.Anything, "my-app", "deadbeef", "main.ts", runID.String(), "main", map[string]any{
			"count": float64(3),
			"name":  "zest",
		}).Return([]byte(`{"done":true}`), nil)

		var recorded *models.AppRun
		appRunRepository := &mocks.AppRunRepository{}
		appRunRepository.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*models.AppRun)
		})

		service := NewVersionService(&mocks.AppRepository{}, scriptRepository, &mocks.VersionRepository{}, appRunRepository, &mocks.VersionStorage{}, relayClient)

		result, err := service.Run(context.Background(), app, nil, map[string]string{
			"count:number": "3",
			"name":         "zest",
		}, runID, "", nil)
		require.NoError(t, err)

		assert.True(t, result.OK)
		assert.JSONEq(t, `{"done":true}`, result.Result)

		require.NotNil(t, recorded)
		assert.Equal(t, runID, recorded.RunID)
		assert.Equal(t, "deadbeef", recorded.Version)
		assert.Equal(t, "my-app@deadbeef", recorded.DeploymentID)
		assert.Equal(t, "main.ts", recorded.Path)
		assert.True(t, recorded.Success)
	})

	t.Run("should forward a plain text payload unchanged", func(t *testing.T) {
		app := newApp()
		app.LastDeploymentVersion = "deadbeef"
		runID := uuid.New()

		script := models.Script{AppID: app.ID, Filename: "main.ts", IsRunnable: true}
		script.ID = uuid.New()

		scriptRepository := &mocks.ScriptRepository{}
		scriptRepository.On("ReadByFilename", app.ID, "main", "main.ts").Return(script, nil)

		relayClient := &mocks.RelayClient{}
		relayClient.On("Run", mock.Anything, "my-app", "deadbeef", "main.ts", runID.String(), "main", mock.Anything).Return([]byte("hello, plain text"), nil)

		appRunRepository := &mocks.AppRunRepository{}
		appRunRepository.On("Create", mock.Anything, mock.Anything).Return(nil)

		service := NewVersionService(&mocks.AppRepository{}, scriptRepository, &mocks.VersionRepository{}, appRunRepository, &mocks.VersionStorage{}, relayClient)

		result, err := service.Run(context.Background(), app, nil, nil, runID, "", nil)
		require.NoError(t, err)

		assert.True(t, result.OK)
		assert.Equal(t, "hello, plain text", result.Result)

		// the result must survive the response encoding even when the
		// payload is not JSON
		encoded, err := json.Marshal(result)
		require.NoError(t, err)
		assert.Contains(t, string(encoded), "hello, plain text")
	})

	t.Run("should record a failed run and report it as a non-error result", func(t *testing.T) {
		app := newApp()
		app.LastDeploymentVersion = "deadbeef"
		runID := uuid.New()

		script := models.Script{AppID: app.ID, Filename: "main.ts", IsRunnable: true}
		script.ID = uuid.New()

		scriptRepository := &mocks.ScriptRepository{}
		scriptRepository.On("Read", script.ID).Return(script, nil)

		relayClient := &mocks.RelayClient{}
		relayClient.On("Run", mock.Anything, "my-app", "deadbeef", "main.ts", runID.String(), "main", mock.Anything).Return(nil, errors.New("timeout"))

		var recorded *models.AppRun
		appRunRepository := &mocks.AppRunRepository{}
		appRunRepository.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*models.AppRun)
		})

		service := NewVersionService(&mocks.AppRepository{}, scriptRepository, &mocks.VersionRepository{}, appRunRepository, &mocks.VersionStorage{}, relayClient)

		result, err := service.Run(context.Background(), app, &script.ID, nil, runID, "", nil)
		require.NoError(t, err)

		assert.False(t, result.OK)
		assert.Contains(t, result.Error, "timeout")
		require.NotNil(t, recorded)
		assert.False(t, recorded.Success)
	})

	t.Run("should refuse to run a script of another app", func(t *testing.T) {
		app := newApp()
		foreign := models.Script{AppID: uuid.New(), Filename: "main.ts", IsRunnable: true}
		foreign.ID = uuid.New()

		scriptRepository := &mocks.ScriptRepository{}
		scriptRepository.On("Read", foreign.ID).Return(foreign, nil)

		service := NewVersionService(&mocks.AppRepository{}, scriptRepository, &mocks.VersionRepository{}, &mocks.AppRunRepository{}, &mocks.VersionStorage{}, &mocks.RelayClient{})

		_, err := service.Run(context.Background(), app, &foreign.ID, nil, uuid.New(), "", nil)
		assert.Error(t, err)
	})
}

func TestPromote(t *testing.T) {
	t.Run("should publish the version and repoint the published hash", func(t *testing.T) {
		app := newApp()
		version := models.Version{AppID: app.ID, Hash: "deadbeefcafebabe"}

		versionRepository := &mocks.VersionRepository{}
		versionRepository.On("FindByVersion", app.ID, "deadbeef").Return(version, nil)
		versionRepository.On("Save", mock.Anything, mock.Anything).Return(nil)

		var savedApp *models.App
		appRepository := &mocks.AppRepository{}
		appRepository.On("Transaction", mock.Anything).Return(nil).Run(runTransaction)
		appRepository.On("Save", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			savedApp = args.Get(1).(*models.App)
		})

		service := NewVersionService(appRepository, &mocks.ScriptRepository{}, versionRepository, &mocks.AppRunRepository{}, &mocks.VersionStorage{}, &mocks.RelayClient{})

		promoted, err := service.Promote(app, "deadbeef")
		require.NoError(t, err)

		assert.True(t, promoted.IsPublished)
		require.NotNil(t, savedApp)
		assert.Equal(t, "deadbeefcafebabe", savedApp.PublishedVersionHash)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		app := newApp()
		app.PublishedVersionHash = "deadbeefcafebabe"
		version := models.Version{AppID: app.ID, Hash: "deadbeefcafebabe", IsPublished: true}

		versionRepository := &mocks.VersionRepository{}
		versionRepository.On("FindByVersion", app.ID, "deadbeef").Return(version, nil)

		appRepository := &mocks.AppRepository{}

		service := NewVersionService(appRepository, &mocks.ScriptRepository{}, versionRepository, &mocks.AppRunRepository{}, &mocks.VersionStorage{}, &mocks.RelayClient{})

		promoted, err := service.Promote(app, "deadbeef")
		require.NoError(t, err)

		assert.True(t, promoted.IsPublished)
		appRepository.AssertNotCalled(t, "Transaction", mock.Anything)
	})
}

func TestRestore(t *testing.T) {
	t.Run("should swap the live scripts for the historical bundle", func(t *testing.T) {
		app := newApp()
		version := models.Version{AppID: app.ID, Hash: "deadbeefcafebabe"}

		versionRepository := &mocks.VersionRepository{}
		versionRepository.On("FindByVersion", app.ID, "deadbeef").Return(version, nil)

		versionStorage := &mocks.VersionStorage{}
		versionStorage.On("GetVersionCode", mock.Anything, app.ID, version.VersionString()).Return([]models.Script{
			{Filename: "main.ts", Code: "export const x=1"},
		}, nil)

		var created []models.Script
		scriptRepository := &mocks.ScriptRepository{}
		scriptRepository.On("DeleteByApp", mock.Anything, app.ID, "main").Return(nil)
		scriptRepository.On("CreateBatch", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			created = args.Get(1).([]models.Script)
		})

		var savedApp *models.App
		appRepository := &mocks.AppRepository{}
		appRepository.On("Transaction", mock.Anything).Return(nil).Run(runTransaction)
		appRepository.On("Save", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			savedApp = args.Get(1).(*models.App)
		})

		service := NewVersionService(appRepository, scriptRepository, versionRepository, &mocks.AppRunRepository{}, versionStorage, &mocks.RelayClient{})

		err := service.Restore(context.Background(), app, "deadbeef", uuid.New())
		require.NoError(t, err)

		require.Len(t, created, 1)
		assert.Equal(t, "main.ts", created[0].Filename)
		assert.Equal(t, "export const x=1", created[0].Code)
		assert.Equal(t, app.ID, created[0].AppID)
		assert.NotEmpty(t, created[0].Hash)

		require.NotNil(t, savedApp)
		assert.Equal(t, "deadbeefcafebabe", savedApp.PlaygroundVersionHash)
	})

	t.Run("should fail without deleting anything when the bundle is missing", func(t *testing.T) {
		app := newApp()
		version := models.Version{AppID: app.ID, Hash: "deadbeefcafebabe"}

		versionRepository := &mocks.VersionRepository{}
		versionRepository.On("FindByVersion", app.ID, "deadbeef").Return(version, nil)

		versionStorage := &mocks.VersionStorage{}
		versionStorage.On("GetVersionCode", mock.Anything, app.ID, version.VersionString()).Return(nil, shared.ErrObjectNotFound)

		scriptRepository := &mocks.ScriptRepository{}

		service := NewVersionService(&mocks.AppRepository{}, scriptRepository, versionRepository, &mocks.AppRunRepository{}, versionStorage, &mocks.RelayClient{})

		err := service.Restore(context.Background(), app, "deadbeef", uuid.New())
		require.Error(t, err)
		scriptRepository.AssertNotCalled(t, "DeleteByApp", mock.Anything, mock.Anything, mock.Anything)
	})
}
