package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/dtos"
	"github.com/zestdev/zest/mocks"
)

func TestCreateApp(t *testing.T) {
	t.Run("should create the app with a default entry script and build the first version", func(t *testing.T) {
		userID := uuid.New()

		appRepository := &mocks.AppRepository{}
		appRepository.On("SlugExists", "my-app").Return(false, nil)
		appRepository.On("Transaction", mock.Anything).Return(nil).Run(runTransaction)
		appRepository.On("Save", mock.Anything, mock.Anything).Return(nil)

		var createdScript *models.Script
		scriptRepository := &mocks.ScriptRepository{}
		scriptRepository.On("Save", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			createdScript = args.Get(1).(*models.Script)
		})

		versionService := &mocks.VersionService{}
		versionService.On("BuildIfChanged", mock.Anything, mock.Anything, userID).Return(models.Version{}, true, nil)

		service := NewAppService(appRepository, scriptRepository, versionService)

		app, err := service.CreateApp(context.Background(), dtos.CreateAppRequest{Name: "My App"}, userID)
		require.NoError(t, err)

		assert.Equal(t, "my-app", app.Slug)
		assert.Equal(t, userID, app.CreatedByID)

		require.NotNil(t, createdScript)
		assert.Equal(t, "main.ts", createdScript.Filename)
		assert.True(t, createdScript.IsRunnable)
		assert.NotEmpty(t, createdScript.Hash)

		versionService.AssertExpectations(t)
	})

	t.Run("should suffix the slug on collision", func(t *testing.T) {
		appRepository := &mocks.AppRepository{}
		appRepository.On("SlugExists", "my-app").Return(true, nil)
		appRepository.On("SlugExists", "my-app-1").Return(true, nil)
		appRepository.On("SlugExists", "my-app-2").Return(false, nil)
		appRepository.On("Transaction", mock.Anything).Return(nil).Run(runTransaction)
		appRepository.On("Save", mock.Anything, mock.Anything).Return(nil)

		scriptRepository := &mocks.ScriptRepository{}
		scriptRepository.On("Save", mock.Anything, mock.Anything).Return(nil)

		versionService := &mocks.VersionService{}
		versionService.On("BuildIfChanged", mock.Anything, mock.Anything, mock.Anything).Return(models.Version{}, true, nil)

		service := NewAppService(appRepository, scriptRepository, versionService)

		app, err := service.CreateApp(context.Background(), dtos.CreateAppRequest{Name: "My App"}, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, "my-app-2", app.Slug)
	})
}

func TestForkApp(t *testing.T) {
	t.Run("should clone the script set with fresh ids and hashes", func(t *testing.T) {
		source := newApp()
		userID := uuid.New()

		script := models.Script{AppID: source.ID, Filename: "main.ts", Code: "export const x=1", IsRunnable: true}
		script.ID = uuid.New()
		originalID := script.ID

		scriptRepository := &mocks.ScriptRepository{}
		scriptRepository.On("ListByApp", source.ID, "main").Return([]models.Script{script}, nil)

		var cloned []models.Script
		scriptRepository.On("CreateBatch", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			cloned = args.Get(1).([]models.Script)
		})

		appRepository := &mocks.AppRepository{}
		appRepository.On("SlugExists", "my-fork").Return(false, nil)
		appRepository.On("Transaction", mock.Anything).Return(nil).Run(runTransaction)
		appRepository.On("Save", mock.Anything, mock.Anything).Return(nil)

		versionService := &mocks.VersionService{}
		versionService.On("BuildIfChanged", mock.Anything, mock.Anything, userID).Return(models.Version{}, true, nil)

		service := NewAppService(appRepository, scriptRepository, versionService)

		fork, err := service.ForkApp(context.Background(), source, "My Fork", userID)
		require.NoError(t, err)

		assert.Equal(t, "my-fork", fork.Slug)
		assert.Equal(t, userID, fork.CreatedByID)

		require.Len(t, cloned, 1)
		assert.NotEqual(t, originalID, cloned[0].ID)
		assert.Equal(t, "export const x=1", cloned[0].Code)
	})
}
