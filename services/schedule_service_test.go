package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zestdev/zest/database/models"
	databasetypes "github.com/zestdev/zest/database/types"
	"github.com/zestdev/zest/dtos"
	"github.com/zestdev/zest/mocks"
	"github.com/zestdev/zest/shared"
	"github.com/zestdev/zest/utils"
)

func TestCreateSchedule(t *testing.T) {
	t.Run("should reject an invalid crontab", func(t *testing.T) {
		app := newApp()

		service := NewScheduleService(&mocks.ScheduleRepository{}, &mocks.AppRepository{}, &mocks.ScriptRepository{}, &mocks.VersionService{}, &mocks.PubSubBroker{})

		_, err := service.CreateSchedule(app, dtos.CreateScheduleRequest{
			Filename: "main.ts",
			Crontab:  "not a crontab",
		}, uuid.New())
		assert.Error(t, err)
	})

	t.Run("should store the schedule with its annotated inputs", func(t *testing.T) {
		app := newApp()

		script := models.Script{AppID: app.ID, Filename: "main.ts"}
		script.ID = uuid.New()

		scriptRepository := &mocks.ScriptRepository{}
		scriptRepository.On("ReadByFilename", app.ID, "main", "main.ts").Return(script, nil)

		scheduleRepository := &mocks.ScheduleRepository{}
		scheduleRepository.On("Save", mock.Anything, mock.Anything).Return(nil)

		service := NewScheduleService(scheduleRepository, &mocks.AppRepository{}, scriptRepository, &mocks.VersionService{}, &mocks.PubSubBroker{})

		schedule, err := service.CreateSchedule(app, dtos.CreateScheduleRequest{
			Filename: "main.ts",
			Crontab:  "*/5 * * * *",
			Inputs:   map[string]string{"count:number": "3"},
		}, uuid.New())
		require.NoError(t, err)

		assert.Equal(t, "*/5 * * * *", schedule.Crontab)
		assert.Equal(t, databasetypes.JSONB{"count:number": "3"}, schedule.Inputs)
	})
}

func TestDispatchDue(t *testing.T) {
	t.Run("should publish a job for a due schedule and bump lastRunAt", func(t *testing.T) {
		now := time.Now()

		schedule := models.Schedule{
			AppID:     uuid.New(),
			Filename:  "main.ts",
			Crontab:   "*/5 * * * *",
			LastRunAt: utils.Ptr(now.Add(-10 * time.Minute)),
		}
		schedule.ID = uuid.New()

		scheduleRepository := &mocks.ScheduleRepository{}
		scheduleRepository.On("ListEnabled").Return([]models.Schedule{schedule}, nil)
		scheduleRepository.On("Save", mock.Anything, mock.Anything).Return(nil)

		var published map[string]any
		broker := &mocks.PubSubBroker{}
		broker.On("Publish", mock.Anything, shared.ScheduleDue, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			published = args.Get(2).(map[string]any)
		})

		service := NewScheduleService(scheduleRepository, &mocks.AppRepository{}, &mocks.ScriptRepository{}, &mocks.VersionService{}, broker)

		err := service.DispatchDue(context.Background(), now)
		require.NoError(t, err)

		require.NotNil(t, published)
		assert.Equal(t, schedule.ID.String(), published["scheduleId"])
	})

	t.Run("should skip a schedule that is not due yet", func(t *testing.T) {
		now := time.Now()

		schedule := models.Schedule{
			Crontab:   "0 0 1 1 *",
			LastRunAt: utils.Ptr(now.Add(-time.Minute)),
		}
		schedule.ID = uuid.New()

		scheduleRepository := &mocks.ScheduleRepository{}
		scheduleRepository.On("ListEnabled").Return([]models.Schedule{schedule}, nil)

		broker := &mocks.PubSubBroker{}

		service := NewScheduleService(scheduleRepository, &mocks.AppRepository{}, &mocks.ScriptRepository{}, &mocks.VersionService{}, broker)

		err := service.DispatchDue(context.Background(), now)
		require.NoError(t, err)
		broker.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestHandleScheduleJob(t *testing.T) {
	t.Run("should run the scheduled script with the stored inputs", func(t *testing.T) {
		app := newApp()

		schedule := models.Schedule{
			AppID:    app.ID,
			Filename: "report.ts",
			Inputs:   databasetypes.JSONB{"count:number": "3"},
		}
		schedule.ID = uuid.New()

		script := models.Script{AppID: app.ID, Filename: "report.ts", IsRunnable: true}
		script.ID = uuid.New()

		scheduleRepository := &mocks.ScheduleRepository{}
		scheduleRepository.On("Read", schedule.ID).Return(schedule, nil)

		appRepository := &mocks.AppRepository{}
		appRepository.On("Read", app.ID).Return(app, nil)

		scriptRepository := &mocks.ScriptRepository{}
		scriptRepository.On("ReadByFilename", app.ID, "main", "report.ts").Return(script, nil)

		versionService := &mocks.VersionService{}
		versionService.On("Run", mock.Anything, app, &script.ID, map[string]string{"count:number": "3"}, mock.Anything, "main", &schedule.ID).Return(dtos.RunResult{OK: true}, nil)

		service := NewScheduleService(scheduleRepository, appRepository, scriptRepository, versionService, &mocks.PubSubBroker{})

		err := service.HandleScheduleJob(context.Background(), map[string]any{
			"scheduleId": schedule.ID.String(),
		})
		require.NoError(t, err)
		versionService.AssertExpectations(t)
	})

	t.Run("should ignore a disabled schedule", func(t *testing.T) {
		schedule := models.Schedule{IsDisabled: true}
		schedule.ID = uuid.New()

		scheduleRepository := &mocks.ScheduleRepository{}
		scheduleRepository.On("Read", schedule.ID).Return(schedule, nil)

		versionService := &mocks.VersionService{}

		service := NewScheduleService(scheduleRepository, &mocks.AppRepository{}, &mocks.ScriptRepository{}, versionService, &mocks.PubSubBroker{})

		err := service.HandleScheduleJob(context.Background(), map[string]any{
			"scheduleId": schedule.ID.String(),
		})
		require.NoError(t, err)
		versionService.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should reject a payload without a schedule id", func(t *testing.T) {
		service := NewScheduleService(&mocks.ScheduleRepository{}, &mocks.AppRepository{}, &mocks.ScriptRepository{}, &mocks.VersionService{}, &mocks.PubSubBroker{})

		err := service.HandleScheduleJob(context.Background(), map[string]any{})
		assert.Error(t, err)
	})
}
