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
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/zestdev/zest/database/models"
	databasetypes "github.com/zestdev/zest/database/types"
	"github.com/zestdev/zest/dtos"
	"github.com/zestdev/zest/monitoring"
	"github.com/zestdev/zest/shared"
	"github.com/zestdev/zest/utils"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

type scheduleService struct {
	scheduleRepository shared.ScheduleRepository
	appRepository      shared.AppRepository
	scriptRepository   shared.ScriptRepository
	versionService     shared.VersionService
	broker             shared.PubSubBroker
}

func NewScheduleService(scheduleRepository shared.ScheduleRepository, appRepository shared.AppRepository, scriptRepository shared.ScriptRepository, versionService shared.VersionService, broker shared.PubSubBroker) *scheduleService {
	return &scheduleService{
		scheduleRepository: scheduleRepository,
		appRepository:      appRepository,
		scriptRepository:   scriptRepository,
		versionService:     versionService,
		broker:             broker,
	}
}

func (s *scheduleService) CreateSchedule(app models.App, req dtos.CreateScheduleRequest, userID uuid.UUID) (models.Schedule, error) {
	if _, err := cronParser.Parse(req.Crontab); err != nil {
		return models.Schedule{}, errors.Wrap(err, "invalid crontab expression")
	}

	if _, err := s.scriptRepository.ReadByFilename(app.ID, models.DefaultBranchName, req.Filename); err != nil {
		return models.Schedule{}, errors.Wrap(err, "could not find script for schedule")
	}

	inputs := make(databasetypes.JSONB, len(req.Inputs))
	for k, v := range req.Inputs {
		inputs[k] = v
	}

	schedule := models.Schedule{
		AppID:       app.ID,
		Filename:    req.Filename,
		Crontab:     req.Crontab,
		Inputs:      inputs,
		CreatedByID: userID,
	}
	if err := s.scheduleRepository.Save(nil, &schedule); err != nil {
		return models.Schedule{}, errors.Wrap(err, "could not create schedule")
	}
	return schedule, nil
}

func (s *scheduleService) DeleteSchedule(app models.App, scheduleID uuid.UUID) error {
	schedule, err := s.scheduleRepository.Read(scheduleID)
	if err != nil {
		return errors.Wrap(err, "could not find schedule")
	}
	if schedule.AppID != app.ID {
		return errors.New("schedule does not belong to app")
	}
	return s.scheduleRepository.Delete(nil, scheduleID)
}

func (s *scheduleService) ListSchedules(appID uuid.UUID) ([]models.Schedule, error) {
	return s.scheduleRepository.ListByApp(appID)
}

// DispatchDue publishes a queue message for every enabled schedule whose
// crontab fired since its last run. The actual run happens in the queue
// consumer, so a crashed dispatch tick loses at most one firing.
func (s *scheduleService) DispatchDue(ctx context.Context, now time.Time) error {
	schedules, err := s.scheduleRepository.ListEnabled()
	if err != nil {
		return errors.Wrap(err, "could not list schedules")
	}

	for _, schedule := range schedules {
		spec, err := cronParser.Parse(schedule.Crontab)
		if err != nil {
			monitoring.Alert(fmt.Sprintf("stored crontab of schedule %s does not parse", schedule.ID), err)
			continue
		}

		base := schedule.CreatedAt
		if schedule.LastRunAt != nil {
			base = *schedule.LastRunAt
		}
		if spec.Next(base).After(now) {
			continue
		}

		err = s.broker.Publish(ctx, shared.ScheduleDue, map[string]any{
			"scheduleId": schedule.ID.String(),
		})
		if err != nil {
			slog.Error("could not publish schedule job", "scheduleId", schedule.ID, "err", err)
			continue
		}
		monitoring.ScheduleDispatchesTotal.Inc()

		schedule.LastRunAt = utils.Ptr(now)
		if err := s.scheduleRepository.Save(nil, &schedule); err != nil {
			slog.Error("could not update schedule last run", "scheduleId", schedule.ID, "err", err)
		}
	}
	return nil
}

// HandleScheduleJob consumes one {scheduleId} queue payload and performs the
// run. Errors are returned to the consumer loop, which logs and leaves
// redelivery to the queue.
func (s *scheduleService) HandleScheduleJob(ctx context.Context, payload map[string]any) error {
	raw, ok := payload["scheduleId"].(string)
	if !ok {
		return errors.New("schedule job payload misses scheduleId")
	}
	scheduleID, err := uuid.Parse(raw)
	if err != nil {
		return errors.Wrap(err, "invalid scheduleId in job payload")
	}

	schedule, err := s.scheduleRepository.Read(scheduleID)
	if err != nil {
		return errors.Wrap(err, "could not find schedule")
	}
	if schedule.IsDisabled {
		return nil
	}

	app, err := s.appRepository.Read(schedule.AppID)
	if err != nil {
		return errors.Wrap(err, "could not find app for schedule")
	}

	script, err := s.scriptRepository.ReadByFilename(app.ID, models.DefaultBranchName, schedule.Filename)
	if err != nil {
		return errors.Wrap(err, "could not find script for schedule")
	}

	// stored input keys keep their type-annotation suffix; Run strips and
	// coerces them
	inputs := make(map[string]string, len(schedule.Inputs))
	for k, v := range schedule.Inputs {
		inputs[k] = fmt.Sprintf("%v", v)
	}

	result, err := s.versionService.Run(ctx, app, &script.ID, inputs, uuid.New(), models.DefaultBranchName, &schedule.ID)
	if err != nil {
		return errors.Wrap(err, "scheduled run failed")
	}
	if !result.OK {
		slog.Warn("scheduled run reported failure", "scheduleId", schedule.ID, "appId", app.ID, "error", result.Error)
	}
	return nil
}
