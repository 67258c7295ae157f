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
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/zestdev/zest/dtos"
	"github.com/zestdev/zest/shared"
)

type ScheduleController struct {
	scheduleRepository shared.ScheduleRepository
	scheduleService    shared.ScheduleService
}

func NewScheduleController(scheduleRepository shared.ScheduleRepository, scheduleService shared.ScheduleService) *ScheduleController {
	return &ScheduleController{
		scheduleRepository: scheduleRepository,
		scheduleService:    scheduleService,
	}
}

func (s *ScheduleController) List(ctx shared.Context) error {
	app := shared.GetApp(ctx)

	schedules, err := s.scheduleService.ListSchedules(app.ID)
	if err != nil {
		return echo.NewHTTPError(500, "could not list schedules").WithInternal(err)
	}
	return ctx.JSON(200, schedules)
}

func (s *ScheduleController) Create(ctx shared.Context) error {
	app := shared.GetApp(ctx)

	var req dtos.CreateScheduleRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	schedule, err := s.scheduleService.CreateSchedule(app, req, shared.GetSession(ctx).GetUserID())
	if err != nil {
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	}
	return ctx.JSON(201, schedule)
}

func (s *ScheduleController) Toggle(ctx shared.Context) error {
	app := shared.GetApp(ctx)

	scheduleID, err := uuid.Parse(ctx.Param("scheduleID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid schedule id")
	}

	schedule, err := s.scheduleRepository.Read(scheduleID)
	if err != nil || schedule.AppID != app.ID {
		return echo.NewHTTPError(404, "schedule not found")
	}

	schedule.IsDisabled = !schedule.IsDisabled
	if err := s.scheduleRepository.Save(nil, &schedule); err != nil {
		return echo.NewHTTPError(500, "could not update schedule").WithInternal(err)
	}
	return ctx.JSON(200, schedule)
}

func (s *ScheduleController) Delete(ctx shared.Context) error {
	app := shared.GetApp(ctx)

	scheduleID, err := uuid.Parse(ctx.Param("scheduleID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid schedule id")
	}

	if err := s.scheduleService.DeleteSchedule(app, scheduleID); err != nil {
		return echo.NewHTTPError(404, "schedule not found").WithInternal(err)
	}
	return ctx.NoContent(204)
}
