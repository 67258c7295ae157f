package repositories

import (
	"github.com/google/uuid"

	"github.com/zestdev/zest/common"
	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/shared"
)

type scheduleRepository struct {
	db shared.DB
	common.Repository[uuid.UUID, models.Schedule, shared.DB]
}

func NewScheduleRepository(db shared.DB) *scheduleRepository {
	return &scheduleRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.Schedule](db),
	}
}

func (repository *scheduleRepository) ListByApp(appID uuid.UUID) ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := repository.db.Where("app_id = ?", appID).Find(&schedules).Error
	return schedules, err
}

func (repository *scheduleRepository) ListEnabled() ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := repository.db.Where("is_disabled = ?", false).Find(&schedules).Error
	return schedules, err
}
