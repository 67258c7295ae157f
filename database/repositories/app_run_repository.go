package repositories

import (
	"github.com/google/uuid"

	"github.com/zestdev/zest/common"
	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/shared"
)

type appRunRepository struct {
	db shared.DB
	common.Repository[uuid.UUID, models.AppRun, shared.DB]
}

func NewAppRunRepository(db shared.DB) *appRunRepository {
	return &appRunRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.AppRun](db),
	}
}

func (repository *appRunRepository) ListByApp(appID uuid.UUID, limit, offset int) ([]models.AppRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	var runs []models.AppRun
	err := repository.db.Where("app_id = ?", appID).Order("created_at DESC").Limit(limit).Offset(offset).Find(&runs).Error
	return runs, err
}
