// Copyright (C) 2024 Tim Bastin, l3montree GmbH
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
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/zestdev/zest/common"
	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/shared"
)

type secretRepository struct {
	db shared.DB
	common.Repository[uuid.UUID, models.Secret, shared.DB]
}

func NewSecretRepository(db shared.DB) *secretRepository {
	return &secretRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.Secret](db),
	}
}

func (repository *secretRepository) ReadByKey(appID uuid.UUID, key string) (models.Secret, error) {
	var secret models.Secret
	err := repository.db.Where("app_id = ? AND key = ?", appID, key).First(&secret).Error
	return secret, err
}

// ListByApp returns the secrets ordered by key so the secrets hash is
// computed over a stable sequence.
func (repository *secretRepository) ListByApp(appID uuid.UUID) ([]models.Secret, error) {
	var secrets []models.Secret
	err := repository.db.Where("app_id = ?", appID).Order("key ASC").Find(&secrets).Error
	return secrets, err
}

func (repository *secretRepository) Upsert(secret *models.Secret) error {
	return repository.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "app_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"encrypted_value", "updated_at"}),
	}).Create(secret).Error
}
