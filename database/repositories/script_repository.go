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

	"github.com/zestdev/zest/common"
	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/shared"
)

type scriptRepository struct {
	db shared.DB
	common.Repository[uuid.UUID, models.Script, shared.DB]
}

func NewScriptRepository(db shared.DB) *scriptRepository {
	return &scriptRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.Script](db),
	}
}

func (repository *scriptRepository) ReadByFilename(appID uuid.UUID, branchName, filename string) (models.Script, error) {
	var script models.Script
	err := repository.db.Where("app_id = ? AND branch_name = ? AND filename = ?", appID, branchName, filename).First(&script).Error
	return script, err
}

func (repository *scriptRepository) ListByApp(appID uuid.UUID, branchName string) ([]models.Script, error) {
	var scripts []models.Script
	err := repository.db.Where("app_id = ? AND branch_name = ?", appID, branchName).Find(&scripts).Error
	return scripts, err
}

func (repository *scriptRepository) DeleteByApp(tx shared.DB, appID uuid.UUID, branchName string) error {
	return repository.GetDB(tx).Where("app_id = ? AND branch_name = ?", appID, branchName).Delete(&models.Script{}).Error
}
