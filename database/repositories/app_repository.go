// Copyright (C) 2023 Tim Bastin, l3montree GmbH
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

type appRepository struct {
	db shared.DB
	common.Repository[uuid.UUID, models.App, shared.DB]
}

func NewAppRepository(db shared.DB) *appRepository {
	return &appRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.App](db),
	}
}

func (repository *appRepository) ReadBySlug(slug string) (models.App, error) {
	var app models.App
	err := repository.db.Where("slug = ?", slug).First(&app).Error
	return app, err
}

// SlugExists reports whether any app already uses the given slug. Used to
// derive a unique slug on app creation.
func (repository *appRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := repository.db.Model(&models.App{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
