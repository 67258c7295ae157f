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
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zestdev/zest/contenthash"
	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/shared"
)

type versionRepository struct {
	db shared.DB
}

func NewVersionRepository(db shared.DB) *versionRepository {
	return &versionRepository{
		db: db,
	}
}

func (repository *versionRepository) getDB(tx shared.DB) shared.DB {
	if tx != nil {
		return tx
	}
	return repository.db
}

func (repository *versionRepository) Read(appID uuid.UUID, hash string) (models.Version, error) {
	var version models.Version
	err := repository.db.Where("app_id = ? AND hash = ?", appID, hash).First(&version).Error
	return version, err
}

// FindByVersion resolves a short version string against the stored full
// hashes with a starts-with match. The prefix is the version derivation
// contract, not an approximation; see contenthash.VersionFromHash. The input
// is caller-supplied and feeds a LIKE pattern, so anything that is not a
// well-formed version string is rejected before it can act as a wildcard.
func (repository *versionRepository) FindByVersion(appID uuid.UUID, version string) (models.Version, error) {
	if !contenthash.ValidVersion(version) {
		return models.Version{}, gorm.ErrRecordNotFound
	}
	var row models.Version
	err := repository.db.Where("app_id = ? AND hash LIKE ?", appID, version+"%").First(&row).Error
	return row, err
}

func (repository *versionRepository) ListByApp(appID uuid.UUID) ([]models.Version, error) {
	var versions []models.Version
	err := repository.db.Where("app_id = ?", appID).Order("created_at DESC").Find(&versions).Error
	return versions, err
}

// UpsertVersion is idempotent on the (app_id, hash) composite key. Two
// concurrent builds that land on the same content hash both succeed and
// leave exactly one row behind.
func (repository *versionRepository) UpsertVersion(tx shared.DB, version *models.Version) error {
	return repository.getDB(tx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "app_id"}, {Name: "hash"}},
		DoNothing: true,
	}).Create(version).Error
}

func (repository *versionRepository) Save(tx shared.DB, version *models.Version) error {
	return repository.getDB(tx).Save(version).Error
}

func (repository *versionRepository) Transaction(f func(tx *gorm.DB) error) error {
	tx := repository.db.Begin()
	err := f(tx)
	if err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
