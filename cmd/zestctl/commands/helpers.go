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

package commands

import (
	"github.com/pkg/errors"

	"github.com/zestdev/zest/database"
	"github.com/zestdev/zest/database/repositories"
	"github.com/zestdev/zest/relay"
	"github.com/zestdev/zest/services"
	"github.com/zestdev/zest/shared"
	"github.com/zestdev/zest/storage"
)

func connectDatabase() (shared.DB, error) {
	shared.LoadConfig() // nolint
	_, db, err := database.Factory()
	if err != nil {
		return nil, errors.Wrap(err, "could not connect to database")
	}
	return db, nil
}

// newVersionService hand-wires the same dependency graph the server builds
// through fx. Cli commands run one operation and exit, so there is no
// lifecycle to manage.
func newVersionService(db shared.DB) (shared.VersionService, error) {
	objectStorage, err := storage.NewObjectStorage()
	if err != nil {
		return nil, errors.Wrap(err, "could not connect to object storage")
	}

	return services.NewVersionService(
		repositories.NewAppRepository(db),
		repositories.NewScriptRepository(db),
		repositories.NewVersionRepository(db),
		repositories.NewAppRunRepository(db),
		storage.NewVersionStorage(objectStorage),
		relay.NewClient(),
	), nil
}
