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
	"go.uber.org/fx"

	"github.com/zestdev/zest/shared"
)

// Module provides all repository constructors as their interfaces
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewAppRepository, fx.As(new(shared.AppRepository)))),
	fx.Provide(fx.Annotate(NewScriptRepository, fx.As(new(shared.ScriptRepository)))),
	fx.Provide(fx.Annotate(NewSecretRepository, fx.As(new(shared.SecretRepository)))),
	fx.Provide(fx.Annotate(NewVersionRepository, fx.As(new(shared.VersionRepository)))),
	fx.Provide(fx.Annotate(NewAppRunRepository, fx.As(new(shared.AppRunRepository)))),
	fx.Provide(fx.Annotate(NewScheduleRepository, fx.As(new(shared.ScheduleRepository)))),
)
