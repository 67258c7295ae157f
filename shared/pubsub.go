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
package shared

import "context"

type PubSubChannel string

const (
	// ScheduleDue carries {scheduleId} payloads for cron-triggered runs.
	ScheduleDue PubSubChannel = "scheduleDue"
)

// PubSubBroker is the process-spanning queue. Payloads are small JSON
// objects; anything heavy belongs in the database, referenced by id.
type PubSubBroker interface {
	Publish(ctx context.Context, channel PubSubChannel, payload map[string]any) error
	Subscribe(channel PubSubChannel) (<-chan map[string]any, error)
}
