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

package dtos

import (
	"time"

	"github.com/google/uuid"
)

// BootResponse is the raw response of the execution tier's boot endpoint.
type BootResponse struct {
	OK      bool           `json:"ok"`
	Version string         `json:"version"`
	Configs map[string]any `json:"configs"`
}

// BootResult is what callers of the boot operation receive. A failed boot is
// a normal result, not an error.
type BootResult struct {
	OK      bool           `json:"ok"`
	Version string         `json:"version,omitempty"`
	Configs map[string]any `json:"configs,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// RunResult is what callers of the run operation receive. The execution
// tier's payload is forwarded verbatim in Result; it may be JSON or plain
// text, so it is carried as a string rather than pre-parsed.
type RunResult struct {
	OK      bool   `json:"ok"`
	Version string `json:"version,omitempty"`
	RunID   string `json:"runId,omitempty"`
	Result  string `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

type VersionDTO struct {
	Version     string    `json:"version"`
	Hash        string    `json:"hash"`
	IsPublished bool      `json:"isPublished"`
	UserID      uuid.UUID `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type BuildResult struct {
	Version string `json:"version"`
	Hash    string `json:"hash"`
	// Built is false when the content hash was unchanged and no new version
	// had to be created.
	Built bool `json:"built"`
}
