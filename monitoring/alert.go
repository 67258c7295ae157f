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

package monitoring

import (
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
)

// Alert reports an error that needs human attention. The event goes to error
// tracking when a DSN is configured and is always mirrored to the log; the
// caller decides whether the operation also fails.
func Alert(message string, err error) {
	eventID := sentry.CurrentHub().CaptureException(errors.Wrap(err, message))
	slog.Error(message, "err", err, "eventId", eventID)
}

// RecoverAndAlert is Alert for recovered panics, so the error tracker keeps
// the panic stack trace.
func RecoverAndAlert(message string, err error) {
	eventID := sentry.CurrentHub().Recover(err)
	slog.Error(message, "err", err, "eventId", eventID)
}
