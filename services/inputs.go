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

package services

import (
	"strconv"
	"strings"
)

// CoerceInputs converts form-style string inputs into their typed values.
// Input keys may carry a type-annotation suffix ("count:number",
// "enabled:boolean") which is stripped from the resulting key. Unannotated
// keys and values that fail to parse stay strings.
func CoerceInputs(inputs map[string]string) map[string]any {
	typed := make(map[string]any, len(inputs))
	for key, value := range inputs {
		name, kind, found := strings.Cut(key, ":")
		if !found || name == "" {
			typed[key] = value
			continue
		}

		switch kind {
		case "number":
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				typed[name] = n
			} else {
				typed[name] = value
			}
		case "boolean":
			if b, err := strconv.ParseBool(value); err == nil {
				typed[name] = b
			} else {
				typed[name] = value
			}
		case "string":
			typed[name] = value
		default:
			// unknown annotation, keep the full key untouched
			typed[key] = value
		}
	}
	return typed
}
