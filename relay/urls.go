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

// Package relay talks to the execution tier that boots and runs app
// versions.
package relay

import (
	"fmt"
	"net/url"
	"os"

	"github.com/zestdev/zest/database/models"
)

// LatestVersion tells the execution tier to resolve the version dynamically.
// The resolvers never dereference it themselves.
const LatestVersion = "latest"

func scheme() string {
	if os.Getenv("ZEST_ENV") == "production" {
		return "https"
	}
	return "http"
}

func host() string {
	return os.Getenv("RELAY_HOST")
}

// GetRunURL builds the execution-tier URL that runs a single script of an
// app version. Empty version and filename fall back to "latest" and the
// default entry script.
func GetRunURL(slug, version, filename string) string {
	if version == "" {
		version = LatestVersion
	}
	if filename == "" {
		filename = models.MainFilename
	}
	return fmt.Sprintf("%s://%s/run/%s/%s/%s", scheme(), host(), url.PathEscape(slug), url.PathEscape(version), url.PathEscape(filename))
}

// GetBootURL builds the execution-tier URL that boots an app version.
func GetBootURL(slug, version string) string {
	if version == "" {
		version = LatestVersion
	}
	return fmt.Sprintf("%s://%s/boot/%s/%s", scheme(), host(), url.PathEscape(slug), url.PathEscape(version))
}
