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
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zestdev/zest/database/repositories"
)

func NewVersionsCommand() *cobra.Command {
	versions := cobra.Command{
		Use:   "versions",
		Short: "Manage app versions",
	}

	versions.AddCommand(newVersionsListCommand())
	versions.AddCommand(newVersionsBuildCommand())
	versions.AddCommand(newVersionsPromoteCommand())
	return &versions
}

func newVersionsListCommand() *cobra.Command {
	list := cobra.Command{
		Use:   "list <appSlug>",
		Short: "List the versions of an app",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			db, err := connectDatabase()
			if err != nil {
				slog.Error("could not connect to database", "err", err)
				return
			}

			app, err := repositories.NewAppRepository(db).ReadBySlug(args[0])
			if err != nil {
				slog.Error("could not find app", "slug", args[0], "err", err)
				return
			}

			versionService, err := newVersionService(db)
			if err != nil {
				slog.Error("could not setup services", "err", err)
				return
			}

			versions, err := versionService.ListVersions(app.ID)
			if err != nil {
				slog.Error("could not fetch versions", "err", err)
				return
			}

			for _, version := range versions {
				published := ""
				if version.IsPublished {
					published = "published"
				}
				fmt.Printf("%s\t%s\t%s\n", version.VersionString(), version.CreatedAt.Format("2006-01-02 15:04:05"), published)
			}
		},
	}

	return &list
}

func newVersionsBuildCommand() *cobra.Command {
	build := cobra.Command{
		Use:   "build <appSlug>",
		Short: "Build a new version if the app content changed",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			userFlag, _ := cmd.Flags().GetString("user")
			userID, err := uuid.Parse(userFlag)
			if err != nil {
				slog.Error("invalid user id", "err", err)
				return
			}

			db, err := connectDatabase()
			if err != nil {
				slog.Error("could not connect to database", "err", err)
				return
			}

			app, err := repositories.NewAppRepository(db).ReadBySlug(args[0])
			if err != nil {
				slog.Error("could not find app", "slug", args[0], "err", err)
				return
			}

			versionService, err := newVersionService(db)
			if err != nil {
				slog.Error("could not setup services", "err", err)
				return
			}

			version, built, err := versionService.BuildIfChanged(cmd.Context(), &app, userID)
			if err != nil {
				slog.Error("could not build version", "err", err)
				return
			}

			if built {
				slog.Info("version built", "version", version.VersionString())
			} else {
				slog.Info("app unchanged", "version", version.VersionString())
			}
		},
	}

	build.Flags().String("user", "", "id of the user the build is attributed to")

	return &build
}

func newVersionsPromoteCommand() *cobra.Command {
	promote := cobra.Command{
		Use:   "promote <appSlug> <version>",
		Short: "Mark a version as the published one",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			db, err := connectDatabase()
			if err != nil {
				slog.Error("could not connect to database", "err", err)
				return
			}

			app, err := repositories.NewAppRepository(db).ReadBySlug(args[0])
			if err != nil {
				slog.Error("could not find app", "slug", args[0], "err", err)
				return
			}

			versionService, err := newVersionService(db)
			if err != nil {
				slog.Error("could not setup services", "err", err)
				return
			}

			version, err := versionService.Promote(app, args[1])
			if err != nil {
				slog.Error("could not promote version", "err", err)
				return
			}

			slog.Info("version promoted", "version", version.VersionString())
		},
	}

	return &promote
}
