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

	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/database/repositories"
	"github.com/zestdev/zest/dtos"
	"github.com/zestdev/zest/services"
)

func NewAppsCommand() *cobra.Command {
	apps := cobra.Command{
		Use:   "apps",
		Short: "Manage apps",
	}

	apps.AddCommand(newAppsListCommand())
	apps.AddCommand(newAppsCreateCommand())
	return &apps
}

func newAppsListCommand() *cobra.Command {
	list := cobra.Command{
		Use:   "list",
		Short: "List all apps",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			db, err := connectDatabase()
			if err != nil {
				slog.Error("could not connect to database", "err", err)
				return
			}

			appRepository := repositories.NewAppRepository(db)

			var apps []models.App
			err = appRepository.GetDB(nil).Model(&models.App{}).Order("created_at ASC").Find(&apps).Error
			if err != nil {
				slog.Error("could not fetch apps", "err", err)
				return
			}

			for _, app := range apps {
				fmt.Printf("%s\t%s\t%s\n", app.ID, app.Slug, app.LastDeploymentVersion)
			}
		},
	}

	return &list
}

func newAppsCreateCommand() *cobra.Command {
	create := cobra.Command{
		Use:   "create <name>",
		Short: "Create a new app with its default entry script",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			userFlag, _ := cmd.Flags().GetString("user")
			userID, err := uuid.Parse(userFlag)
			if err != nil {
				slog.Error("invalid user id", "err", err)
				return
			}
			description, _ := cmd.Flags().GetString("description")
			private, _ := cmd.Flags().GetBool("private")

			db, err := connectDatabase()
			if err != nil {
				slog.Error("could not connect to database", "err", err)
				return
			}

			versionService, err := newVersionService(db)
			if err != nil {
				slog.Error("could not setup services", "err", err)
				return
			}

			appService := services.NewAppService(
				repositories.NewAppRepository(db),
				repositories.NewScriptRepository(db),
				versionService,
			)

			app, err := appService.CreateApp(cmd.Context(), dtos.CreateAppRequest{
				Name:        args[0],
				Description: description,
				IsPrivate:   private,
			}, userID)
			if err != nil {
				slog.Error("could not create app", "err", err)
				return
			}

			slog.Info("app created", "slug", app.Slug, "id", app.ID, "version", app.LastDeploymentVersion)
		},
	}

	create.Flags().String("user", "", "id of the user the app belongs to")
	create.Flags().String("description", "", "app description")
	create.Flags().Bool("private", false, "make the app private")

	return &create
}
