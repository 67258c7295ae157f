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

package controllers

import (
	"github.com/labstack/echo/v4"

	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/dtos"
	"github.com/zestdev/zest/shared"
	"github.com/zestdev/zest/utils"
)

type SecretController struct {
	secretRepository shared.SecretRepository
	secretService    shared.SecretService
}

func NewSecretController(secretRepository shared.SecretRepository, secretService shared.SecretService) *SecretController {
	return &SecretController{
		secretRepository: secretRepository,
		secretService:    secretService,
	}
}

// List returns the secret keys only. The values never leave the service
// except through the explicit reveal endpoint.
func (s *SecretController) List(ctx shared.Context) error {
	app := shared.GetApp(ctx)

	secrets, err := s.secretRepository.ListByApp(app.ID)
	if err != nil {
		return echo.NewHTTPError(500, "could not list secrets").WithInternal(err)
	}

	return ctx.JSON(200, utils.Map(secrets, func(secret models.Secret) string {
		return secret.Key
	}))
}

func (s *SecretController) Set(ctx shared.Context) error {
	app := shared.GetApp(ctx)

	var req dtos.SetSecretRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	if _, err := s.secretService.SetSecret(ctx.Request().Context(), app, req.Key, req.Value, shared.GetSession(ctx).GetUserID()); err != nil {
		return echo.NewHTTPError(500, "could not store secret").WithInternal(err)
	}
	return ctx.NoContent(201)
}

func (s *SecretController) Reveal(ctx shared.Context) error {
	app := shared.GetApp(ctx)
	key := ctx.Param("key")

	value, err := s.secretService.RevealSecret(app, key)
	if err != nil {
		return echo.NewHTTPError(404, "secret not found").WithInternal(err)
	}
	return ctx.JSON(200, map[string]string{"key": key, "value": value})
}

func (s *SecretController) Delete(ctx shared.Context) error {
	app := shared.GetApp(ctx)
	key := ctx.Param("key")

	if err := s.secretService.DeleteSecret(ctx.Request().Context(), app, key, shared.GetSession(ctx).GetUserID()); err != nil {
		return echo.NewHTTPError(404, "secret not found").WithInternal(err)
	}
	return ctx.NoContent(204)
}
