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
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/zestdev/zest/contenthash"
	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/shared"
	"github.com/zestdev/zest/utils"
)

type secretService struct {
	secretRepository shared.SecretRepository
	appRepository    shared.AppRepository
	versionService   shared.VersionService
	versionStorage   shared.VersionStorage
	cipher           shared.SecretCipher
}

func NewSecretService(secretRepository shared.SecretRepository, appRepository shared.AppRepository, versionService shared.VersionService, versionStorage shared.VersionStorage, cipher shared.SecretCipher) *secretService {
	return &secretService{
		secretRepository: secretRepository,
		appRepository:    appRepository,
		versionService:   versionService,
		versionStorage:   versionStorage,
		cipher:           cipher,
	}
}

// SetSecret encrypts and upserts the secret value, then refreshes the app's
// secretsHash. The plaintext never touches the database.
func (s *secretService) SetSecret(ctx context.Context, app models.App, key, value string, userID uuid.UUID) (models.Secret, error) {
	encrypted, err := s.cipher.Encrypt(value)
	if err != nil {
		return models.Secret{}, errors.Wrap(err, "could not encrypt secret")
	}

	secret := models.Secret{
		AppID:          app.ID,
		Key:            key,
		EncryptedValue: encrypted,
	}
	if err := s.secretRepository.Upsert(&secret); err != nil {
		return models.Secret{}, errors.Wrap(err, "could not store secret")
	}

	if err := s.UpdateSecretsHash(ctx, app.ID, userID); err != nil {
		return models.Secret{}, err
	}
	return secret, nil
}

func (s *secretService) DeleteSecret(ctx context.Context, app models.App, key string, userID uuid.UUID) error {
	secret, err := s.secretRepository.ReadByKey(app.ID, key)
	if err != nil {
		return errors.Wrap(err, "could not find secret")
	}

	if err := s.secretRepository.Delete(nil, secret.ID); err != nil {
		return errors.Wrap(err, "could not delete secret")
	}

	return s.UpdateSecretsHash(ctx, app.ID, userID)
}

func (s *secretService) RevealSecret(app models.App, key string) (string, error) {
	secret, err := s.secretRepository.ReadByKey(app.ID, key)
	if err != nil {
		return "", errors.Wrap(err, "could not find secret")
	}
	return s.cipher.Decrypt(secret.EncryptedValue)
}

// UpdateSecretsHash recomputes the hash over the app's encrypted secret
// values and, when it moved, persists it and triggers a rebuild cycle. It
// must never be skipped after a secret mutation: a stale secretsHash would
// let a rotation silently run against an old deployed version.
func (s *secretService) UpdateSecretsHash(ctx context.Context, appID uuid.UUID, userID uuid.UUID) error {
	secrets, err := s.secretRepository.ListByApp(appID)
	if err != nil {
		return errors.Wrap(err, "could not load secrets")
	}

	newHash := contenthash.HashSecrets(utils.Map(secrets, func(secret models.Secret) contenthash.SecretHash {
		return contenthash.SecretHash{Key: secret.Key, EncryptedValue: secret.EncryptedValue}
	}))

	app, err := s.appRepository.Read(appID)
	if err != nil {
		return errors.Wrap(err, "could not load app")
	}
	if app.SecretsHash == newHash {
		return nil
	}

	app.SecretsHash = newHash
	if err := s.appRepository.Save(nil, &app); err != nil {
		return errors.Wrap(err, "could not persist secrets hash")
	}

	// the deployed version's compiled artifact bakes in the old secrets; drop
	// it so the next boot recompiles from the source bundle
	if app.LastDeploymentVersion != "" {
		if err := s.versionStorage.DeleteVersionESZip(ctx, app.ID, app.LastDeploymentVersion); err != nil {
			return errors.Wrap(err, "could not invalidate compiled artifact")
		}
	}

	_, _, err = s.versionService.BuildIfChanged(ctx, &app, userID)
	return err
}
