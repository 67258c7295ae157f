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

package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/monitoring"
	"github.com/zestdev/zest/shared"
)

type versionStorage struct {
	store shared.ObjectStorage
}

func NewVersionStorage(store shared.ObjectStorage) *versionStorage {
	return &versionStorage{
		store: store,
	}
}

func bundleKey(appID uuid.UUID, version string) string {
	return fmt.Sprintf("%s/%s.zip", appID, version)
}

func eszipKey(appID uuid.UUID, version string) string {
	return fmt.Sprintf("%s/%s", appID, version)
}

// putImmutable writes the object only if the key is vacant. A version key is
// derived from the content hash, so an existing key holding different bytes
// means two distinct code states collided on one version string. That must
// never happen; it is alerted and refused.
func (s *versionStorage) putImmutable(ctx context.Context, key string, data []byte) error {
	existing, err := s.store.GetObject(ctx, key)
	if err != nil {
		if errors.Is(err, shared.ErrObjectNotFound) {
			return s.store.PutObject(ctx, key, data)
		}
		return err
	}

	if !bytes.Equal(existing, data) {
		err := fmt.Errorf("refusing to overwrite %s with different content", key)
		monitoring.Alert("version storage consistency violation", err)
		return err
	}
	// identical content, nothing to do
	return nil
}

func (s *versionStorage) StoreVersionCode(ctx context.Context, appID uuid.UUID, version string, zipData []byte) error {
	return s.putImmutable(ctx, bundleKey(appID, version), zipData)
}

func (s *versionStorage) GetVersionCode(ctx context.Context, appID uuid.UUID, version string) ([]models.Script, error) {
	data, err := s.store.GetObject(ctx, bundleKey(appID, version))
	if err != nil {
		return nil, err
	}
	return UnpackScripts(data)
}

// StoreVersionESZip stores the compiled artifact. Unlike the source bundle the
// eszip may legitimately be rebuilt for the same version (secret rotation
// refreshes it), so the key is overwritten in place.
func (s *versionStorage) StoreVersionESZip(ctx context.Context, appID uuid.UUID, version string, eszip []byte) error {
	return s.store.PutObject(ctx, eszipKey(appID, version), eszip)
}

func (s *versionStorage) GetVersionESZip(ctx context.Context, appID uuid.UUID, version string) ([]byte, error) {
	return s.store.GetObject(ctx, eszipKey(appID, version))
}

// DeleteVersionESZip drops the compiled artifact so the next boot misses the
// cache and the execution tier recompiles from the source bundle. Deleting an
// absent key is fine.
func (s *versionStorage) DeleteVersionESZip(ctx context.Context, appID uuid.UUID, version string) error {
	return s.store.DeleteObject(ctx, eszipKey(appID, version))
}
