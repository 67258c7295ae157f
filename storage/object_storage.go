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
	"io"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"github.com/zestdev/zest/shared"
)

type minioStorage struct {
	client *minio.Client
	bucket string
}

// NewObjectStorage connects to the S3-compatible object store configured via
// OBJECT_STORE_ENDPOINT, OBJECT_STORE_ACCESS_KEY, OBJECT_STORE_SECRET_KEY,
// OBJECT_STORE_BUCKET and OBJECT_STORE_USE_SSL.
func NewObjectStorage() (shared.ObjectStorage, error) {
	endpoint := os.Getenv("OBJECT_STORE_ENDPOINT")
	bucket := os.Getenv("OBJECT_STORE_BUCKET")
	if endpoint == "" || bucket == "" {
		return nil, errors.New("OBJECT_STORE_ENDPOINT and OBJECT_STORE_BUCKET must be set")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("OBJECT_STORE_ACCESS_KEY"), os.Getenv("OBJECT_STORE_SECRET_KEY"), ""),
		Secure: os.Getenv("OBJECT_STORE_USE_SSL") == "true",
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create object store client")
	}

	return &minioStorage{
		client: client,
		bucket: bucket,
	}, nil
}

func (s *minioStorage) PutObject(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return errors.Wrapf(err, "could not store object %s", key)
	}
	return nil
}

func (s *minioStorage) DeleteObject(ctx context.Context, key string) error {
	// RemoveObject does not fail on a missing key
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrapf(err, "could not delete object %s", key)
	}
	return nil
}

func (s *minioStorage) GetObject(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "could not fetch object %s", key)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		// minio defers the key lookup until the first read
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, shared.ErrObjectNotFound
		}
		return nil, errors.Wrapf(err, "could not read object %s", key)
	}
	return data, nil
}
