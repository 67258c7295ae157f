package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/shared"
)

type inMemoryStore struct {
	objects map[string][]byte
}

func newInMemoryStore() *inMemoryStore {
	return &inMemoryStore{objects: map[string][]byte{}}
}

func (s *inMemoryStore) PutObject(ctx context.Context, key string, data []byte) error {
	s.objects[key] = data
	return nil
}

func (s *inMemoryStore) DeleteObject(ctx context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *inMemoryStore) GetObject(ctx context.Context, key string) ([]byte, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, shared.ErrObjectNotFound
	}
	return data, nil
}

func TestVersionStorage(t *testing.T) {
	appID := uuid.New()

	t.Run("should store and retrieve a version bundle", func(t *testing.T) {
		store := newInMemoryStore()
		vs := NewVersionStorage(store)

		bundle, err := PackScripts([]models.Script{
			{Filename: "main.ts", Code: "export default () => 1", Hash: "a"},
		})
		require.NoError(t, err)

		err = vs.StoreVersionCode(context.Background(), appID, "deadbeef", bundle)
		require.NoError(t, err)

		scripts, err := vs.GetVersionCode(context.Background(), appID, "deadbeef")
		require.NoError(t, err)
		require.Len(t, scripts, 1)
		assert.Equal(t, "main.ts", scripts[0].Filename)
	})

	t.Run("should return ErrObjectNotFound for an unknown version", func(t *testing.T) {
		vs := NewVersionStorage(newInMemoryStore())

		_, err := vs.GetVersionCode(context.Background(), appID, "deadbeef")
		assert.ErrorIs(t, err, shared.ErrObjectNotFound)
	})

	t.Run("should treat a rewrite with identical content as a no-op", func(t *testing.T) {
		store := newInMemoryStore()
		vs := NewVersionStorage(store)

		err := vs.StoreVersionCode(context.Background(), appID, "deadbeef", []byte("bundle"))
		require.NoError(t, err)

		err = vs.StoreVersionCode(context.Background(), appID, "deadbeef", []byte("bundle"))
		assert.NoError(t, err)
	})

	t.Run("should refuse to overwrite a version with different content", func(t *testing.T) {
		store := newInMemoryStore()
		vs := NewVersionStorage(store)

		err := vs.StoreVersionCode(context.Background(), appID, "deadbeef", []byte("bundle"))
		require.NoError(t, err)

		err = vs.StoreVersionCode(context.Background(), appID, "deadbeef", []byte("other"))
		require.Error(t, err)

		// the original bytes stay untouched
		data, err := store.GetObject(context.Background(), bundleKey(appID, "deadbeef"))
		require.NoError(t, err)
		assert.Equal(t, []byte("bundle"), data)
	})

	t.Run("should allow rewriting the compiled artifact", func(t *testing.T) {
		store := newInMemoryStore()
		vs := NewVersionStorage(store)

		require.NoError(t, vs.StoreVersionESZip(context.Background(), appID, "deadbeef", []byte("v1")))
		require.NoError(t, vs.StoreVersionESZip(context.Background(), appID, "deadbeef", []byte("v2")))

		data, err := vs.GetVersionESZip(context.Background(), appID, "deadbeef")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), data)
	})

	t.Run("should delete the compiled artifact but keep the source bundle", func(t *testing.T) {
		store := newInMemoryStore()
		vs := NewVersionStorage(store)

		require.NoError(t, vs.StoreVersionCode(context.Background(), appID, "deadbeef", []byte("bundle")))
		require.NoError(t, vs.StoreVersionESZip(context.Background(), appID, "deadbeef", []byte("compiled")))

		require.NoError(t, vs.DeleteVersionESZip(context.Background(), appID, "deadbeef"))

		_, err := vs.GetVersionESZip(context.Background(), appID, "deadbeef")
		assert.ErrorIs(t, err, shared.ErrObjectNotFound)

		_, err = store.GetObject(context.Background(), bundleKey(appID, "deadbeef"))
		assert.NoError(t, err)
	})

	t.Run("should tolerate deleting an absent artifact", func(t *testing.T) {
		vs := NewVersionStorage(newInMemoryStore())
		assert.NoError(t, vs.DeleteVersionESZip(context.Background(), appID, "deadbeef"))
	})
}
