package storage

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zestdev/zest/database/models"
	"github.com/zestdev/zest/utils"
)

func TestPackUnpackScripts(t *testing.T) {
	t.Run("should round-trip a script set", func(t *testing.T) {
		scripts := []models.Script{
			{
				Filename:   "main.ts",
				Code:       "export default () => 42",
				Hash:       "abc",
				IsRunnable: true,
			},
			{
				Filename:    "helpers.ts",
				Code:        "export const helper = 1",
				Hash:        "def",
				ConnectorID: utils.Ptr("postgres"),
			},
		}

		data, err := PackScripts(scripts)
		require.NoError(t, err)

		got, err := UnpackScripts(data)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "main.ts", got[0].Filename)
		assert.Equal(t, "export default () => 42", got[0].Code)
		assert.Equal(t, "abc", got[0].Hash)
		assert.True(t, got[0].IsRunnable)

		assert.Equal(t, "helpers.ts", got[1].Filename)
		assert.Equal(t, utils.Ptr("postgres"), got[1].ConnectorID)
	})

	t.Run("should round-trip an empty script set", func(t *testing.T) {
		data, err := PackScripts(nil)
		require.NoError(t, err)

		got, err := UnpackScripts(data)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("should report a corrupt entry", func(t *testing.T) {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		f, err := w.Create("main.ts")
		require.NoError(t, err)
		_, err = f.Write([]byte("this is not json"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		_, err = UnpackScripts(buf.Bytes())
		require.Error(t, err)

		var corruptErr *CorruptBundleError
		require.ErrorAs(t, err, &corruptErr)
		assert.Equal(t, "main.ts", corruptErr.Entry)
	})

	t.Run("should report garbage as corrupt", func(t *testing.T) {
		_, err := UnpackScripts([]byte("not a zip archive"))

		var corruptErr *CorruptBundleError
		require.ErrorAs(t, err, &corruptErr)
	})
}
