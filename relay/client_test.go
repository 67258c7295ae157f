package relay

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientBoot(t *testing.T) {
	t.Run("should post an empty body with auth and branch headers", func(t *testing.T) {
		var gotPath, gotAuth, gotBranch, gotBody string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			gotBranch = r.Header.Get("X-Branch-Override")
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)

			json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
				"ok":      true,
				"version": "deadbeef",
				"configs": map[string]any{"region": "eu"},
			})
		}))
		defer server.Close()

		t.Setenv("RELAY_HOST", strings.TrimPrefix(server.URL, "http://"))
		t.Setenv("ZEST_ENV", "development")
		t.Setenv("RELAY_TOKEN", "secret-token")

		resp, err := NewClient().Boot(context.Background(), "my-app", "deadbeef", "main")
		require.NoError(t, err)

		assert.Equal(t, "/boot/my-app/deadbeef", gotPath)
		assert.Equal(t, "Bearer secret-token", gotAuth)
		assert.Equal(t, "main", gotBranch)
		assert.Equal(t, "{}", gotBody)

		assert.True(t, resp.OK)
		assert.Equal(t, "deadbeef", resp.Version)
		assert.Equal(t, map[string]any{"region": "eu"}, resp.Configs)
	})

	t.Run("should fail on a non-2xx response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		t.Setenv("RELAY_HOST", strings.TrimPrefix(server.URL, "http://"))
		t.Setenv("ZEST_ENV", "development")

		_, err := NewClient().Boot(context.Background(), "my-app", "deadbeef", "")
		assert.Error(t, err)
	})
}

func TestClientRun(t *testing.T) {
	t.Run("should forward inputs and run id", func(t *testing.T) {
		var gotPath, gotRunID string
		var gotInputs map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotRunID = r.Header.Get("X-Run-Id")
			json.NewDecoder(r.Body).Decode(&gotInputs) //nolint:errcheck
			w.Write([]byte(`{"result": 42}`))          //nolint:errcheck
		}))
		defer server.Close()

		t.Setenv("RELAY_HOST", strings.TrimPrefix(server.URL, "http://"))
		t.Setenv("ZEST_ENV", "development")

		result, err := NewClient().Run(context.Background(), "my-app", "deadbeef", "main.ts", "run-1", "", map[string]any{
			"count": float64(3),
		})
		require.NoError(t, err)

		assert.Equal(t, "/run/my-app/deadbeef/main.ts", gotPath)
		assert.Equal(t, "run-1", gotRunID)
		assert.Equal(t, map[string]any{"count": float64(3)}, gotInputs)
		assert.JSONEq(t, `{"result": 42}`, string(result))
	})
}
