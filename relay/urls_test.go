package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRunURL(t *testing.T) {
	t.Setenv("RELAY_HOST", "relay.example.com")
	t.Setenv("ZEST_ENV", "development")

	t.Run("should embed slug, version and filename as path segments", func(t *testing.T) {
		url := GetRunURL("my-app", "deadbeef", "main.ts")
		assert.Equal(t, "http://relay.example.com/run/my-app/deadbeef/main.ts", url)
	})

	t.Run("should default version and filename", func(t *testing.T) {
		url := GetRunURL("my-app", "", "")
		assert.Equal(t, "http://relay.example.com/run/my-app/latest/main.ts", url)
	})

	t.Run("should escape path segments", func(t *testing.T) {
		url := GetRunURL("my app", "v/1", "weird name.ts")
		assert.Equal(t, "http://relay.example.com/run/my%20app/v%2F1/weird%20name.ts", url)
	})

	t.Run("should use https in production", func(t *testing.T) {
		t.Setenv("ZEST_ENV", "production")
		url := GetRunURL("my-app", "deadbeef", "main.ts")
		assert.Equal(t, "https://relay.example.com/run/my-app/deadbeef/main.ts", url)
	})
}

func TestGetBootURL(t *testing.T) {
	t.Setenv("RELAY_HOST", "relay.example.com")
	t.Setenv("ZEST_ENV", "development")

	t.Run("should embed slug and version as path segments", func(t *testing.T) {
		url := GetBootURL("my-app", "deadbeef")
		assert.Equal(t, "http://relay.example.com/boot/my-app/deadbeef", url)
	})

	t.Run("should default the version to latest", func(t *testing.T) {
		url := GetBootURL("my-app", "")
		assert.Equal(t, "http://relay.example.com/boot/my-app/latest", url)
	})
}
