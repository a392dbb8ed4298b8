package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigShow(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()
	appConfig.Path = "/etc/prodsearch.toml"

	out, _, err := executeCommand("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# /etc/prodsearch.toml")
	assert.Contains(t, out, "https://api.example.com")
	assert.Contains(t, out, "[rate_limit]")
}

func TestConfigShow_DoesNotBuildServices(t *testing.T) {
	SetServices(nil)
	t.Cleanup(func() { SetServices(nil) })
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PRODSEARCH_BASE_URL", "https://env.example.com")

	out, _, err := executeCommand("--env-file", t.TempDir()+"/none.env", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "https://env.example.com")
	assert.Nil(t, searchService)
	assert.Nil(t, closeServices)
}
