package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPages_PlaceholderFollowsLastPage(t *testing.T) {
	setupHome(t)
	mustEnv(t, "categories", "add", "Senior Living")
	mustEnv(t, "categories", "add", "Volunteering")

	first := mustEnv(t, "pages")["data"].(map[string]any)
	assert.Equal(t, "none", first["placeholder"])
	assert.Len(t, first["priority"], 3)
	assert.Len(t, first["compact"], 6)
	assert.EqualValues(t, 2, first["totalPages"])

	second := mustEnv(t, "pages", "--page", "2")["data"].(map[string]any)
	assert.Equal(t, "priority", second["placeholder"])
	assert.Len(t, second["priority"], 2)
	assert.Empty(t, second["compact"])
}

func TestPages_InvalidPage(t *testing.T) {
	setupHome(t)
	_, stderr, err := runCLI(t, []string{"pages", "--page", "0"})
	require.Error(t, err)
	assert.Contains(t, string(stderr), "page must be >= 1")
}

func TestPages_TextFormat(t *testing.T) {
	setupHome(t)
	stdout, _, err := runCLI(t, []string{"--format", "text", "pages", "--page", "2"})
	require.NoError(t, err)
	assert.Contains(t, string(stdout), "+ New category")
	assert.Contains(t, string(stdout), "SLOT")
}
