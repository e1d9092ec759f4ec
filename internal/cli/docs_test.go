package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocs_ListAndShow(t *testing.T) {
	setupHome(t)

	topics := mustEnv(t, "docs")["data"].(map[string]any)["topics"].([]any)
	assert.Contains(t, topics, "pages")

	data := mustEnv(t, "docs", "pages")["data"].(map[string]any)
	assert.Equal(t, "pages", data["topic"])
	assert.Contains(t, data["markdown"], "# Category pages")

	stdout, _, err := runCLI(t, []string{"docs", "pages", "--raw"})
	require.NoError(t, err)
	assert.Contains(t, string(stdout), "# Category pages")

	_, stderr, err := runCLI(t, []string{"docs", "nope"})
	require.Error(t, err)
	assert.Contains(t, string(stderr), "unknown docs topic")
}
