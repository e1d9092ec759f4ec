package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories_AddExistsRemove(t *testing.T) {
	setupHome(t)

	rec := mustEnv(t, "categories", "add", "Senior Living")["data"].(map[string]any)
	assert.Equal(t, "senior-living", rec["id"])
	assert.Equal(t, "Senior Living", rec["name"])

	assert.Equal(t, true, mustEnv(t, "categories", "exists", "senior-living")["data"])
	assert.Equal(t, true, mustEnv(t, "categories", "exists", "finance")["data"])
	assert.Equal(t, false, mustEnv(t, "categories", "exists", "nope")["data"])

	mustEnv(t, "categories", "rm", "senior-living")
	assert.Equal(t, false, mustEnv(t, "categories", "exists", "senior-living")["data"])

	_, stderr, err := runCLI(t, []string{"categories", "rm", "senior-living"})
	require.Error(t, err)
	assert.Contains(t, string(stderr), "category not found")

	_, stderr, err = runCLI(t, []string{"categories", "rm", "finance"})
	require.Error(t, err)
	assert.Contains(t, string(stderr), "built in")
}

func TestCategories_AddBuiltinTitleReturnsBuiltin(t *testing.T) {
	setupHome(t)

	rec := mustEnv(t, "categories", "add", "finance")["data"].(map[string]any)
	assert.Equal(t, "finance", rec["id"])

	rows := dataList(t, mustEnv(t, "categories", "list"))
	assert.Len(t, rows, 9)
}

func TestCategories_ListCountsMail(t *testing.T) {
	home := setupHome(t)
	writeCorpus(t, home,
		mail("m1", "finance", "Acme Bank"),
		mail("m2", "finance", "Acme Bank"),
		mail("m3", "", "Someone"),
	)

	rows := dataList(t, mustEnv(t, "categories", "list"))
	counts := map[string]float64{}
	for _, r := range rows {
		counts[r["id"].(string)] = r["mailCount"].(float64)
	}
	assert.Equal(t, float64(2), counts["finance"])
	assert.Equal(t, float64(1), counts["uncategorized"])
	assert.Equal(t, float64(0), counts["travel"])
}
