package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest_CityHosp(t *testing.T) {
	home := setupHome(t)
	writeCorpus(t, home,
		mail("m1", "healthcare", "City Hospital"),
		mail("m2", "healthcare", "City Hospital"),
		mail("m3", "healthcare", "City Hospice"),
		mail("m4", "finance", "Acme Bank"),
	)

	env := mustEnv(t, "suggest", "City Hosp")
	rows := dataList(t, env)
	assert.Equal(t, []string{"City Hospital", "City Hospice"}, field(rows, "displayName"))

	meta := env["meta"].(map[string]any)
	assert.EqualValues(t, 8, meta["limit"])
	assert.Equal(t, false, meta["matches"])
}

func TestSuggest_CapsAtEight(t *testing.T) {
	setupHome(t)
	for _, name := range []string{"Org A", "Org B", "Org C", "Org D", "Org E", "Org F", "Org G", "Org H", "Org I", "Org J"} {
		mustEnv(t, "orgs", "add", name)
	}

	rows := dataList(t, mustEnv(t, "suggest", "org"))
	require.Len(t, rows, 8)
	assert.Equal(t, "Org A", rows[0]["displayName"])
}

func TestSuggest_NoMatchIsEmptyList(t *testing.T) {
	setupHome(t)
	rows := dataList(t, mustEnv(t, "suggest", "zzz"))
	assert.Empty(t, rows)
}
