package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrgs_AddIsIdempotent(t *testing.T) {
	setupHome(t)

	first := mustEnv(t, "orgs", "add", "New Org")
	again := mustEnv(t, "orgs", "add", "  new org ")
	assert.Equal(t, first["data"], again["data"])

	rows := dataList(t, mustEnv(t, "orgs", "list", "--custom"))
	require.Len(t, rows, 1)
	assert.Equal(t, "New Org", rows[0]["displayName"])
	assert.Equal(t, "Other", rows[0]["groupTitle"])
	assert.Equal(t, true, rows[0]["isUserCreated"])
}

func TestOrgs_ListMergesCorpusAndCustom(t *testing.T) {
	home := setupHome(t)
	writeCorpus(t, home,
		mail("m1", "finance", "Acme Bank"),
		mail("m2", "finance", " Acme Bank "),
		mail("m3", "healthcare", "City Hospital"),
		mail("m4", "personal", "self"),
	)
	mustEnv(t, "orgs", "add", "Zed Co")
	// A custom entry with a corpus name replaces the derived one.
	mustEnv(t, "orgs", "add", "City Hospital")

	env := mustEnv(t, "orgs", "list")
	rows := dataList(t, env)
	assert.Equal(t, []string{"Acme Bank", "City Hospital", "Zed Co"}, field(rows, "displayName"))
	assert.Equal(t, []string{"Finance", "Other", "Other"}, field(rows, "groupTitle"))
	assert.EqualValues(t, 3, env["meta"].(map[string]any)["count"])
}

func TestOrgs_Remove(t *testing.T) {
	setupHome(t)
	mustEnv(t, "orgs", "add", "New Org")

	env := mustEnv(t, "orgs", "rm", "New Org")
	assert.Equal(t, true, env["data"].(map[string]any)["removed"])

	_, stderr, err := runCLI(t, []string{"orgs", "rm", "New Org"})
	require.Error(t, err)
	assert.Contains(t, string(stderr), "organization not found: New Org")
}

func TestOrgs_AddEmptyNameFails(t *testing.T) {
	setupHome(t)
	_, _, err := runCLI(t, []string{"orgs", "add", "   "})
	require.Error(t, err)
}

func TestOrgs_SQLiteBackend(t *testing.T) {
	setupHome(t)
	dir := t.TempDir()

	mustEnv(t, "--dir", dir, "--backend", "sqlite", "orgs", "add", "New Org")
	rows := dataList(t, mustEnv(t, "--dir", dir, "--backend", "sqlite", "orgs", "list"))
	assert.Equal(t, []string{"New Org"}, field(rows, "displayName"))
	assert.FileExists(t, dir+"/orgdir.sqlite")

	// The file backend in the same dir has its own data.
	rows = dataList(t, mustEnv(t, "--dir", dir, "orgs", "list"))
	assert.Empty(t, rows)
}

func TestOrgs_TextFormat(t *testing.T) {
	setupHome(t)
	mustEnv(t, "orgs", "add", "New Org")

	stdout, _, err := runCLI(t, []string{"--format", "text", "orgs", "list"})
	require.NoError(t, err)
	out := string(stdout)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "CUSTOM")
	assert.Contains(t, out, "New Org")
}
