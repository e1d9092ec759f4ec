package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"orgdir/internal/corpus"
	"orgdir/internal/directory"
	"orgdir/internal/layout"
	"orgdir/internal/model"
	"orgdir/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	m    appModel
	dir  *directory.Directory
	orgs *store.Collection
	cats *store.Collection
	bus  *store.Bus
}

func newTestApp(t *testing.T, records ...model.MailRecord) *testApp {
	t.Helper()
	backend := store.NewMemoryBackend()
	bus := store.NewBus(0)
	t.Cleanup(bus.Close)
	orgs := store.NewCollection(store.CollectionOpts{Key: store.KeyCustomOrganizations, Backend: backend, Bus: bus})
	cats := store.NewCollection(store.CollectionOpts{Key: store.KeyCustomCategories, Backend: backend, Bus: bus})
	dir := directory.New(directory.Opts{Categories: cats, Organizations: orgs, Corpus: corpus.Static(records)})

	m := newAppModel(context.Background(), dir, Options{})
	t.Cleanup(m.close)
	ta := &testApp{m: m, dir: dir, orgs: orgs, cats: cats, bus: bus}
	ta.send(t, runCmd(m.reload())...)
	return ta
}

func (ta *testApp) send(t *testing.T, msgs ...tea.Msg) tea.Cmd {
	t.Helper()
	var cmds []tea.Cmd
	for _, msg := range msgs {
		next, cmd := ta.m.Update(msg)
		m, ok := next.(appModel)
		require.True(t, ok)
		ta.m = m
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (ta *testApp) key(t *testing.T, k tea.KeyType) tea.Cmd {
	t.Helper()
	return ta.send(t, tea.KeyMsg{Type: k})
}

func (ta *testApp) runes(t *testing.T, s string) tea.Cmd {
	t.Helper()
	return ta.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// expireGrace delivers the blur grace tick for the organization field and feeds back what it produced.
func (ta *testApp) expireGrace(t *testing.T) {
	t.Helper()
	cmd := ta.send(t, blurGraceMsg{field: orgFieldName, seq: ta.m.org.blurSeq})
	ta.send(t, runCmd(cmd)...)
}

func (ta *testApp) awaitChange(t *testing.T) {
	t.Helper()
	ta.bus.Flush()
	select {
	case <-ta.m.changes:
	case <-time.After(time.Second):
		t.Fatal("store change was never broadcast")
	}
	ta.send(t, runCmd(ta.m.reload())...)
}

func cardIDs(cards []directory.CategoryCard) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func TestApp_BlurCreatesOrganizationOnce(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)

	ta.runes(t, "New Org")
	require.NotNil(t, ta.key(t, tea.KeyTab))
	assert.Equal(t, paneCards, ta.m.pane)
	ta.expireGrace(t)

	recs := ta.orgs.Read(ctx)
	require.Len(t, recs, 1)
	assert.Equal(t, "New Org", recs[0].Name)
	assert.Equal(t, model.FallbackGroupKey, recs[0].GroupKey)
	assert.Contains(t, ta.m.status, `saved organization "New Org"`)

	// The broadcast refreshes the catalog, so a second blur sees a match.
	ta.awaitChange(t)
	require.True(t, ta.m.org.Engine().Matches("new org"))

	ta.key(t, tea.KeyTab)
	ta.key(t, tea.KeyTab)
	ta.expireGrace(t)
	assert.Len(t, ta.orgs.Read(ctx), 1)
}

func TestApp_SelectingSuggestionDoesNotCreate(t *testing.T) {
	ctx := context.Background()
	org := "City Hospital"
	ta := newTestApp(t, model.MailRecord{ID: "m1", Category: "healthcare", Organization: &org})

	ta.runes(t, "city")
	require.True(t, ta.m.org.Engine().IsOpen())
	ta.send(t, runCmd(ta.key(t, tea.KeyEnter))...)
	assert.Equal(t, "City Hospital", ta.m.org.Value())
	assert.Equal(t, "organization: City Hospital", ta.m.status)

	ta.key(t, tea.KeyTab)
	ta.expireGrace(t)
	assert.Empty(t, ta.orgs.Read(ctx))
}

func TestApp_CardsPageAndPlaceholder(t *testing.T) {
	ta := newTestApp(t)

	// Nine built-ins fill page one, so the placeholder gets a page of its own.
	assert.Equal(t, 2, ta.m.lastPage())
	res, err := ta.m.currentPage()
	require.NoError(t, err)
	assert.Len(t, res.Priority, layout.PriorityCount)
	assert.Equal(t, layout.PlaceholderNone, res.Placeholder)
	assert.NotContains(t, ta.m.View(), placeholderLabel)

	ta.key(t, tea.KeyTab)
	ta.key(t, tea.KeyPgDown)
	assert.Equal(t, 2, ta.m.page)
	res, err = ta.m.currentPage()
	require.NoError(t, err)
	assert.Empty(t, res.Visible)
	assert.Equal(t, layout.PlaceholderInPriority, res.Placeholder)
	assert.Contains(t, ta.m.View(), placeholderLabel)

	ta.key(t, tea.KeyPgDown)
	assert.Equal(t, 2, ta.m.page, "paging stops at the last page")
}

func TestApp_PlaceholderAddsCategory(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)

	ta.key(t, tea.KeyTab)
	ta.key(t, tea.KeyPgDown)
	ta.key(t, tea.KeyEnter)
	require.True(t, ta.m.addingCategory)

	ta.runes(t, "Senior Living")
	ta.send(t, runCmd(ta.key(t, tea.KeyEnter))...)
	assert.False(t, ta.m.addingCategory)
	assert.True(t, ta.dir.CategoryExists(ctx, "senior-living"))

	ta.awaitChange(t)
	assert.Equal(t, 10, len(ta.m.order.Items()))
	res, err := ta.m.currentPage()
	require.NoError(t, err)
	assert.Equal(t, []string{"senior-living"}, cardIDs(res.Visible))
	assert.Equal(t, layout.PlaceholderInPriority, res.Placeholder)
}

func TestApp_ReorderIsSessionLocal(t *testing.T) {
	ta := newTestApp(t)
	ta.key(t, tea.KeyTab)

	ta.runes(t, "L")
	ids := cardIDs(ta.m.order.Items())
	assert.Equal(t, []string{"work", "personal"}, ids[:2])
	assert.Equal(t, 1, ta.m.cursor, "selection follows the moved card")

	// Moving left from the first slot is a no-op.
	ta.key(t, tea.KeyLeft)
	ta.key(t, tea.KeyLeft)
	ta.runes(t, "H")
	assert.Equal(t, "work", cardIDs(ta.m.order.Items())[0])

	// Any refresh restores the canonical order.
	ta.send(t, runCmd(ta.m.reload())...)
	assert.Equal(t, "personal", cardIDs(ta.m.order.Items())[0])
}

func TestApp_ViewShowsCardsAndCounts(t *testing.T) {
	ta := newTestApp(t, model.MailRecord{ID: "m1", Category: "personal"})

	v := ta.m.View()
	assert.Contains(t, v, "Personal")
	assert.Contains(t, v, "1 message")
	assert.True(t, strings.Contains(v, "Categories  1"))
}

func TestApp_QuitDetachesWatcher(t *testing.T) {
	ta := newTestApp(t)
	assert.Equal(t, 1, ta.bus.Listeners(store.KeyCustomOrganizations))

	cmd := ta.send(t, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, 0, ta.bus.Listeners(store.KeyCustomOrganizations))
	assert.True(t, ta.m.org.closed)
}

func TestApp_HelpToggles(t *testing.T) {
	ta := newTestApp(t)
	ta.key(t, tea.KeyTab)

	ta.runes(t, "?")
	require.True(t, ta.m.showHelp)
	assert.Contains(t, ta.m.View(), "press any key to close")

	ta.key(t, tea.KeyEsc)
	assert.False(t, ta.m.showHelp)
	assert.Contains(t, ta.m.View(), "Categories")
}
