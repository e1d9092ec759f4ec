package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"orgdir/internal/autocomplete"
	"orgdir/internal/directory"
	"orgdir/internal/docs"
	"orgdir/internal/layout"
	"orgdir/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const orgFieldName = "organization"

// Options tunes the interactive timers. Zero values fall back to the field defaults.
type Options struct {
	Grace  time.Duration
	Settle time.Duration
}

type pane int

const (
	paneField pane = iota
	paneCards
)

// storeChangedMsg is sent after a custom collection broadcast.
type storeChangedMsg struct{}

type reloadedMsg struct {
	catalog []model.DirectoryEntry
	cards   []directory.CategoryCard
	err     error
}

type entityCreatedMsg struct {
	kind string
	rec  model.Record
	err  error
}

type appModel struct {
	ctx  context.Context
	dir  *directory.Directory
	keys appKeyMap

	width  int
	height int

	pane pane
	org  Field

	addingCategory bool
	newCategory    textinput.Model

	order  *layout.Ordering[directory.CategoryCard]
	page   int
	cursor int // index into the page's visible cards; len(visible) selects the placeholder

	changes chan struct{}
	unwatch func()

	status    string
	statusErr bool
	showHelp  bool
}

func newAppModel(ctx context.Context, dir *directory.Directory, opts Options) appModel {
	m := appModel{
		ctx:     ctx,
		dir:     dir,
		keys:    defaultAppKeys(),
		pane:    paneField,
		page:    1,
		order:   layout.NewOrdering(nil, func(c directory.CategoryCard) string { return c.ID }),
		changes: make(chan struct{}, 1),
	}
	m.org = NewField(FieldOpts{
		Name:        orgFieldName,
		Placeholder: "Organization",
		Create:      m.createOrganization,
		Grace:       opts.Grace,
		Settle:      opts.Settle,
	})
	_ = m.org.Focus()

	m.newCategory = textinput.New()
	m.newCategory.Placeholder = "Category name"
	m.newCategory.CharLimit = 80
	m.newCategory.Width = 30

	// Listeners run on the bus goroutine; hand off to the program without blocking.
	ch := m.changes
	stop := dir.Watch(func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	})
	var once sync.Once
	m.unwatch = func() { once.Do(stop) }
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.reload(), waitForChange(m.changes))
}

func (m appModel) close() {
	if m.unwatch != nil {
		m.unwatch()
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func (m appModel) reload() tea.Cmd {
	ctx, dir := m.ctx, m.dir
	return func() tea.Msg {
		catalog, err := dir.GetAllOrganizations(ctx)
		if err != nil {
			return reloadedMsg{err: err}
		}
		cards, err := dir.Categories(ctx)
		return reloadedMsg{catalog: catalog, cards: cards, err: err}
	}
}

func (m appModel) createOrganization(name string) tea.Cmd {
	ctx, dir := m.ctx, m.dir
	return func() tea.Msg {
		rec, err := dir.AddCustomOrganization(ctx, name)
		return entityCreatedMsg{kind: "organization", rec: rec, err: err}
	}
}

func (m appModel) createCategory(title string) tea.Cmd {
	ctx, dir := m.ctx, m.dir
	return func() tea.Msg {
		rec, err := dir.AddCustomCategory(ctx, title)
		return entityCreatedMsg{kind: "category", rec: rec, err: err}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case storeChangedMsg:
		return m, tea.Batch(m.reload(), waitForChange(m.changes))

	case reloadedMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.org.SetCatalog(msg.catalog)
		m.order.Reset(msg.cards)
		m.clampPage()
		return m, nil

	case entityCreatedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("add %s: %v", msg.kind, msg.err), true)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("saved %s %q", msg.kind, msg.rec.Name), false)
		return m, nil

	case FieldCommittedMsg:
		if msg.Result.Action == autocomplete.ActionSelect {
			m.setStatus(fmt.Sprintf("%s: %s", msg.Field, msg.Result.Value), false)
		}
		return m, nil

	case blurGraceMsg, settleDoneMsg:
		var cmd tea.Cmd
		m.org, cmd = m.org.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.org.Close()
			m.close()
			return m, tea.Quit
		}
		if m.addingCategory {
			return m.updateNewCategory(msg)
		}
		if m.showHelp {
			// Any key closes help.
			m.showHelp = false
			return m, nil
		}
		if key.Matches(msg, m.keys.SwitchPan) {
			return m.switchPane()
		}
		if m.pane == paneField {
			var cmd tea.Cmd
			m.org, cmd = m.org.Update(msg)
			return m, cmd
		}
		return m.updateCards(msg)
	}

	var cmd tea.Cmd
	m.org, cmd = m.org.Update(msg)
	return m, cmd
}

func (m appModel) switchPane() (tea.Model, tea.Cmd) {
	if m.pane == paneField {
		m.pane = paneCards
		return m, m.org.Blur()
	}
	m.pane = paneField
	return m, m.org.Focus()
}

func (m appModel) updateNewCategory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.addingCategory = false
		m.newCategory.Blur()
		m.newCategory.SetValue("")
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.newCategory.Value())
		m.addingCategory = false
		m.newCategory.Blur()
		m.newCategory.SetValue("")
		if title == "" {
			return m, nil
		}
		return m, m.createCategory(title)
	}
	var cmd tea.Cmd
	m.newCategory, cmd = m.newCategory.Update(msg)
	return m, cmd
}

func (m appModel) updateCards(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	res, err := m.currentPage()
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	slots := len(res.Visible)
	if res.Placeholder != layout.PlaceholderNone {
		slots++
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor < slots-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.page > 1 {
			m.page--
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.NextPage):
		if m.page < m.lastPage() {
			m.page++
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.MoveLeft), key.Matches(msg, m.keys.MoveRight):
		if m.cursor >= len(res.Visible) {
			return m, nil
		}
		delta := -1
		if key.Matches(msg, m.keys.MoveRight) {
			delta = 1
		}
		dragged := res.Visible[m.cursor].ID
		target := (m.page-1)*layout.PageSize + m.cursor + delta
		if m.order.Reorder(dragged, target) {
			m.page = target/layout.PageSize + 1
			m.cursor = target % layout.PageSize
		}
	case key.Matches(msg, m.keys.Open):
		if m.cursor == len(res.Visible) && res.Placeholder != layout.PlaceholderNone {
			m.addingCategory = true
			return m, m.newCategory.Focus()
		}
	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}
	return m, nil
}

func (m appModel) currentPage() (layout.Result[directory.CategoryCard], error) {
	return layout.Bucket(m.order.Items(), layout.PageSize, m.page)
}

// lastPage includes the placeholder-only page that follows an exactly full last page.
func (m appModel) lastPage() int {
	n := len(m.order.Items())
	last := layout.TotalPages(n, layout.PageSize)
	if n > 0 && n%layout.PageSize == 0 {
		last++
	}
	return last
}

func (m *appModel) clampPage() {
	if m.page > m.lastPage() {
		m.page = m.lastPage()
	}
	if m.page < 1 {
		m.page = 1
	}
	res, err := m.currentPage()
	if err != nil {
		m.cursor = 0
		return
	}
	slots := len(res.Visible)
	if res.Placeholder != layout.PlaceholderNone {
		slots++
	}
	if m.cursor >= slots {
		m.cursor = max(0, slots-1)
	}
}

func (m *appModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorChromeMutedFg)
	errorStyle  = lipgloss.NewStyle().Foreground(colorErrorFg)
)

func (m appModel) View() string {
	if m.showHelp {
		return m.viewHelp()
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("Organization"))
	b.WriteString("\n")
	b.WriteString(m.org.View())
	b.WriteString("\n\n")

	res, err := m.currentPage()
	if err != nil {
		b.WriteString(errorStyle.Render(err.Error()))
	} else {
		b.WriteString(headerStyle.Render(fmt.Sprintf("Categories  %d%s%d", m.page, glyphPageSep(), m.lastPage())))
		b.WriteString("\n")
		b.WriteString(m.viewCards(res))
	}

	if m.addingCategory {
		b.WriteString("\n\n")
		b.WriteString(m.newCategory.View())
	}

	b.WriteString("\n\n")
	switch {
	case m.status == "":
	case m.statusErr:
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	default:
		b.WriteString(styleMuted().Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(styleMuted().Render("tab: switch pane  ↑/↓: suggestions  enter: commit  ←/→: card  [/]: page  H/L: move  ?: help  ctrl+c: quit"))
	return b.String()
}

var helpTopics = []string{"autocomplete", "pages"}

func (m appModel) viewHelp() string {
	width := m.width - 4
	if width <= 0 || width > 100 {
		width = 80
	}
	style := docs.StyleLight
	if lipgloss.HasDarkBackground() {
		style = docs.StyleDark
	}
	var parts []string
	for _, topic := range helpTopics {
		if body, ok := docs.Get(topic); ok {
			parts = append(parts, docs.Render(body, width, style))
		}
	}
	parts = append(parts, styleMuted().Render("press any key to close"))
	return strings.Join(parts, "\n\n")
}

const placeholderLabel = "+ New category"

func (m appModel) viewCards(res layout.Result[directory.CategoryCard]) string {
	selected := func(i int) bool { return m.pane == paneCards && m.cursor == i }
	placeholderIdx := len(res.Visible)

	var priority []string
	for i, c := range res.Priority {
		priority = append(priority, renderPriorityCard(c, selected(i)))
	}
	if res.Placeholder == layout.PlaceholderInPriority {
		priority = append(priority, renderPlaceholderCard(selected(placeholderIdx)))
	}

	var compact []string
	for i, c := range res.Compact {
		compact = append(compact, renderCompactCard(c, selected(len(res.Priority)+i)))
	}
	if res.Placeholder == layout.PlaceholderInCompact {
		compact = append(compact, renderCompactPlaceholder(selected(placeholderIdx)))
	}

	out := lipgloss.JoinHorizontal(lipgloss.Top, priority...)
	if len(compact) > 0 {
		out += "\n" + strings.Join(compact, "\n")
	}
	return out
}

const priorityCardWidth = 22

func cardBorder(selected bool) lipgloss.Style {
	border := colorCardBorder
	if selected {
		border = colorSelectedBorder
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(priorityCardWidth).
		MarginRight(1)
}

func renderPriorityCard(c directory.CategoryCard, selected bool) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(categoryColor(c.Color)).Render(fitWidth(c.Title, priorityCardWidth-2))
	meta := lipgloss.NewStyle().Foreground(colorCardMetaFg).Render(mailCountLabel(c.MailCount))
	return cardBorder(selected).Render(title + "\n" + meta)
}

func renderPlaceholderCard(selected bool) string {
	return cardBorder(selected).BorderStyle(lipgloss.NormalBorder()).Render(styleMuted().Render(placeholderLabel) + "\n ")
}

func renderCompactCard(c directory.CategoryCard, selected bool) string {
	prefix := "  "
	if selected {
		prefix = glyphCursor() + " "
	}
	dot := lipgloss.NewStyle().Foreground(categoryColor(c.Color)).Render(glyphDot())
	line := fmt.Sprintf("%s%s %s  %s", prefix, dot, fitWidth(c.Title, 40), styleMuted().Render(mailCountLabel(c.MailCount)))
	if selected {
		return lipgloss.NewStyle().Bold(true).Render(line)
	}
	return line
}

func renderCompactPlaceholder(selected bool) string {
	prefix := "  "
	if selected {
		prefix = glyphCursor() + " "
	}
	return prefix + styleMuted().Render(placeholderLabel)
}

func mailCountLabel(n int) string {
	if n == 1 {
		return "1 message"
	}
	return fmt.Sprintf("%d messages", n)
}

func fitWidth(s string, width int) string {
	if xansi.StringWidth(s) <= width {
		return s
	}
	return xansi.Truncate(s, width, "…")
}
