// Package tui renders a browsing session in the terminal with bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matst80/slask-catalog/pkg/browser"
	"github.com/matst80/slask-catalog/pkg/types"
)

const (
	LoadingMessage = "Loading products..."
	allCategories  = "all"
	cardsPerRow    = 3
	cardWidth      = 34

	// description wraps onto at most two lines inside the card padding
	descriptionLength = 2 * (cardWidth - 2)
)

type viewMsg browser.View

type startedMsg struct {
	err error
}

// viewBridge keeps only the newest view for the UI loop to pick up.
type viewBridge struct {
	mu   sync.Mutex
	ch   chan browser.View
	done chan struct{}
	once sync.Once
}

func newViewBridge() *viewBridge {
	return &viewBridge{
		ch:   make(chan browser.View, 1),
		done: make(chan struct{}),
	}
}

func (b *viewBridge) push(v browser.View) {
	b.mu.Lock()
	defer b.mu.Unlock()
	select {
	case <-b.ch:
	default:
	}
	b.ch <- v
}

func (b *viewBridge) close() {
	b.once.Do(func() { close(b.done) })
}

func (b *viewBridge) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.done:
			return nil
		default:
		}
		select {
		case v := <-b.ch:
			return viewMsg(v)
		case <-b.done:
			return nil
		}
	}
}

type Model struct {
	session     *browser.Session
	input       textinput.Model
	bridge      *viewBridge
	unsubscribe func()
	view        browser.View
	width       int
	err         error
}

func New(session *browser.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "Search products..."
	ti.Prompt = "Search: "
	ti.CharLimit = 256
	ti.Focus()

	bridge := newViewBridge()
	return Model{
		session:     session,
		input:       ti,
		bridge:      bridge,
		unsubscribe: session.Subscribe(bridge.push),
		view:        session.View(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.start(), m.bridge.wait())
}

func (m Model) start() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return startedMsg{err: session.Start(context.Background())}
	}
}

// Err is the catalog load error, if any. It is only set after loading finished.
func (m Model) Err() error {
	return m.err
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case viewMsg:
		if v := browser.View(msg); v.Version >= m.view.Version {
			m.view = v
		}
		return m, m.bridge.wait()

	case startedMsg:
		m.err = msg.err
		m.view = m.session.View()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quit()
			return m, tea.Quit
		case "tab":
			m.session.SetCategory(m.cycleCategory(1))
		case "shift+tab":
			m.session.SetCategory(m.cycleCategory(-1))
		case "ctrl+s":
			m.session.SetSort(m.view.Query.Sort.Next())
		case "pgdown":
			m.session.NextPage()
		case "pgup":
			m.session.PrevPage()
		default:
			var cmd tea.Cmd
			before := m.input.Value()
			m.input, cmd = m.input.Update(msg)
			if value := m.input.Value(); value != before {
				m.session.SetSearchText(value)
			}
			m.view = m.session.View()
			return m, cmd
		}
		m.view = m.session.View()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) quit() {
	m.unsubscribe()
	m.bridge.close()
	m.session.Close()
}

// cycleCategory returns the category step positions away from the current one,
// where position zero is every category.
func (m Model) cycleCategory(step int) string {
	options := append([]string{""}, m.view.Categories...)
	current := 0
	for i, c := range options {
		if c == m.view.Query.Category {
			current = i
			break
		}
	}
	next := (current + step + len(options)) % len(options)
	return options[next]
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Products"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	category := m.view.Query.Category
	if category == "" {
		category = allCategories
	}
	b.WriteString(statusStyle.Render(fmt.Sprintf("Category: %s  Sort: %s", category, m.view.Query.Sort.Label())))
	b.WriteString("\n\n")

	switch {
	case m.view.Error != nil:
		b.WriteString(errorStyle.Render(*m.view.Error))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc quit"))
		return b.String()
	case m.view.Loading:
		b.WriteString(statusStyle.Render(LoadingMessage))
		b.WriteString("\n")
	case m.view.EmptyMessage != "":
		b.WriteString(emptyStyle.Render(m.view.EmptyMessage))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderCards())
		b.WriteString("\n")
		b.WriteString(m.renderPager())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab category  ctrl+s sort  pgup/pgdn page  esc quit"))
	return b.String()
}

func (m Model) renderCards() string {
	perRow := cardsPerRow
	if m.width > 0 {
		perRow = max(1, min(cardsPerRow, m.width/(cardWidth+4)))
	}
	rows := make([]string, 0, len(m.view.Items)/perRow+1)
	for start := 0; start < len(m.view.Items); start += perRow {
		end := min(start+perRow, len(m.view.Items))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, renderCard(&m.view.Items[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-3]) + "..."
}

func renderCard(p *types.Product) string {
	lines := []string{
		truncate(p.Title, cardWidth),
		priceStyle.Render("$" + p.Price.StringFixed(2)),
		categoryStyle.Render(p.Category),
	}
	if p.Description != "" {
		lines = append(lines, descriptionStyle.Render(truncate(p.Description, descriptionLength)))
	}
	lines = append(lines, ratingStyle.Render(fmt.Sprintf("★ %.1f (%d)", p.Rating.Rate, p.Rating.Count)))
	return cardStyle.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) renderPager() string {
	prev, next := "  ", "  "
	if m.view.CanGoPrev {
		prev = "← "
	}
	if m.view.CanGoNext {
		next = " →"
	}
	return statusStyle.Render(fmt.Sprintf("%sPage %d of %d (%d products)%s",
		prev, m.view.PageIndex+1, m.view.TotalPages, m.view.TotalItems, next))
}
