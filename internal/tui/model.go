// Package tui implements the terminal front end. It renders snapshots of
// the product store and dispatches store operations from key presses; the
// store's change channel drives re-renders.
package tui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlevkov/prodsync/internal/product"
	"github.com/mlevkov/prodsync/internal/store"
)

// listItem adapts a Product to bubbles/list.Item.
type listItem struct {
	p product.Product
}

func (i listItem) line() string {
	return fmt.Sprintf("%-12s %-24s %8.2f x %-4d = %10.2f",
		i.p.SKU, i.p.Name, i.p.Price, i.p.Quantity, i.p.Total)
}

// Implement list.Item interface
func (i listItem) Title() string       { return i.line() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.p.SKU + " " + i.p.Name }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	prefix := "  "
	line := it.line()
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// storeChangedMsg arrives whenever the store applied a transition.
type storeChangedMsg struct{}

// opSettledMsg arrives when a dispatched operation has settled.
type opSettledMsg struct{}

// Model is the Bubble Tea model over the product store.
type Model struct {
	store *store.Store
	ctx   context.Context

	list list.Model

	// Inline add/edit
	adding  bool
	editing bool
	editSKU string
	ti      textinput.Model
	formErr string
}

// New builds the TUI model. The store's Run loop must already be started.
func New(ctx context.Context, st *store.Store) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = titleStyle.Render("Products")
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("product", "products")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	delBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	refreshBind := key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
	extra := func() []key.Binding { return []key.Binding{addBind, editBind, delBind, refreshBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	return Model{store: st, ctx: ctx, list: l, ti: ti}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), m.waitForChange())
}

// waitForChange blocks on the store's change channel and turns the signal
// into a message. Re-armed after every storeChangedMsg.
func (m Model) waitForChange() tea.Cmd {
	ch := m.store.Changes()
	return func() tea.Msg {
		<-ch
		return storeChangedMsg{}
	}
}

func (m Model) fetchCmd() tea.Cmd {
	st, ctx := m.store, m.ctx
	return func() tea.Msg {
		st.FetchAll(ctx)
		return opSettledMsg{}
	}
}

func (m Model) createCmd(p product.Product) tea.Cmd {
	st, ctx := m.store, m.ctx
	return func() tea.Msg {
		st.Create(ctx, p)
		return opSettledMsg{}
	}
}

func (m Model) updateCmd(p product.Product) tea.Cmd {
	st, ctx := m.store, m.ctx
	return func() tea.Msg {
		st.Update(ctx, p)
		return opSettledMsg{}
	}
}

func (m Model) deleteCmd(sku string) tea.Cmd {
	st, ctx := m.store, m.ctx
	return func() tea.Msg {
		st.Delete(ctx, sku)
		return opSettledMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-3)
		return m, nil
	case storeChangedMsg:
		m.refreshItems()
		return m, m.waitForChange()
	case opSettledMsg:
		m.refreshItems()
		return m, nil
	}

	if m.adding || m.editing {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.fetchCmd()
		case "a":
			m.adding = true
			m.formErr = ""
			m.ti.SetValue("")
			m.ti.Placeholder = "sku, name, price, quantity"
			m.ti.Focus()
			return m, nil
		case "e":
			it, ok := m.selected()
			if !ok {
				return m, nil
			}
			m.editing = true
			m.editSKU = it.p.SKU
			m.formErr = ""
			m.ti.SetValue(fmt.Sprintf("%s, %g, %d", it.p.Name, it.p.Price, it.p.Quantity))
			m.ti.Placeholder = "name, price, quantity"
			m.ti.Focus()
			return m, nil
		case "d":
			it, ok := m.selected()
			if !ok {
				return m, nil
			}
			return m, m.deleteCmd(it.p.SKU)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateForm handles key input while the inline add/edit field is active.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			p, err := m.parseForm()
			if err != nil {
				m.formErr = err.Error()
				return m, nil
			}
			editing := m.editing
			m.closeForm()
			if editing {
				return m, m.updateCmd(p)
			}
			return m, m.createCmd(p)
		case "esc":
			m.closeForm()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

// parseForm reads the comma-separated field list. Total is derived here as
// price times quantity; the store and service carry it verbatim.
func (m Model) parseForm() (product.Product, error) {
	parts := strings.Split(m.ti.Value(), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var p product.Product
	if m.editing {
		if len(parts) != 3 {
			return p, fmt.Errorf("expected: name, price, quantity")
		}
		parts = append([]string{m.editSKU}, parts...)
	} else if len(parts) != 4 {
		return p, fmt.Errorf("expected: sku, name, price, quantity")
	}

	p.SKU = parts[0]
	p.Name = parts[1]
	if p.SKU == "" || p.Name == "" {
		return p, fmt.Errorf("sku and name are required")
	}
	price, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || price < 0 {
		return p, fmt.Errorf("invalid price: %s", parts[2])
	}
	quantity, err := strconv.Atoi(parts[3])
	if err != nil || quantity < 0 {
		return p, fmt.Errorf("invalid quantity: %s", parts[3])
	}
	p.Price = price
	p.Quantity = quantity
	p.Total = price * float64(quantity)
	return p, nil
}

func (m *Model) closeForm() {
	m.adding = false
	m.editing = false
	m.formErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m *Model) refreshItems() {
	snap := m.store.Snapshot()
	items := make([]list.Item, 0, len(snap.Products))
	for _, p := range snap.Products {
		items = append(items, listItem{p: p})
	}
	m.list.SetItems(items)

	title := titleStyle.Render("Products") + "   " +
		accentStyle.Render("Total") + fmt.Sprintf(" %d", len(snap.Products))
	if snap.Loading {
		title += "  " + loadingStyle.Render("syncing…")
	}
	m.list.Title = title
}

func (m Model) selected() (listItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it, ok
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")

	if m.adding || m.editing {
		label := "add"
		if m.editing {
			label = "edit " + m.editSKU
		}
		b.WriteString(mutedStyle.Render(label) + " " + m.ti.View())
		if m.formErr != "" {
			b.WriteString("\n" + errorStyle.Render("✖ " + m.formErr))
		}
		return b.String()
	}

	if snap := m.store.Snapshot(); snap.Err != "" {
		b.WriteString(errorStyle.Render("✖ " + snap.Err))
	}
	return b.String()
}
