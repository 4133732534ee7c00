// Package tui draws the admin console in the terminal.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mserebryaakov/aggregator-pim/internal/console"
)

type mode int

const (
	modeBrowse mode = iota
	modeEditField
	modeConfirm
)

type navigatedMsg struct{ err error }

type loadedMsg struct{ err error }

type savedMsg struct{ err error }

type deletedMsg struct{ err error }

// App is the bubbletea model of the console. Every screen change goes through
// the router; App only renders the current view and turns keys into calls.
type App struct {
	ctx    context.Context
	router *console.Router
	start  string

	view       console.View
	mode       mode
	menu       list.Model
	cursor     int
	sortColumn int

	input   textinput.Model
	editing string

	username textinput.Model
	password textinput.Model

	dialog ConfirmationDialog
	remove console.DeletePage

	status string
	err    error
	busy   bool
	width  int
	height int
}

// NewApp opens start on router when the program starts.
func NewApp(ctx context.Context, router *console.Router, start string) *App {
	input := textinput.New()
	input.Prompt = "› "

	username := textinput.New()
	username.Placeholder = "login"
	username.Prompt = "Login:    "

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password: "
	password.EchoMode = textinput.EchoPassword

	return &App{
		ctx:      ctx,
		router:   router,
		start:    start,
		menu:     newMenu(nil),
		input:    input,
		username: username,
		password: password,
	}
}

func (a *App) Init() tea.Cmd {
	return a.navigate(a.start)
}

func (a *App) navigate(path string) tea.Cmd {
	a.busy = true
	return func() tea.Msg {
		return navigatedMsg{err: a.router.Navigate(a.ctx, path)}
	}
}

func (a *App) back() tea.Cmd {
	a.busy = true
	return func() tea.Msg {
		return navigatedMsg{err: a.router.Back(a.ctx)}
	}
}

func (a *App) setView(v console.View) {
	if v == a.view {
		return
	}
	a.view = v
	a.mode = modeBrowse
	a.cursor = 0
	a.sortColumn = 0
	a.editing = ""
	a.remove = nil

	switch page := v.(type) {
	case *console.HomePage:
		a.menu = newMenu(page.Items)
	case *console.LoginPage:
		a.username.SetValue("")
		a.password.SetValue("")
		a.username.Focus()
		a.password.Blur()
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.menu.SetSize(msg.Width-4, msg.Height-6)
		return a, nil

	case navigatedMsg:
		a.busy = false
		a.err = msg.err
		a.setView(a.router.Current())
		return a, nil

	case loadedMsg:
		a.busy = false
		a.err = msg.err
		return a, nil

	case savedMsg:
		a.busy = false
		a.err = msg.err
		if msg.err == nil {
			a.status = "Saved"
		}
		a.setView(a.router.Current())
		return a, nil

	case deletedMsg:
		a.busy = false
		a.err = msg.err
		if msg.err == nil {
			a.status = "Deleted"
			a.mode = modeBrowse
			a.remove = nil
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.busy {
			return a, nil
		}
		a.status = ""
		return a, a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch a.mode {
	case modeConfirm:
		if msg.String() == "esc" {
			return a.dialog.OnCancel()
		}
		return a.dialog.Update(msg)
	case modeEditField:
		return a.editKey(msg)
	}

	switch page := a.view.(type) {
	case *console.HomePage:
		return a.homeKey(msg)
	case console.ListPage:
		return a.listKey(page, msg)
	case console.DetailPage:
		return a.detailKey(page, msg)
	case console.FormPage:
		return a.formKey(page, msg)
	case *console.LoginPage:
		return a.loginKey(page, msg)
	default:
		switch msg.String() {
		case "q":
			return tea.Quit
		case "esc", "enter", "backspace":
			return a.back()
		}
	}
	return nil
}

func (a *App) homeKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "enter":
		if item, ok := a.menu.SelectedItem().(menuItem); ok {
			return a.navigate(item.Route)
		}
		return nil
	}

	var cmd tea.Cmd
	a.menu, cmd = a.menu.Update(msg)
	return cmd
}

func (a *App) listKey(page console.ListPage, msg tea.KeyMsg) tea.Cmd {
	rows := len(page.Rows())

	switch msg.String() {
	case "q":
		return tea.Quit
	case "esc", "backspace":
		return a.back()
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < rows-1 {
			a.cursor++
		}
	case "left", "h":
		if a.sortColumn > 0 {
			a.sortColumn--
		}
	case "right", "l":
		if a.sortColumn < len(page.Headers())-1 {
			a.sortColumn++
		}
	case "s":
		key := page.SortKeys()[a.sortColumn]
		if key == "" {
			a.status = "Column is not sortable"
			return nil
		}
		return a.load(func() error { return page.SortBy(a.ctx, key) })
	case "]", "pgdown":
		if page.Page() < page.PageCount() {
			a.cursor = 0
			return a.load(func() error { return page.LoadPage(a.ctx, page.Page()+1) })
		}
	case "[", "pgup":
		if page.Page() > 1 {
			a.cursor = 0
			return a.load(func() error { return page.LoadPage(a.ctx, page.Page()-1) })
		}
	case "r":
		return a.load(func() error { return page.LoadPage(a.ctx, page.Page()) })
	case "n":
		return a.navigate(page.Route() + "/new")
	case "enter", "v":
		if id, ok := page.IDAt(a.cursor); ok {
			return a.navigate(fmt.Sprintf("%s/%d/view", page.Route(), id))
		}
	case "e":
		if id, ok := page.IDAt(a.cursor); ok {
			return a.navigate(fmt.Sprintf("%s/%d/edit", page.Route(), id))
		}
	case "d":
		remove, err := page.DeleteRow(a.cursor)
		if err != nil {
			a.err = err
			return nil
		}
		a.confirmDelete(remove)
	}
	return nil
}

func (a *App) load(fn func() error) tea.Cmd {
	a.busy = true
	return func() tea.Msg {
		return loadedMsg{err: fn()}
	}
}

func (a *App) confirmDelete(remove console.DeletePage) {
	a.remove = remove
	a.mode = modeConfirm
	a.dialog = NewConfirmationDialog(remove.Title(), remove.Prompt())
	a.dialog.OnConfirm = func() tea.Cmd {
		a.busy = true
		return func() tea.Msg {
			return deletedMsg{err: remove.Confirm(a.ctx)}
		}
	}
	a.dialog.OnCancel = func() tea.Cmd {
		a.mode = modeBrowse
		a.remove = nil
		_ = remove.Cancel(a.ctx)
		return nil
	}
}

func (a *App) detailKey(page console.DetailPage, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "esc", "backspace":
		return a.back()
	case "e":
		return a.navigate(fmt.Sprintf("%s/%d/edit", page.Route(), page.ID()))
	}
	return nil
}

func (a *App) formKey(page console.FormPage, msg tea.KeyMsg) tea.Cmd {
	fields := page.Fields()

	switch msg.String() {
	case "esc":
		return func() tea.Msg {
			return navigatedMsg{err: page.Cancel(a.ctx)}
		}
	case "up", "k", "shift+tab":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j", "tab":
		if a.cursor < len(fields)-1 {
			a.cursor++
		}
	case "enter":
		if a.cursor < len(fields) {
			f := fields[a.cursor]
			a.editing = f.Name
			a.mode = modeEditField
			a.input.SetValue(editValue(f))
			a.input.CursorEnd()
			return a.input.Focus()
		}
	case "ctrl+s":
		a.busy = true
		done := page.Save(a.ctx)
		return func() tea.Msg {
			return savedMsg{err: <-done}
		}
	}
	return nil
}

// editValue is the text a field starts with in the editor. Relationships are
// edited by identifier.
func editValue(f console.FormField) string {
	if f.Kind != console.RelationField {
		return f.Value
	}
	for _, o := range f.Options {
		if o.Label == f.Value {
			return strconv.FormatInt(o.ID, 10)
		}
	}
	return ""
}

func (a *App) editKey(msg tea.KeyMsg) tea.Cmd {
	form, ok := a.view.(console.FormPage)
	if !ok {
		a.mode = modeBrowse
		return nil
	}

	switch msg.String() {
	case "esc":
		a.mode = modeBrowse
		a.input.Blur()
		return nil
	case "enter":
		a.err = form.Set(a.editing, a.input.Value())
		if a.err == nil {
			a.mode = modeBrowse
			a.input.Blur()
		}
		return nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return cmd
}

func (a *App) loginKey(page *console.LoginPage, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return tea.Quit
	case "tab", "shift+tab", "up", "down":
		if a.username.Focused() {
			a.username.Blur()
			return a.password.Focus()
		}
		a.password.Blur()
		return a.username.Focus()
	case "enter":
		if a.username.Focused() {
			a.username.Blur()
			return a.password.Focus()
		}
		username, password := a.username.Value(), a.password.Value()
		a.busy = true
		return func() tea.Msg {
			return navigatedMsg{err: page.Submit(a.ctx, username, password, false)}
		}
	}

	var cmd tea.Cmd
	if a.username.Focused() {
		a.username, cmd = a.username.Update(msg)
	} else {
		a.password, cmd = a.password.Update(msg)
	}
	return cmd
}

func (a *App) View() string {
	var body string
	var help string

	switch page := a.view.(type) {
	case nil:
		body = mutedStyle.Render("Loading...")
	case *console.HomePage:
		body = a.menu.View()
		help = formatHelp([2]string{"↑/↓", "navigate"}, [2]string{"enter", "open"}, [2]string{"q", "quit"})
	case console.ListPage:
		body = a.listView(page)
		help = formatHelp([2]string{"↑/↓", "select"}, [2]string{"←/→ s", "sort"}, [2]string{"[ ]", "page"},
			[2]string{"enter", "view"}, [2]string{"e", "edit"}, [2]string{"n", "new"}, [2]string{"d", "delete"}, [2]string{"esc", "back"})
	case console.DetailPage:
		body = titleStyle.Render(fmt.Sprintf("%s %d", page.Title(), page.ID())) + "\n" + renderRows(page.Rows())
		help = formatHelp([2]string{"e", "edit"}, [2]string{"esc", "back"})
	case console.FormPage:
		body = a.formView(page)
		help = formatHelp([2]string{"↑/↓", "field"}, [2]string{"enter", "edit field"}, [2]string{"ctrl+s", "save"}, [2]string{"esc", "cancel"})
	case *console.LoginPage:
		body = titleStyle.Render(page.Title()) + "\n" + a.username.View() + "\n" + a.password.View()
		help = formatHelp([2]string{"tab", "switch"}, [2]string{"enter", "sign in"}, [2]string{"esc", "quit"})
	default:
		body = warningStyle.Render(page.Title())
		help = formatHelp([2]string{"esc", "back"}, [2]string{"q", "quit"})
	}

	if a.mode == modeConfirm {
		body = lipgloss.JoinVertical(lipgloss.Left, body, a.dialog.View())
	}

	parts := []string{body}
	if a.status != "" {
		parts = append(parts, successStyle.Render(a.status))
	}
	if a.err != nil {
		parts = append(parts, errorStyle.Render(a.err.Error()))
	}
	if a.busy {
		parts = append(parts, infoStyle.Render("Working..."))
	}
	parts = append(parts, help)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) listView(page console.ListPage) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(page.Title()))
	b.WriteString("\n")
	if page.State() == console.Loading {
		b.WriteString(mutedStyle.Render("Loading..."))
		return b.String()
	}
	b.WriteString(renderTable(page.Headers(), page.Rows(), a.cursor, a.sortColumn))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Page %d of %d • %d items • sort %s",
		page.Page(), page.PageCount(), page.TotalItems(), strings.Join(page.Sort(), " "))))
	return b.String()
}

func (a *App) formView(page console.FormPage) string {
	var b strings.Builder

	title := "Edit " + page.Title()
	if page.IsNew() {
		title = "Create " + page.Title()
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	for i, f := range page.Fields() {
		label := f.Label
		if f.Required {
			label += " *"
		}
		value := f.Value
		if a.mode == modeEditField && f.Name == a.editing {
			value = a.input.View()
		}

		line := labelStyle.Render(label) + value
		if i == a.cursor {
			line = selectedItemStyle.Render("▸ " + line)
		} else {
			line = unselectedItemStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")

		if i == a.cursor {
			if hint := fieldHint(f); hint != "" {
				b.WriteString(unselectedItemStyle.Render(mutedStyle.Render(hint)))
				b.WriteString("\n")
			}
		}
	}

	if page.IsSaving() {
		b.WriteString(infoStyle.Render("Saving..."))
	}
	return b.String()
}

func fieldHint(f console.FormField) string {
	switch f.Kind {
	case console.EnumField:
		return "one of " + strings.Join(f.Choices, ", ")
	case console.DateField:
		return "YYYY-MM-DD"
	case console.FileField:
		return "path to a file"
	case console.RelationField:
		opts := make([]string, 0, len(f.Options))
		for _, o := range f.Options {
			opts = append(opts, fmt.Sprintf("%d=%s", o.ID, o.Label))
		}
		if len(opts) == 0 {
			return "no options"
		}
		return "id of " + strings.Join(opts, ", ")
	}
	return ""
}

// Run starts the console on start and blocks until the user quits.
func Run(ctx context.Context, router *console.Router, start string) error {
	p := tea.NewProgram(NewApp(ctx, router, start), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
