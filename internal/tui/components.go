package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mserebryaakov/aggregator-pim/internal/console"
)

// ConfirmationDialog represents a yes/no confirmation dialog
type ConfirmationDialog struct {
	Title       string
	Message     string
	YesSelected bool
	OnConfirm   func() tea.Cmd
	OnCancel    func() tea.Cmd
}

func NewConfirmationDialog(title, message string) ConfirmationDialog {
	return ConfirmationDialog{
		Title:   title,
		Message: message,
	}
}

func (d *ConfirmationDialog) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "left", "h", "y":
		d.YesSelected = true
	case "right", "l", "n":
		d.YesSelected = false
	case "enter":
		if d.YesSelected && d.OnConfirm != nil {
			return d.OnConfirm()
		}
		if !d.YesSelected && d.OnCancel != nil {
			return d.OnCancel()
		}
	}
	return nil
}

func (d ConfirmationDialog) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n\n")
	b.WriteString(d.Message)
	b.WriteString("\n\n")

	yesButton := inactiveButtonStyle.Render("Delete")
	noButton := inactiveButtonStyle.Render("Cancel")
	if d.YesSelected {
		yesButton = activeButtonStyle.Render("Delete")
	} else {
		noButton = activeButtonStyle.Render("Cancel")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, yesButton, "  ", noButton))
	b.WriteString("\n")
	b.WriteString(formatHelp([2]string{"←/→", "choose"}, [2]string{"enter", "confirm"}, [2]string{"esc", "cancel"}))

	return boxStyle.Render(b.String())
}

// menuItem is one entity on the home screen.
type menuItem console.MenuItem

func (i menuItem) FilterValue() string { return i.Title }

type menuDelegate struct{}

func (d menuDelegate) Height() int                             { return 1 }
func (d menuDelegate) Spacing() int                            { return 0 }
func (d menuDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d menuDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(menuItem)
	if !ok {
		return
	}

	if index == m.Index() {
		_, _ = fmt.Fprint(w, selectedItemStyle.Render("▸ "+i.Title))
		return
	}
	_, _ = fmt.Fprint(w, unselectedItemStyle.Render(i.Title))
}

func newMenu(items []console.MenuItem) list.Model {
	listItems := make([]list.Item, 0, len(items))
	for _, item := range items {
		listItems = append(listItems, menuItem(item))
	}

	l := list.New(listItems, menuDelegate{}, 40, len(items)+6)
	l.Title = "PIM entities"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle
	return l
}

// renderTable lays out rows in padded columns. The selected row is
// highlighted and the sort column underlined.
func renderTable(headers []string, rows [][]string, selected, sortColumn int) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = min(lipgloss.Width(cell), 40)
			}
		}
	}

	var b strings.Builder
	cells := make([]string, 0, len(headers))
	for i, h := range headers {
		style := headerCellStyle
		if i == sortColumn {
			style = activeHeaderCellStyle
		}
		cells = append(cells, style.Width(widths[i]+2).Render(h))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	b.WriteString("\n")

	for r, row := range rows {
		cells = cells[:0]
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			cells = append(cells, cellStyle.Width(widths[i]+2).MaxWidth(widths[i]+2).Render(cell))
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		if r == selected {
			line = selectedRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render("No records found"))
		b.WriteString("\n")
	}

	return b.String()
}

func renderRows(rows []console.Row) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row.Label))
		b.WriteString(row.Value)
		b.WriteString("\n")
	}
	return b.String()
}
