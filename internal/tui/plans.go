package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Katapios/lazybones/internal/pool"
	"github.com/Katapios/lazybones/internal/store"
)

type plansModel struct {
	store  *store.Store
	width  int
	height int

	items  []store.PlanItem
	cursor int

	formActive bool
	form       *huh.Form
	editID     int64 // 0 = creating
	itemText   *string
}

func newPlansModel(s *store.Store) plansModel {
	text := ""
	return plansModel{store: s, itemText: &text}
}

func (p *plansModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type plansDataMsg struct {
	items []store.PlanItem
}

func (p plansModel) refresh() tea.Cmd {
	return func() tea.Msg {
		items, _ := p.store.ListPlanItems()
		return plansDataMsg{items: items}
	}
}

func (p plansModel) update(msg tea.Msg) (plansModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case plansDataMsg:
		p.items = msg.items
		if p.cursor >= len(p.items) {
			p.cursor = max(0, len(p.items)-1)
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.items)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.New):
			return p.showForm(0, "")
		case key.Matches(msg, keys.Enter):
			if p.cursor < len(p.items) {
				item := p.items[p.cursor]
				return p.showForm(item.ID, item.Text)
			}
		case key.Matches(msg, keys.Delete):
			if p.cursor < len(p.items) {
				id := p.items[p.cursor].ID
				return p, p.deleteItem(id)
			}
		case key.Matches(msg, keys.Promote):
			return p, p.promote()
		}
	}
	return p, nil
}

func (p plansModel) showForm(id int64, text string) (plansModel, tea.Cmd) {
	*p.itemText = text
	p.editID = id
	title := "New plan item"
	if id != 0 {
		title = "Edit plan item"
	}
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(title).Value(p.itemText),
		),
	).WithShowHelp(true).WithShowErrors(true)
	p.formActive = true
	return p, p.form.Init()
}

func (p plansModel) updateForm(msg tea.Msg) (plansModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		text := strings.TrimSpace(*p.itemText)
		if text == "" {
			return p, nil
		}
		return p, p.saveItem(p.editID, text)
	}

	return p, cmd
}

func (p plansModel) saveItem(id int64, text string) tea.Cmd {
	return func() tea.Msg {
		var err error
		if id == 0 {
			_, err = p.store.CreatePlanItem(text, time.Now())
		} else {
			err = p.store.UpdatePlanItem(id, text)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return formDoneMsg{}
	}
}

func (p plansModel) deleteItem(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := p.store.DeletePlanItem(id); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return formDoneMsg{}
	}
}

// promote turns the free-standing plan items into the checklist of
// today's plan record, attaching them by foreign key, then clears them
// from the standalone list.
func (p plansModel) promote() tea.Cmd {
	return func() tea.Msg {
		items, err := p.store.ListPlanItems()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}

		var texts []string
		for _, item := range items {
			if item.ReportID == nil {
				texts = append(texts, item.Text)
			}
		}
		if len(texts) == 0 {
			return statusMsg{text: "No plan items to promote", isError: true}
		}

		start, end := p.store.PoolWindowMinutes()
		w := pool.ResolveWindow(start, end, time.Now())
		reports, _ := p.store.ListReports(store.ReportFilter{})

		var report *store.Report
		if existing := pool.FindPlan(reports, w); existing != nil {
			existing.Checklist = append(existing.Checklist, texts...)
			if err := p.store.UpdateReport(existing); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			report = existing
		} else {
			report, err = p.store.CreateReport(&store.Report{
				Date:      time.Now(),
				Checklist: texts,
				Draft:     false,
			})
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		}

		if err := p.store.AttachPlanItems(report.ID); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return planPromotedMsg{count: len(texts)}
	}
}

func (p plansModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		return panelStyle.Width(w).Render(p.form.View())
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Plan Items"))
	rows = append(rows, "")

	if len(p.items) == 0 {
		rows = append(rows, mutedStyle.Render("  No plan items. Press n to add one."))
	}

	for i, item := range p.items {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		label := item.Text
		if item.ReportID != nil {
			label += mutedStyle.Render(fmt.Sprintf("  (report %d)", *item.ReportID))
		}
		rows = append(rows, style.Render(cursor+label))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("n: new  enter: edit  d: delete  m: promote to report"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
