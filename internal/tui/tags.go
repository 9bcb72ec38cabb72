package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Katapios/lazybones/internal/store"
)

type tagsModel struct {
	store  *store.Store
	width  int
	height int

	tags   []store.Tag
	cursor int

	formActive bool
	form       *huh.Form
	tagText    *string
	tagKind    *string
}

func newTagsModel(s *store.Store) tagsModel {
	text, kind := "", "good"
	return tagsModel{store: s, tagText: &text, tagKind: &kind}
}

func (t *tagsModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type tagsDataMsg struct {
	tags []store.Tag
}

func (t tagsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		tags, _ := t.store.ListTags("")
		return tagsDataMsg{tags: tags}
	}
}

func (t tagsModel) update(msg tea.Msg) (tagsModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tagsDataMsg:
		t.tags = msg.tags
		if t.cursor >= len(t.tags) {
			t.cursor = max(0, len(t.tags)-1)
		}
		return t, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
			}
		case key.Matches(msg, keys.Down):
			if t.cursor < len(t.tags)-1 {
				t.cursor++
			}
		case key.Matches(msg, keys.New):
			return t.showForm()
		case key.Matches(msg, keys.Delete):
			if t.cursor < len(t.tags) {
				id := t.tags[t.cursor].ID
				return t, t.deleteTag(id)
			}
		}
	}
	return t, nil
}

func (t tagsModel) showForm() (tagsModel, tea.Cmd) {
	*t.tagText = ""
	*t.tagKind = "good"
	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Tag text").Value(t.tagText),
			huh.NewSelect[string]().Title("Kind").
				Options(
					huh.NewOption("Good", "good"),
					huh.NewOption("Bad", "bad"),
				).Value(t.tagKind),
		),
	).WithShowHelp(true).WithShowErrors(true)
	t.formActive = true
	return t, t.form.Init()
}

func (t tagsModel) updateForm(msg tea.Msg) (tagsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		text := strings.TrimSpace(*t.tagText)
		if text == "" {
			return t, nil
		}
		kind := *t.tagKind
		return t, func() tea.Msg {
			if _, err := t.store.CreateTag(text, kind); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			return formDoneMsg{}
		}
	}

	return t, cmd
}

func (t tagsModel) deleteTag(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := t.store.DeleteTag(id); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return formDoneMsg{}
	}
}

func (t tagsModel) view() string {
	w := t.width - 4

	if t.formActive && t.form != nil {
		return panelStyle.Width(w).Render(t.form.View())
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Tags"))
	rows = append(rows, "")

	if len(t.tags) == 0 {
		rows = append(rows, mutedStyle.Render("  No tags. Press n to add one."))
	}

	for i, tag := range t.tags {
		cursor := "  "
		style := normalItemStyle
		if i == t.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		dot := goodStyle.Render("●")
		if tag.Kind == "bad" {
			dot = badStyle.Render("●")
		}
		rows = append(rows, style.Render(cursor)+dot+" "+style.Render(tag.Text))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("n: new  d: delete"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
