package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Katapios/lazybones/internal/pool"
	"github.com/Katapios/lazybones/internal/publish"
	"github.com/Katapios/lazybones/internal/store"
)

type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	startMin int
	endMin   int
	window   pool.Window
	status   pool.Status

	reports []store.Report
	current pool.PoolReports
	plan    *store.Report

	// Tag picker overlay for adding a good/bad item.
	picking      bool
	pickKind     string // "good" or "bad"
	pickerCursor int
	pickerTags   []store.Tag

	// Free-text item entry.
	formActive bool
	form       *huh.Form
	itemText   *string
}

func newDashboardModel(s *store.Store) dashboardModel {
	text := ""
	return dashboardModel{
		store:    s,
		startMin: 360,
		endMin:   1080,
		itemText: &text,
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	startMin int
	endMin   int
	reports  []store.Report
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		start, end := d.store.PoolWindowMinutes()
		reports, _ := d.store.ListReports(store.ReportFilter{})
		return dashboardDataMsg{startMin: start, endMin: end, reports: reports}
	}
}

// resolve re-derives window, status and classification from the current
// record set. Pure; runs on every data refresh and every tick.
func (d *dashboardModel) resolve(now time.Time) {
	d.window = pool.ResolveWindow(d.startMin, d.endMin, now)
	d.status = d.window.Classify(now)
	d.current = pool.ClassifyReports(d.reports, d.window)
	d.plan = pool.FindPlan(d.reports, d.window)
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.startMin = msg.startMin
		d.endMin = msg.endMin
		d.reports = msg.reports
		d.resolve(time.Now())
		return d, nil

	case tickMsg:
		d.resolve(time.Time(msg))
		return d, nil

	case tea.KeyMsg:
		if d.picking {
			return d.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Good):
			return d.openPicker("good")
		case key.Matches(msg, keys.Bad):
			return d.openPicker("bad")
		case key.Matches(msg, keys.Save):
			return d, d.saveReport()
		case key.Matches(msg, keys.Publish):
			return d, d.publishReport()
		}
	}
	return d, nil
}

func (d dashboardModel) openPicker(kind string) (dashboardModel, tea.Cmd) {
	tags, _ := d.store.ListTags(kind)
	d.picking = true
	d.pickKind = kind
	d.pickerCursor = 0
	d.pickerTags = tags
	return d, nil
}

func (d dashboardModel) updatePicker(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	// Last row of the picker is the free-text entry.
	last := len(d.pickerTags)

	switch {
	case key.Matches(msg, keys.Up):
		if d.pickerCursor > 0 {
			d.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if d.pickerCursor < last {
			d.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		d.picking = false
		if d.pickerCursor < last {
			return d, d.addItem(d.pickKind, d.pickerTags[d.pickerCursor].Text)
		}
		return d.showItemForm()
	case key.Matches(msg, keys.Back):
		d.picking = false
	}
	return d, nil
}

func (d dashboardModel) showItemForm() (dashboardModel, tea.Cmd) {
	*d.itemText = ""
	title := "Good item"
	if d.pickKind == "bad" {
		title = "Bad item"
	}
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(title).Value(d.itemText),
		),
	).WithShowHelp(true).WithShowErrors(true)
	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) updateForm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		text := strings.TrimSpace(*d.itemText)
		if text == "" {
			return d, nil
		}
		return d, d.addItem(d.pickKind, text)
	}

	return d, cmd
}

// addItem appends a good/bad item to the current window's draft,
// creating the draft when the window has none yet. The command runs off
// the UI goroutine, so it works on its own copy fetched by ID; the
// records loaded into the model are never written through.
func (d dashboardModel) addItem(kind, text string) tea.Cmd {
	var draftID int64
	if d.current.Draft != nil {
		draftID = d.current.Draft.ID
	}
	return func() tea.Msg {
		var r *store.Report
		var err error

		if draftID != 0 {
			r, err = d.store.GetReport(draftID)
			if err == nil && r == nil {
				err = fmt.Errorf("report %d no longer exists", draftID)
			}
		} else {
			r, err = d.store.CreateReport(&store.Report{
				Date:  time.Now(),
				Draft: true,
			})
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}

		if kind == "good" {
			r.GoodItems = append(r.GoodItems, text)
		} else {
			r.BadItems = append(r.BadItems, text)
		}
		if err := d.store.UpdateReport(r); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return reportSavedMsg{report: r}
	}
}

// saveReport promotes the window's draft to saved (non-draft). Like
// addItem, the command re-fetches its own copy by ID.
func (d dashboardModel) saveReport() tea.Cmd {
	var draftID int64
	if d.current.Draft != nil {
		draftID = d.current.Draft.ID
	}
	return func() tea.Msg {
		if draftID == 0 {
			return statusMsg{text: "Nothing to save", isError: true}
		}
		r, err := d.store.GetReport(draftID)
		if err == nil && r == nil {
			err = fmt.Errorf("report %d no longer exists", draftID)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		r.Draft = false
		if err := d.store.UpdateReport(r); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return reportSavedMsg{report: r}
	}
}

// publishReport sends the authoritative record to the external channel
// and marks it published on success.
func (d dashboardModel) publishReport() tea.Cmd {
	r := d.current.Authoritative()
	s := d.store
	return func() tea.Msg {
		if r == nil {
			return statusMsg{text: "No report to publish", isError: true}
		}
		if r.Draft {
			return statusMsg{text: "Save the report before publishing", isError: true}
		}

		token, _ := s.GetSetting("telegram_token")
		chat, _ := s.GetSetting("telegram_chat")
		pub := &publish.Publisher{Token: token, ChatID: chat}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		res := pub.Publish(ctx, r)
		if !res.OK {
			return publishDoneMsg{result: res}
		}
		if err := s.MarkPublished(r.ID); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return publishDoneMsg{result: res}
	}
}

func (d dashboardModel) view() string {
	w := d.width - 4

	if d.formActive && d.form != nil {
		return panelStyle.Width(w).Render(d.form.View())
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Today's Pool"))
	rows = append(rows, "")
	rows = append(rows, d.renderCountdown(w))
	rows = append(rows, "")
	rows = append(rows, d.renderCounters())
	rows = append(rows, "")
	rows = append(rows, d.renderItems()...)

	if d.plan != nil {
		rows = append(rows, "")
		rows = append(rows, titleStyle.Render("Plan"))
		for _, item := range d.plan.Checklist {
			rows = append(rows, normalItemStyle.Render("  ☐ "+item))
		}
	}

	if d.picking {
		return activePanelStyle.Width(w).Render(d.renderPicker())
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("g: good  b: bad  w: save  P: publish  s: sync"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (d dashboardModel) renderCountdown(w int) string {
	now := time.Now()
	label := fmt.Sprintf("%s – %s", d.window.Start.Format("15:04"), d.window.End.Format("15:04"))

	switch d.status {
	case pool.BeforeStart:
		until := d.window.UntilStart(now)
		return countdownStyle.Width(w - 6).Render(
			fmt.Sprintf("Pool %s opens in %s", label, formatDuration(until)))
	case pool.Active:
		remaining, _ := d.window.UntilEnd(now)
		return countdownActiveStyle.Width(w - 6).Render(
			fmt.Sprintf("Pool %s closes in %s", label, formatDuration(remaining)))
	default:
		next := d.window.UntilStart(now)
		return countdownClosedStyle.Width(w - 6).Render(
			fmt.Sprintf("Pool %s closed — next in %s", label, formatDuration(next)))
	}
}

func (d dashboardModel) renderCounters() string {
	good, bad := d.current.Counts()
	state := "no report"
	switch {
	case d.current.Published != nil:
		state = "published"
	case d.current.Saved != nil:
		state = "saved"
	case d.current.Draft != nil:
		state = "draft"
	}
	return fmt.Sprintf("  %s  %s  %s",
		goodStyle.Render(fmt.Sprintf("+%d good", good)),
		badStyle.Render(fmt.Sprintf("-%d bad", bad)),
		mutedStyle.Render("("+state+")"))
}

func (d dashboardModel) renderItems() []string {
	r := d.current.Authoritative()
	if r == nil {
		return []string{mutedStyle.Render("  No items yet. Press g or b to add one.")}
	}

	var rows []string
	for _, item := range r.GoodItems {
		rows = append(rows, goodStyle.Render("  + "+item))
	}
	for _, item := range r.BadItems {
		rows = append(rows, badStyle.Render("  - "+item))
	}
	return rows
}

func (d dashboardModel) renderPicker() string {
	title := "Add good item"
	if d.pickKind == "bad" {
		title = "Add bad item"
	}

	var rows []string
	rows = append(rows, titleStyle.Render(title))
	rows = append(rows, "")

	for i, tag := range d.pickerTags {
		cursor := "  "
		style := normalItemStyle
		if i == d.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+tag.Text))
	}

	cursor := "  "
	style := normalItemStyle
	if d.pickerCursor == len(d.pickerTags) {
		cursor = "> "
		style = selectedItemStyle
	}
	rows = append(rows, style.Render(cursor+"(write your own…)"))

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: add  esc: cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
