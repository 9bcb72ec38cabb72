package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Katapios/lazybones/internal/store"
)

type reportsModel struct {
	store  *store.Store
	width  int
	height int

	counts  []store.DailyCounts
	history []store.Report
	offset  int // 7-day blocks offset from today (0 = current)

	chart barchart.Model
}

func newReportsModel(s *store.Store) reportsModel {
	return reportsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	counts  []store.DailyCounts
	history []store.Report
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := r.dateRange()
		counts, _ := r.store.GetDailyCounts(from, to)
		history, _ := r.store.ListReports(store.ReportFilter{From: &from, To: &to})
		return reportsDataMsg{counts: counts, history: history}
	}
}

func (r reportsModel) dateRange() (time.Time, time.Time) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	end := today.AddDate(0, 0, 1-7*r.offset)
	start := end.AddDate(0, 0, -7)
	return start, end
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.counts = msg.counts
		r.history = msg.history
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	from, to := r.dateRange()

	// One bar per day, good and bad stacked.
	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		label := d.Format("Mon 02")

		var values []barchart.BarValue
		for _, c := range r.counts {
			if c.Date == dateStr {
				values = append(values,
					barchart.BarValue{Name: "good", Value: float64(c.GoodTotal), Style: goodStyle},
					barchart.BarValue{Name: "bad", Value: float64(c.BadTotal), Style: badStyle},
				)
			}
		}

		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: values,
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	from, to := r.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s", from.Format("Jan 02"), to.Add(-24*time.Hour).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("History"), "  ", dateLabel,
	)

	chartView := r.chart.View()
	tableView := r.renderHistoryTable(w)
	legend := "  " + goodStyle.Render("● good") + "  " + badStyle.Render("● bad")
	nav := mutedStyle.Render("  ←/→: navigate  e: export")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", legend, "", tableView, "", nav,
		),
	)
}

func (r reportsModel) renderHistoryTable(w int) string {
	if len(r.history) == 0 {
		return mutedStyle.Render("  No reports for this period")
	}

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-12s %-8s %6s %6s %10s", "Date", "Kind", "Good", "Bad", "State"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 48))))

	for _, rep := range r.history {
		kind := "report"
		if rep.IsPlan() {
			kind = "plan"
		}
		state := "saved"
		switch {
		case rep.Draft:
			state = "draft"
		case rep.Published:
			state = "published"
		}
		rows = append(rows, fmt.Sprintf("  %-12s %-8s %6d %6d %10s",
			rep.Date.Local().Format("2006-01-02"), kind, rep.GoodCount, rep.BadCount, state,
		))
	}

	return strings.Join(rows, "\n")
}
