package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Katapios/lazybones/internal/pool"
	"github.com/Katapios/lazybones/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	poolStart     *string
	poolEnd       *string
	notifyEnabled *bool
	notifyMode    *string
	telegramToken *string
	telegramChat  *string
	syncPeers     *string
	syncBroadcast *string
	widgetTheme   *string
	widgetOpacity *string
}

func newSettingsModel(s *store.Store) settingsModel {
	ps, pe, nm := "", "", ""
	tt, tc, sp, sb, wt, wo := "", "", "", "", "", ""
	ne := false
	return settingsModel{
		store:         s,
		poolStart:     &ps,
		poolEnd:       &pe,
		notifyEnabled: &ne,
		notifyMode:    &nm,
		telegramToken: &tt,
		telegramChat:  &tc,
		syncPeers:     &sp,
		syncBroadcast: &sb,
		widgetTheme:   &wt,
		widgetOpacity: &wo,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	// Load current values
	startMin, endMin := s.store.PoolWindowMinutes()
	*s.poolStart = formatClock(startMin)
	*s.poolEnd = formatClock(endMin)
	*s.notifyEnabled = s.getVal("notify_enabled", "0") == "1"
	*s.notifyMode = s.getVal("notify_mode", "0")
	*s.telegramToken = s.getVal("telegram_token", "")
	*s.telegramChat = s.getVal("telegram_chat", "")
	*s.syncPeers = s.getVal("sync_peers", "")
	*s.syncBroadcast = s.getVal("sync_broadcast", "")
	*s.widgetTheme = s.getVal("widget_theme", "0")
	*s.widgetOpacity = s.getVal("widget_opacity", "100")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Pool opens (HH:MM)").Value(s.poolStart),
			huh.NewInput().Title("Pool closes (HH:MM)").Value(s.poolEnd),
		).Title("Daily Pool"),
		huh.NewGroup(
			huh.NewConfirm().Title("Reminders enabled").Value(s.notifyEnabled),
			huh.NewSelect[string]().Title("Reminder mode").
				Options(
					huh.NewOption("Hourly 17:00–21:00", "0"),
					huh.NewOption("Twice daily 12:00 / 21:00", "1"),
				).Value(s.notifyMode),
		).Title("Reminders"),
		huh.NewGroup(
			huh.NewInput().Title("Telegram bot token").Value(s.telegramToken),
			huh.NewInput().Title("Telegram chat ID").Value(s.telegramChat),
			huh.NewInput().Title("Sync peers (comma-separated URLs)").Value(s.syncPeers),
			huh.NewInput().Title("Sync broadcast URL").Value(s.syncBroadcast),
		).Title("Publishing & Sync"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Widget theme").
				Options(
					huh.NewOption("Dark", "0"),
					huh.NewOption("Light", "1"),
				).Value(s.widgetTheme),
			huh.NewInput().Title("Widget opacity (20–100)").Value(s.widgetOpacity),
		).Title("Widget"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if err := s.saveSettings(); err != nil {
			return s, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Settings rejected: %v", err), isError: true}
			}
		}
		return s, s.refresh()
	}

	return s, cmd
}

// saveSettings validates the pool window before persisting anything, so
// a rejected window leaves the stored settings untouched.
func (s settingsModel) saveSettings() error {
	startMin, err := parseClock(*s.poolStart)
	if err != nil {
		return err
	}
	endMin, err := parseClock(*s.poolEnd)
	if err != nil {
		return err
	}
	if err := pool.ValidateWindow(startMin, endMin); err != nil {
		return err
	}

	s.store.SetSetting("pool_start", strconv.Itoa(startMin))
	s.store.SetSetting("pool_end", strconv.Itoa(endMin))

	enabled := "0"
	if *s.notifyEnabled {
		enabled = "1"
	}
	s.store.SetSetting("notify_enabled", enabled)
	s.store.SetSetting("notify_mode", *s.notifyMode)
	s.store.SetSetting("telegram_token", *s.telegramToken)
	s.store.SetSetting("telegram_chat", *s.telegramChat)
	s.store.SetSetting("sync_peers", *s.syncPeers)
	s.store.SetSetting("sync_broadcast", *s.syncBroadcast)
	s.store.SetSetting("widget_theme", *s.widgetTheme)
	s.store.SetSetting("widget_opacity", strconv.Itoa(clampOpacity(*s.widgetOpacity)))
	return nil
}

// clampOpacity keeps widget opacity inside 20..100, falling back to 100
// on junk input.
func clampOpacity(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 100
	}
	if n < 20 {
		return 20
	}
	if n > 100 {
		return 100
	}
	return n
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case "pool_start", "pool_end":
		if mins, err := strconv.Atoi(v); err == nil {
			return formatClock(mins)
		}
	case "notify_enabled":
		if v == "1" {
			return "yes"
		}
		return "no"
	case "notify_mode":
		if v == "1" {
			return "twice daily 12:00 / 21:00"
		}
		return "hourly 17:00–21:00"
	case "telegram_token":
		if v != "" {
			return "•••"
		}
		return "(not set)"
	case "widget_theme":
		if v == "1" {
			return "light"
		}
		return "dark"
	case "widget_opacity":
		return v + "%"
	}
	return v
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}
