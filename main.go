package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Katapios/lazybones/internal/store"
	appsync "github.com/Katapios/lazybones/internal/sync"
	"github.com/Katapios/lazybones/internal/tui"
)

func main() {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	agent := newAgent(s, dbPath)

	app := tui.NewApp(s, agent)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newAgent wires the wearable sync agent from persisted settings. The
// agent logs to a file next to the database; stdout belongs to the TUI.
func newAgent(s *store.Store, dbPath string) *appsync.Agent {
	var peers []string
	if v, err := s.GetSetting("sync_peers"); err == nil {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				peers = append(peers, p)
			}
		}
	}

	var broadcast string
	if v, err := s.GetSetting("sync_broadcast"); err == nil {
		broadcast = strings.TrimSpace(v)
	}

	logger := slog.New(slog.DiscardHandler)
	logPath := filepath.Join(filepath.Dir(dbPath), "sync.log")
	if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
		logger = slog.New(slog.NewTextHandler(f, nil))
	}

	transport := &appsync.HTTPTransport{Peers: peers, Broadcast: broadcast}
	return appsync.NewAgent(transport, appsync.NewGate(time.Now), logger)
}
