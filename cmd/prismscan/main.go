package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/prismscan/internal/analysis"
	"github.com/csheth/prismscan/internal/config"
	"github.com/csheth/prismscan/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (missing file falls back to defaults)")
	serverURL := flag.String("server", "", "analysis service base URL (overrides config and env)")
	pollInterval := flag.Duration("poll", 0, "recent-scans polling interval (overrides config)")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("failed to load config:", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.BaseURL = *serverURL
	}
	if *pollInterval > 0 {
		cfg.History.PollInterval = config.Duration(*pollInterval)
	}

	client := analysis.NewClient(cfg.Server.BaseURL, cfg.Server.Timeout.Value())

	opts := []tea.ProgramOption{}
	if !*noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Client:       client,
			HistoryLimit: cfg.History.Limit,
			PollInterval: cfg.History.PollInterval.Value(),
			RefreshDelay: cfg.History.RefreshDelay.Value(),
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}
