package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/stepwise/internal/config"
)

func TestViewListShowsProcedures(t *testing.T) {
	m := NewBrowser(browserConfig(), "setup.yaml", true)

	view := m.View()

	require.Contains(t, view, "Demo Server Setup")
	require.Contains(t, view, "setup.yaml")
	require.Contains(t, view, "3 procedures, 4 steps, 1 vars")
	require.Contains(t, view, "prepare")
	require.Contains(t, view, "install")
	require.Contains(t, view, "verify")
	require.Contains(t, view, "Create directories and users")
	require.Contains(t, view, "enter: inspect")
}

func TestViewDetailShowsSteps(t *testing.T) {
	m := NewBrowser(browserConfig(), "", true)

	m = runBrowserUpdate(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = runBrowserUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()

	require.Contains(t, view, "[1/3] prepare")
	require.Contains(t, view, "create app root")
	require.Contains(t, view, "$ mkdir -p {{app_root}}")
	require.Contains(t, view, "useradd --system app")
	require.Contains(t, view, "esc: back")
}

func TestViewDetailShowsStepMetadata(t *testing.T) {
	m := NewBrowser(browserConfig(), "", true)
	m.SetCursor(1)

	m = runBrowserUpdate(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = runBrowserUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()

	require.Contains(t, view, "[2/3] install")
	require.Contains(t, view, "apt-get install -y nginx")
	require.Contains(t, view, "env: DEBIAN_FRONTEND")
}

func TestViewDetailWithoutWindowSize(t *testing.T) {
	m := NewBrowser(browserConfig(), "", true)

	m = runBrowserUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	require.Contains(t, view, "mkdir -p {{app_root}}")
}

func TestViewEmptyConfig(t *testing.T) {
	m := NewBrowser(&config.Config{Name: "empty"}, "", true)

	view := m.View()
	require.Contains(t, view, "No procedures defined")
}

func TestViewAsciiFallback(t *testing.T) {
	m := NewBrowser(browserConfig(), "", false)

	view := m.View()
	require.Contains(t, view, "|")
	require.NotContains(t, view, "•")
}

func TestViewScrollMarkers(t *testing.T) {
	cfg := &config.Config{Version: "1.0", Name: "Long"}
	for _, name := range []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"} {
		cfg.Procedures = append(cfg.Procedures, config.Procedure{
			Name:  name,
			Steps: []config.Step{{Command: "true"}},
		})
	}
	m := NewBrowser(cfg, "", true)

	m = runBrowserUpdate(t, m, tea.WindowSizeMsg{Width: 80, Height: 13})

	view := m.View()
	require.Contains(t, view, "▼ more")
	require.NotContains(t, view, "▲ more")

	m.SetCursor(9)
	view = m.View()
	require.Contains(t, view, "▲ more")
}

func TestStepMetaOrdersEnvKeys(t *testing.T) {
	step := config.Step{
		Command: "make",
		Shell:   "/bin/bash",
		WorkDir: "/src",
		Env:     map[string]string{"ZED": "1", "ALPHA": "2"},
	}

	meta := stepMeta(step)
	require.Equal(t, "shell: /bin/bash  workdir: /src  env: ALPHA, ZED", meta)
}
