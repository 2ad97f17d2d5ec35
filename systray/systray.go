// Package systray puts the agent in the system tray.
package systray

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/getlantern/systray"
)

// Manager manages the system tray icon and menu.
type Manager struct {
	webPort  int
	iconData []byte
	quit     chan struct{}
}

// NewManager creates a new systray manager. webPort <= 0 hides the
// dashboard menu item.
func NewManager(webPort int, iconData []byte) *Manager {
	return &Manager{
		webPort:  webPort,
		iconData: iconData,
		quit:     make(chan struct{}),
	}
}

// Run starts the system tray (blocking call).
func (m *Manager) Run() {
	systray.Run(m.onReady, m.onExit)
}

// Stop stops the system tray.
func (m *Manager) Stop() {
	systray.Quit()
}

// WaitForQuit returns a channel that is closed when the user clicks Quit.
func (m *Manager) WaitForQuit() <-chan struct{} {
	return m.quit
}

// onReady is called when the systray is ready.
func (m *Manager) onReady() {
	if len(m.iconData) > 0 {
		systray.SetIcon(m.iconData)
	}

	systray.SetTitle("ClipDeck")
	systray.SetTooltip("ClipDeck - Hotkey Clipboard")

	var openCh <-chan struct{}
	if m.webPort > 0 {
		mOpen := systray.AddMenuItem("Open Dashboard", "Open the ClipDeck dashboard")
		systray.AddSeparator()
		openCh = mOpen.ClickedCh
	}
	mQuit := systray.AddMenuItem("Quit", "Exit ClipDeck")

	go func() {
		for {
			select {
			case <-openCh:
				m.openDashboard()
			case <-mQuit.ClickedCh:
				slog.Info("User requested quit from system tray")
				close(m.quit)
				systray.Quit()
				return
			}
		}
	}()
}

// onExit is called when the systray is exiting.
func (m *Manager) onExit() {
	slog.Info("System tray exited")
}

// openDashboard opens the dashboard in the default browser.
func (m *Manager) openDashboard() {
	url := fmt.Sprintf("http://localhost:%d", m.webPort)
	slog.Info("Opening dashboard", "url", url)

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		slog.Error("Unsupported platform for opening browser", "platform", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		slog.Error("Failed to open dashboard", "error", err)
	}
}
