package tui

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// configChangedMsg is sent when the config file was written.
type configChangedMsg struct{}

// configDebounce lets editors finish an atomic save before the file is read.
const configDebounce = 100 * time.Millisecond

// newConfigWatcher watches the directory of path, so the file may be
// created, replaced or renamed into place after startup.
func newConfigWatcher(path string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// waitForConfigChange blocks until the config file changes.
func waitForConfigChange(w *fsnotify.Watcher, path string, logger *zap.Logger) tea.Cmd {
	if w == nil {
		return nil
	}
	target := filepath.Clean(path)
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
					time.Sleep(configDebounce)
					return configChangedMsg{}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				logger.Warn("config watcher error", zap.Error(err))
			}
		}
	}
}
