// Package forms provides the huh prompts of the TUI.
package forms

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
)

// keyMap makes esc cancel a prompt as well as ctrl+c.
func keyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	)
	return km
}

// OpenResult holds the answer of the open prompt.
type OpenResult struct {
	Path string
}

// NewOpenForm asks for a video file to load. The path must name an existing
// regular file; a leading ~ is expanded.
func NewOpenForm(initial string, result *OpenResult) *huh.Form {
	result.Path = initial
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Open a video file").
				Description("Path to the file mpv should play").
				Placeholder("~/Videos/match.mkv").
				Value(&result.Path).
				Validate(func(s string) error {
					_, err := ResolveInputPath(s)
					return err
				}),
		),
	).WithTheme(Theme()).WithKeyMap(keyMap()).WithShowHelp(true)
}

// ResolveInputPath expands ~ and checks that path is an existing file.
func ResolveInputPath(path string) (string, error) {
	path = ExpandHome(strings.TrimSpace(path))
	if path == "" {
		return "", fmt.Errorf("a file is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("cannot open %s", path)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	return path, nil
}

// SaveResult holds the answers of the save prompt.
type SaveResult struct {
	Path      string
	Overwrite bool
}

// NewSaveForm asks for the output path of an export. An empty answer is
// accepted and reported by the caller. When the path already exists a second
// question asks whether to overwrite it.
func NewSaveForm(label, suggested string, result *SaveResult) *huh.Form {
	result.Path = suggested
	result.Overwrite = true
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Save %s clip", label)).
				Description("Output file").
				Value(&result.Path),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("File exists").
				DescriptionFunc(func() string {
					return fmt.Sprintf("%s already exists. Overwrite it?", ExpandHome(result.Path))
				}, &result.Path).
				Affirmative("Overwrite").
				Negative("Cancel").
				Value(&result.Overwrite),
		).WithHideFunc(func() bool {
			return !fileExists(ExpandHome(strings.TrimSpace(result.Path)))
		}),
	).WithTheme(Theme()).WithKeyMap(keyMap()).WithShowHelp(true)
}

// ExpandHome replaces a leading ~ with the home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
