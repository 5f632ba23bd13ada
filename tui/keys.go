package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/user/video-cutter/tui/components"
)

// keyMap holds the player screen bindings.
type keyMap struct {
	Open       key.Binding
	Quit       key.Binding
	PlayPause  key.Binding
	Stop       key.Binding
	Back       key.Binding
	Forward    key.Binding
	FrameBack  key.Binding
	FrameNext  key.Binding
	MarkStart  key.Binding
	MarkEnd    key.Binding
	SaveMP4    key.Binding
	SaveWebM   key.Binding
	SeekToTens key.Binding
	Help       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Open: key.NewBinding(
			key.WithKeys("o", "ctrl+o"),
			key.WithHelp("o", "open a video file"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		PlayPause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space / p", "play / pause"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop"),
		),
		Back: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "seek back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "seek forward"),
		),
		FrameBack: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "previous frame"),
		),
		FrameNext: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "next frame"),
		),
		MarkStart: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "mark clip start"),
		),
		MarkEnd: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "mark clip end"),
		),
		SaveMP4: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "export MP4"),
		),
		SaveWebM: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "export WebM"),
		),
		SeekToTens: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "jump to 0%-90%"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "show / hide help"),
		),
	}
}

func (k keyMap) helpGroups() []components.HelpGroup {
	return []components.HelpGroup{
		{Title: "Playback", Bindings: []key.Binding{k.PlayPause, k.Stop, k.Back, k.Forward, k.FrameBack, k.FrameNext, k.SeekToTens}},
		{Title: "Clip", Bindings: []key.Binding{k.MarkStart, k.MarkEnd, k.SaveMP4, k.SaveWebM}},
		{Title: "File", Bindings: []key.Binding{k.Open, k.Help, k.Quit}},
	}
}
