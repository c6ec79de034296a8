package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NewCard     key.Binding
	Reset       key.Binding
	Next        key.Binding
	Mode        key.Binding
	Difficulty  key.Binding
	Key         key.Binding
	Quality     key.Binding
	Pool        key.Binding
	AutoAdvance key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func Key(help string, keyboardKey ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keyboardKey...), key.WithHelp(keyboardKey[0], help))
}

var keys = keyMap{
	NewCard:     Key("new card", "n", " "),
	Reset:       Key("reset stats", "r"),
	Next:        Key("next progression", "enter"),
	Mode:        Key("mode", "m"),
	Difficulty:  Key("difficulty", "d"),
	Key:         Key("key", "k"),
	Quality:     Key("major/minor", "q"),
	Pool:        Key("chord pool", "p"),
	AutoAdvance: Key("auto advance", "a"),
	Help:        Key("help", "?"),
	Quit:        Key("quit", "ctrl+c", "esc"),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewCard, k.Next, k.Mode, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewCard, k.Reset, k.Next},
		{k.Mode, k.Difficulty, k.Key, k.Quality},
		{k.Pool, k.AutoAdvance, k.Help, k.Quit},
	}
}
