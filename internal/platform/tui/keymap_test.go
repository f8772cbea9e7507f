package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aestallon/minesweeper/internal/core"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"k", keyRunes("k"), core.ActionUp, false},
		{"w", keyRunes("w"), core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"j", keyRunes("j"), core.ActionDown, false},
		{"h", keyRunes("h"), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionReveal, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionReveal, false},
		{"f", keyRunes("f"), core.ActionFlag, false},
		{"x", keyRunes("x"), core.ActionFlag, false},
		{"r", keyRunes("r"), core.ActionRestart, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"b", keyRunes("b"), core.ActionBack, false},
		{"q", keyRunes("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", keyRunes("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("MapKey() action = %v, want %v", action, tt.action)
			}
			if quit != tt.quit {
				t.Errorf("MapKey() quit = %v, want %v", quit, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(keyRunes("f"), &frame) {
		t.Error("f reported as quit")
	}
	if !frame.Has(core.ActionFlag) {
		t.Error("frame missing ActionFlag")
	}

	frame.Clear()
	km.MapKeyToFrame(keyRunes("z"), &frame)
	if !frame.Empty() {
		t.Error("unbound key set an action")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{keyRunes("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeySpace}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{keyRunes("q"), MenuActionQuit},
		{keyRunes("z"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
