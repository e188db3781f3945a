package components

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestLogView_FollowsNewLines(t *testing.T) {
	lv := NewLogView(40, 3, 0)
	for i := 1; i <= 10; i++ {
		lv.AddLine(fmt.Sprintf("line %d", i))
	}

	view := lv.View()
	if !strings.Contains(view, "line 10") {
		t.Errorf("expected newest line visible, got:\n%s", view)
	}
	if strings.Contains(view, "line 1\n") {
		t.Errorf("expected oldest line scrolled away, got:\n%s", view)
	}
}

func TestLogView_MaxLines(t *testing.T) {
	lv := NewLogView(40, 10, 3)
	lv.SetLines([]string{"a", "b", "c", "d", "e"})

	if lv.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", lv.LineCount())
	}
	lv.AddLine("f")
	if lv.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", lv.LineCount())
	}
	if strings.Contains(lv.View(), "c") {
		t.Errorf("expected 'c' to be evicted, got:\n%s", lv.View())
	}
}

func TestLogView_ScrollUpPausesFollow(t *testing.T) {
	lv := NewLogView(40, 2, 0)
	lv.SetLines([]string{"1", "2", "3", "4", "5"})

	lv, _ = lv.Update(tea.KeyMsg{Type: tea.KeyUp})
	if lv.AutoScroll() {
		t.Fatal("expected auto-scroll to pause after scrolling up")
	}

	lv, _ = lv.Update(tea.KeyMsg{Type: tea.KeyEnd})
	if !lv.AutoScroll() {
		t.Fatal("expected auto-scroll to resume after end")
	}
}

func TestLogView_Clear(t *testing.T) {
	lv := NewLogView(40, 2, 0)
	lv.SetLines([]string{"x", "y"})
	lv.Clear()

	if lv.LineCount() != 0 {
		t.Errorf("LineCount() = %d after Clear", lv.LineCount())
	}
	if strings.TrimSpace(lv.View()) != "" {
		t.Errorf("expected empty view, got %q", lv.View())
	}
}
