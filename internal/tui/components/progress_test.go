package components

import (
	"testing"
)

func TestProgress_View(t *testing.T) {
	tests := []struct {
		name string
		p    Progress
		want string
	}{
		{"empty", NewProgress(0, 0, 8, 8), "□□□□□□□□ 0/8"},
		{"half done", NewProgress(4, 0, 8, 8), "■■■■□□□□ 4/8"},
		{"with failure", NewProgress(3, 1, 8, 8), "■■■▪□□□□ 4/8"},
		{"all done", NewProgress(5, 0, 5, 5), "■■■■■ 5/5"},
		{"scaled width", NewProgress(1, 0, 2, 4), "■■□□ 1/2"},
		{"clamped overflow", NewProgress(9, 0, 4, 4), "■■■■ 4/4"},
		{"zero total", NewProgress(0, 0, 0, 8), ""},
		{"zero width", NewProgress(1, 0, 2, 0), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.View(); got != tt.want {
				t.Errorf("View() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProgress_Percent(t *testing.T) {
	if got := NewProgress(2, 2, 8, 10).Percent(); got != 0.5 {
		t.Errorf("Percent() = %v, want 0.5", got)
	}
	if got := NewProgress(0, 0, 0, 10).Percent(); got != 0 {
		t.Errorf("Percent() with zero total = %v, want 0", got)
	}
}
