package components

import (
	"fmt"
	"strings"
)

const (
	filledChar = "■"
	failedChar = "▪"
	emptyChar  = "□"
)

// Progress renders plan progress like: ■■■▪□□□□ 4/8
// Done subtasks fill with ■, failed ones with ▪.
type Progress struct {
	Done   int
	Failed int
	Total  int
	Width  int // character width of the bar portion
}

// NewProgress creates a Progress for the given counts.
func NewProgress(done, failed, total, width int) Progress {
	return Progress{Done: done, Failed: failed, Total: total, Width: width}
}

// Finished returns the number of terminal subtasks, clamped to Total.
func (p Progress) Finished() int {
	n := max(p.Done, 0) + max(p.Failed, 0)
	return min(n, max(p.Total, 0))
}

// Percent returns completion in [0, 1].
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Finished()) / float64(p.Total)
}

// View returns the rendered progress bar string.
func (p Progress) View() string {
	if p.Total <= 0 || p.Width <= 0 {
		return ""
	}

	finished := p.Finished()
	done := min(max(p.Done, 0), finished)
	filled := (finished * p.Width) / p.Total
	doneCells := (done * p.Width) / p.Total
	failedCells := filled - doneCells

	bar := strings.Repeat(filledChar, doneCells) +
		strings.Repeat(failedChar, failedCells) +
		strings.Repeat(emptyChar, p.Width-filled)

	return fmt.Sprintf("%s %d/%d", bar, finished, p.Total)
}
