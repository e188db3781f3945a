// Package analysis summarizes JSONL progress streams written by `agentsim run --json`.
package analysis

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pablasso/agentsim/internal/plan"
)

// failureRateThreshold flags owners that fail at least this often.
const failureRateThreshold = 0.5

// OwnerStats counts finished subtasks for one owner.
type OwnerStats struct {
	Owner  string
	Done   int
	Failed int
}

// Total returns the number of finished subtasks.
func (o OwnerStats) Total() int { return o.Done + o.Failed }

// Suggestion is a finding worth acting on.
type Suggestion struct {
	Category    string // e.g., "Reliability", "Interrupted Runs"
	Title       string
	Description string
}

// Report aggregates every plan in a progress stream.
type Report struct {
	Plans       int
	Completed   int
	Subtasks    int
	Failed      int
	Owners      []OwnerStats
	Suggestions []Suggestion
}

// LoadEvents reads a progress log file.
func LoadEvents(path string) ([]plan.ProgressEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open progress log: %w", err)
	}
	defer f.Close()
	return ReadEvents(f)
}

// ReadEvents parses JSON lines, skipping malformed ones.
func ReadEvents(r io.Reader) ([]plan.ProgressEvent, error) {
	var events []plan.ProgressEvent
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		var event plan.ProgressEvent
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}
	return events, scanner.Err()
}

// Analyze folds events into a report. Streams may hold several plans back
// to back; subtask IDs are scoped to the most recent plan_started.
func Analyze(events []plan.ProgressEvent) Report {
	var r Report
	owners := make(map[string]*OwnerStats)
	titleFailures := make(map[string]int)

	type started struct{ title, owner string }
	current := make(map[int]started)

	for _, event := range events {
		switch event.Event {
		case plan.EventPlanStarted:
			r.Plans++
			current = make(map[int]started)

		case plan.EventSubtaskStarted:
			id := intField(event.Data, "subtask_id")
			title, _ := event.Data["title"].(string)
			owner, _ := event.Data["owner"].(string)
			current[id] = started{title: title, owner: owner}

		case plan.EventSubtaskFinished:
			st := current[intField(event.Data, "subtask_id")]
			if st.owner == "" {
				st.owner = plan.DefaultOwner
			}
			stats, ok := owners[st.owner]
			if !ok {
				stats = &OwnerStats{Owner: st.owner}
				owners[st.owner] = stats
			}

			r.Subtasks++
			if status, _ := event.Data["status"].(string); plan.Status(status) == plan.StatusFailed {
				r.Failed++
				stats.Failed++
				if st.title != "" {
					titleFailures[st.title]++
				}
			} else {
				stats.Done++
			}

		case plan.EventPlanCompleted:
			r.Completed++
		}
	}

	for _, stats := range owners {
		r.Owners = append(r.Owners, *stats)
	}
	sort.Slice(r.Owners, func(i, j int) bool {
		if r.Owners[i].Failed != r.Owners[j].Failed {
			return r.Owners[i].Failed > r.Owners[j].Failed
		}
		return r.Owners[i].Owner < r.Owners[j].Owner
	})

	r.Suggestions = suggest(r, titleFailures)
	return r
}

func suggest(r Report, titleFailures map[string]int) []Suggestion {
	var suggestions []Suggestion

	for _, o := range r.Owners {
		if o.Failed == 0 || o.Total() < 2 {
			continue
		}
		if float64(o.Failed)/float64(o.Total()) >= failureRateThreshold {
			suggestions = append(suggestions, Suggestion{
				Category:    "Reliability",
				Title:       fmt.Sprintf("%s failed %d of %d subtasks", o.Owner, o.Failed, o.Total()),
				Description: "Consider reassigning this agent's work or lowering the injected failure rate.",
			})
		}
	}

	var titles []string
	for title, n := range titleFailures {
		if n >= 2 {
			titles = append(titles, title)
		}
	}
	sort.Strings(titles)
	for _, title := range titles {
		suggestions = append(suggestions, Suggestion{
			Category:    "Repeated Failures",
			Title:       fmt.Sprintf("'%s' failed in %d runs", title, titleFailures[title]),
			Description: "The same subtask keeps failing. Check its dependencies.",
		})
	}

	if n := r.Plans - r.Completed; n > 0 {
		suggestions = append(suggestions, Suggestion{
			Category:    "Interrupted Runs",
			Title:       fmt.Sprintf("%d of %d runs did not complete", n, r.Plans),
			Description: "These runs were cancelled before every subtask finished.",
		})
	}

	return suggestions
}

// intField reads a JSON number that was decoded as float64.
func intField(data map[string]interface{}, key string) int {
	v, _ := data[key].(float64)
	return int(v)
}

// FormatReport formats a report for display.
func FormatReport(r Report) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Runs: %d (%d completed)\n", r.Plans, r.Completed))
	sb.WriteString(fmt.Sprintf("Subtasks: %d finished, %d failed\n", r.Subtasks, r.Failed))

	if len(r.Owners) > 0 {
		sb.WriteString("\nBy owner:\n")
		for _, o := range r.Owners {
			sb.WriteString(fmt.Sprintf("  %-22s %3d done %3d failed\n", o.Owner, o.Done, o.Failed))
		}
	}

	if len(r.Suggestions) == 0 {
		return sb.String()
	}

	// Group by category
	byCategory := make(map[string][]Suggestion)
	for _, s := range r.Suggestions {
		byCategory[s.Category] = append(byCategory[s.Category], s)
	}

	var categories []string
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	sb.WriteString("\n")
	for _, cat := range categories {
		sb.WriteString(fmt.Sprintf("## %s\n\n", cat))
		for _, s := range byCategory[cat] {
			sb.WriteString(fmt.Sprintf("- %s\n", s.Title))
			sb.WriteString(fmt.Sprintf("  %s\n\n", s.Description))
		}
	}

	return sb.String()
}
