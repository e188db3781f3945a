package planner

import (
	"strings"

	"github.com/pablasso/agentsim/internal/demo"
	"github.com/pablasso/agentsim/internal/plan"
)

// Rule maps goal keywords to a fixed subtask template.
type Rule struct {
	Name     string
	Keywords []string
	Template []plan.Entry
}

// Matches reports whether any keyword is contained in the normalized goal.
func (r Rule) Matches(normalized string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// DefaultRuleName names the template used when nothing matches.
const DefaultRuleName = "default"

// DefaultTemplate is the generic research, plan, execute, review sequence.
var DefaultTemplate = []plan.Entry{
	{Title: "Research task", Owner: demo.OwnerResearch},
	{Title: "Break into steps", Owner: demo.OwnerPlanning},
	{Title: "Assign responsibilities", Owner: demo.OwnerCoordinator},
	{Title: "Execute plan", Owner: demo.OwnerOps},
	{Title: "Review & improve", Owner: demo.OwnerQA},
}

// DefaultRules returns the ordered rule table. Earlier rules win.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "event",
			Keywords: []string{"workshop", "event"},
			Template: []plan.Entry{
				{Title: "Define objectives", Owner: demo.OwnerCoordinator},
				{Title: "Book venue", Owner: demo.OwnerVenue},
				{Title: "Invite speakers", Owner: demo.OwnerOutreach},
				{Title: "Arrange equipment", Owner: demo.OwnerLogistics},
				{Title: "Promote the event", Owner: demo.OwnerMarketing},
				{Title: "Prepare agenda", Owner: demo.OwnerPlanning},
				{Title: "Conduct workshop", Owner: demo.OwnerOps},
				{Title: "Collect feedback", Owner: demo.OwnerResearch},
			},
		},
		{
			Name:     "website",
			Keywords: []string{"website"},
			Template: []plan.Entry{
				{Title: "Define purpose", Owner: demo.OwnerCoordinator},
				{Title: "Design wireframe", Owner: demo.OwnerDesign},
				{Title: "Develop frontend", Owner: demo.OwnerEngineering},
				{Title: "Set up backend", Owner: demo.OwnerEngineering},
				{Title: "Test website", Owner: demo.OwnerQA},
				{Title: "Deploy online", Owner: demo.OwnerOps},
				{Title: "Promote launch", Owner: demo.OwnerMarketing},
			},
		},
		{
			Name:     "project",
			Keywords: []string{"project", "app"},
			Template: []plan.Entry{
				{Title: "Brainstorm features", Owner: demo.OwnerResearch},
				{Title: "Set up repository", Owner: demo.OwnerEngineering},
				{Title: "Develop core modules", Owner: demo.OwnerEngineering},
				{Title: "Test functionality", Owner: demo.OwnerQA},
				{Title: "Prepare documentation", Owner: demo.OwnerCommunication},
				{Title: "Deploy final version", Owner: demo.OwnerOps},
			},
		},
		{
			Name:     "party",
			Keywords: []string{"birthday", "party"},
			Template: []plan.Entry{
				{Title: "Find suitable party venue", Owner: demo.OwnerVenue},
				{Title: "Create guest invitation list", Owner: demo.OwnerPlanning},
				{Title: "Design birthday invitations", Owner: demo.OwnerDesign},
				{Title: "Contact catering service", Owner: demo.OwnerCommunication},
				{Title: "Plan party activities and games", Owner: demo.OwnerPlanning},
				{Title: "Calculate total party budget", Owner: demo.OwnerFinance},
			},
		},
		{
			Name:     "conference",
			Keywords: []string{"conference"},
			Template: []plan.Entry{
				{Title: "Research conference venues and dates", Owner: demo.OwnerResearch},
				{Title: "Contact potential speakers", Owner: demo.OwnerOutreach},
				{Title: "Design conference branding materials", Owner: demo.OwnerDesign},
				{Title: "Create conference agenda and timeline", Owner: demo.OwnerPlanning},
				{Title: "Set up registration system", Owner: demo.OwnerOps},
				{Title: "Prepare conference budget proposal", Owner: demo.OwnerFinance},
			},
		},
		{
			Name:     "hackathon",
			Keywords: []string{"hackathon"},
			Template: []plan.Entry{
				{Title: "Find hackathon venue with coding setup", Owner: demo.OwnerVenue},
				{Title: "Recruit judges and mentors", Owner: demo.OwnerOutreach},
				{Title: "Create hackathon promotional materials", Owner: demo.OwnerDesign},
				{Title: "Set up team registration process", Owner: demo.OwnerOps},
				{Title: "Arrange food and refreshments", Owner: demo.OwnerLogistics},
				{Title: "Estimate prizes and operational costs", Owner: demo.OwnerFinance},
			},
		},
		{
			Name:     "meeting",
			Keywords: []string{"meeting"},
			Template: []plan.Entry{
				{Title: "Book meeting room", Owner: demo.OwnerVenue},
				{Title: "Send meeting invitations to attendees", Owner: demo.OwnerCommunication},
				{Title: "Prepare meeting agenda", Owner: demo.OwnerPlanning},
				{Title: "Set up technical equipment for presentation", Owner: demo.OwnerLogistics},
			},
		},
		{
			Name:     "training",
			Keywords: []string{"training", "course"},
			Template: []plan.Entry{
				{Title: "Research training curriculum requirements", Owner: demo.OwnerResearch},
				{Title: "Book training facility", Owner: demo.OwnerVenue},
				{Title: "Contact training instructors", Owner: demo.OwnerOutreach},
				{Title: "Prepare training materials and handouts", Owner: demo.OwnerDesign},
				{Title: "Create training schedule", Owner: demo.OwnerPlanning},
				{Title: "Calculate training costs and fees", Owner: demo.OwnerFinance},
			},
		},
	}
}

// Match returns the first rule matching goal, or a rule named
// DefaultRuleName carrying DefaultTemplate.
func Match(rules []Rule, goal string) Rule {
	normalized := strings.ToLower(strings.TrimSpace(goal))
	for _, r := range rules {
		if r.Matches(normalized) {
			return r
		}
	}
	return Rule{Name: DefaultRuleName, Template: DefaultTemplate}
}
