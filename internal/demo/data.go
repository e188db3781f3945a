package demo

import "strings"

// Owner labels with canned progress lines.
const (
	OwnerCoordinator   = "Coordinator Agent"
	OwnerPlanning      = "Planning Agent"
	OwnerVenue         = "Venue Agent"
	OwnerOutreach      = "Outreach Agent"
	OwnerDesign        = "Design Agent"
	OwnerOps           = "Ops Agent"
	OwnerMarketing     = "Marketing Agent"
	OwnerLogistics     = "Logistics Agent"
	OwnerResearch      = "Research Agent"
	OwnerEngineering   = "Engineering Agent"
	OwnerQA            = "QA Agent"
	OwnerFinance       = "Finance Agent"
	OwnerCommunication = "Communication Agent"
)

var ownerLines = map[string][]string{
	OwnerVenue: {
		"Shortlisted 3 halls based on capacity.",
		"Checked availability for preferred date.",
		"Drafted reservation email.",
	},
	OwnerDesign: {
		"Picked brand colors matching the palette.",
		"Created poster draft v1.",
		"Exported web & print versions.",
	},
	OwnerOutreach: {
		"Compiled list of 5 potential speakers.",
		"Sent intro emails with tentative agenda.",
		"Got 2 positive responses.",
	},
	OwnerMarketing: {
		"Scheduled teaser post.",
		"Coordinated with clubs for resharing.",
		"Prepared caption + hashtags.",
	},
	OwnerOps: {
		"Created registration form with QR.",
		"Linked sheet to auto-collect responses.",
		"Enabled email notifications.",
	},
	OwnerLogistics: {
		"Requested projector & mic from AV desk.",
		"Booked 2 extra extension boards.",
		"Prepared attendance sheets.",
	},
	OwnerPlanning: {
		"Outlined timeline with milestones.",
		"Mapped dependencies across teams.",
		"Shared plan with stakeholders.",
	},
	OwnerCoordinator: {
		"Captured constraints (date, budget ceiling).",
		"Aligned scope and expected outcomes.",
		"Confirmed decision-makers.",
	},
	OwnerResearch: {
		"Searched reference material and prior work.",
		"Summarized 5 relevant resources.",
		"Flagged open questions for the team.",
	},
	OwnerEngineering: {
		"Scaffolded the module layout.",
		"Implemented the first working slice.",
		"Pushed changes for review.",
	},
	OwnerQA: {
		"Wrote test checklist from requirements.",
		"Ran smoke tests on staging.",
		"Logged 2 minor issues, both fixed.",
	},
	OwnerFinance: {
		"Collected quotes from 3 vendors.",
		"Built cost breakdown sheet.",
		"Checked totals against the budget ceiling.",
	},
	OwnerCommunication: {
		"Drafted announcement message.",
		"Sent emails to the contact list.",
		"Tracked replies and follow-ups.",
	},
}

var genericLines = []string{
	"Initialized task context.",
	"Gathered necessary info.",
	"Completed draft deliverables.",
}

// LinesFor returns the three canned progress lines for owner, or the
// generic lines when the owner is unknown. The returned slice is a copy.
func LinesFor(owner string) []string {
	lines, ok := ownerLines[owner]
	if !ok {
		lines = genericLines
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// detailRule maps title keywords to a deterministic completion detail.
type detailRule struct {
	keywords []string
	detail   string
}

var detailRules = []detailRule{
	{[]string{"venue", "book"}, "Reservation confirmed"},
	{[]string{"email", "contact", "invite"}, "Messages sent, replies expected within the hour"},
	{[]string{"poster", "design", "wireframe"}, "Design assets exported"},
	{[]string{"schedule", "plan", "agenda", "timeline"}, "Schedule drafted with time blocks"},
	{[]string{"budget", "cost", "estimate"}, "Cost breakdown prepared"},
	{[]string{"research", "find", "brainstorm"}, "Findings summarized"},
	{[]string{"prepare", "setup", "set up", "arrange"}, "Setup checklist ready"},
	{[]string{"test", "review", "feedback"}, "Review notes recorded"},
	{[]string{"deploy", "launch", "promote"}, "Rollout announced"},
}

// defaultDetail is used when no keyword matches.
const defaultDetail = "Completed with standard protocol"

func detailForTitle(title string) string {
	lower := strings.ToLower(title)
	for _, r := range detailRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.detail
			}
		}
	}
	return defaultDetail
}
