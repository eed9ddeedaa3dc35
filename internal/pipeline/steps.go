package pipeline

// Status is the runtime state of one timeline stage.
type Status string

const (
	// StatusPending marks a stage that has not started yet.
	StatusPending Status = "pending"

	// StatusActive marks the stage currently in progress.
	// At most one stage is active at a time.
	StatusActive Status = "active"

	// StatusComplete marks a finished stage.
	StatusComplete Status = "complete"
)

// Step describes one stage of the analysis timeline.
// The sequence is fixed: the same five steps run in the same order for
// every analysis, regardless of how long the backend actually takes.
type Step struct {
	// ID is the stable machine identifier of the stage.
	ID string

	// Title is the short label shown next to the stage indicator.
	Title string

	// Description explains what the analysis engine is doing during
	// this stage.
	Description string
}

// DefaultSteps returns the five-stage analysis narrative in execution order.
func DefaultSteps() []Step {
	return []Step{
		{
			ID:          "query_framework",
			Title:       "Query framework structured",
			Description: "Building the prompt set used to interrogate each AI model about your brand.",
		},
		{
			ID:          "ai_responses",
			Title:       "AI responses collected",
			Description: "Querying the AI models and gathering every mention of your brand and competitors.",
		},
		{
			ID:          "visibility_scoring",
			Title:       "Visibility scores computed",
			Description: "Scoring how prominently your brand appears across model responses.",
		},
		{
			ID:          "competitor_benchmark",
			Title:       "Competitors benchmarked",
			Description: "Ranking your visibility against competing brands in the same queries.",
		},
		{
			ID:          "report_assembly",
			Title:       "Report assembled",
			Description: "Combining scores, sentiment, and source citations into your dashboard.",
		},
	}
}

// StepState pairs a step with its runtime status.
type StepState struct {
	Step   Step
	Status Status
}
