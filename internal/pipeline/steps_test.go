package pipeline

import "testing"

// TestDefaultSteps tests the fixed stage sequence.
func TestDefaultSteps(t *testing.T) {
	t.Parallel()

	t.Run("has five stages in order", func(t *testing.T) {
		t.Parallel()

		steps := DefaultSteps()
		if len(steps) != 5 {
			t.Fatalf("got %d steps, want 5", len(steps))
		}

		wantIDs := []string{
			"query_framework",
			"ai_responses",
			"visibility_scoring",
			"competitor_benchmark",
			"report_assembly",
		}
		for i, want := range wantIDs {
			if steps[i].ID != want {
				t.Errorf("steps[%d].ID = %q, want %q", i, steps[i].ID, want)
			}
		}
	})

	t.Run("every stage has a title and description", func(t *testing.T) {
		t.Parallel()

		for _, step := range DefaultSteps() {
			if step.Title == "" {
				t.Errorf("step %q has no title", step.ID)
			}
			if step.Description == "" {
				t.Errorf("step %q has no description", step.ID)
			}
		}
	})

	t.Run("gated stage index is within the sequence", func(t *testing.T) {
		t.Parallel()

		steps := DefaultSteps()
		if readinessStepIndex <= 0 || readinessStepIndex >= len(steps)-1 {
			t.Errorf("readinessStepIndex = %d, want interior stage of %d", readinessStepIndex, len(steps))
		}
	})
}
