package model

import "testing"

// testDashboard returns a dashboard with a mixed competitive field.
func testDashboard() *Dashboard {
	return &Dashboard{
		Brand:           "Acme",
		ResourceID:      "prod-1",
		GeneratedAt:     1700000000000,
		VisibilityScore: 72.5,
		Competitors: []Competitor{
			{Name: "Globex", Score: 64.0, Mentions: 12},
			{Name: "Initech", Score: 81.0, Mentions: 30},
			{Name: "Umbrella", Score: 72.5, Mentions: 9},
		},
		Citations: []Citation{
			{Domain: "reddit.com", URL: "https://reddit.com/r/a", Count: 3},
			{Domain: "example.com", URL: "https://example.com/b", Count: 9},
			{Domain: "news.com", URL: "https://news.com/c", Count: 5},
		},
	}
}

// TestRankedCompetitors tests competitor ordering.
func TestRankedCompetitors(t *testing.T) {
	t.Parallel()

	t.Run("orders by descending score", func(t *testing.T) {
		t.Parallel()

		d := testDashboard()
		ranked := d.RankedCompetitors()

		wantOrder := []string{"Initech", "Umbrella", "Globex"}
		for i, want := range wantOrder {
			if ranked[i].Name != want {
				t.Errorf("ranked[%d] = %q, want %q", i, ranked[i].Name, want)
			}
		}
	})

	t.Run("does not mutate the dashboard", func(t *testing.T) {
		t.Parallel()

		d := testDashboard()
		_ = d.RankedCompetitors()

		if d.Competitors[0].Name != "Globex" {
			t.Error("ranking must not reorder the dashboard's own slice")
		}
	})
}

// TestBrandRank tests the brand's position among competitors.
func TestBrandRank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		score float64
		want  int
	}{
		{name: "outranked by one competitor", score: 72.5, want: 2},
		{name: "leads the field", score: 95.0, want: 1},
		{name: "trails the field", score: 10.0, want: 4},
		{name: "tie does not outrank", score: 81.0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := testDashboard()
			d.VisibilityScore = tt.score
			if got := d.BrandRank(); got != tt.want {
				t.Errorf("BrandRank() = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("no competitors ranks first", func(t *testing.T) {
		t.Parallel()

		d := &Dashboard{VisibilityScore: 1}
		if got := d.BrandRank(); got != 1 {
			t.Errorf("BrandRank() = %d, want 1", got)
		}
	})
}

// TestTopCitations tests citation ordering and truncation.
func TestTopCitations(t *testing.T) {
	t.Parallel()

	t.Run("orders by descending count", func(t *testing.T) {
		t.Parallel()

		d := testDashboard()
		top := d.TopCitations(10)

		wantCounts := []int{9, 5, 3}
		if len(top) != len(wantCounts) {
			t.Fatalf("got %d citations, want %d", len(top), len(wantCounts))
		}
		for i, want := range wantCounts {
			if top[i].Count != want {
				t.Errorf("top[%d].Count = %d, want %d", i, top[i].Count, want)
			}
		}
	})

	t.Run("truncates to n", func(t *testing.T) {
		t.Parallel()

		d := testDashboard()
		top := d.TopCitations(2)
		if len(top) != 2 {
			t.Fatalf("got %d citations, want 2", len(top))
		}
		if top[0].Domain != "example.com" {
			t.Errorf("top[0].Domain = %q, want example.com", top[0].Domain)
		}
	})
}

// TestSentimentDominant tests the leading-tone resolution.
func TestSentimentDominant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sentiment Sentiment
		want      string
	}{
		{name: "positive leads", sentiment: Sentiment{Positive: 0.6, Neutral: 0.3, Negative: 0.1}, want: "positive"},
		{name: "neutral leads", sentiment: Sentiment{Positive: 0.2, Neutral: 0.5, Negative: 0.3}, want: "neutral"},
		{name: "negative leads", sentiment: Sentiment{Positive: 0.1, Neutral: 0.2, Negative: 0.7}, want: "negative"},
		{name: "all-way tie resolves positive", sentiment: Sentiment{Positive: 0.33, Neutral: 0.33, Negative: 0.33}, want: "positive"},
		{name: "neutral-negative tie resolves neutral", sentiment: Sentiment{Positive: 0.1, Neutral: 0.45, Negative: 0.45}, want: "neutral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.sentiment.Dominant(); got != tt.want {
				t.Errorf("Dominant() = %q, want %q", got, tt.want)
			}
		})
	}
}
