package model

import "sort"

// Dashboard is the complete precomputed analytics payload for one product.
type Dashboard struct {
	// Brand is the analyzed brand name.
	Brand string `json:"brand"`

	// ResourceID identifies the product the analytics belong to.
	ResourceID string `json:"resourceId"`

	// GeneratedAt is the epoch-milliseconds timestamp the backend computed
	// this payload. Consumers compare it against the analysis trigger time
	// to tell fresh data from stale leftovers of an earlier run.
	GeneratedAt int64 `json:"generatedAt"`

	// VisibilityScore is the overall 0-100 brand visibility score.
	VisibilityScore float64 `json:"visibilityScore"`

	// ModelScores break the overall score down per AI model.
	ModelScores []ModelScore `json:"modelScores"`

	// Competitors compares the brand against competing brands.
	Competitors []Competitor `json:"competitors"`

	// Sentiment is the tone breakdown of brand mentions.
	Sentiment Sentiment `json:"sentiment"`

	// Citations are the sources the AI models cited when mentioning
	// the brand.
	Citations []Citation `json:"citations"`
}

// ModelScore is the visibility score within one AI model's responses.
type ModelScore struct {
	// Model is the AI model name (e.g. "gpt-4o").
	Model string `json:"model"`

	// Score is the 0-100 visibility score within that model.
	Score float64 `json:"score"`
}

// Competitor is one row of the competitor comparison.
type Competitor struct {
	// Name is the competitor brand name.
	Name string `json:"name"`

	// Score is the competitor's 0-100 visibility score.
	Score float64 `json:"score"`

	// Mentions counts how often the competitor appeared in responses.
	Mentions int `json:"mentions"`
}

// Sentiment is the tone breakdown of brand mentions, in percent.
type Sentiment struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// Dominant returns which tone leads the breakdown ("positive", "neutral",
// or "negative"). Ties resolve in that order.
func (s Sentiment) Dominant() string {
	switch {
	case s.Positive >= s.Neutral && s.Positive >= s.Negative:
		return "positive"
	case s.Neutral >= s.Negative:
		return "neutral"
	default:
		return "negative"
	}
}

// Citation is one cited source with its mention count.
type Citation struct {
	// Domain is the source site (e.g. "reddit.com").
	Domain string `json:"domain"`

	// URL is the cited page.
	URL string `json:"url"`

	// Count is how many responses cited this source.
	Count int `json:"count"`
}

// RankedCompetitors returns the competitors ordered by descending score,
// without mutating the dashboard. The brand itself is not in the list.
func (d *Dashboard) RankedCompetitors() []Competitor {
	ranked := make([]Competitor, len(d.Competitors))
	copy(ranked, d.Competitors)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// BrandRank returns the brand's 1-based position among its competitors by
// visibility score. A brand that outscores every competitor ranks 1.
func (d *Dashboard) BrandRank() int {
	rank := 1
	for _, c := range d.Competitors {
		if c.Score > d.VisibilityScore {
			rank++
		}
	}
	return rank
}

// TopCitations returns up to n citations ordered by descending count.
func (d *Dashboard) TopCitations(n int) []Citation {
	sorted := make([]Citation, len(d.Citations))
	copy(sorted, d.Citations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// Product is one analyzable product belonging to the account.
type Product struct {
	// ID is the product identifier used as the analysis resource id.
	ID string `json:"id"`

	// Name is the product display name.
	Name string `json:"name"`

	// Analyzed reports whether at least one analysis has completed for
	// this product.
	Analyzed bool `json:"analyzed"`
}

// Application is one application (site) registered for the account.
type Application struct {
	// ID is the application identifier.
	ID string `json:"id"`

	// Name is the application display name.
	Name string `json:"name"`

	// Domain is the application's site domain.
	Domain string `json:"domain"`
}
