// Package narrative produces the natural-language session summary for rig
// supervisors and mud engineers. Generation goes through a swappable
// Generator capability so tests run against a deterministic stub instead of
// the live chat-completion service.
package narrative

import (
	"context"
	"fmt"
	"strings"
)

// StableOperations is returned, with no external call made, when there is
// nothing to summarize.
const StableOperations = "No anomalies detected during this session. Operations appear stable."

// Generator turns the alert and recommendation sets into a prose summary.
type Generator interface {
	Summarize(ctx context.Context, alerts, recommendations []string) (string, error)
}

// Summarize composes the session narrative. Empty alert and recommendation
// sets short-circuit to the canned stable-operations string. A generator
// failure is folded into the narrative as an inline warning rather than
// propagated, so report composition never aborts on the external service.
func Summarize(ctx context.Context, g Generator, alerts, recommendations []string) string {
	if len(alerts) == 0 && len(recommendations) == 0 {
		return StableOperations
	}
	text, err := g.Summarize(ctx, alerts, recommendations)
	if err != nil {
		return fmt.Sprintf("Warning: error generating summary: %v", err)
	}
	return strings.TrimSpace(text)
}

// BuildPrompt renders the fixed prompt template.
func BuildPrompt(alerts, recommendations []string) string {
	var sb strings.Builder
	sb.WriteString("Based on the following drilling anomalies and expert recommendations, ")
	sb.WriteString("provide a concise summary suitable for rig supervisors and mud engineers:\n\n")
	sb.WriteString("Alerts:\n")
	for _, a := range alerts {
		sb.WriteString("- ")
		sb.WriteString(a)
		sb.WriteString("\n")
	}
	sb.WriteString("\nRecommendations:\n")
	for _, r := range recommendations {
		sb.WriteString("- ")
		sb.WriteString(r)
		sb.WriteString("\n")
	}
	return sb.String()
}
