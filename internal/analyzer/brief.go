package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

const briefSystemPrompt = `You are an AI intelligence briefing writer. Create a concise morning brief from the analyzed developments.

Your output MUST have exactly four markdown sections:

# Keywords
List the top trending AI keywords/topics today as a comma-separated list.

# Summary
For each significant development (max 5-7 items), write:
### [Title]
[2-3 sentence summary]
- **Source:** [item URL]
- **References:** [list of reference links]

# Connections
Describe how today's developments relate to each other. Use bullet points.

# Further Reading
Suggest 3-5 links for readers who want to go deeper. Annotate each with a one-line description.

IMPORTANT CONSTRAINTS:
- Total output must be under 3500 characters
- Be concise but informative
- Always include source URLs and reference links
- Focus on the "why" not just the "what"`

// Brief turns the analyzer output into the morning-brief markdown.
func (a *Analyzer) Brief(ctx context.Context, out *Output, itemURLs map[string]string, keywords []string, runDate time.Time) (string, error) {
	payload := map[string]any{
		"date":              runDate.Format("January 2, 2006"),
		"trending_keywords": keywords,
		"items":             briefItems(out, itemURLs),
		"connections":       out.Connections,
	}
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}

	text, err := a.llm.complete(ctx, briefSystemPrompt,
		fmt.Sprintf("Generate the AI Morning Brief for %s.\n\n%s", payload["date"], encoded))
	if err != nil {
		return "", err
	}
	slog.Info("brief generated", "chars", len(text))
	return text, nil
}

func briefItems(out *Output, itemURLs map[string]string) []map[string]any {
	items := make([]map[string]any, 0, len(out.Items))
	for _, item := range out.Items {
		items = append(items, map[string]any{
			"item_id":         item.ItemID,
			"url":             itemURLs[item.ItemID],
			"category":        item.Category,
			"why_it_matters":  item.WhyItMatters,
			"key_findings":    item.KeyFindings,
			"reference_links": item.ReferenceLinks,
		})
	}
	return items
}
