// Package analyzer runs the LLM stages: per-item classification,
// cross-item connections, and the final morning-brief text.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/user/aibrief/internal/content"
)

const classifySystemPrompt = `You are an AI research analyst. For each item and its referenced content, provide:
1. category: one of [research, release, benchmark, opinion, tooling]
2. why_it_matters: 1-3 sentences explaining the significance and the "why?" behind this development
3. key_findings: list of 2-4 bullet points of the most important takeaways
4. reference_links: list of URLs that a human should follow for deeper understanding

Think deeply about WHY this matters, not just WHAT it is.

Respond as JSON: {"items": [{"item_id": "...", "category": "...", "why_it_matters": "...", "key_findings": [...], "reference_links": [...]}]}`

const connectionsSystemPrompt = `You are an AI research analyst. Given a list of analyzed AI developments, find meaningful connections between them.

A connection exists when:
- Two items reference the same model, paper, or technique
- One item builds upon or responds to another
- Items share a common theme or trend

Respond as JSON: {"connections": [{"item_ids": ["id1", "id2"], "relationship": "description"}]}`

type AnalyzedItem struct {
	ItemID         string   `json:"item_id"`
	Category       string   `json:"category"`
	WhyItMatters   string   `json:"why_it_matters"`
	KeyFindings    []string `json:"key_findings"`
	ReferenceLinks []string `json:"reference_links"`
}

type Connection struct {
	ItemIDs      []string `json:"item_ids"`
	Relationship string   `json:"relationship"`
}

type Output struct {
	Items       []AnalyzedItem `json:"items"`
	Connections []Connection   `json:"connections"`
}

type Analyzer struct {
	llm       *llmClient
	batchSize int
}

func New(provider, model, apiKey, baseURL string, maxTokens, batchSize int) *Analyzer {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &Analyzer{
		llm:       &llmClient{provider: provider, model: model, apiKey: apiKey, baseURL: baseURL, maxTokens: maxTokens},
		batchSize: batchSize,
	}
}

// Analyze classifies every content item in batches, then asks for
// cross-item connections over the classified set.
func (a *Analyzer) Analyze(ctx context.Context, items []content.Item) (*Output, error) {
	analyzed, err := a.classify(ctx, items)
	if err != nil {
		return nil, err
	}
	connections, err := a.findConnections(ctx, analyzed)
	if err != nil {
		// Connections are enrichment; a brief without them is valid.
		slog.Warn("connection analysis failed", "error", err)
		connections = nil
	}
	slog.Info("analyzed content", "items", len(analyzed), "connections", len(connections))
	return &Output{Items: analyzed, Connections: connections}, nil
}

type classifyPayload struct {
	ItemID     string             `json:"item_id"`
	Source     string             `json:"source"`
	Title      string             `json:"title,omitempty"`
	Text       string             `json:"text"`
	Author     string             `json:"author"`
	URL        string             `json:"url"`
	References []referencePayload `json:"referenced_content,omitempty"`
}

type referencePayload struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Excerpt string `json:"excerpt"`
}

func (a *Analyzer) classify(ctx context.Context, items []content.Item) ([]AnalyzedItem, error) {
	payloads := make([]classifyPayload, 0, len(items))
	for _, item := range items {
		p := classifyPayload{
			ItemID: item.ID,
			Source: item.Source,
			Title:  item.Title,
			Text:   content.Truncate(item.Content, 1000),
			Author: item.Author,
			URL:    item.URL,
		}
		for _, ref := range item.CrawledReferences {
			p.References = append(p.References, referencePayload{
				Type:    ref.SourceType,
				Title:   ref.Title,
				URL:     ref.SourceURL,
				Excerpt: content.Truncate(ref.Content, 500),
			})
		}
		payloads = append(payloads, p)
	}

	var all []AnalyzedItem
	for start := 0; start < len(payloads); start += a.batchSize {
		end := min(start+a.batchSize, len(payloads))
		batch := payloads[start:end]

		encoded, err := json.MarshalIndent(batch, "", "  ")
		if err != nil {
			return nil, err
		}
		user := fmt.Sprintf(
			"Analyze these %d AI-related items and their referenced content:\n\n%s\n\nFor each item, classify it and explain why it matters to the AI community.",
			len(batch), encoded,
		)

		response, err := a.llm.complete(ctx, classifySystemPrompt, user)
		if err != nil {
			return nil, fmt.Errorf("classify batch %d: %w", start/a.batchSize+1, err)
		}

		var parsed struct {
			Items []AnalyzedItem `json:"items"`
		}
		if err := json.Unmarshal([]byte(jsonBody(response)), &parsed); err != nil {
			return nil, fmt.Errorf("classify batch %d: bad response: %w", start/a.batchSize+1, err)
		}
		all = append(all, parsed.Items...)
	}
	return all, nil
}

func (a *Analyzer) findConnections(ctx context.Context, items []AnalyzedItem) ([]Connection, error) {
	if len(items) < 2 {
		return nil, nil
	}

	summaries := make([]map[string]any, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, map[string]any{
			"item_id":  item.ItemID,
			"category": item.Category,
			"why":      item.WhyItMatters,
			"findings": item.KeyFindings,
		})
	}
	encoded, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return nil, err
	}

	response, err := a.llm.complete(ctx, connectionsSystemPrompt,
		fmt.Sprintf("Find connections among these %d items:\n\n%s", len(summaries), encoded))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Connections []Connection `json:"connections"`
	}
	if err := json.Unmarshal([]byte(jsonBody(response)), &parsed); err != nil {
		return nil, fmt.Errorf("bad connections response: %w", err)
	}
	return parsed.Connections, nil
}

// jsonBody strips a markdown code fence if the model wrapped its JSON
// in one.
func jsonBody(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
