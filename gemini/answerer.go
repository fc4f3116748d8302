// Package gemini implements answer generation using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for answer generation.
const DefaultModel = "gemini-2.5-flash"

const systemInstruction = "You are a helpdesk assistant answering customer questions. " +
	"Answer based only on the knowledge base excerpts provided. " +
	"If the answer is not in the excerpts, say you don't have that information."

// Compile-time interface verification.
var _ helpdesk.Answerer = (*Answerer)(nil)

// Answerer implements helpdesk.Answerer using Google Gemini.
type Answerer struct {
	client *genai.Client
	model  string
}

// NewAnswerer creates a new Answerer. An empty model selects DefaultModel.
func NewAnswerer(client *genai.Client, model string) *Answerer {
	if model == "" {
		model = DefaultModel
	}
	return &Answerer{client: client, model: model}
}

// Answer generates an answer to the question grounded in the retrieved
// excerpts.
func (a *Answerer) Answer(ctx context.Context, question string, results []helpdesk.SearchResult) (string, error) {
	if question == "" {
		return "", helpdesk.Errorf(helpdesk.EINVALID, "question required")
	}

	prompt := BuildUserPrompt(question, results)
	config := BuildConfig()

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", helpdesk.Errorf(helpdesk.EPROVIDER, "gemini: %s", err)
	}
	if result == nil {
		return "", helpdesk.Errorf(helpdesk.EPROVIDER, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the retrieved excerpts
// and the question.
func BuildUserPrompt(question string, results []helpdesk.SearchResult) string {
	var sb strings.Builder
	sb.WriteString("<excerpts>\n")
	for i, r := range results {
		sb.WriteString("<excerpt>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<source>%s</source>\n", r.Citation())
		fmt.Fprintf(&sb, "<content>%s</content>\n", r.Record.Chunk.Text)
		sb.WriteString("</excerpt>\n")
	}
	sb.WriteString("</excerpts>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
