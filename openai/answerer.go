package openai

import (
	"context"
	"fmt"
	"strings"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
	"github.com/openai/openai-go"
)

// DefaultChatModel is the chat model used for answer generation unless
// overridden.
const DefaultChatModel = openai.ChatModelGPT4oMini

const systemPrompt = "You are a helpdesk assistant answering customer questions. " +
	"Answer based only on the knowledge base excerpts provided. " +
	"If the answer is not in the excerpts, say you don't have that information."

// Compile-time interface verification.
var _ helpdesk.Answerer = (*Answerer)(nil)

// Answerer implements helpdesk.Answerer using the OpenAI chat completions
// API.
type Answerer struct {
	client openai.Client
	model  openai.ChatModel
}

// NewAnswerer creates a new Answerer. An empty model selects
// DefaultChatModel.
func NewAnswerer(client openai.Client, model openai.ChatModel) *Answerer {
	if model == "" {
		model = DefaultChatModel
	}
	return &Answerer{client: client, model: model}
}

// Answer generates an answer to the question grounded in the retrieved
// excerpts.
func (a *Answerer) Answer(ctx context.Context, question string, results []helpdesk.SearchResult) (string, error) {
	if question == "" {
		return "", helpdesk.Errorf(helpdesk.EINVALID, "question required")
	}

	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: a.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildUserPrompt(question, results)),
		},
		Temperature: openai.Float(0.4),
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", helpdesk.Errorf(helpdesk.EPROVIDER, "openai chat: %s", err)
	}
	if len(resp.Choices) == 0 {
		return "", helpdesk.Errorf(helpdesk.EPROVIDER, "openai chat: empty response")
	}

	return resp.Choices[0].Message.Content, nil
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
