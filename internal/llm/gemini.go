// Package llm is the chat collaborator for questions the deterministic
// paths cannot answer. It hands Gemini the numeric digest plus the user's
// question and returns the model's text verbatim.
package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// DefaultModelName is the Gemini model used for assistant answers.
const DefaultModelName = "gemini-2.0-flash"

const systemInstructions = "You are a helpful financial assistant.\n\n" +
	"Rules:\n" +
	"- Use ONLY the figures in the data summary below. Never make up numbers.\n" +
	"- If the summary has no data for the requested scope, say so explicitly instead of approximating.\n" +
	"- Respond in the same language and locale as the data.\n" +
	"- Keep the answer concise and concrete.\n"

// GeminiDelegate answers questions via the Gemini API. The API key comes
// from GEMINI_API_KEY; when it is absent the delegate reports itself
// unavailable and the engine degrades to a static answer.
type GeminiDelegate struct {
	model  string
	apiKey string
}

// NewGeminiDelegate reads the API key from the environment. A missing key is
// not an error; it just leaves the delegate unavailable.
func NewGeminiDelegate(model string) *GeminiDelegate {
	if model == "" {
		model = DefaultModelName
	}
	return &GeminiDelegate{
		model:  model,
		apiKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
	}
}

// Available reports whether an API key is configured.
func (d *GeminiDelegate) Available() bool {
	return d.apiKey != ""
}

// Answer sends the digest and question to the model and returns its text.
// The response is untrusted free text; no parsing is attempted here.
func (d *GeminiDelegate) Answer(ctx context.Context, digest, question string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      d.apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("Answer: create genai client: %w", err)
	}

	prompt := systemInstructions + "\nDATA SUMMARY:\n" + digest + "\nQUESTION: " + question

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, d.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("Answer: generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("Answer: empty response from model")
	}
	return text, nil
}
