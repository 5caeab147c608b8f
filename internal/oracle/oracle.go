// Package oracle answers player questions with a Gemini model. It only sees
// the room title and recent output, never the game state.
package oracle

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"
)

//go:embed prompts/ask.txt
var askPrompt string

var askTemplate = template.Must(template.New("ask").Parse(askPrompt))

const maxLines = 3

type Oracle struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// Query is what the player asked and what they could see when asking.
type Query struct {
	Room     string
	Context  []string
	Question string
}

func New(ctx context.Context, apiKey string) (*Oracle, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Oracle{
		client: client,
		model:  client.GenerativeModel("gemini-2.5-flash"),
	}, nil
}

func (o *Oracle) Close() {
	o.client.Close()
}

// Ask returns the oracle's answer as display lines prefixed with ">> ".
func (o *Oracle) Ask(ctx context.Context, q Query) ([]string, error) {
	prompt, err := renderPrompt(q)
	if err != nil {
		return nil, err
	}

	resp, err := o.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("asking gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content returned from Gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response type from Gemini")
	}
	return parseLines(string(text))
}

func renderPrompt(q Query) (string, error) {
	var buf bytes.Buffer
	if err := askTemplate.Execute(&buf, q); err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}

func cleanYAML(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```yaml")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func parseLines(text string) ([]string, error) {
	var respData struct {
		Lines []string `yaml:"lines"`
	}
	if err := yaml.Unmarshal([]byte(cleanYAML(text)), &respData); err != nil {
		return nil, fmt.Errorf("failed to parse oracle YAML: %w", err)
	}

	var out []string
	for _, l := range respData.Lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, ">> "+l)
		if len(out) == maxLines {
			break
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("oracle returned no lines")
	}
	return out, nil
}
