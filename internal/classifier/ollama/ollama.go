// Package ollama classifies notes with a local Ollama model via /api/generate.
package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MohammedPathariya/NoteNest/internal/classifier"
)

type Classifier struct {
	client *resty.Client
	model  string
}

// New returns a classifier talking to the Ollama server at baseURL.
func New(baseURL, model string) *Classifier {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
	return &Classifier{client: c, model: model}
}

func (c *Classifier) Ref() string { return "ollama:" + c.model }

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Format  string         `json:"format,omitempty"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

type answer struct {
	Category string `json:"category"`
}

func buildPrompt(text string, candidates []string) string {
	var b strings.Builder
	b.WriteString("Classify the note into exactly one of these categories: ")
	b.WriteString(strings.Join(candidates, ", "))
	b.WriteString(".\nAnswer with JSON {\"category\": \"<name>\"} using a name from the list verbatim.")
	b.WriteString(" If none fits, use \"Uncategorized\".\nNote: ")
	b.WriteString(text)
	return b.String()
}

// Classify returns the model's raw category answer; matching it against
// candidates is left to classifier.Auto.
func (c *Classifier) Classify(ctx context.Context, text string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", classifier.ErrNoMatch
	}
	req := generateRequest{
		Model:   c.model,
		Prompt:  buildPrompt(text, candidates),
		Format:  "json",
		Options: map[string]any{"temperature": 0},
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&req).
		Post("/api/generate")
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("ollama status %d: %s", resp.StatusCode(), resp.String())
	}
	var out generateResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("ollama error: %s", out.Error)
	}

	raw := strings.TrimSpace(out.Response)
	var a answer
	if err := json.Unmarshal([]byte(raw), &a); err == nil {
		raw = a.Category
	}
	if strings.TrimSpace(raw) == "" {
		return "", classifier.ErrNoMatch
	}
	return raw, nil
}

// HealthPing implements health.HealthPinger by checking the model is pulled.
func (c *Classifier) HealthPing(ctx context.Context) error {
	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	resp, err := c.client.R().SetContext(ctx).Get("/api/tags")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("ollama status %d", resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), &tags); err != nil {
		return fmt.Errorf("decode tags: %w", err)
	}
	want := baseModelName(c.model)
	for _, m := range tags.Models {
		if baseModelName(m.Name) == want {
			return nil
		}
	}
	return fmt.Errorf("model %s not found", want)
}

func baseModelName(name string) string {
	return strings.SplitN(name, ":", 2)[0]
}
