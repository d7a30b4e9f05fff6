package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TextGenerator calls a generateContent-style endpoint.
type TextGenerator struct {
	URL    string
	APIKey string
	// Template is applied with fmt.Sprintf to the topic; empty sends the topic as-is.
	Template string
	Client   *http.Client
}

func NewTextGenerator(endpoint, apiKey string, timeout time.Duration) *TextGenerator {
	return &TextGenerator{
		URL:      endpoint,
		APIKey:   apiKey,
		Template: QuestionPrompt,
		Client:   newHTTPClient(nil, timeout),
	}
}

type textPart struct {
	Text string `json:"text"`
}

type textContent struct {
	Parts []textPart `json:"parts"`
}

type textRequest struct {
	Contents []textContent `json:"contents"`
}

type textResponse struct {
	Candidates []struct {
		Content textContent `json:"content"`
	} `json:"candidates"`
}

// Generate returns the service's answer for topic.
func (g *TextGenerator) Generate(ctx context.Context, topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", ErrEmptyPrompt
	}
	prompt := topic
	if g.Template != "" {
		prompt = fmt.Sprintf(g.Template, topic)
	}

	endpoint, err := url.Parse(g.URL)
	if err != nil {
		return "", fmt.Errorf("text endpoint: %w", err)
	}
	if g.APIKey != "" {
		q := endpoint.Query()
		q.Set("key", g.APIKey)
		endpoint.RawQuery = q.Encode()
	}

	req := textRequest{Contents: []textContent{{Parts: []textPart{{Text: prompt}}}}}
	resp, err := postJSON(ctx, newHTTPClient(g.Client, 0), endpoint.String(), req, nil)
	if err != nil {
		return "", fmt.Errorf("text generation: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", statusError("text generation", resp)
	}

	var out textResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("text generation: decode: %w", err)
	}
	var sb strings.Builder
	if len(out.Candidates) > 0 {
		for _, p := range out.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("text generation: empty response")
	}
	log.Printf("[GEN] text for %q (%d chars)", topic, sb.Len())
	return sb.String(), nil
}
