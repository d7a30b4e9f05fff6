package generate

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// AccountPlaceholder in ImageGenerator.URL is replaced with the account id.
const AccountPlaceholder = "{account}"

// ImageGenerator calls a Workers-AI-style text-to-image endpoint that answers
// with raw image bytes.
type ImageGenerator struct {
	URL     string
	Account string
	APIKey  string
	Client  *http.Client
}

func NewImageGenerator(endpoint, account, apiKey string, timeout time.Duration) *ImageGenerator {
	return &ImageGenerator{
		URL:     endpoint,
		Account: account,
		APIKey:  apiKey,
		Client:  newHTTPClient(nil, timeout),
	}
}

// Generate returns the encoded image produced for prompt.
func (g *ImageGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	endpoint := strings.ReplaceAll(g.URL, AccountPlaceholder, g.Account)

	header := http.Header{}
	if g.APIKey != "" {
		header.Set("Authorization", "Bearer "+g.APIKey)
	}
	resp, err := postJSON(ctx, newHTTPClient(g.Client, 0), endpoint, map[string]string{"prompt": prompt}, header)
	if err != nil {
		return nil, fmt.Errorf("image generation: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK || strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		return nil, statusError("image generation", resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("image generation: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image generation: empty response")
	}
	log.Printf("[GEN] image for %q (%d bytes)", prompt, len(data))
	return data, nil
}

// GenerateImage is Generate followed by a decode.
func (g *ImageGenerator) GenerateImage(ctx context.Context, prompt string) (image.Image, error) {
	data, err := g.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image generation: decode: %w", err)
	}
	return img, nil
}
