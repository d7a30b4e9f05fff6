// Package generate talks to the hosted text and image generation services
// behind the board's prompt modals.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrEmptyPrompt = errors.New("prompt is required")

// QuestionPrompt wraps a topic the way the text modal asks for it.
const QuestionPrompt = "Can you please give me a question on %s. This question should be a long answer type " +
	"question and may or may not include numericals. It has to be solved by college students. " +
	"Keep it short, and to the point, in bullet points, since I want these points in a presentation"

const maxErrorBody = 512

func newHTTPClient(c *http.Client, timeout time.Duration) *http.Client {
	if c != nil {
		return c
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func postJSON(ctx context.Context, c *http.Client, url string, body any, header http.Header) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	return c.Do(req)
}

func statusError(service string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(b))

	var env struct {
		Error  *struct{ Message string } `json:"error"`
		Errors []struct{ Message string } `json:"errors"`
	}
	if json.Unmarshal(b, &env) == nil {
		switch {
		case env.Error != nil && env.Error.Message != "":
			msg = env.Error.Message
		case len(env.Errors) > 0 && env.Errors[0].Message != "":
			msg = env.Errors[0].Message
		}
	}
	return fmt.Errorf("%s: %s: %s", service, resp.Status, msg)
}
