// Package openai provides a clipper.Summarizer backed by an
// OpenAI-compatible chat completions API.
package openai

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

	"github.com/fwojciec/clipper"
)

// DefaultBaseURL is the OpenAI API endpoint. Any compatible server
// works via WithBaseURL.
const DefaultBaseURL = "https://api.openai.com/v1"

// DefaultModel is the chat model used for summaries.
const DefaultModel = "gpt-4o-mini"

// defaultTimeout bounds a single summarization request.
const defaultTimeout = 30 * time.Second

const systemPrompt = "You summarize web search results. Reply with a single plain-text sentence of at most 40 words describing what the page is about. No markdown, no preamble."

// Ensure Summarizer implements clipper.Summarizer at compile time.
var _ clipper.Summarizer = (*Summarizer)(nil)

// Summarizer produces one-sentence summaries of search results via a
// chat completions endpoint.
type Summarizer struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithBaseURL points the client at an alternative compatible endpoint.
func WithBaseURL(u string) Option {
	return func(s *Summarizer) {
		s.baseURL = strings.TrimRight(u, "/")
	}
}

// WithModel overrides the chat model.
func WithModel(model string) Option {
	return func(s *Summarizer) {
		s.model = model
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Summarizer) {
		s.client = c
	}
}

// NewSummarizer creates a new Summarizer. The API key is required; a
// missing key surfaces as EUNAUTHORIZED on the first call rather than
// at construction so that the CLI can run without summaries configured.
func NewSummarizer(apiKey string, opts ...Option) *Summarizer {
	s := &Summarizer{
		client:  &http.Client{Timeout: defaultTimeout},
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		model:   DefaultModel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Summarize asks the model for a one-sentence summary of the search
// result. Callers are expected to fall back to the snippet on error.
func (s *Summarizer) Summarize(ctx context.Context, title, url, snippet string) (string, error) {
	if s.apiKey == "" {
		return "", clipper.Errorf(clipper.EUNAUTHORIZED, "summarizer API key not configured")
	}

	user := fmt.Sprintf("Title: %s\nURL: %s\nSnippet: %s", title, url, snippet)
	payload, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", clipper.Errorf(clipper.EINTERNAL, "encoding chat request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", clipper.Errorf(clipper.EINTERNAL, "building chat request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return "", clipper.Errorf(clipper.ECANCELED, "summarization canceled")
		}
		return "", clipper.Errorf(clipper.EUNAVAILABLE, "chat request failed: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", clipper.Errorf(clipper.EUNAUTHORIZED, "API key rejected with HTTP %d", resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", clipper.Errorf(clipper.ERATELIMIT, "chat API throttled")
	case resp.StatusCode >= 500:
		return "", clipper.Errorf(clipper.EUNAVAILABLE, "chat API failed with HTTP %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", clipper.Errorf(clipper.EINVALID, "chat API failed with HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", clipper.Errorf(clipper.EUNAVAILABLE, "reading chat response: %v", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", clipper.Errorf(clipper.EINTERNAL, "decoding chat response: %v", err)
	}
	if len(parsed.Choices) == 0 {
		return "", clipper.Errorf(clipper.EINTERNAL, "chat response contained no choices")
	}

	summary := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if summary == "" {
		return "", clipper.Errorf(clipper.EINTERNAL, "chat response contained an empty summary")
	}
	return summary, nil
}
