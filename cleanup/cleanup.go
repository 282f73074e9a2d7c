// Package cleanup is the optional text post-processing stage: raw
// speech-to-text output goes to an OpenAI-compatible chat endpoint and comes
// back with fillers removed and punctuation fixed. Every failure path keeps
// the raw text usable — this stage is never fatal to a run.
package cleanup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// ErrUnavailable marks the stage as not configured (no API key). Callers
// fall back to raw text without treating it as a collaborator failure.
var ErrUnavailable = errors.New("cleanup unavailable: no API key configured")

const systemPrompt = `You are a dictation post-processor. You receive raw speech-to-text output and return a cleaned version. Rules:

1. Remove filler words (um, uh, like, you know) unless they're clearly intentional.
2. Fix grammar and punctuation.
3. Resolve self-corrections — e.g. "Tuesday no Wednesday" becomes "Wednesday".
4. Preserve the speaker's tone: casual stays casual, formal stays formal.
5. Do NOT add information, change meaning, or editorialize.
6. Return ONLY the cleaned text — no commentary, no quotes, no markdown.`

const DefaultModel = "gpt-4o-mini"

type Config struct {
	APIKey  string
	BaseURL string // empty = api.openai.com
	Model   string
}

// Client cleans up raw transcriptions. The underlying API client is built
// once, on first use.
type Client struct {
	cfg Config

	once   sync.Once
	client *openai.Client
}

func New(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Client{cfg: cfg}
}

func (c *Client) ensure() {
	c.once.Do(func() {
		apiCfg := openai.DefaultConfig(c.cfg.APIKey)
		if c.cfg.BaseURL != "" {
			apiCfg.BaseURL = c.cfg.BaseURL
		}
		c.client = openai.NewClientWithConfig(apiCfg)
	})
}

// Cleanup returns the cleaned text, or the raw text together with an error
// describing why cleanup didn't happen. The returned text is always usable.
func (c *Client) Cleanup(ctx context.Context, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return raw, nil
	}
	if c.cfg.APIKey == "" {
		return raw, ErrUnavailable
	}
	c.ensure()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: raw},
		},
	})
	if err != nil {
		return raw, fmt.Errorf("cleanup request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return raw, fmt.Errorf("cleanup: empty response")
	}

	cleaned := strings.TrimSpace(resp.Choices[0].Message.Content)
	if cleaned == "" {
		return raw, nil
	}
	return cleaned, nil
}
