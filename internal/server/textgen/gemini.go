// Package textgen talks to a Gemini-compatible generateContent API.
package textgen

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/dramahub/internal/common"
	"github.com/dmitrijs2005/dramahub/internal/logging"
	"github.com/dmitrijs2005/dramahub/internal/server/breaker"
	"github.com/goccy/go-json"
)

const DefaultModel = "models/gemini-2.5-flash-preview-05-20"

const maxResponseSize = 1 << 20

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type Options struct {
	APIURL  string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type GeminiClient struct {
	endpoint string
	apiKey   string
	http     *http.Client
	breaker  *breaker.Breaker[string]
	logger   logging.Logger
}

func NewGeminiClient(opts Options, l logging.Logger) *GeminiClient {
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}

	l = l.With("collaborator", "textgen")
	return &GeminiClient{
		endpoint: strings.TrimRight(opts.APIURL, "/") + "/" + model + ":generateContent",
		apiKey:   opts.APIKey,
		http:     &http.Client{Timeout: opts.Timeout},
		breaker:  breaker.New[string]("textgen", breaker.DefaultSettings(), l),
		logger:   l,
	}
}

// Generate sends prompt as a single user turn and returns the text of the
// first candidate.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.breaker.Execute(ctx, func() (string, error) {
		return c.generate(ctx, prompt)
	})
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	u := c.endpoint + "?" + url.Values{"key": {c.apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: textgen request: %v", common.ErrorCollaboratorUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: textgen: %v", common.ErrorCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("%w: textgen read: %v", common.ErrorCollaboratorUnavailable, err)
	}

	c.logger.Debug(ctx, "textgen call", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: textgen: status %d", common.ErrorCollaboratorUnavailable, resp.StatusCode)
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: textgen decode: %v", common.ErrorCollaboratorUnavailable, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: textgen: empty response", common.ErrorCollaboratorUnavailable)
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}
