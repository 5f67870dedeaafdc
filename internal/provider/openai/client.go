package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Cyclone1070/aish/internal/provider"
	"github.com/Cyclone1070/aish/internal/tool"
)

type toolSpec struct {
	Type     string           `json:"type"`
	Function tool.Declaration `json:"function"`
}

type chatRequest struct {
	Model     string             `json:"model"`
	Messages  []provider.Message `json:"messages"`
	Tools     []toolSpec         `json:"tools,omitempty"`
	MaxTokens int                `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message provider.Message `json:"message"`
	} `json:"choices"`
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client talks to an OpenAI-compatible chat/completions endpoint.
type Client struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	model      string
	maxTokens  int
	logger     *slog.Logger
}

// New creates a Client. apiURL is the base URL without the trailing
// /chat/completions, e.g. https://api.openai.com/v1.
func New(httpClient *http.Client, apiURL, apiKey, model string, maxTokens int, logger *slog.Logger) *Client {
	if httpClient == nil {
		panic("httpClient is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Client{
		httpClient: httpClient,
		apiURL:     strings.TrimRight(apiURL, "/"),
		apiKey:     apiKey,
		model:      model,
		maxTokens:  maxTokens,
		logger:     logger,
	}
}

// Generate sends the conversation and returns the first choice's message.
func (c *Client) Generate(ctx context.Context, messages []provider.Message, decls []tool.Declaration) (*provider.Message, error) {
	req := chatRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: c.maxTokens,
	}
	for _, d := range decls {
		req.Tools = append(req.Tools, toolSpec{Type: provider.ToolCallType, Function: d})
	}

	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, provider.ErrEmptyChoices
	}
	msg := resp.Choices[0].Message
	return &msg, nil
}

// TestAPIKey sends a minimal request to check that the key and endpoint work.
func (c *Client) TestAPIKey(ctx context.Context) error {
	_, err := c.send(ctx, chatRequest{
		Model:     c.model,
		Messages:  []provider.Message{{Role: provider.RoleUser, Content: "Hi"}},
		MaxTokens: 5,
	})
	return err
}

func (c *Client) send(ctx context.Context, body chatRequest) (*chatResponse, error) {
	url := c.apiURL + "/chat/completions"

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &provider.RequestError{URL: url, Cause: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	started := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &provider.RequestError{URL: url, Cause: err}
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &provider.RequestError{URL: url, Cause: err}
	}

	c.logger.Debug("completion response",
		"status", httpResp.StatusCode,
		"messages", len(body.Messages),
		"duration", time.Since(started))

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		apiErr := &provider.APIError{StatusCode: httpResp.StatusCode, Status: httpResp.Status}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil && eb.Error.Message != "" {
			apiErr.Message = eb.Error.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return nil, apiErr
	}

	var out chatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &provider.DecodeError{Body: string(data), Cause: err}
	}
	return &out, nil
}

// IsAuthError reports whether err is a rejected API key.
func IsAuthError(err error) bool {
	var apiErr *provider.APIError
	return errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}
