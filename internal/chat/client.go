// Package chat implements the proxy to the hosted chat completion
// collaborator.  Conversations are forwarded together with a
// context-dependent system instruction and the raw completion text is
// relayed back; no streaming, retries or token budgeting beyond the
// session-history slice.
package chat

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "strings"
    "time"
)

// Message is one turn of the conversation in the collaborator's wire
// format.
type Message struct {
    Role    string `json:"role"`
    Content string `json:"content"`
}

// UpstreamError reports a non-2xx response from the completion
// collaborator.
type UpstreamError struct {
    Status int
    Body   string
}

func (e *UpstreamError) Error() string {
    return fmt.Sprintf("upstream completion error: status %d: %s", e.Status, e.Body)
}

// IsQuotaError reports whether err looks like a rate/quota rejection
// from the collaborator.  Classification is heuristic: a 429 status or
// a "quota" substring in the failure text.
func IsQuotaError(err error) bool {
    if err == nil {
        return false
    }
    if ue, ok := err.(*UpstreamError); ok && ue.Status == http.StatusTooManyRequests {
        return true
    }
    msg := strings.ToLower(err.Error())
    return strings.Contains(msg, "quota") || strings.Contains(msg, "429")
}

// Client calls an OpenRouter-compatible completions endpoint.
type Client struct {
    apiKey  string
    baseURL string
    model   string
    appName string
    http    *http.Client
}

// NewClient builds a Client.  An empty apiKey leaves the chat feature
// disabled; handlers check Enabled before use.
func NewClient(apiKey, baseURL, model, appName string) *Client {
    return &Client{
        apiKey:  apiKey,
        baseURL: baseURL,
        model:   model,
        appName: appName,
        http:    &http.Client{Timeout: 60 * time.Second},
    }
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool { return c.apiKey != "" }

type completionRequest struct {
    Model    string    `json:"model"`
    Stream   bool      `json:"stream"`
    Messages []Message `json:"messages"`
}

type completionResponse struct {
    Choices []struct {
        Message Message `json:"message"`
    } `json:"choices"`
}

// Complete sends the system instruction plus conversation to the
// collaborator and returns the assistant's reply text.
func (c *Client) Complete(ctx context.Context, system string, messages []Message) (string, error) {
    payload := completionRequest{
        Model:    c.model,
        Stream:   false,
        Messages: append([]Message{{Role: "system", Content: system}}, messages...),
    }
    body, err := json.Marshal(payload)
    if err != nil {
        return "", err
    }
    req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
    if err != nil {
        return "", err
    }
    req.Header.Set("Authorization", "Bearer "+c.apiKey)
    req.Header.Set("Content-Type", "application/json")
    req.Header.Set("X-Title", c.appName)

    resp, err := c.http.Do(req)
    if err != nil {
        return "", err
    }
    defer resp.Body.Close()

    raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
    if err != nil {
        return "", err
    }
    if resp.StatusCode < 200 || resp.StatusCode > 299 {
        return "", &UpstreamError{Status: resp.StatusCode, Body: string(raw)}
    }

    var out completionResponse
    if err := json.Unmarshal(raw, &out); err != nil {
        return "", fmt.Errorf("decode completion response: %w", err)
    }
    if len(out.Choices) == 0 {
        return "", fmt.Errorf("completion response contained no choices")
    }
    return out.Choices[0].Message.Content, nil
}
