package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type ChatCompletionRequest struct {
	Model    string                  `json:"model"`
	Messages []ChatCompletionMessage `json:"messages"`
	Stream   bool                    `json:"stream"`
}

type ChatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message ChatCompletionMessage `json:"message"`
	} `json:"choices"`
}

// Client drafts flashcards through an OpenAI-compatible chat completion
// endpoint. Any provider exposing /chat/completions works.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
	Model   string
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 120 * time.Second},
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
	}
}

const systemPrompt = "You create study flashcards. Reply only in the exact format you are asked for, with no extra commentary."

func buildPrompt(topic string, count int) string {
	return fmt.Sprintf(`Create %d flashcards about "%s".
Write every card exactly like this, separated by a line containing only %s:

Question: <the question>
Answer: <the answer>`, count, topic, Delimiter)
}

// GenerateCards asks the model for count cards about topic and parses the
// reply. A reply with no usable card is reported as ErrNoCards; nothing
// half-parsed is ever returned.
func (c *Client) GenerateCards(ctx context.Context, topic string, count int) ([]Draft, error) {
	request := ChatCompletionRequest{
		Model: c.Model,
		Messages: []ChatCompletionMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(topic, count)},
		},
		Stream: false,
	}

	response, err := c.sendChatRequest(ctx, request)
	if err != nil {
		return nil, err
	}
	if len(response.Choices) == 0 {
		return nil, ErrNoCards
	}

	drafts := ParseCards(response.Choices[0].Message.Content)
	if len(drafts) == 0 {
		return nil, ErrNoCards
	}
	return drafts, nil
}

func (c *Client) sendChatRequest(ctx context.Context, request ChatCompletionRequest) (*ChatCompletionResponse, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" && c.APIKey != "none" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("LLM API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response ChatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
