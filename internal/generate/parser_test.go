package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseCards(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected []Draft
	}{
		{
			name: "two well formed cards",
			raw: `Question: What is the capital of France?
Answer: Paris
---
Question: What is 2+2?
Answer: 4`,
			expected: []Draft{
				{Question: "What is the capital of France?", Answer: "Paris"},
				{Question: "What is 2+2?", Answer: "4"},
			},
		},
		{
			name: "case insensitive prefixes",
			raw: `QUESTION: One?
answer: Yes
---
question:   Two?
ANSWER:   Also yes`,
			expected: []Draft{
				{Question: "One?", Answer: "Yes"},
				{Question: "Two?", Answer: "Also yes"},
			},
		},
		{
			name: "malformed segment dropped",
			raw: `Question: Good card?
Answer: Yes
---
Here is a card without the format
---
Question: Missing the answer line
---
Answer: Missing the question line
---
Question: Last good card?
Answer: Indeed`,
			expected: []Draft{
				{Question: "Good card?", Answer: "Yes"},
				{Question: "Last good card?", Answer: "Indeed"},
			},
		},
		{
			name: "surrounding chatter ignored",
			raw: `Sure! Here are your flashcards:

Question: Only the prefixed lines count?
Answer: Exactly
`,
			expected: []Draft{
				{Question: "Only the prefixed lines count?", Answer: "Exactly"},
			},
		},
		{
			name:     "empty reply",
			raw:      "",
			expected: nil,
		},
		{
			name:     "nothing usable",
			raw:      "I cannot help with that.",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseCards(tc.raw)

			if len(got) != len(tc.expected) {
				t.Fatalf("Expected %d drafts, got %d: %+v", len(tc.expected), len(got), got)
			}
			for i, want := range tc.expected {
				if got[i] != want {
					t.Errorf("Draft %d: expected %+v, got %+v", i, want, got[i])
				}
			}
		})
	}
}

func completionReply(content string) string {
	reply := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	data, _ := json.Marshal(reply)
	return string(data)
}

func TestGenerateCards(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected /chat/completions, got %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		var req ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Errorf("Expected system and user messages, got %d", len(req.Messages))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionReply("Question: Q1?\nAnswer: A1\n---\nQuestion: Q2?\nAnswer: A2")))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")
	drafts, err := client.GenerateCards(context.Background(), "World capitals", 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Expected bearer auth header, got %q", gotAuth)
	}
	if len(drafts) != 2 {
		t.Fatalf("Expected 2 drafts, got %d", len(drafts))
	}
	if drafts[0].Question != "Q1?" || drafts[1].Answer != "A2" {
		t.Errorf("Unexpected drafts: %+v", drafts)
	}
}

func TestGenerateCardsUnusableReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionReply("Sorry, I can only chat.")))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "test-model")
	_, err := client.GenerateCards(context.Background(), "Anything", 3)
	if !errors.Is(err, ErrNoCards) {
		t.Errorf("Expected ErrNoCards, got %v", err)
	}
}

func TestGenerateCardsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "test-model")
	_, err := client.GenerateCards(context.Background(), "Anything", 3)
	if err == nil {
		t.Fatal("Expected an error for a non-200 upstream response")
	}
	if errors.Is(err, ErrNoCards) {
		t.Error("Expected a transport error, not ErrNoCards")
	}
}
