package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewAnthropicGenerator_Defaults(t *testing.T) {
	g := NewAnthropicGenerator(AnthropicConfig{APIKey: "test-key"})

	if g.Model() != defaultAnthropicModel {
		t.Errorf("expected default model, got %s", g.Model())
	}

	if g.config.MaxTokens != defaultMaxTokens {
		t.Errorf("expected default max tokens, got %d", g.config.MaxTokens)
	}

	if g.config.Temperature != defaultTemperature {
		t.Errorf("expected default temperature, got %f", g.config.Temperature)
	}
}

func TestGenerateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("unexpected api key header: %s", got)
		}

		if got := r.Header.Get("anthropic-version"); got != anthropicVersion {
			t.Errorf("unexpected version header: %s", got)
		}

		var req messagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		if req.System == "" {
			t.Error("expected system prompt in request")
		}

		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		resp := map[string]any{
			"id":   "msg_test",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": "  You get 25 vacation days per year.  "},
			},
			"model": req.Model,
			"usage": map[string]int{"input_tokens": 500, "output_tokens": 40},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	defer server.Close()

	g := NewAnthropicGenerator(AnthropicConfig{APIKey: "test-key", BaseURL: server.URL})

	resp, err := g.GenerateText(context.Background(), TextGenerationRequest{
		SystemPrompt: "You are a helpful assistant for company policies.",
		Messages: []Message{
			{Role: "user", Content: "How many vacation days do I get?"},
		},
	})
	if err != nil {
		t.Fatalf("GenerateText failed: %v", err)
	}

	// response text is trimmed
	if resp.Text != "You get 25 vacation days per year." {
		t.Errorf("unexpected text: %q", resp.Text)
	}

	if resp.Usage.InputTokens != 500 || resp.Usage.OutputTokens != 40 {
		t.Errorf("unexpected usage: %+v", resp.Usage)
	}
}

func TestGenerateText_NoMessages(t *testing.T) {
	g := NewAnthropicGenerator(AnthropicConfig{APIKey: "test-key"})

	if _, err := g.GenerateText(context.Background(), TextGenerationRequest{}); err == nil {
		t.Error("expected error for empty messages")
	}
}

func TestGenerateText_MaxTokensOverride(t *testing.T) {
	var gotMaxTokens int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req messagesRequest
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		gotMaxTokens = req.MaxTokens

		resp := map[string]any{
			"content": []map[string]any{{"type": "text", "text": "ok"}},
			"usage":   map[string]int{"input_tokens": 1, "output_tokens": 1},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	defer server.Close()

	g := NewAnthropicGenerator(AnthropicConfig{APIKey: "test-key", BaseURL: server.URL})

	_, err := g.GenerateText(context.Background(), TextGenerationRequest{
		Messages:  []Message{{Role: "user", Content: "hi"}},
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("GenerateText failed: %v", err)
	}

	if gotMaxTokens != 256 {
		t.Errorf("expected max tokens override 256, got %d", gotMaxTokens)
	}
}

func TestGenerateText_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"type": "overloaded_error"}}`)) //nolint:errcheck
	}))
	defer server.Close()

	g := NewAnthropicGenerator(AnthropicConfig{APIKey: "test-key", BaseURL: server.URL})

	_, err := g.GenerateText(context.Background(), TextGenerationRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
