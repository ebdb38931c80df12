package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestNewRejectsUnknownProvider verifies the provider set is closed.
func TestNewRejectsUnknownProvider(t *testing.T) {
	if _, err := New(Settings{Provider: "anthropic"}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
	if _, err := New(Settings{}); err == nil {
		t.Fatalf("expected error for empty provider")
	}
}

// TestNewRequiresAPIKeyForHostedProviders verifies github and gemini need a
// key while ollama does not.
func TestNewRequiresAPIKeyForHostedProviders(t *testing.T) {
	for _, name := range []string{ProviderGitHub, ProviderGemini} {
		if _, err := New(Settings{Provider: name}); err == nil {
			t.Fatalf("provider %s must require an API key", name)
		}
	}
	provider, err := New(Settings{Provider: ProviderOllama})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.Name() != ProviderOllama {
		t.Fatalf("name = %q", provider.Name())
	}
}

// TestOllamaGenerateText verifies request shape and response extraction.
func TestOllamaGenerateText(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response": "  solid project overall  "}`))
	}))
	defer server.Close()

	provider, err := New(Settings{Provider: ProviderOllama, BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := provider.GenerateText(context.Background(), "prompt", Options{MaxTokens: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "solid project overall" {
		t.Fatalf("text = %q", text)
	}
	if gotPath != "/api/generate" {
		t.Fatalf("path = %q", gotPath)
	}
}

// TestGitHubGenerateText verifies the OpenAI-compatible flow including the
// bearer token.
func TestGitHubGenerateText(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "good work"}}]}`))
	}))
	defer server.Close()

	provider, err := New(Settings{Provider: ProviderGitHub, APIKey: "key-123", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := provider.GenerateText(context.Background(), "prompt", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "good work" {
		t.Fatalf("text = %q", text)
	}
	if gotAuth != "Bearer key-123" {
		t.Fatalf("authorization = %q", gotAuth)
	}
}

// TestGeminiGenerateText verifies path construction and candidate
// extraction.
func TestGeminiGenerateText(t *testing.T) {
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "well structured"}]}}]}`))
	}))
	defer server.Close()

	provider, err := New(Settings{Provider: ProviderGemini, APIKey: "key-456", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := provider.GenerateText(context.Background(), "prompt", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "well structured" {
		t.Fatalf("text = %q", text)
	}
	if gotPath != "/v1beta/models/gemini-pro:generateContent" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotKey != "key-456" {
		t.Fatalf("key = %q", gotKey)
	}
}

// TestGenerateTextSurfacesHTTPErrors verifies non-2xx statuses become
// errors.
func TestGenerateTextSurfacesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider, err := New(Settings{Provider: ProviderOllama, BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = provider.GenerateText(context.Background(), "prompt", Options{})
	if err == nil || !strings.Contains(err.Error(), "status 429") {
		t.Fatalf("expected status error, got %v", err)
	}
}

// TestGenerateTextRejectsEmptyResponse verifies blank completions are
// treated as failures.
func TestGenerateTextRejectsEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response": ""}`))
	}))
	defer server.Close()

	provider, err := New(Settings{Provider: ProviderOllama, BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := provider.GenerateText(context.Background(), "prompt", Options{}); err == nil {
		t.Fatalf("expected empty-response error")
	}
}
