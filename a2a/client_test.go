package a2a

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_SendMessage(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if r.Header.Get("Content-Type") != "application/json" {
				t.Errorf("expected JSON content type")
			}
			if r.URL.Path != "/a2a/t-tok123" {
				t.Errorf("expected token path, got %s", r.URL.Path)
			}

			var req SendRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
			if req.Message.Kind != "message" {
				t.Errorf("expected kind message, got %s", req.Message.Kind)
			}
			if req.Message.MessageID == "" {
				t.Error("message_id missing")
			}
			if req.Message.ContextID != "ctx-old" {
				t.Errorf("expected ctx-old, got %s", req.Message.ContextID)
			}

			resp := SendResponse{Result: Result{
				ContextID: "ctx-new",
				History: []Message{
					NewMessage(MessageRoleUser, NewTextPart("Hello")),
					NewMessage(MessageRoleAgent, NewTextPart("Hello back!")),
				},
			}}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		client := NewClient(server.URL+"/", "tok123")

		msg := NewMessage(MessageRoleUser, NewTextPart("Hello"))
		msg.ContextID = "ctx-old"
		resp, err := client.SendMessage(context.Background(), msg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if resp.Result.ContextID != "ctx-new" {
			t.Errorf("expected ctx-new, got %s", resp.Result.ContextID)
		}
		if got := ExtractResponseText(resp); got != "Hello back!" {
			t.Errorf("unexpected response text %q", got)
		}
	})

	t.Run("context id omitted when unset", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var raw map[string]map[string]any
			if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
			if _, present := raw["message"]["context_id"]; present {
				t.Error("context_id should be omitted for a fresh conversation")
			}
			json.NewEncoder(w).Encode(SendResponse{})
		}))
		defer server.Close()

		client := NewClient(server.URL, "tok")
		_, err := client.SendMessage(context.Background(), NewMessage(MessageRoleUser, NewTextPart("hi")))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("HTTP error carries status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := NewClient(server.URL, "tok")
		_, err := client.SendMessage(context.Background(), NewMessage(MessageRoleUser, NewTextPart("hi")))
		if err == nil {
			t.Fatal("expected error")
		}

		var httpErr *HTTPError
		if !errors.As(err, &httpErr) {
			t.Fatalf("expected *HTTPError, got %T", err)
		}
		if httpErr.StatusCode != http.StatusForbidden {
			t.Errorf("StatusCode = %d, want 403", httpErr.StatusCode)
		}
	})

	t.Run("malformed response body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewClient(server.URL, "tok")
		_, err := client.SendMessage(context.Background(), NewMessage(MessageRoleUser, NewTextPart("hi")))
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestClient_BaseURLNormalized(t *testing.T) {
	client := NewClient("http://example.com///", "tok")
	if client.BaseURL() != "http://example.com" {
		t.Errorf("BaseURL() = %q", client.BaseURL())
	}
	if client.MessageURL() != "http://example.com/a2a/t-tok" {
		t.Errorf("MessageURL() = %q", client.MessageURL())
	}
}

func TestFetchAgentCard(t *testing.T) {
	t.Run("success with headers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-API-KEY") != "tok" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(AgentCard{Name: "zero", Description: "an agent"})
		}))
		defer server.Close()

		card, err := FetchAgentCard(context.Background(), server.Client(), server.URL, map[string]string{"X-API-KEY": "tok"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if card.Name != "zero" {
			t.Errorf("Name = %q, want zero", card.Name)
		}
	})

	t.Run("non-200 is HTTPError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := FetchAgentCard(context.Background(), server.Client(), server.URL, nil)
		var httpErr *HTTPError
		if !errors.As(err, &httpErr) {
			t.Fatalf("expected *HTTPError, got %v", err)
		}
		if httpErr.StatusCode != http.StatusNotFound {
			t.Errorf("StatusCode = %d, want 404", httpErr.StatusCode)
		}
	})
}
