package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func completionServer(t *testing.T, reply string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Errorf("got %d messages, want 2", len(req.Messages))
		}

		w.WriteHeader(status)
		resp := chatResponse{}
		resp.Choices = []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		}{{}}
		resp.Choices[0].Message.Content = reply
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestComplete(t *testing.T) {
	srv := completionServer(t, "a witty reply", http.StatusOK)
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "gpt-4")
	got, err := client.Complete(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "a witty reply" {
		t.Errorf("Complete() = %q, want %q", got, "a witty reply")
	}
}

func TestCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "gpt-4")
	if _, err := client.Complete(context.Background(), "system", "user"); err == nil {
		t.Error("Complete() should fail on a server error")
	}
}

func TestGenerateHintFallbackOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "gpt-4")

	// An already-expired deadline makes the request fail with
	// DeadlineExceeded without waiting out the full hint timeout.
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	hint, err := client.GenerateHint(ctx, "lake at sunset")
	if err != nil {
		t.Fatalf("GenerateHint() error = %v, want fallback hint", err)
	}
	if hint != HintFallback {
		t.Errorf("GenerateHint() = %q, want fallback %q", hint, HintFallback)
	}
}

func TestGenerateJoke(t *testing.T) {
	srv := completionServer(t, "Why did the scammer cross the road?", http.StatusOK)
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "gpt-4")
	joke, err := client.GenerateJoke(context.Background())
	if err != nil {
		t.Fatalf("GenerateJoke() error = %v", err)
	}
	if joke == "" {
		t.Error("GenerateJoke() returned an empty joke")
	}
}
