package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func testRequest() ChatRequest {
	return ChatRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	}
}

func TestChatStream_PassesBodyThroughUnmodified(t *testing.T) {
	sseData := "data: {\"choices\":[{\"delta\":{\"content\":\"Hello\"}}]}\n\ndata: [DONE]\n\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer test-key")
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, sseData)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(testLogger(t), srv.URL, "test-key", "test-model")
	rc, err := c.ChatStream(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("ChatStream: %v", err)
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if string(body) != sseData {
		t.Errorf("body = %q, want %q", string(body), sseData)
	}
}

func TestComplete_ReturnsFirstChoiceContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"All good."}}]}`)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(testLogger(t), srv.URL, "test-key", "test-model")
	got, err := c.Complete(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "All good." {
		t.Errorf("content = %q, want %q", got, "All good.")
	}
}

func TestDo_StatusErrors(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusPaymentRequired, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			fmt.Fprint(w, `{"error":"upstream"}`)
		}))

		c := NewClientWithBaseURL(testLogger(t), srv.URL, "test-key", "test-model")
		_, err := c.ChatStream(context.Background(), testRequest())
		srv.Close()

		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("status %d: err = %v, want *StatusError", status, err)
		}
		if statusErr.StatusCode != status {
			t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, status)
		}
	}
}

func TestDo_MissingCredentialFailsBeforeNetworkCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(testLogger(t), srv.URL, "", "test-model")
	if _, err := c.ChatStream(context.Background(), testRequest()); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("err = %v, want ErrMissingCredentials", err)
	}
	if _, err := c.Complete(context.Background(), testRequest()); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("err = %v, want ErrMissingCredentials", err)
	}
	if called {
		t.Error("gateway was called despite missing credential")
	}
}

func TestComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(testLogger(t), srv.URL, "test-key", "test-model")
	if _, err := c.Complete(context.Background(), testRequest()); err == nil {
		t.Fatal("expected error for empty choices, got nil")
	}
}
