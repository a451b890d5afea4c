package pronounce_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/RogerChu8/voiceRecorder-app/internal/config"
	"github.com/RogerChu8/voiceRecorder-app/internal/pronounce"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*pronounce.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := pronounce.New("test-key", "eastus", server.URL, "en-US", 5*time.Second,
		pronounce.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("pronounce.New: %v", err)
	}
	return client, server
}

func TestScoreSuccess(t *testing.T) {
	var gotKey, gotReference, gotLanguage string
	var gotBody []byte

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		gotReference = r.URL.Query().Get("referenceText")
		gotLanguage = r.URL.Query().Get("language")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accuracyScore": 91.5, "fluencyScore": 88, "prosodyScore": 79.25}`))
	})

	assessment, err := client.Score(context.Background(), []byte("RIFF-audio"), "hello world")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if assessment.Accuracy != 91.5 || assessment.Fluency != 88 || assessment.Prosody != 79.25 {
		t.Fatalf("assessment = %+v", assessment)
	}
	if gotKey != "test-key" {
		t.Fatalf("subscription key header = %q", gotKey)
	}
	if gotReference != "hello world" {
		t.Fatalf("referenceText = %q", gotReference)
	}
	if gotLanguage != "en-US" {
		t.Fatalf("language = %q", gotLanguage)
	}
	if string(gotBody) != "RIFF-audio" {
		t.Fatalf("request body = %q", gotBody)
	}
}

func TestScoreServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := client.Score(context.Background(), []byte("audio"), "text")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("error should carry the status code: %v", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("error should carry the body detail: %v", err)
	}
}

func TestScoreRejectsEmptyInputs(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made")
	})

	if _, err := client.Score(context.Background(), nil, "text"); err == nil {
		t.Fatal("expected error for empty audio")
	}
	if _, err := client.Score(context.Background(), []byte("audio"), "   "); err == nil {
		t.Fatal("expected error for blank reference text")
	}
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name    string
		apiKey  string
		region  string
		baseURL string
	}{
		{"missing key", "", "eastus", "https://example.com"},
		{"missing region", "key", "", "https://example.com"},
		{"missing base url", "key", "eastus", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := pronounce.New(tc.apiKey, tc.region, tc.baseURL, "en-US", time.Second); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

type captureTransport struct {
	host string
}

func (c *captureTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.host = r.URL.Host
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(`{"accuracyScore": 1, "fluencyScore": 1, "prosodyScore": 1}`)),
		Header:     make(http.Header),
	}, nil
}

func TestNewSubstitutesRegion(t *testing.T) {
	transport := &captureTransport{}
	client, err := pronounce.New("key", "westeu", "https://%s.speech.scoring.net/v1/assess", "en-US", time.Second,
		pronounce.WithHTTPClient(&http.Client{Transport: transport}))
	if err != nil {
		t.Fatalf("pronounce.New: %v", err)
	}
	if _, err := client.Score(context.Background(), []byte("audio"), "text"); err != nil {
		t.Fatalf("Score: %v", err)
	}
	if transport.host != "westeu.speech.scoring.net" {
		t.Fatalf("request host = %q, want region substituted", transport.host)
	}
}

func TestNewFromConfigDisabled(t *testing.T) {
	client, err := pronounce.NewFromConfig(config.Pronunciation{Enabled: false})
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if client != nil {
		t.Fatal("disabled config should yield a nil client")
	}
}
