package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cvstudio/internal/config"
	"cvstudio/internal/cv"
	"cvstudio/internal/errcode"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.AIConfig{
		BaseURL:     server.URL,
		Timeout:     5 * time.Second,
		MaxAttempts: 1,
	})
	return client, server
}

func TestAnalyzeDecodesFencedContent(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/analyze" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content": "` + "```json\\n{\\\"feedback\\\":[\\\"Add metrics to your experience bullets\\\"],\\\"scores\\\":{\\\"completeness\\\":80,\\\"quality\\\":70,\\\"atsCompatibility\\\":90,\\\"impact\\\":60}}\\n```" + `"}`))
	}))

	analysis, err := client.Analyze(context.Background(), cv.NewCVData())
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if len(analysis.Feedback) != 1 {
		t.Fatalf("expected 1 feedback item, got %d", len(analysis.Feedback))
	}
	if analysis.Scores.Completeness != 80 || analysis.Scores.ATSCompatibility != 90 {
		t.Errorf("unexpected scores: %+v", analysis.Scores)
	}
}

func TestImproveTextReturnsContent(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content": "Led a team of five engineers."}`))
	}))

	improved, err := client.ImproveText(context.Background(), "I was leading some engineers", "experience description")
	if err != nil {
		t.Fatalf("ImproveText returned error: %v", err)
	}
	if improved != "Led a team of five engineers." {
		t.Errorf("unexpected improved text: %q", improved)
	}
}

func TestMatchJobDecodesKeywords(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content": "{\"score\":72,\"matchedKeywords\":[\"go\",\"postgres\"],\"missingKeywords\":[\"kubernetes\"],\"suggestions\":[\"Mention container orchestration\"]}"}`))
	}))

	match, err := client.MatchJob(context.Background(), cv.NewCVData(), "Backend engineer, Go and Kubernetes")
	if err != nil {
		t.Fatalf("MatchJob returned error: %v", err)
	}
	if match.Score != 72 {
		t.Errorf("score = %d, want 72", match.Score)
	}
	if len(match.MatchedKeywords) != 2 || len(match.MissingKeywords) != 1 {
		t.Errorf("unexpected keywords: %+v", match)
	}
}

func TestExtractFromTextNormalizesResult(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content": "{\"personal_info\":{\"full_name\":\"Ada Lovelace\",\"email\":\"ada@example.com\"}}"}`))
	}))

	data, err := client.ExtractFromText(context.Background(), "Ada Lovelace, ada@example.com, analyst")
	if err != nil {
		t.Fatalf("ExtractFromText returned error: %v", err)
	}
	if data.PersonalInfo.FullName != "Ada Lovelace" {
		t.Errorf("fullName = %q", data.PersonalInfo.FullName)
	}
	// Partial payloads still come back with a complete section order.
	if len(data.SectionOrder) != len(cv.AllSections()) {
		t.Errorf("section order not normalized: %d entries", len(data.SectionOrder))
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   int
	}{
		{"bad request", http.StatusBadRequest, errcode.Validation},
		{"unprocessable", http.StatusUnprocessableEntity, errcode.Validation},
		{"rate limited", http.StatusTooManyRequests, errcode.RateLimit},
		{"server error", http.StatusInternalServerError, errcode.Unknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(`{"error":"nope"}`))
			}))

			_, err := client.Analyze(context.Background(), cv.NewCVData())
			if err == nil {
				t.Fatal("expected error")
			}
			var aiErr *Error
			if !errors.As(err, &aiErr) {
				t.Fatalf("expected *ai.Error, got %T", err)
			}
			if aiErr.Code != tc.want {
				t.Errorf("code = %d, want %d", aiErr.Code, tc.want)
			}
			if aiErr.Message != "nope" {
				t.Errorf("message = %q, want gateway error body", aiErr.Message)
			}
		})
	}
}

func TestRetryOnServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"content": "better"}`))
	}))
	defer server.Close()

	client := NewClient(config.AIConfig{
		BaseURL:     server.URL,
		Timeout:     5 * time.Second,
		MaxAttempts: 2,
	})

	improved, err := client.ImproveText(context.Background(), "text", "summary")
	if err != nil {
		t.Fatalf("ImproveText returned error after retry: %v", err)
	}
	if improved != "better" {
		t.Errorf("improved = %q", improved)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestCleanJSONBlock(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"  ```json\n{\"a\":1}\n```  ", "{\"a\":1}"},
		{"plain text", "plain text"},
	}
	for _, tc := range cases {
		if got := CleanJSONBlock(tc.in); got != tc.want {
			t.Errorf("CleanJSONBlock(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
