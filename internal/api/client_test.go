package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQuerySendsBodyAndBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/rag/query", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "Bearer sk-abc", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "what is rag?", body["query"])
		require.EqualValues(t, 3, body["max_sections"])
		require.EqualValues(t, 7, body["max_docs"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer":"# Hi\n` + "```go\\nfmt.Println(1)\\n```" + `","sections":["a","b"],"documents_used":2,"processing_time":1.234,"timestamp":"2024-01-01T00:00:00"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, WithToken("sk-abc"))
	resp, err := c.Query(context.Background(), QueryRequest{Query: "what is rag?", MaxSections: IntPtr(3), MaxDocs: IntPtr(7)})
	require.NoError(t, err)
	require.Contains(t, resp.Answer, "fmt.Println(1)")
	require.Equal(t, []string{"a", "b"}, resp.Sections)
	require.Equal(t, 2, resp.DocumentsUsed)
	require.InDelta(t, 1.234, resp.ProcessingTime, 1e-9)
}

func TestQueryOmitsUnsetLimitsAndEmptyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasSections := body["max_sections"]
		_, hasDocs := body["max_docs"]
		require.False(t, hasSections)
		require.False(t, hasDocs)
		w.Write([]byte(`{"answer":"ok","sections":[],"documents_used":0,"processing_time":0,"timestamp":""}`))
	}))
	defer server.Close()

	resp, err := NewClient(server.URL+"/", WithToken("  ")).Query(context.Background(), QueryRequest{Query: "q"})
	require.NoError(t, err)
	require.Equal(t, "ok", resp.Answer)
}

func TestQueryRejectsBlankWithoutRequest(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits.Add(1) }))
	defer server.Close()

	_, err := NewClient(server.URL).Query(context.Background(), QueryRequest{Query: "   "})
	require.ErrorIs(t, err, ErrEmptyQuery)
	require.Zero(t, hits.Load())
	require.Equal(t, "Type a question first.", Message(err))
}

func TestWithAPIKeyCopiesClient(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Write([]byte(`{"status":"healthy","timestamp":"t","version":"1.0.0"}`))
	}))
	defer server.Close()

	base := NewClient(server.URL, WithToken("first"))
	_, err := base.WithAPIKey("second").Health(context.Background())
	require.NoError(t, err)
	_, err = base.Health(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Bearer second", "Bearer first"}, seen)
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/v1/rag/health", r.URL.Path)
		w.Write([]byte(`{"status":"healthy","timestamp":"2024-01-01T00:00:00","version":"1.0.0"}`))
	}))
	defer server.Close()

	h, err := NewClient(server.URL).Health(context.Background())
	require.NoError(t, err)
	require.True(t, h.Healthy())
	require.Equal(t, "1.0.0", h.Version)
}

func TestHTTPErrorCarriesDetail(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		detail  string
		message string
	}{
		{"string detail", 500, `{"detail":"Vector store error: boom"}`, "Vector store error: boom", "Vector store error: boom"},
		{"validation list", 422, `{"detail":[{"msg":"field required"},{"msg":"bad type"}]}`, "field required; bad type", "field required; bad type"},
		{"no body", 502, ``, "", "Request failed with status code 502"},
		{"unauthorized", 401, `{"detail":"Invalid API key"}`, "Invalid API key", "The API key was rejected. Check it in Settings."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL).Query(context.Background(), QueryRequest{Query: "q"})
			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, tc.status, apiErr.Status)
			require.Equal(t, tc.detail, apiErr.Detail)
			require.Equal(t, tc.message, Message(err))
		})
	}
}

func TestNetworkErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url).Health(context.Background())
	require.Error(t, err)
	require.True(t, strings.HasPrefix(Message(err), "Network error: "))
}

func TestQueryHonoursContextCancel(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewClient(server.URL).Query(ctx, QueryRequest{Query: "slow"})
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueryRawReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer":"a","sections":["s"],"documents_used":1,"processing_time":0.5,"timestamp":"t"}`))
	}))
	defer server.Close()

	resp, raw, err := NewClient(server.URL).QueryRaw(context.Background(), QueryRequest{Query: "q"})
	require.NoError(t, err)
	require.Equal(t, "a", resp.Answer)
	require.JSONEq(t, `{"answer":"a","sections":["s"],"documents_used":1,"processing_time":0.5,"timestamp":"t"}`, string(raw))
}
