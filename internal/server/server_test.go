package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/benefits-advisor/internal/generator"
	"github.com/jonathan/benefits-advisor/internal/llm"
	"github.com/jonathan/benefits-advisor/internal/server/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient implements llm.Client with a canned reply
type fakeClient struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

func newTestServer(t *testing.T, client llm.Client) *Server {
	t.Helper()
	s, err := New(Config{
		PreviewRows:    2,
		MaxUploadBytes: 1 << 20,
		RateLimit:      &ratelimit.Config{Enabled: false},
	}, client)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func multipartUpload(t *testing.T, path, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func demoProfile(t *testing.T) string {
	t.Helper()
	content, err := generator.Render("Alice Johnson", 30, generator.TierDemo)
	require.NoError(t, err)
	return content
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, nil)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = serve(s, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)

	w := serve(s, httptest.NewRequest(http.MethodOptions, "/profiles/parse", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGenerateEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/profiles/generate",
		strings.NewReader(`{"name": "Alice Johnson", "age": 30}`))
	w := serve(s, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "alice_johnson_profile.csv")
	assert.Equal(t, demoProfile(t), w.Body.String())
}

func TestGenerateEndpoint_LargeTier(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/profiles/generate",
		strings.NewReader(`{"name": "Bob Smith", "age": 42, "tier": "large"}`))
	w := serve(s, req)

	require.Equal(t, http.StatusOK, w.Code)
	want, err := generator.Render("Bob Smith", 42, generator.TierLarge)
	require.NoError(t, err)
	assert.Equal(t, want, w.Body.String())
}

func TestGenerateEndpoint_Invalid(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing name", `{"age": 30}`},
		{"zero age", `{"name": "Alice", "age": 0}`},
		{"negative age", `{"name": "Alice", "age": -3}`},
		{"unknown tier", `{"name": "Alice", "age": 30, "tier": "huge"}`},
		{"blank name", `{"name": "   ", "age": 30}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/profiles/generate", strings.NewReader(tt.body))
			w := serve(s, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestSamplesEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/samples", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Samples []SampleInfo `json:"samples"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Samples, 3)
	assert.Equal(t, "alice_johnson_profile.csv", list.Samples[0].File)

	w = serve(s, httptest.NewRequest(http.MethodGet, "/samples/alice_johnson_profile.csv", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, demoProfile(t), w.Body.String())

	w = serve(s, httptest.NewRequest(http.MethodGet, "/samples/nobody_profile.csv", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestParseEndpoint_Multipart(t *testing.T) {
	s := newTestServer(t, nil)

	w := serve(s, multipartUpload(t, "/profiles/parse", "alice.csv", demoProfile(t)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp ParseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice.csv", resp.File)
	assert.Empty(t, resp.Errors)
	require.Len(t, resp.Sections, 4)

	names := make([]string, len(resp.Sections))
	for i, sec := range resp.Sections {
		names[i] = sec.Name
	}
	assert.Equal(t, []string{"Personal Info", "Bank Transactions", "Investment Portfolio", "Benefits / Rewards"}, names)

	tx := resp.Sections[1]
	assert.Equal(t, []string{"Date", "Description", "Amount", "Category"}, tx.Columns)
	assert.Equal(t, 10, tx.TotalRows)
	assert.Len(t, tx.Rows, 2)
}

func TestParseEndpoint_RawBodyWithPreview(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/profiles/parse?preview=0&filename=raw.csv",
		strings.NewReader(demoProfile(t)))
	req.Header.Set("Content-Type", "text/csv")
	w := serve(s, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ParseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "raw.csv", resp.File)
	for _, sec := range resp.Sections {
		assert.Empty(t, sec.Rows)
		assert.Positive(t, sec.TotalRows)
	}
}

func TestParseEndpoint_MalformedSection(t *testing.T) {
	s := newTestServer(t, nil)

	body := "# Bank Transactions\nDate,Amount\n2025-01-01,1.00,extra\n\n" +
		"# Investment Portfolio\nTicker,Value\nTICK0,100.50\n"
	w := serve(s, multipartUpload(t, "/profiles/parse", "bad.csv", body))
	require.Equal(t, http.StatusOK, w.Code)

	var resp ParseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Sections, 1)
	assert.Equal(t, "Investment Portfolio", resp.Sections[0].Name)
	assert.Equal(t, []any{"TICK0", float64(100.5)}, resp.Sections[0].Rows[0])
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Bank Transactions", resp.Errors[0].Section)
	assert.Equal(t, 1, resp.Errors[0].Row)
}

func TestParseEndpoint_BadUploads(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/profiles/parse", strings.NewReader(""))
	assert.Equal(t, http.StatusBadRequest, serve(s, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/profiles/parse", bytes.NewReader([]byte{0xff, 0xfe, 0x00}))
	assert.Equal(t, http.StatusBadRequest, serve(s, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/profiles/parse?preview=-1", strings.NewReader("x"))
	assert.Equal(t, http.StatusBadRequest, serve(s, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/profiles/parse", strings.NewReader(strings.Repeat("a", 2<<20)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, serve(s, req).Code)
}

func TestRecommendationsEndpoint(t *testing.T) {
	client := &fakeClient{reply: "**Use your cashback card**\nGroceries earn 3% back.\n\n**Review insurance**\nYou may be over-insured."}
	s := newTestServer(t, client)

	w := serve(s, multipartUpload(t, "/recommendations", "alice.csv", demoProfile(t)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp RecommendationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice.csv", resp.File)
	assert.Len(t, resp.Sections, 4)
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "Use your cashback card", resp.Recommendations[0].Title)
	assert.Equal(t, "Groceries earn 3% back.", resp.Recommendations[0].Description)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "# Bank Transactions")
}

func TestRecommendationsEndpoint_NoTitles(t *testing.T) {
	s := newTestServer(t, &fakeClient{reply: "I could not find anything worth changing."})

	w := serve(s, multipartUpload(t, "/recommendations", "alice.csv", demoProfile(t)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.JSONEq(t, `[]`, string(resp["recommendations"]))
}

func TestRecommendationsEndpoint_UpstreamFailure(t *testing.T) {
	s := newTestServer(t, &fakeClient{err: errors.New("quota exceeded")})

	w := serve(s, multipartUpload(t, "/recommendations", "alice.csv", demoProfile(t)))
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "❌ Gemini API error: quota exceeded", resp["error"])
}

func TestRecommendationsEndpoint_NoClient(t *testing.T) {
	s := newTestServer(t, nil)

	w := serve(s, multipartUpload(t, "/recommendations", "alice.csv", demoProfile(t)))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestRecommendationsEndpoint_MissingFile(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/recommendations", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	assert.Equal(t, http.StatusBadRequest, serve(s, req).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeClient{reply: "**Tip**\nSave more."})

	req := httptest.NewRequest(http.MethodPost, "/profiles/generate",
		strings.NewReader(`{"name": "Carol Lee", "age": 28}`))
	require.Equal(t, http.StatusOK, serve(s, req).Code)
	require.Equal(t, http.StatusOK, serve(s, multipartUpload(t, "/recommendations", "c.csv", demoProfile(t))).Code)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	out := w.Body.String()
	assert.Contains(t, out, `benefits_advisor_profiles_generated_total{tier="demo"} 1`)
	assert.Contains(t, out, `benefits_advisor_recommendation_requests_total{outcome="ok"} 1`)
	assert.Contains(t, out, `benefits_advisor_sections_parsed_total{outcome="ok",section="Personal Info"} 1`)
}

func TestRateLimit(t *testing.T) {
	s, err := New(Config{
		RateLimit: &ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  1000,
			DefaultWindow: time.Minute,
			EndpointConfigs: []ratelimit.EndpointConfig{
				{Path: "/recommendations", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
			},
		},
	}, &fakeClient{reply: "**Tip**\nSave more."})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	w := serve(s, multipartUpload(t, "/recommendations", "a.csv", demoProfile(t)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = serve(s, multipartUpload(t, "/recommendations", "a.csv", demoProfile(t)))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	w = serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNew_UnknownStrategy(t *testing.T) {
	_, err := New(Config{Strategy: "regex", RateLimit: &ratelimit.Config{}}, nil)
	assert.Error(t, err)
}
