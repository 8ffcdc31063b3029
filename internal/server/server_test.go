package server

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"internhunt/internal/analysis"
	"internhunt/internal/classifier"
	"internhunt/internal/config"
	"internhunt/internal/document"
	"internhunt/internal/errors"
	"internhunt/internal/observability"
	"internhunt/internal/refdata"
	"internhunt/internal/types"
)

func testLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}
	return logger
}

// buildDocx assembles a minimal WordprocessingML archive with one run per
// paragraph.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>`)
		body.WriteString(p)
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body.String() + `</w:body></w:document>`

	relsXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

	contentTypesXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`</Types>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml":          contentTypesXML,
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": relsXML,
	}
	for name, content := range files {
		f, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestServer(t *testing.T, apiKeys []string) *Server {
	t.Helper()
	logger := testLogger(t)
	store := refdata.NewStore(refdata.Defaults())
	pipeline := analysis.NewPipeline(
		document.NewExtractor(logger),
		classifier.New("", logger),
		store,
		logger,
		analysis.DefaultWeights(),
		analysis.DefaultMaxSuggestions,
	)

	cfg := &config.Config{}
	return NewServer(cfg, ServerConfig{
		Host:           "localhost",
		Port:           "0",
		Version:        "test",
		Pipeline:       pipeline,
		Store:          store,
		APIKeys:        apiKeys,
		MaxRequestSize: 5 * 1024 * 1024,
	}, logger)
}

func disabledObservability(t *testing.T) *observability.ObservabilityManager {
	t.Helper()
	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("creating observability manager: %v", err)
	}
	return om
}

func multipartResume(t *testing.T, filename string, payload []byte, targetRole string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("resume", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatal(err)
	}
	if targetRole != "" {
		if err := mw.WriteField("targetRole", targetRole); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &body, mw.FormDataContentType()
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	ts := httptest.NewServer(srv.setupRoutes(disabledObservability(t)))
	defer ts.Close()

	docx := buildDocx(t,
		"Jane Doe",
		"jane.doe@example.com | +1 555 123 4567",
		"Experience",
		"Built data pipelines with Python and SQL",
		"Skills",
		"Python, SQL, Git, Machine Learning",
	)
	body, contentType := multipartResume(t, "resume.docx", docx, "Data Science")

	resp, err := http.Post(ts.URL+"/analyze", contentType, body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var result types.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.ID == "" {
		t.Error("expected a result ID")
	}
	if result.Contact.Email != "jane.doe@example.com" {
		t.Errorf("got email %q", result.Contact.Email)
	}
	if !result.Skills.Has("Python") {
		t.Error("expected Python in extracted skills")
	}
	if result.Alignment == nil {
		t.Fatal("expected alignment for explicit target role")
	}
	if result.Alignment.TargetRole != "Data Science" {
		t.Errorf("got alignment role %q", result.Alignment.TargetRole)
	}
}

func TestAnalyzeEndpointUnknownTargetRole(t *testing.T) {
	srv := newTestServer(t, nil)
	ts := httptest.NewServer(srv.setupRoutes(disabledObservability(t)))
	defer ts.Close()

	docx := buildDocx(t, "Jane Doe", "Skills", "Python")
	body, contentType := multipartResume(t, "resume.docx", docx, "Underwater Basket Weaving")

	resp, err := http.Post(ts.URL+"/analyze", contentType, body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}
}

func TestAnalyzeEndpointUnsupportedExtension(t *testing.T) {
	srv := newTestServer(t, nil)
	ts := httptest.NewServer(srv.setupRoutes(disabledObservability(t)))
	defer ts.Close()

	body, contentType := multipartResume(t, "resume.txt", []byte("plain text"), "")

	resp, err := http.Post(ts.URL+"/analyze", contentType, body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}
}

func TestAnalyzeEndpointCorruptDocument(t *testing.T) {
	srv := newTestServer(t, nil)
	ts := httptest.NewServer(srv.setupRoutes(disabledObservability(t)))
	defer ts.Close()

	body, contentType := multipartResume(t, "resume.docx", []byte("not a zip archive"), "")

	resp, err := http.Post(ts.URL+"/analyze", contentType, body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d, want 422", resp.StatusCode)
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if errResp.Error != "Corrupt document" {
		t.Errorf("got error %q", errResp.Error)
	}
}

func TestAnalyzeEndpointMissingFile(t *testing.T) {
	srv := newTestServer(t, nil)
	ts := httptest.NewServer(srv.setupRoutes(disabledObservability(t)))
	defer ts.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("targetRole", "Data Science"); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Post(ts.URL+"/analyze", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}
}

func TestAnalyzeEndpointRequiresAuth(t *testing.T) {
	srv := newTestServer(t, []string{"secret-key"})
	ts := httptest.NewServer(srv.setupRoutes(disabledObservability(t)))
	defer ts.Close()

	docx := buildDocx(t, "Jane Doe", "Skills", "Python")
	body, contentType := multipartResume(t, "resume.docx", docx, "")

	t.Run("missing key rejected", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/analyze", contentType, bytes.NewReader(body.Bytes()))
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("got status %d, want 401", resp.StatusCode)
		}
	})

	t.Run("valid key accepted", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/analyze", bytes.NewReader(body.Bytes()))
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("X-API-Key", "secret-key")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("got status %d, want 200", resp.StatusCode)
		}
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	ts := httptest.NewServer(srv.setupRoutes(disabledObservability(t)))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var health map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decoding health response: %v", err)
	}

	// No model artifact configured, so the classifier degrades the report
	if health["status"] != "degraded" {
		t.Errorf("got status %v, want degraded", health["status"])
	}
	cls, ok := health["classifier"].(map[string]any)
	if !ok {
		t.Fatal("missing classifier section")
	}
	if cls["available"] != false {
		t.Errorf("got classifier availability %v, want false", cls["available"])
	}
	tables, ok := health["reference_tables"].(map[string]any)
	if !ok {
		t.Fatal("missing reference_tables section")
	}
	if tables["roles"].(float64) <= 0 {
		t.Error("expected at least one role in reference tables")
	}
}

func TestRolesEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	ts := httptest.NewServer(srv.setupRoutes(disabledObservability(t)))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/roles")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var payload struct {
		Roles []refdata.RoleProfile `json:"roles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decoding roles response: %v", err)
	}
	if len(payload.Roles) == 0 {
		t.Fatal("expected roles in response")
	}

	found := false
	for _, role := range payload.Roles {
		if role.Role == "Data Science" {
			found = true
		}
	}
	if !found {
		t.Error("expected Data Science among roles")
	}
}

func TestStatsEndpoint(t *testing.T) {
	rl := &config.RateLimitConfig{
		Enabled:        true,
		RequestsPerMin: 60,
		BurstCapacity:  10,
		ByIP:           true,
	}
	srv := newTestServer(t, nil)
	srv.RateLimit = rl
	srv.RateLimiter = NewRateLimiter(rl.RequestsPerMin, rl.BurstCapacity, srv.Logger)
	defer srv.RateLimiter.Close()

	ts := httptest.NewServer(srv.setupRoutes(disabledObservability(t)))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/stats")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var stats map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decoding stats response: %v", err)
	}
	limits, ok := stats["rate_limiting"].(map[string]any)
	if !ok {
		t.Fatal("missing rate_limiting section")
	}
	if limits["burst_capacity"].(float64) != 10 {
		t.Errorf("got burst capacity %v, want 10", limits["burst_capacity"])
	}
}

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(60, 2, testLogger(t))
	defer rl.Close()

	if !rl.Allow("ip:10.0.0.1") {
		t.Fatal("first request should pass")
	}
	if !rl.Allow("ip:10.0.0.1") {
		t.Fatal("second request should pass within burst")
	}
	if rl.Allow("ip:10.0.0.1") {
		t.Fatal("third request should exceed burst")
	}
	// A different key has its own bucket
	if !rl.Allow("ip:10.0.0.2") {
		t.Fatal("distinct key should have a fresh bucket")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "192.168.1.5:12345",
			want:       "192.168.1.5",
		},
		{
			name:       "x-forwarded-for wins",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "198.51.100.3"},
			want:       "198.51.100.3",
		},
		{
			name:       "invalid forwarded header ignored",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip"},
			want:       "10.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := getClientIP(r); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
