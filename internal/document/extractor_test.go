package document

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"internhunt/internal/errors"
	"internhunt/internal/types"
)

func testLogger() *errors.Logger {
	logger, _ := errors.New("error")
	return logger
}

// buildDocx assembles a minimal WordprocessingML archive with one run per
// paragraph, enough for the extractor's zip and XML handling.
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

func TestExtractDOCX(t *testing.T) {
	extractor := NewExtractor(testLogger())
	data := buildDocx(t, "Jane Doe", "Experience", "Built services in Go &amp; Python")

	text, err := extractor.Extract(context.Background(), types.RawDocument{
		Data:     data,
		Format:   types.FormatDOCX,
		Filename: "resume.docx",
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d: %q", len(lines), text)
	}
	if lines[0] != "Jane Doe" {
		t.Errorf("first paragraph = %q", lines[0])
	}
	if lines[2] != "Built services in Go & Python" {
		t.Errorf("XML entities not unescaped: %q", lines[2])
	}
}

func TestExtractEmptyPayload(t *testing.T) {
	extractor := NewExtractor(testLogger())

	for _, format := range []types.DocumentFormat{types.FormatPDF, types.FormatDOCX} {
		t.Run(string(format), func(t *testing.T) {
			_, err := extractor.Extract(context.Background(), types.RawDocument{
				Data:   nil,
				Format: format,
			})
			if !errors.HasCode(err, errors.ErrCodeEmptyContent) {
				t.Errorf("expected EMPTY_CONTENT, got %v", err)
			}
		})
	}
}

func TestExtractWhitespaceOnlyDocument(t *testing.T) {
	extractor := NewExtractor(testLogger())
	data := buildDocx(t, "   ", " ")

	_, err := extractor.Extract(context.Background(), types.RawDocument{
		Data:   data,
		Format: types.FormatDOCX,
	})
	if !errors.HasCode(err, errors.ErrCodeEmptyContent) {
		t.Errorf("expected EMPTY_CONTENT for whitespace-only document, got %v", err)
	}
}

func TestExtractCorruptDocument(t *testing.T) {
	extractor := NewExtractor(testLogger())
	garbage := []byte("this is not a valid document of any kind")

	tests := []struct {
		name   string
		format types.DocumentFormat
	}{
		{"corrupt pdf", types.FormatPDF},
		{"corrupt docx", types.FormatDOCX},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractor.Extract(context.Background(), types.RawDocument{
				Data:   garbage,
				Format: tt.format,
			})
			if !errors.HasCode(err, errors.ErrCodeCorruptDocument) {
				t.Errorf("expected CORRUPT_DOCUMENT, got %v", err)
			}
		})
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	extractor := NewExtractor(testLogger())

	_, err := extractor.Extract(context.Background(), types.RawDocument{
		Data:   []byte("plain text resume"),
		Format: types.DocumentFormat("txt"),
	})
	if !errors.HasCode(err, errors.ErrCodeUnsupportedFormat) {
		t.Errorf("expected UNSUPPORTED_FORMAT, got %v", err)
	}
}

func TestExtractCancelledContext(t *testing.T) {
	extractor := NewExtractor(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := extractor.Extract(ctx, types.RawDocument{
		Data:   buildDocx(t, "content"),
		Format: types.FormatDOCX,
	})
	if err == nil {
		t.Fatal("expected context error")
	}
}
