package document

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"internhunt/internal/errors"
	"internhunt/internal/types"
)

// Extractor turns uploaded resume bytes into plain text. It never touches
// the filesystem; callers hand it the payload they already read.
type Extractor struct {
	logger *errors.Logger
}

func NewExtractor(logger *errors.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract returns the raw text of the document. Failures here are fatal to
// the request: an unsupported format, an unparsable payload, or a document
// that yields no text all abort the analysis with a specific code.
func (e *Extractor) Extract(ctx context.Context, doc types.RawDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// An empty payload is reported as empty content before any parser runs,
	// not as a parse failure.
	if len(bytes.TrimSpace(doc.Data)) == 0 {
		return "", errors.NewDocumentError(errors.ErrCodeEmptyContent,
			"document contains no content", nil).WithContext("filename", doc.Filename)
	}

	var text string
	var err error
	switch doc.Format {
	case types.FormatPDF:
		text, err = e.extractPDF(doc.Data)
	case types.FormatDOCX:
		text, err = e.extractDOCX(doc.Data)
	default:
		return "", errors.NewDocumentError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("unsupported document format: %s", doc.Format), nil).
			WithContext("filename", doc.Filename)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", errors.NewDocumentError(errors.ErrCodeEmptyContent,
			"document yielded no extractable text", nil).
			WithContext("filename", doc.Filename)
	}
	return text, nil
}

func (e *Extractor) extractPDF(data []byte) (text string, err error) {
	// The pdf package panics on some malformed cross-reference tables;
	// convert that into a corrupt-document error.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = errors.NewDocumentError(errors.ErrCodeCorruptDocument,
				"failed to parse PDF document", fmt.Errorf("parser panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewDocumentError(errors.ErrCodeCorruptDocument,
			"failed to parse PDF document", err)
	}

	var sb strings.Builder
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("skipping unreadable PDF page", "page", i, "error", err.Error())
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// runPattern matches a single text run inside WordprocessingML
var runPattern = regexp.MustCompile(`<w:t(?:\s[^>]*)?>([^<]*)</w:t>`)

func (e *Extractor) extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewDocumentError(errors.ErrCodeCorruptDocument,
			"failed to parse DOCX document", err)
	}
	defer doc.Close()

	// GetContent returns the raw document.xml, so text runs are pulled out
	// of the markup with paragraph boundaries preserved as newlines.
	content := doc.Editable().GetContent()
	paragraphs := strings.Split(content, "</w:p>")

	var sb strings.Builder
	for _, para := range paragraphs {
		matches := runPattern.FindAllStringSubmatch(para, -1)
		if len(matches) == 0 {
			continue
		}
		for _, m := range matches {
			sb.WriteString(unescapeXML(m[1]))
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var xmlEscapes = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

func unescapeXML(s string) string {
	return xmlEscapes.Replace(s)
}
