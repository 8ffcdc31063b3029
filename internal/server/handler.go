package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"internhunt/internal/analysis"
	"internhunt/internal/common"
	"internhunt/internal/errors"
	"internhunt/internal/observability"
	"internhunt/internal/types"
	"internhunt/internal/utils"
)

// createAnalyzeHandler wraps the resume analysis handler with observability
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("internhunt.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		doc, targetRole, err := s.parseAnalyzeRequest(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request", err.Error(), http.StatusBadRequest)
			return
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.String("document.format", string(doc.Format)),
			attribute.Int64("document.size_bytes", doc.Size()),
			attribute.String("request.target_role", targetRole),
			attribute.String("operation", "analyze"),
		)

		// Track the analysis with observability
		metrics := om.GetMetrics()
		var result *types.AnalysisResult
		err = metrics.TrackAnalysis(ctx, "analyze", func(ctx context.Context) error {
			var analyzeErr error
			result, analyzeErr = s.Pipeline.Analyze(ctx, doc, analysis.Options{TargetRole: targetRole})
			return analyzeErr
		})

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "analysis"))
			s.writeAnalysisError(w, err)
			return
		}

		// Record success metrics
		metrics.RecordAnalysisResult(ctx, result.Ats.Overall, len(result.Suggestions),
			attribute.String("document.format", string(doc.Format)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("analysis.word_count", result.WordCount),
			attribute.Int("ats.score", result.Ats.Overall),
			attribute.Int("analysis.suggestions", len(result.Suggestions)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// parseAnalyzeRequest reads the multipart upload and the optional targetRole
// form field
func (s *Server) parseAnalyzeRequest(r *http.Request) (types.RawDocument, string, error) {
	if err := r.ParseMultipartForm(s.multipartMemoryLimit()); err != nil {
		return types.RawDocument{}, "", fmt.Errorf("invalid multipart form: %w", err)
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		return types.RawDocument{}, "", fmt.Errorf("resume file field is required: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.Logger.LogError(err, "Failed to close uploaded file")
		}
	}()

	format, ok := utils.DetectDocumentFormat(header.Filename)
	if !ok {
		return types.RawDocument{}, "", fmt.Errorf("unsupported file type %s (expected .pdf or .docx)", header.Filename)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return types.RawDocument{}, "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	targetRole := r.FormValue("targetRole")
	if targetRole != "" {
		if err := common.ValidateTargetRole(targetRole, s.Store.Snapshot().RoleNames()); err != nil {
			return types.RawDocument{}, "", err
		}
	}

	return types.RawDocument{
		Data:     data,
		Format:   format,
		Filename: header.Filename,
	}, targetRole, nil
}

// multipartMemoryLimit returns the in-memory buffer size for multipart parsing
func (s *Server) multipartMemoryLimit() int64 {
	if s.MaxRequestSize > 0 {
		return s.MaxRequestSize
	}
	return 10 << 20
}

// writeAnalysisError maps pipeline errors to HTTP status codes. Rejected
// documents are client errors; everything else is a server fault.
func (s *Server) writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.HasCode(err, errors.ErrCodeUnsupportedFormat):
		writeErrorResponse(w, "Unsupported document format", err.Error(), http.StatusBadRequest)
	case errors.HasCode(err, errors.ErrCodeCorruptDocument):
		writeErrorResponse(w, "Corrupt document", err.Error(), http.StatusUnprocessableEntity)
	case errors.HasCode(err, errors.ErrCodeEmptyContent):
		writeErrorResponse(w, "Empty document", err.Error(), http.StatusUnprocessableEntity)
	default:
		s.Logger.LogError(err, "Resume analysis failed")
		writeErrorResponse(w, "Failed to analyze resume", err.Error(), http.StatusInternalServerError)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordRateLimitHit(r.Context(),
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
