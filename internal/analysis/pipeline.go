package analysis

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"internhunt/internal/classifier"
	"internhunt/internal/document"
	"internhunt/internal/errors"
	"internhunt/internal/refdata"
	"internhunt/internal/types"
)

// Pipeline runs the full resume analysis for one document. It is stateless
// across invocations apart from the load-once classifier and the reference
// table snapshot, both read-only during analysis, so concurrent calls are
// independent.
type Pipeline struct {
	extractor      *document.Extractor
	classifier     *classifier.Classifier
	store          *refdata.Store
	logger         *errors.Logger
	weights        Weights
	maxSuggestions int
	tracer         trace.Tracer
}

// Options carries per-request knobs
type Options struct {
	// TargetRole selects the role alignment is computed against. Empty
	// means "use the classifier's prediction".
	TargetRole string
}

// NewPipeline wires the analysis stages together
func NewPipeline(extractor *document.Extractor, cls *classifier.Classifier,
	store *refdata.Store, logger *errors.Logger,
	weights Weights, maxSuggestions int) *Pipeline {

	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}
	return &Pipeline{
		extractor:      extractor,
		classifier:     cls,
		store:          store,
		logger:         logger,
		weights:        weights,
		maxSuggestions: maxSuggestions,
		tracer:         otel.Tracer("internhunt/analysis"),
	}
}

// Analyze extracts text from the document and produces a complete
// AnalysisResult. Extraction failures abort the request; classifier or
// alignment trouble degrades the corresponding fields instead.
func (p *Pipeline) Analyze(ctx context.Context, doc types.RawDocument, opts Options) (*types.AnalysisResult, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.analyze",
		trace.WithAttributes(
			attribute.String("document.format", string(doc.Format)),
			attribute.Int64("document.size_bytes", doc.Size()),
		))
	defer span.End()

	rawText, err := p.extractor.Extract(ctx, doc)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result, err := p.analyzeText(ctx, rawText, opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	result.Filename = doc.Filename
	result.Format = doc.Format

	span.SetAttributes(
		attribute.Int("analysis.word_count", result.WordCount),
		attribute.Int("analysis.ats_overall", result.Ats.Overall),
		attribute.Int("analysis.skills", len(result.Skills.Hits)),
	)
	return result, nil
}

// ClassifierAvailable reports whether the role classifier loaded and
// classification results carry real predictions.
func (p *Pipeline) ClassifierAvailable() bool {
	return p.classifier.Available()
}

// AnalyzeText runs the pipeline on already-extracted text
func (p *Pipeline) AnalyzeText(ctx context.Context, rawText string, opts Options) (*types.AnalysisResult, error) {
	return p.analyzeText(ctx, rawText, opts)
}

func (p *Pipeline) analyzeText(ctx context.Context, rawText string, opts Options) (*types.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tables := p.store.Snapshot()
	text := NormalizeText(rawText)

	// Entity, section, and skill extraction have no data dependency on
	// each other and run in parallel. Everything after forms a strict
	// dependency chain.
	var (
		wg       sync.WaitGroup
		contact  types.ContactInfo
		sections types.SectionReport
		skills   types.SkillProfile
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		contact = ExtractEntities(text.Raw, tables)
	}()
	go func() {
		defer wg.Done()
		sections = DetectSections(text.Raw, tables)
	}()
	go func() {
		defer wg.Done()
		skills = ExtractSkills(text.Normalized, tables)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	classification := p.classifier.Classify(text.Normalized)
	ats := ScoreATS(text, sections, skills, contact, tables, p.weights)
	suggestions := BuildSuggestions(sections, contact, ats, text, p.maxSuggestions)
	alignment := p.align(skills, classification, opts.TargetRole, tables)

	return &types.AnalysisResult{
		ID:             uuid.NewString(),
		WordCount:      WordCount(text),
		Contact:        contact,
		Sections:       sections,
		Skills:         skills,
		Classification: classification,
		Ats:            ats,
		Suggestions:    suggestions,
		Alignment:      alignment,
	}, nil
}

// align resolves the alignment target: the explicit role first, then the
// classifier's top category, otherwise alignment is omitted. An unknown
// explicit role degrades to the classifier fallback rather than failing the
// analysis.
func (p *Pipeline) align(skills types.SkillProfile, classification types.ClassificationResult,
	targetRole string, tables *refdata.Tables) *types.AlignmentResult {

	if targetRole != "" {
		result, err := AlignRole(skills, targetRole, tables)
		if err == nil {
			return result
		}
		p.logger.LogError(err, "target role not in reference table, falling back to classifier")
	}

	if classification.Available && classification.TopCategory != "" {
		result, err := AlignRole(skills, classification.TopCategory, tables)
		if err == nil {
			return result
		}
		p.logger.LogError(err, "classifier category not in reference table, omitting alignment")
	}
	return nil
}
