package analysis

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"internhunt/internal/classifier"
	"internhunt/internal/document"
	"internhunt/internal/errors"
	"internhunt/internal/refdata"
	"internhunt/internal/types"
)

func testLogger() *errors.Logger {
	logger, _ := errors.New("error")
	return logger
}

func newTestPipeline(t *testing.T, artifactPath string) *Pipeline {
	t.Helper()
	logger := testLogger()
	return NewPipeline(
		document.NewExtractor(logger),
		classifier.New(artifactPath, logger),
		refdata.NewStore(refdata.Defaults()),
		logger,
		DefaultWeights(),
		DefaultMaxSuggestions,
	)
}

// writeToyArtifact persists a tiny two-category model whose categories match
// the default role table.
func writeToyArtifact(t *testing.T) string {
	t.Helper()
	artifact := classifier.Artifact{
		SchemaVersion: 1,
		ModelVersion:  "toy-1",
		Categories:    []string{"Data Science", "Web Development"},
		Vocabulary:    map[string]int{"python": 0, "pandas": 1, "javascript": 2, "react": 3},
		IDF:           []float64{1, 1, 1, 1},
		Coefficients: [][]float64{
			{2, 2, -1, -1},
			{-1, -1, 2, 2},
		},
		Intercepts: []float64{0, 0},
	}
	data, err := json.Marshal(artifact)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const pipelineResume = `Jane Doe
jane@example.com | 555-123-4567

Experience
• Built python and pandas pipelines for analytics
• Maintained sql reporting

Skills
python pandas sql communication

Education
State University
`

func TestPipelineAnalyzeText(t *testing.T) {
	p := newTestPipeline(t, writeToyArtifact(t))

	result, err := p.AnalyzeText(context.Background(), pipelineResume, Options{})
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	if result.ID == "" {
		t.Error("result must carry an ID")
	}
	if result.Contact.Email != "jane@example.com" {
		t.Errorf("Email = %q", result.Contact.Email)
	}
	if !result.Sections.Present["Experience"] {
		t.Error("Experience section not detected")
	}
	if !result.Skills.Has("Python") || !result.Skills.Has("Pandas") {
		t.Errorf("skills missing from %v", result.Skills.Names())
	}
	if !result.Classification.Available || result.Classification.TopCategory != "Data Science" {
		t.Errorf("Classification = %+v", result.Classification)
	}
	if result.Ats.Overall <= 0 {
		t.Errorf("Ats.Overall = %d, want positive", result.Ats.Overall)
	}

	// No explicit target role: alignment follows the classifier prediction
	if result.Alignment == nil {
		t.Fatal("expected alignment from classifier fallback")
	}
	if result.Alignment.TargetRole != "Data Science" {
		t.Errorf("Alignment.TargetRole = %q", result.Alignment.TargetRole)
	}
}

func TestPipelineExplicitTargetRole(t *testing.T) {
	p := newTestPipeline(t, writeToyArtifact(t))

	result, err := p.AnalyzeText(context.Background(), pipelineResume, Options{TargetRole: "Web Development"})
	if err != nil {
		t.Fatal(err)
	}
	if result.Alignment == nil || result.Alignment.TargetRole != "Web Development" {
		t.Errorf("explicit target role must win over the classifier: %+v", result.Alignment)
	}
}

func TestPipelineDegradedClassifier(t *testing.T) {
	p := newTestPipeline(t, "")

	result, err := p.AnalyzeText(context.Background(), pipelineResume, Options{})
	if err != nil {
		t.Fatalf("a missing classifier must not fail the pipeline: %v", err)
	}
	if result.Classification.Available {
		t.Error("Classification.Available must be false without an artifact")
	}
	if result.Classification.TopCategory != "" {
		t.Error("degraded classification must carry no category")
	}
	if result.Alignment != nil {
		t.Errorf("no target role and no classifier means no alignment: %+v", result.Alignment)
	}
	// The rest of the result is fully populated
	if result.Ats.Overall <= 0 || len(result.Skills.Hits) == 0 {
		t.Errorf("degraded classifier must not affect other stages: %+v", result.Ats)
	}
}

func TestPipelineUnknownRoleFallsBack(t *testing.T) {
	p := newTestPipeline(t, writeToyArtifact(t))

	result, err := p.AnalyzeText(context.Background(), pipelineResume, Options{TargetRole: "Astronaut"})
	if err != nil {
		t.Fatalf("unknown role is recoverable: %v", err)
	}
	if result.Alignment == nil || result.Alignment.TargetRole != "Data Science" {
		t.Errorf("expected classifier fallback, got %+v", result.Alignment)
	}
}

func TestPipelineUnknownRoleNoClassifierOmitsAlignment(t *testing.T) {
	p := newTestPipeline(t, "")

	result, err := p.AnalyzeText(context.Background(), pipelineResume, Options{TargetRole: "Astronaut"})
	if err != nil {
		t.Fatal(err)
	}
	if result.Alignment != nil {
		t.Errorf("alignment must be omitted, not fabricated: %+v", result.Alignment)
	}
}

func TestPipelineAnalyzeEmptyDocument(t *testing.T) {
	p := newTestPipeline(t, "")

	_, err := p.Analyze(context.Background(), types.RawDocument{
		Data:   []byte("   "),
		Format: types.FormatPDF,
	}, Options{})
	if !errors.HasCode(err, errors.ErrCodeEmptyContent) {
		t.Errorf("expected EMPTY_CONTENT, got %v", err)
	}
}

func TestPipelineEmptyTextNoSignal(t *testing.T) {
	p := newTestPipeline(t, "")

	result, err := p.AnalyzeText(context.Background(), "", Options{})
	if err != nil {
		t.Fatalf("empty text is no-signal, not an error: %v", err)
	}
	if result.WordCount != 0 || len(result.Skills.Hits) != 0 {
		t.Errorf("expected empty result fields: %+v", result)
	}
	if result.Ats.Overall != 0 {
		t.Errorf("empty text scores 0, got %d", result.Ats.Overall)
	}
}

func TestPipelineCancelledContext(t *testing.T) {
	p := newTestPipeline(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.AnalyzeText(ctx, pipelineResume, Options{}); err == nil {
		t.Fatal("expected context error")
	}
}
