package cli

import (
	"fmt"

	"internhunt/internal/analysis"
	"internhunt/internal/classifier"
	"internhunt/internal/config"
	"internhunt/internal/document"
	"internhunt/internal/errors"
	"internhunt/internal/refdata"
)

// buildAnalysisPipeline assembles the analysis pipeline from configuration.
// The returned store holds the reference table snapshot; serve mode hands it
// to a watcher for hot reload.
func buildAnalysisPipeline(cfg *config.Config, logger *errors.Logger) (*analysis.Pipeline, *refdata.Store, error) {
	tables := refdata.Defaults()
	if cfg.Analysis.ReferenceTables != "" {
		loaded, err := refdata.Load(cfg.Analysis.ReferenceTables)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load reference tables: %w", err)
		}
		tables = loaded
		logger.Info("Loaded reference tables",
			"path", cfg.Analysis.ReferenceTables,
			"roles", len(tables.Roles),
			"skills", len(tables.Skills))
	}
	store := refdata.NewStore(tables)

	cls := classifier.New(cfg.Analysis.ModelArtifact, logger)

	weights := analysis.Weights{
		Section:    cfg.Analysis.Scoring.SectionWeight,
		Keyword:    cfg.Analysis.Scoring.KeywordWeight,
		Formatting: cfg.Analysis.Scoring.FormattingWeight,
	}

	pipeline := analysis.NewPipeline(
		document.NewExtractor(logger),
		cls,
		store,
		logger,
		weights,
		cfg.Analysis.MaxSuggestions,
	)
	return pipeline, store, nil
}
