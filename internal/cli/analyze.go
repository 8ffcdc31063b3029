package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"internhunt/internal/analysis"
	"internhunt/internal/common"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file]",
	Short: "Analyze a resume for structure, skills, and ATS friendliness",
	Long: `Analyze a resume file (PDF or DOCX) and report on its content and
structure. The analysis is designed for internship candidates who want to
know how their resume reads before submitting it.

The analysis includes:
- Contact information and section detection
- Skill extraction against a reference taxonomy
- Likely target role classification
- ATS compatibility scoring with keyword coverage
- Prioritized improvement suggestions
- Skill alignment against a target role`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var (
	analyzeConfig     common.CommandConfig
	analyzeTargetRole string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	analyzeCmd.Flags().StringVar(&analyzeTargetRole, "target-role", "", "Role to align skills against (default: classifier prediction)")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	pipeline, store, err := buildAnalysisPipeline(cfg, logger)
	if err != nil {
		return err
	}

	if analyzeTargetRole != "" {
		if err := common.ValidateTargetRole(analyzeTargetRole, store.Snapshot().RoleNames()); err != nil {
			return err
		}
	}

	fileProcessor := common.NewFileProcessor(logger)
	doc, err := fileProcessor.ReadDocument(args[0], cfg.App.MaxFileSize)
	if err != nil {
		return err
	}

	logger.Info("Starting resume analysis",
		"file", doc.Filename,
		"format", string(doc.Format),
		"size_bytes", doc.Size(),
		"target_role", analyzeTargetRole,
		"output_format", analyzeConfig.OutputFormat)

	result, err := pipeline.Analyze(cmd.Context(), doc, analysis.Options{TargetRole: analyzeTargetRole})
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(*result, analyzeConfig); err != nil {
		return err
	}

	logger.Info("Resume analysis completed successfully",
		"id", result.ID,
		"ats_overall", result.Ats.Overall,
		"skills", len(result.Skills.Hits))
	return nil
}
