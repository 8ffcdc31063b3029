package classifier

import (
	"encoding/json"
	"fmt"
	"os"

	"internhunt/internal/errors"
)

// supportedSchemaVersion is the only artifact layout this build understands.
// Artifacts from newer trainers are rejected rather than misread.
const supportedSchemaVersion = 1

// Artifact is a trained linear role model exported as JSON: a TF-IDF
// vocabulary plus one weight row and intercept per category.
type Artifact struct {
	SchemaVersion int            `json:"schemaVersion"`
	ModelVersion  string         `json:"modelVersion"`
	Categories    []string       `json:"categories"`
	Vocabulary    map[string]int `json:"vocabulary"`
	IDF           []float64      `json:"idf"`
	Coefficients  [][]float64    `json:"coefficients"`
	Intercepts    []float64      `json:"intercepts"`
}

// LoadArtifact reads and validates a model artifact file
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeArtifactLoad,
			"failed to read model artifact", err).WithContext("path", path)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeArtifactLoad,
			"failed to parse model artifact", err).WithContext("path", path)
	}

	if err := a.validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

func (a *Artifact) validate() error {
	if a.SchemaVersion != supportedSchemaVersion {
		return errors.NewConfigError(errors.ErrCodeArtifactLoad,
			fmt.Sprintf("unsupported artifact schema version %d (supported: %d)",
				a.SchemaVersion, supportedSchemaVersion), nil)
	}
	if len(a.Categories) == 0 {
		return errors.NewConfigError(errors.ErrCodeArtifactLoad,
			"artifact declares no categories", nil)
	}
	if len(a.Vocabulary) == 0 {
		return errors.NewConfigError(errors.ErrCodeArtifactLoad,
			"artifact declares an empty vocabulary", nil)
	}

	features := len(a.Vocabulary)
	if len(a.IDF) != features {
		return errors.NewConfigError(errors.ErrCodeArtifactLoad,
			fmt.Sprintf("idf length %d does not match vocabulary size %d",
				len(a.IDF), features), nil)
	}
	if len(a.Coefficients) != len(a.Categories) {
		return errors.NewConfigError(errors.ErrCodeArtifactLoad,
			fmt.Sprintf("coefficient rows %d do not match category count %d",
				len(a.Coefficients), len(a.Categories)), nil)
	}
	for i, row := range a.Coefficients {
		if len(row) != features {
			return errors.NewConfigError(errors.ErrCodeArtifactLoad,
				fmt.Sprintf("coefficient row %d has %d weights, want %d",
					i, len(row), features), nil)
		}
	}
	if len(a.Intercepts) != len(a.Categories) {
		return errors.NewConfigError(errors.ErrCodeArtifactLoad,
			fmt.Sprintf("intercepts %d do not match category count %d",
				len(a.Intercepts), len(a.Categories)), nil)
	}
	for term, idx := range a.Vocabulary {
		if idx < 0 || idx >= features {
			return errors.NewConfigError(errors.ErrCodeArtifactLoad,
				fmt.Sprintf("vocabulary term %q has out-of-range index %d", term, idx), nil)
		}
	}
	return nil
}
