package classifier

import (
	"math"
	"sort"
	"strings"

	"internhunt/internal/errors"
	"internhunt/internal/types"
)

// topCategoryCount caps how many ranked predictions a result carries
const topCategoryCount = 3

// Classifier predicts a role category from normalized resume text using a
// pre-trained linear model. The artifact is loaded once at construction;
// there is no fallback model, so a load failure leaves the classifier
// permanently unavailable and every result reports Available=false.
type Classifier struct {
	artifact *Artifact
	logger   *errors.Logger
}

// New loads the artifact at path. An empty path or a load failure produces
// a degraded classifier rather than an error; analysis proceeds without
// role predictions in that state.
func New(path string, logger *errors.Logger) *Classifier {
	c := &Classifier{logger: logger}
	if path == "" {
		logger.Info("no model artifact configured, role classification disabled")
		return c
	}

	artifact, err := LoadArtifact(path)
	if err != nil {
		logger.LogError(err, "model artifact unavailable, role classification disabled",
			"path", path)
		return c
	}

	c.artifact = artifact
	logger.Info("role classifier ready",
		"model_version", artifact.ModelVersion,
		"categories", len(artifact.Categories),
		"vocabulary", len(artifact.Vocabulary))
	return c
}

// Available reports whether a usable model is loaded
func (c *Classifier) Available() bool {
	return c.artifact != nil
}

// Classify scores the normalized text against every category. The same text
// and artifact always produce the same result.
func (c *Classifier) Classify(normalized string) types.ClassificationResult {
	if c.artifact == nil {
		return types.ClassificationResult{Available: false}
	}

	features := c.vectorize(normalized)
	scores := make([]float64, len(c.artifact.Categories))
	for i, row := range c.artifact.Coefficients {
		s := c.artifact.Intercepts[i]
		for idx, val := range features {
			s += row[idx] * val
		}
		scores[i] = s
	}
	probs := softmax(scores)

	ranked := make([]types.CategoryScore, len(probs))
	for i, p := range probs {
		ranked[i] = types.CategoryScore{Category: c.artifact.Categories[i], Probability: p}
	}
	// Ties break on category name so ordering never depends on map iteration
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Probability != ranked[j].Probability {
			return ranked[i].Probability > ranked[j].Probability
		}
		return ranked[i].Category < ranked[j].Category
	})
	if len(ranked) > topCategoryCount {
		ranked = ranked[:topCategoryCount]
	}

	return types.ClassificationResult{
		Available:     true,
		TopCategory:   ranked[0].Category,
		TopCategories: ranked,
		ModelVersion:  c.artifact.ModelVersion,
	}
}

// vectorize builds a sparse L2-normalized sublinear TF-IDF vector over the
// artifact's vocabulary.
func (c *Classifier) vectorize(normalized string) map[int]float64 {
	counts := make(map[int]int)
	for _, tok := range strings.Fields(normalized) {
		if idx, ok := c.artifact.Vocabulary[tok]; ok {
			counts[idx]++
		}
	}

	vec := make(map[int]float64, len(counts))
	var norm float64
	for idx, count := range counts {
		w := (1 + math.Log(float64(count))) * c.artifact.IDF[idx]
		vec[idx] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}

func softmax(scores []float64) []float64 {
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	probs := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		probs[i] = math.Exp(s - max)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
