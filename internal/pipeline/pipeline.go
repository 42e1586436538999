// Package pipeline assesses analysis result documents and renders the outcome.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/newsanalyst/newsanalyst/internal/cache"
	"github.com/newsanalyst/newsanalyst/internal/codec"
	"github.com/newsanalyst/newsanalyst/internal/logging"
	"github.com/newsanalyst/newsanalyst/internal/model"
	"github.com/newsanalyst/newsanalyst/internal/score"
)

const assessmentKind = "assessment"

// Options configures a Pipeline. Zero values fall back to defaults.
type Options struct {
	Scorer   *score.Scorer
	Cache    cache.Cache
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// Pipeline decodes, validates, and assesses analysis results
type Pipeline struct {
	scorer   *score.Scorer
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// New creates a pipeline
func New(opts Options) *Pipeline {
	p := &Pipeline{
		scorer:   opts.Scorer,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		logger:   opts.Logger,
	}
	if p.scorer == nil {
		p.scorer = score.NewScorer(nil)
	}
	if p.cache == nil {
		p.cache = cache.Noop{}
	}
	if p.logger == nil {
		p.logger = logging.Discard()
	}
	return p
}

// AnalyzeResult is the outcome for one record of a document
type AnalyzeResult struct {
	Index      int                   `json:"index"`
	Result     *model.AnalysisResult `json:"result,omitempty"`
	Assessment *model.Assessment     `json:"assessment,omitempty"`
	Cached     bool                  `json:"cached"`
	Error      string                `json:"error,omitempty"`
	Err        error                 `json:"-"`
}

// AnalyzeFile assesses every analysis result in the document at path
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) ([]AnalyzeResult, error) {
	format, err := codec.FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	results, err := p.AnalyzeBytes(ctx, data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return results, nil
}

// AnalyzeBytes assesses an in-memory document. Results are in document order;
// records that failed validation carry their error instead of an assessment.
func (p *Pipeline) AnalyzeBytes(ctx context.Context, data []byte, format codec.Format) ([]AnalyzeResult, error) {
	batch, err := codec.Decode(data, format, codec.KindAnalysisResult)
	if err != nil {
		return nil, err
	}

	out := make([]AnalyzeResult, 0, batch.Total)
	for _, rerr := range batch.Errors {
		out = append(out, AnalyzeResult{Index: rerr.Index, Error: rerr.Err.Error(), Err: rerr.Err})
	}

	for i, rec := range batch.Records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := rec.(*model.AnalysisResult)
		assessment, cached, err := p.Assess(result)
		out = append(out, AnalyzeResult{
			Index:      batch.Indexes[i],
			Result:     result,
			Assessment: &assessment,
			Cached:     cached,
			Err:        err,
		})
	}

	sortByIndex(out)
	return out, nil
}

// Assess returns the assessment of a validated result, from cache when a
// result with the same scores and claims was assessed before
func (p *Pipeline) Assess(r *model.AnalysisResult) (model.Assessment, bool, error) {
	payload, err := json.Marshal(fingerprintOf(p.scorer, r))
	if err != nil {
		return model.Assessment{}, false, fmt.Errorf("marshal result: %w", err)
	}
	key := cache.Key(assessmentKind, payload)

	var assessment model.Assessment
	if cache.GetJSON(p.cache, key, &assessment) {
		p.logger.Debug("assessment cache hit", "result_id", r.ID)
		assessment.ResultID = r.ID
		assessment.ArticleID = r.ArticleID
		return assessment, true, nil
	}

	assessment = p.scorer.Assess(r)
	if err := cache.SetJSON(p.cache, key, assessment, p.cacheTTL); err != nil {
		p.logger.Warn("assessment not cached", "result_id", r.ID, "error", err)
	}
	return assessment, false, nil
}

// fingerprint holds every input the scorer reads, including the scorer's own
// configuration. Generated identifiers and timestamps stay out so re-imported
// documents hit the cache.
type fingerprint struct {
	Scorer              string               `json:"scorer"`
	BiasScore           float64              `json:"bias_score"`
	CredibilityScore    float64              `json:"credibility_score"`
	ConfidenceScore     float64              `json:"confidence_score"`
	Sentiment           model.SentimentLabel `json:"sentiment"`
	SentimentConfidence float64              `json:"sentiment_confidence"`
	Claims              []claimFingerprint   `json:"claims"`
}

type claimFingerprint struct {
	Status  model.VerificationStatus `json:"status"`
	Sources []string                 `json:"sources"`
}

func fingerprintOf(scorer *score.Scorer, r *model.AnalysisResult) fingerprint {
	fp := fingerprint{
		Scorer:              scorer.Fingerprint(),
		BiasScore:           r.BiasScore,
		CredibilityScore:    r.CredibilityScore,
		ConfidenceScore:     r.ConfidenceScore,
		Sentiment:           r.Sentiment.Label,
		SentimentConfidence: r.Sentiment.Confidence,
		Claims:              make([]claimFingerprint, len(r.FactCheckClaims)),
	}
	for i, c := range r.FactCheckClaims {
		fp.Claims[i] = claimFingerprint{Status: c.VerificationStatus, Sources: c.Sources}
	}
	return fp
}

func sortByIndex(results []AnalyzeResult) {
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
}
