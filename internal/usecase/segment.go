package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"morphseg/config"
	"morphseg/internal/adapter/cache"
	"morphseg/internal/adapter/segmenter"
	"morphseg/internal/adapter/trie"
	"morphseg/internal/domain"
	"morphseg/internal/logger"
	"morphseg/internal/metrics"
	"morphseg/internal/port"
)

// DefaultBatchSize is the number of words scored per goroutine.
const DefaultBatchSize = 256

// SegmentOptions configures a segmentation run.
type SegmentOptions struct {
	BranchThreshold int
	MinStemLength   int
	TiePolicy       trie.TiePolicy
	Workers         int // 0 = runtime.NumCPU()
	CacheSize       int // 0 disables the decision caches
	BatchSize       int
}

// DefaultSegmentOptions returns the options of an unconfigured run.
func DefaultSegmentOptions() SegmentOptions {
	return SegmentOptions{
		BranchThreshold: trie.DefaultBranchThreshold,
		MinStemLength:   segmenter.DefaultMinStemLength,
		TiePolicy:       trie.PreferLater,
		BatchSize:       DefaultBatchSize,
	}
}

// OptionsFromConfig converts the segment section of cfg.
func OptionsFromConfig(cfg *config.Config) (SegmentOptions, error) {
	policy, err := trie.ParseTiePolicy(cfg.Segment.TiePolicy)
	if err != nil {
		return SegmentOptions{}, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	return SegmentOptions{
		BranchThreshold: cfg.Segment.BranchThreshold,
		MinStemLength:   cfg.Segment.MinStemLength,
		TiePolicy:       policy,
		Workers:         cfg.Segment.Workers,
		CacheSize:       cfg.Segment.CacheSize,
		BatchSize:       DefaultBatchSize,
	}, nil
}

// ProgressFunc is told how many words a finished batch held. It may be
// called from several goroutines at once.
type ProgressFunc func(done int)

// SegmentUseCase builds both models over a corpus and scores every word
// against them.
type SegmentUseCase struct {
	opts    SegmentOptions
	prefix  *segmenter.Model
	suffix  *segmenter.Model
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewSegmentUseCase creates a use case with empty models.
func NewSegmentUseCase(opts SegmentOptions) *SegmentUseCase {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	u := &SegmentUseCase{
		opts:   opts,
		logger: logger.WithComponent("segment"),
	}
	u.reset()
	return u
}

// WithMetrics makes the use case record build and score statistics in m.
func (u *SegmentUseCase) WithMetrics(m *metrics.Metrics) *SegmentUseCase {
	u.metrics = m
	return u
}

func (u *SegmentUseCase) reset() {
	scorer := trie.NewScorer(u.opts.BranchThreshold, u.opts.TiePolicy)
	u.prefix = segmenter.NewModel(domain.ModelPrefix, scorer, u.opts.MinStemLength, cache.NewDecisionCache(u.opts.CacheSize))
	u.suffix = segmenter.NewModel(domain.ModelSuffix, scorer, u.opts.MinStemLength, cache.NewDecisionCache(u.opts.CacheSize))
}

// Model returns the model of the given kind.
func (u *SegmentUseCase) Model(kind domain.Model) *segmenter.Model {
	if kind == domain.ModelSuffix {
		return u.suffix
	}
	return u.prefix
}

// Build replaces both models with tries over words. It must finish before
// Run is called.
func (u *SegmentUseCase) Build(words []string) {
	start := time.Now()
	u.reset()
	u.prefix.AddAll(words)
	u.suffix.AddAll(words)
	if u.metrics != nil {
		u.metrics.ObservePhase("build", time.Since(start))
		for _, m := range []*segmenter.Model{u.prefix, u.suffix} {
			u.metrics.TrieNodes.WithLabelValues(string(m.Kind())).Set(float64(m.Trie().Size()))
		}
	}
	u.logger.Info("built tries",
		"words", len(words),
		"prefix_nodes", u.prefix.Trie().Size(),
		"suffix_nodes", u.suffix.Trie().Size(),
		"elapsed", time.Since(start),
	)
}

// Segment reads src, builds the models and scores every word.
func (u *SegmentUseCase) Segment(ctx context.Context, src port.WordSource, progress ProgressFunc) (*SegmentResult, error) {
	words, err := src.Words()
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	u.Build(words)
	return u.Run(ctx, words, progress)
}

// Run scores words against the built models. Records come back in input
// order and tallies are summed in that order, so the result does not depend
// on the number of workers.
func (u *SegmentUseCase) Run(ctx context.Context, words []string, progress ProgressFunc) (*SegmentResult, error) {
	start := time.Now()
	n := len(words)
	result := &SegmentResult{
		Words:  words,
		Prefix: make([]domain.SegmentationRecord, n),
		Suffix: make([]domain.SegmentationRecord, n),
	}

	workers := u.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var hits0, misses0 [2]uint64
	hits0[0], misses0[0] = u.prefix.CacheStats()
	hits0[1], misses0[1] = u.suffix.CacheStats()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for lo := 0; lo < n; lo += u.opts.BatchSize {
		if gctx.Err() != nil {
			break
		}
		lo := lo
		hi := min(lo+u.opts.BatchSize, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				result.Prefix[i] = u.prefix.Segment(words[i])
				result.Suffix[i] = u.suffix.Segment(words[i])
			}
			u.logger.Debug("scored batch", "from", lo, "to", hi)
			if progress != nil {
				progress(hi - lo)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to score corpus: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to score corpus: %w", err)
	}

	for i := range words {
		result.PrefixTally.Add(result.Prefix[i])
		result.SuffixTally.Add(result.Suffix[i])
	}
	result.Winner = SelectModel(result.PrefixTally, result.SuffixTally)

	if u.metrics != nil {
		u.metrics.ObservePhase("score", time.Since(start))
		u.metrics.ObserveSummary(result.Summary())
		for i, m := range []*segmenter.Model{u.prefix, u.suffix} {
			hits, misses := m.CacheStats()
			u.metrics.CacheHitsTotal.WithLabelValues(string(m.Kind())).Add(float64(hits - hits0[i]))
			u.metrics.CacheMissesTotal.WithLabelValues(string(m.Kind())).Add(float64(misses - misses0[i]))
		}
	}

	u.logger.Info("scored corpus",
		"words", n,
		"workers", workers,
		"prefix_splits", result.PrefixTally.SplitCount,
		"suffix_splits", result.SuffixTally.SplitCount,
		"winner", result.Winner,
		"elapsed", time.Since(start),
	)
	return result, nil
}

// SegmentResult holds both models' records for one corpus.
type SegmentResult struct {
	Words       []string
	Prefix      []domain.SegmentationRecord
	Suffix      []domain.SegmentationRecord
	PrefixTally domain.CorpusTally
	SuffixTally domain.CorpusTally
	Winner      domain.Model
}

// Records returns the records produced by model m.
func (r *SegmentResult) Records(m domain.Model) []domain.SegmentationRecord {
	if m == domain.ModelSuffix {
		return r.Suffix
	}
	return r.Prefix
}

// Final returns the winning model's records.
func (r *SegmentResult) Final() []domain.SegmentationRecord {
	return r.Records(r.Winner)
}

func (r *SegmentResult) Summary() domain.Summary {
	return domain.Summary{
		Words:          len(r.Words),
		PrefixSplits:   r.PrefixTally.SplitCount,
		SuffixSplits:   r.SuffixTally.SplitCount,
		PrefixScoreSum: r.PrefixTally.ScoreSum,
		SuffixScoreSum: r.SuffixTally.ScoreSum,
		Winner:         r.Winner,
	}
}

// Publish writes both models' records, the final records and the summary
// to sink, in that order.
func Publish(sink port.Sink, r *SegmentResult, configHash string) error {
	for _, m := range domain.Models {
		if err := sink.WriteModel(m, r.Records(m)); err != nil {
			return fmt.Errorf("failed to write %s records: %w", m, err)
		}
	}
	if err := sink.WriteFinal(r.Final()); err != nil {
		return fmt.Errorf("failed to write final records: %w", err)
	}
	summary := r.Summary()
	summary.ConfigHash = configHash
	if err := sink.WriteSummary(summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
