package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/regexmatch/internal/logging"
	"github.com/yaklabco/regexmatch/pkg/blocks"
	"github.com/yaklabco/regexmatch/pkg/config"
	"github.com/yaklabco/regexmatch/pkg/fsutil"
	"github.com/yaklabco/regexmatch/pkg/mdblocks"
	"github.com/yaklabco/regexmatch/pkg/session"
)

// Runner checks documents on a bounded pool of workers.
type Runner struct {
	cfg       *config.Config
	extractor *mdblocks.Extractor
}

// New creates a Runner for cfg. A nil cfg uses the defaults.
func New(cfg *config.Config) *Runner {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Runner{
		cfg:       cfg,
		extractor: mdblocks.New(cfg.Markdown.Languages),
	}
}

// Run discovers files under opts.Paths and checks them concurrently.
// Outcomes are ordered by path regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		opts.Config = r.cfg
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logging.FromContext(ctx).Debug("checking files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs,
	)

	// Each worker owns one slot, so no locking is needed.
	outcomes := make([]FileOutcome, len(files))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.CheckFile(gctx, path)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

// CheckFile parses one file and matches every block.
func (r *Runner) CheckFile(ctx context.Context, path string) FileOutcome {
	outcome := FileOutcome{
		Path:     path,
		Markdown: r.cfg.Markdown.IsEnabled() && IsMarkdown(path, r.cfg.Markdown.Extensions),
	}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Content = content

	sess := r.NewSession(ctx, path, outcome.Markdown)

	if err := sess.Update(ctx, string(content), nil); err != nil {
		var formatErr *blocks.FormatError
		if !errors.As(err, &formatErr) {
			outcome.Error = err
			return outcome
		}
	}

	outcome.Blocks = sess.Blocks()
	outcome.Diagnostics = sess.Diagnostics()

	matches, err := sess.Matches()
	outcome.Matches = matches
	if err != nil {
		outcome.Error = err
	}

	logging.FromContext(ctx).Debug("checked file",
		logging.FieldPath, path,
		logging.FieldBlocks, len(outcome.Blocks),
		logging.FieldMatches, outcome.MatchCount(),
	)

	return outcome
}

// NewSession creates a session for path that reads fenced test blocks when
// markdown is set.
func (r *Runner) NewSession(ctx context.Context, path string, markdown bool) *session.Session {
	if !markdown {
		return session.New(path)
	}
	return session.New(path, session.WithParseFunc(func(text string) ([]blocks.Block, error) {
		return r.extractor.Parse(ctx, []byte(text))
	}))
}
