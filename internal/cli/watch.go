package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/regexmatch/internal/logging"
	"github.com/yaklabco/regexmatch/internal/ui/pretty"
	"github.com/yaklabco/regexmatch/pkg/binding"
	"github.com/yaklabco/regexmatch/pkg/blocks"
	"github.com/yaklabco/regexmatch/pkg/config"
	"github.com/yaklabco/regexmatch/pkg/fix"
	"github.com/yaklabco/regexmatch/pkg/fsutil"
	"github.com/yaklabco/regexmatch/pkg/matcher"
	"github.com/yaklabco/regexmatch/pkg/runner"
	"github.com/yaklabco/regexmatch/pkg/session"
)

const (
	defaultDebounce = 100 * time.Millisecond
	clearScreen     = "\x1b[H\x1b[2J"
)

type watchFlags struct {
	bind     string
	literal  string
	block    int
	apply    bool
	dryRun   bool
	once     bool
	debounce time.Duration
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Show live matches of a test document while it is edited",
		Long: `Watch a regex test document and print its blocks with every match
highlighted each time the file is saved. A document that stops following the
block format keeps showing its last valid blocks next to the format error.

A block can be bound to a regex literal in a source file with --bind. The
literal defaults to the pattern of the block selected with --block; with
--literal a block is added for a literal the document does not contain yet.
With --apply, an edited pattern is written back over the bound literal;
--dry-run shows the change as a diff instead.

Examples:
  regexmatch watch ids.rgx
  regexmatch watch ids.rgx --bind main.go --apply
  regexmatch watch ids.rgx --bind main.go --literal '/[a-z]+/g'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.bind, "bind", "", "source file holding the regex literal to bind")
	cmd.Flags().StringVar(&flags.literal, "literal", "", "regex literal to look up in the bound source file")
	cmd.Flags().IntVar(&flags.block, "block", 1, "1-based index of the block to bind")
	cmd.Flags().BoolVar(&flags.apply, "apply", false, "write edited patterns back to the bound source")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "with --apply, show the source diff instead of writing it")
	cmd.Flags().BoolVar(&flags.once, "once", false, "render once and exit")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", defaultDebounce, "delay before re-reading a changed file")

	return cmd
}

// watcher renders one document session to an output stream.
type watcher struct {
	path   string
	cfg    *config.Config
	flags  *watchFlags
	sess   *session.Session
	styles *pretty.Styles
	out    io.Writer
	clear  bool

	// previews holds the diffs of the last dry-run apply.
	previews []*fix.Diff
}

func runWatch(cmd *cobra.Command, file string, flags *watchFlags) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flags.literal != "" && flags.bind == "" {
		return fmt.Errorf("%w: --literal requires --bind", ErrUsage)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := loadConfig(ctx, cmd, workDir, &config.Config{})
	if err != nil {
		return err
	}

	path, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	logger := logging.Default().With(logging.FieldPath, path)
	ctx = logging.WithLogger(ctx, logger)

	out := cmd.OutOrStdout()
	markdown := cfg.Markdown.IsEnabled() && runner.IsMarkdown(path, cfg.Markdown.Extensions)

	w := &watcher{
		path:   path,
		cfg:    cfg,
		flags:  flags,
		sess:   runner.New(cfg).NewSession(ctx, path, markdown),
		styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out), cfg.Colors),
		out:    out,
		clear:  isTerminal(out),
	}

	if err := w.refresh(ctx); err != nil {
		return err
	}
	if flags.bind != "" {
		if err := w.bind(ctx); err != nil {
			return err
		}
	}
	w.render()

	if flags.once {
		if len(w.sess.Diagnostics()) > 0 {
			return ErrIssuesFound
		}
		return nil
	}

	return w.loop(ctx)
}

// refresh reads the document and updates the session. Format errors are
// kept in the session and rendered, not returned.
func (w *watcher) refresh(ctx context.Context) error {
	content, _, err := fsutil.ReadFile(ctx, w.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", w.path, err)
	}

	if err := w.update(ctx, string(content), nil); err != nil {
		return err
	}

	if w.flags.apply {
		w.applyStale(ctx)
	}
	return nil
}

func (w *watcher) update(ctx context.Context, text string, tag blocks.Tag) error {
	err := w.sess.Update(ctx, text, tag)
	var formatErr *blocks.FormatError
	if err != nil && !errors.As(err, &formatErr) {
		return err
	}
	return nil
}

// bind attaches a binding to the selected block. A literal that no block
// carries yet gets a new block appended to the document.
func (w *watcher) bind(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	literal := w.flags.literal
	index := w.flags.block - 1

	if literal == "" {
		bs := w.sess.Blocks()
		if index < 0 || index >= len(bs) {
			return fmt.Errorf("%w: block %d: %w", ErrUsage, w.flags.block, session.ErrNoBlock)
		}
		cb, ok := bs[index].(*blocks.CompiledBlock)
		if !ok {
			return fmt.Errorf("%w: block %d does not compile", ErrUsage, w.flags.block)
		}
		literal = sourceLiteral(cb)
	}

	src, err := binding.Locate(ctx, w.flags.bind, literal)
	if err != nil {
		return err
	}

	if w.flags.literal != "" {
		index = findLiteral(w.sess.Blocks(), literal)
	}

	if index >= 0 {
		if err := w.sess.Retag(index, src); err != nil {
			return err
		}
		logger.Info("bound block", logging.FieldSource, src.String(), logging.FieldLiteral, literal)
		return nil
	}

	content, info, err := fsutil.ReadFile(ctx, w.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", w.path, err)
	}
	updated := appendBlock(string(content), literal)
	if err := fsutil.Rewrite(ctx, info, content, []byte(updated), false); err != nil {
		return fmt.Errorf("add block to %s: %w", w.path, err)
	}

	logger.Info("added block", logging.FieldSource, src.String(), logging.FieldLiteral, literal)
	return w.update(ctx, updated, src)
}

// applyStale writes every edited pattern back over its bound literal.
func (w *watcher) applyStale(ctx context.Context) {
	logger := logging.FromContext(ctx)
	w.previews = nil

	for _, lens := range w.sess.Lenses() {
		src, ok := lens.Tag.(*binding.Source)
		if !ok || !lens.Stale || lens.Literal == "" {
			continue
		}

		if w.flags.dryRun {
			diff, err := binding.Preview(ctx, src, lens.Literal)
			if err != nil {
				logger.Warn("preview pattern", logging.FieldSource, src.String(), logging.FieldError, err)
				continue
			}
			w.previews = append(w.previews, diff)
			continue
		}

		updated, err := binding.Apply(ctx, src, lens.Literal, binding.Options{Backup: w.cfg.Backups})
		if err != nil {
			logger.Warn("apply pattern", logging.FieldSource, src.String(), logging.FieldError, err)
			continue
		}
		if err := w.sess.Retag(lens.Index, updated); err != nil {
			logger.Warn("retag block", logging.FieldError, err)
			continue
		}

		logger.Info("applied pattern", logging.FieldSource, updated.String(), logging.FieldLiteral, updated.Literal)
	}
}

func (w *watcher) render() {
	if w.clear {
		fmt.Fprint(w.out, clearScreen)
	}

	fmt.Fprintln(w.out, w.styles.FormatFileHeader(w.path, len(w.sess.Blocks()), len(w.sess.Diagnostics())))

	for _, diag := range w.sess.Diagnostics() {
		fmt.Fprint(w.out, w.styles.FormatDiagnostic(w.path, diag, ""))
	}

	results := make(map[int][]matcher.Result)
	matches, err := w.sess.Matches()
	if err != nil {
		fmt.Fprintln(w.out, w.styles.Error.Render(err.Error()))
	}
	for _, bm := range matches {
		results[bm.Index] = bm.Results
	}

	lenses := make(map[int]session.Lens)
	for _, lens := range w.sess.Lenses() {
		lenses[lens.Index] = lens
	}

	for i, b := range w.sess.Blocks() {
		fmt.Fprintln(w.out)
		fmt.Fprint(w.out, w.styles.HighlightBlock(b, results[i]))
		for j, res := range results[i] {
			fmt.Fprint(w.out, w.styles.FormatMatch(j, res))
		}
		if lens, ok := lenses[i]; ok {
			fmt.Fprint(w.out, w.styles.FormatLens(lens))
		}
	}

	for _, diff := range w.previews {
		fmt.Fprintln(w.out)
		fmt.Fprint(w.out, w.styles.FormatDiff(diff))
	}
}

func (w *watcher) loop(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	// Editors often replace the file, so watch its directory.
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}

	timer := time.NewTimer(w.flags.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(w.flags.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)

		case <-timer.C:
			if err := w.refresh(ctx); err != nil {
				if errors.Is(err, fsutil.ErrNotFound) {
					continue
				}
				return err
			}
			w.render()
		}
	}
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
