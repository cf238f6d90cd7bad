package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/regexmatch/internal/logging"
	"github.com/yaklabco/regexmatch/pkg/config"
	"github.com/yaklabco/regexmatch/pkg/fsutil"
	"github.com/yaklabco/regexmatch/pkg/pattern"
)

func newNewCommand() *cobra.Command {
	var literal string

	cmd := &cobra.Command{
		Use:   "new FILE",
		Short: "Create a regex test document or add a block to one",
		Long: `Create a regex test document holding a sample block. With --literal, a
block for that regex literal is added instead, with a placeholder corpus line
to replace with test strings. The file is created when it does not exist.

Examples:
  regexmatch new ids.rgx
  regexmatch new ids.rgx --literal '/[0-9]+a+/gm'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, args[0], literal)
		},
	}

	cmd.Flags().StringVar(&literal, "literal", "", "regex literal to add a block for")

	return cmd
}

func runNew(cmd *cobra.Command, file, literal string) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")
	ctx := commandContext(cmd)

	path, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if literal != "" {
		if _, err := pattern.Compile(literal, 0); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
	}

	content, info, err := fsutil.ReadFile(ctx, path)
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		doc := config.DefaultDocument
		if literal != "" {
			doc = appendBlock("", literal)
		}
		if err := fsutil.WriteAtomic(ctx, path, []byte(doc+"\n"), fsutil.DefaultFileMode); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
		logger.Info("created test document", logging.FieldPath, file)
		return nil

	case err != nil:
		return fmt.Errorf("read %s: %w", file, err)
	}

	if literal == "" {
		return fmt.Errorf("%w: %s already exists; use --literal to add a block", ErrUsage, file)
	}

	updated := appendBlock(string(content), literal) + "\n"
	if err := fsutil.Rewrite(ctx, info, content, []byte(updated), false); err != nil {
		return fmt.Errorf("add block: %w", err)
	}

	logger.Info("added block", logging.FieldPath, file, logging.FieldLiteral, literal)
	return nil
}
