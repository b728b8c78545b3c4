// File: cmd/build.go
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"promptbuilder/pkg/prompt"
)

type buildOptions struct {
	session   sessionFlags
	query     string
	queryFile string
	search    string
	drops     []string
	output    string
	copy      bool
	strict    bool
	stats     bool
}

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

func newBuildCmd(a *app) *cobra.Command {
	var o buildOptions
	cmd := &cobra.Command{
		Use:   "build [paths...]",
		Short: "Assemble a prompt from a query and files",
		Long: `Register the given files and folders, select every entry matching --search,
and write "query\n\n" followed by a "CONTENTS OF <path>:" block per file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBuild(cmd, args, &o)
		},
	}
	addSessionFlags(cmd, &o.session)
	cmd.Flags().StringVarP(&o.query, "query", "q", "", "query text placed before the file contents")
	cmd.Flags().StringVar(&o.queryFile, "query-file", "", `read the query from a file ("-" for stdin)`)
	cmd.Flags().StringVar(&o.search, "search", "", "only select registered files whose path contains this term")
	cmd.Flags().StringArrayVar(&o.drops, "drop", nil, "raw drag-and-drop payload, {braced} or whitespace separated (repeatable)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write the prompt to this file instead of stdout")
	cmd.Flags().BoolVar(&o.copy, "copy", false, "copy the prompt to the clipboard")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "fail when any selected file cannot be read")
	cmd.Flags().BoolVar(&o.stats, "stats", false, "print character and word counts to stderr")
	return cmd
}

func (a *app) runBuild(cmd *cobra.Command, args []string, o *buildOptions) error {
	sess, err := a.newSession(cmd, &o.session)
	if err != nil {
		return err
	}

	query, err := readQuery(cmd, o)
	if err != nil {
		return err
	}
	sess.SetQuery(query)

	for _, raw := range args {
		if sess.AddPath(raw) == 0 {
			a.logger.Info("No new files registered for path", zap.String("path", raw))
		}
	}
	for _, payload := range o.drops {
		sess.Drop(payload)
	}

	sess.SetSearch(o.search)
	sess.SelectVisible()
	if sess.SelectedCount() == 0 {
		a.logger.Warn("No files selected; the prompt contains only the query")
	}

	res := sess.Build()

	output := o.output
	if output == "" {
		output = a.cfg.Output
	}
	if err := a.writePrompt(cmd.OutOrStdout(), output, res.Text); err != nil {
		return err
	}
	if o.copy {
		if err := copyToClipboard(res.Text); err != nil {
			return fmt.Errorf("failed to copy prompt to clipboard: %w", err)
		}
	}

	report(cmd.ErrOrStderr(), res)
	if o.stats {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d chars, %d words, %d files\n",
			res.Stats.Chars, res.Stats.Words, sess.SelectedCount())
	}

	if o.strict {
		if err := res.Err(); err != nil {
			return fmt.Errorf("%d selected files could not be read: %w", len(res.Warnings), err)
		}
	}
	return nil
}

func readQuery(cmd *cobra.Command, o *buildOptions) (string, error) {
	switch o.queryFile {
	case "":
		return o.query, nil
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read query from stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(o.queryFile)
		if err != nil {
			return "", fmt.Errorf("failed to read query file: %w", err)
		}
		return string(data), nil
	}
}

// writePrompt writes text to path, or to stdout when path is empty.
func (a *app) writePrompt(stdout io.Writer, path, text string) error {
	if path == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	if err := ensureDirectory(filepath.Dir(path), a.logger); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := writeToFile(path, []byte(text), 0o644, a.logger); err != nil {
		return fmt.Errorf("failed to write prompt: %w", err)
	}
	return nil
}

// report prints pruned paths and read warnings from one assembly.
func report(w io.Writer, res prompt.Result) {
	for _, path := range res.Pruned {
		fmt.Fprintf(w, "removed missing file: %s\n", path)
	}
	for _, warning := range res.Warnings {
		fmt.Fprintf(w, "skipped unreadable file: %s\n", warning.Error())
	}
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}

// writeToFile writes data to a file and logs the operation.
func writeToFile(path string, data []byte, perm os.FileMode, logger *zap.Logger) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		logger.Error("Failed to write file", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Successfully wrote file", zap.String("path", path))
	return nil
}
