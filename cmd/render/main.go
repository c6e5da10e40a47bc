// Command render converts assistant replies into HTML with the same
// renderer the API uses.
//
// Usage:
//
//	render [files...] [-o output] [--wrap] [--title title]
//
// With no files, input is read from standard input. Each file is rendered
// on its own and the results are written in order.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alchemorsel/recipe-assistant/pkg/logger"
	"github.com/alchemorsel/recipe-assistant/pkg/markup"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	output  string
	wrap    bool
	title   string
	verbose bool
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "render [files...]",
		Short: "Render assistant replies as HTML",
		Long: `Render converts the lightweight markup produced by the recipe
assistant into HTML. Headers, bullet and numbered lists, bold and italic
text are recognised. Everything else is escaped and emitted as paragraphs.

If no input file is given, input is read from standard input. If no
output file is given, output is written to standard output.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			out := stdout
			if opts.output != "" {
				f, err := os.Create(opts.output)
				if err != nil {
					return fmt.Errorf("failed to create output: %w", err)
				}
				defer f.Close()
				out = f
			}

			return run(stdin, out, args, opts, log)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "write output to this file")
	cmd.Flags().BoolVarP(&opts.wrap, "wrap", "w", false, "wrap output in a minimal HTML document")
	cmd.Flags().StringVar(&opts.title, "title", "Recipe", "document title used with --wrap")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")
	return cmd
}

func run(stdin io.Reader, out io.Writer, files []string, opts options, log *zap.Logger) error {
	var body strings.Builder

	if len(files) == 0 {
		html, err := renderFrom(stdin, "<stdin>", log)
		if err != nil {
			return err
		}
		body.WriteString(html)
	}

	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		html, err := renderFrom(f, name, log)
		f.Close()
		if err != nil {
			return err
		}
		body.WriteString(html)
	}

	result := body.String()
	if opts.wrap {
		result = wrapDocument(opts.title, result)
	}

	if _, err := io.WriteString(out, result); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func renderFrom(r io.Reader, name string, log *zap.Logger) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}

	start := time.Now()
	html := markup.Render(string(data))
	log.Debug("Rendered input",
		zap.String("source", name),
		zap.Int("input_bytes", len(data)),
		zap.Int("output_bytes", len(html)),
		zap.Duration("duration", time.Since(start)),
	)
	return html, nil
}

func wrapDocument(title, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(markup.Escape(title))
	b.WriteString("</title>\n</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.New(logger.Config{
		Level:       level,
		Format:      "console",
		OutputPaths: []string{"stderr"},
	})
}
