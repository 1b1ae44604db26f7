package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mlorentedev/fonttree/internal/adapter"
	"github.com/mlorentedev/fonttree/internal/analysis"
	"github.com/mlorentedev/fonttree/internal/logging"
)

type analyzeOptions struct {
	configPath string
	mock       bool
	docType    string
	heading    string
	text       string
	fonts      []string
	jsonOut    bool
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyse one design from the command line",
		Long: "Runs a single analysis through the configured model and prints the verdict.\n" +
			"The design text is read from --text, or from stdin when --text is empty.",
		Example: `  fonttree analyze --text "Buy now, 50% off today only!" --font "Comic Sans" --font Arial
  cat flyer.txt | fonttree analyze --doc-type "a flyer" --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "path to config.yaml")
	f.BoolVar(&opts.mock, "mock", false, "use the mock model instead of a real backend")
	f.StringVar(&opts.docType, "doc-type", analysis.DefaultDocType, "kind of document")
	f.StringVar(&opts.heading, "heading", analysis.DefaultHeading, "document heading")
	f.StringVar(&opts.text, "text", "", "full design text (default: read stdin)")
	f.StringArrayVar(&opts.fonts, "font", nil, "font used in the design (repeatable)")
	f.BoolVar(&opts.jsonOut, "json", false, "print the raw JSON result")
	return cmd
}

func runAnalyze(cmd *cobra.Command, opts analyzeOptions) error {
	cfg, err := loadConfig(opts.configPath, opts.mock)
	if err != nil {
		return err
	}
	// Keep stdout for the result.
	slog.SetDefault(logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr()))

	var model adapter.Model
	if opts.mock {
		model = &adapter.MockAdapter{}
	} else {
		model, err = adapter.New(cfg.ModelSettings())
		if err != nil && !errors.Is(err, adapter.ErrMissingCredential) {
			return fmt.Errorf("model: %w", err)
		}
	}

	text := opts.text
	if text == "" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(b)
	}

	req := analysis.Request{
		DocType:   opts.docType,
		Heading:   opts.heading,
		FullText:  text,
		UsedFonts: opts.fonts,
	}.WithDefaults()

	res, err := analysis.NewService(model).Analyze(cmd.Context(), req)
	if err != nil {
		return describeFailure(err)
	}

	out := cmd.OutOrStdout()
	if opts.jsonOut {
		_, err := fmt.Fprintln(out, string(res))
		return err
	}

	rep, err := res.Report()
	if err != nil {
		// Valid JSON but not the expected shape; show it as-is.
		fmt.Fprintln(out, string(res))
		return nil
	}
	printReport(out, rep)
	return nil
}

func describeFailure(err error) error {
	switch analysis.ReasonOf(err) {
	case analysis.ReasonUnconfigured:
		return errors.New("no model credential configured (set FONTTREE_MODEL_API_KEY or GOOGLE_API_KEY, or use --mock)")
	case analysis.ReasonInvalidRequest:
		return errors.New("design text is empty")
	default:
		return err
	}
}

func printReport(w io.Writer, rep analysis.Report) {
	label := color.New(color.Bold)
	good := color.New(color.FgGreen)
	bad := color.New(color.FgYellow)

	label.Fprint(w, "Purpose: ")
	fmt.Fprintln(w, rep.Purpose)
	label.Fprint(w, "Mood:    ")
	fmt.Fprintln(w, rep.Mood)

	if len(rep.FontEvaluations) == 0 {
		return
	}
	fmt.Fprintln(w)
	label.Fprintln(w, "Fonts")
	for _, fe := range rep.FontEvaluations {
		if fe.Evaluation == analysis.EvaluationGood {
			good.Fprintf(w, "  ✓ %s", fe.FontName)
			fmt.Fprintln(w)
			continue
		}
		bad.Fprintf(w, "  ✗ %s (%s)", fe.FontName, fe.Evaluation)
		fmt.Fprintln(w)
		if fe.Recommendation != nil {
			fmt.Fprintf(w, "    try %s", *fe.Recommendation)
			if fe.Reason != nil {
				fmt.Fprintf(w, ": %s", strings.TrimSpace(*fe.Reason))
			}
			fmt.Fprintln(w)
		}
	}
}
