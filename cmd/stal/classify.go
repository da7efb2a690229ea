package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"stal/internal/bayes"
	"stal/internal/driver"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <model> [text]",
	Short: "Attribute a text to one of the model's authors",
	Long: `Classify scores a text against a trained model, per sentence and overall.

The text argument is used literally, unless it ends in .txt, in which case the
file's contents are classified. With no text argument the input is read from
stdin (interactively or piped).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().Bool("sentences", false, "also print per-sentence scores")
}

func runClassify(cmd *cobra.Command, args []string) error {
	modelPath := args[0]
	var textArg string
	if len(args) > 1 {
		textArg = args[1]
	}

	opts, cleanup, err := setupRun(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	text, err := resolveInput(textArg)
	if err != nil {
		return err
	}

	result, authors, err := driver.ClassifyRun(cmd.Context(), modelPath, text, opts)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	showSentences, err := cmd.Flags().GetBool("sentences")
	if err != nil {
		return fmt.Errorf("failed to get sentences flag: %w", err)
	}
	printClassification(cmd.OutOrStdout(), result, authors, showSentences)
	return nil
}

// printClassification renders the aggregate (and optionally per-sentence)
// scores, authors ordered best-first with the model order breaking ties.
func printClassification(out io.Writer, result bayes.Classification, authors []string, showSentences bool) {
	ranked := make([]string, len(authors))
	copy(ranked, authors)
	sort.SliceStable(ranked, func(i, j int) bool {
		return result.Aggregate[ranked[i]] > result.Aggregate[ranked[j]]
	})

	fmt.Fprintln(out, "aggregate:")
	for _, author := range ranked {
		fmt.Fprintf(out, "  %-24s %.4f\n", author, result.Aggregate[author])
	}

	if !showSentences {
		return
	}
	fmt.Fprintln(out, "sentences:")
	for _, sentence := range result.Sentences {
		fmt.Fprintf(out, "  offset %d:\n", sentence.Offset)
		for _, author := range authors {
			fmt.Fprintf(out, "    %-22s %.4f\n", author, sentence.Scores[author])
		}
	}
}
