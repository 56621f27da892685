package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/speakup-edu/speakup/internal/pronounce"
)

var scoreCmd = &cobra.Command{
	Use:   "score <reference> <transcript>",
	Short: "Score a transcript against a reference the way practice does",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		printResult(cmd, pronounce.Score(args[0], args[1]))
		return nil
	},
}

// printResult writes a practice result with each heard word marked.
func printResult(cmd *cobra.Command, r pronounce.Result) {
	out := cmd.OutOrStdout()
	if r.NothingDetected {
		fmt.Fprintln(out, "Nothing detected.")
		return
	}
	fmt.Fprintf(out, "Score: %d%%\n", r.Score)

	words := make([]string, 0, len(r.Words))
	for _, w := range r.Words {
		mark := "✗"
		if w.Match {
			mark = "✓"
		}
		words = append(words, w.Word+mark)
	}
	fmt.Fprintf(out, "Heard: %s\n", strings.Join(words, " "))
	fmt.Fprintf(out, "Matched %d of %d words\n", r.Matched(), len(r.Words))
}
