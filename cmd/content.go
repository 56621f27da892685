package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/speakup-edu/speakup/internal/content"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "List the practice catalog (optionally filtered by kind)",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")

		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (schema %s)\n\n", e.store.Title(), e.store.SchemaVersion())

		switch kind {
		case "":
			listWords(cmd, e.store.Vocabulary())
			fmt.Fprintln(out)
			listSentences(cmd, e.store.Sentences())
		case "words":
			listWords(cmd, e.store.Vocabulary())
		case "sentences":
			listSentences(cmd, e.store.Sentences())
		default:
			return fmt.Errorf("invalid kind %q: must be words or sentences", kind)
		}
		return nil
	},
}

func init() {
	contentCmd.Flags().String("kind", "", "Show only words or sentences")
}

func listWords(cmd *cobra.Command, words []content.VocabWord) {
	out := cmd.OutOrStdout()

	// Header.
	fmt.Fprintf(out, "%4s  %-16s  %-16s  %s\n", "ID", "Present", "Past", "Korean")
	fmt.Fprintln(out, strings.Repeat("─", 60))

	for _, w := range words {
		fmt.Fprintf(out, "%4d  %-16s  %-16s  %s\n", w.ID, w.Present, w.Past, w.Korean)
	}
	fmt.Fprintf(out, "\n%d words\n", len(words))
}

func listSentences(cmd *cobra.Command, sentences []content.SentenceQuestion) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%4s  %-40s  %s\n", "ID", "Answer", "Korean")
	fmt.Fprintln(out, strings.Repeat("─", 80))

	for _, q := range sentences {
		answer := q.Answer
		if len(answer) > 40 {
			answer = answer[:37] + "..."
		}
		fmt.Fprintf(out, "%4d  %-40s  %s\n", q.ID, answer, q.Korean)
	}
	fmt.Fprintf(out, "\n%d sentences\n", len(sentences))
}
