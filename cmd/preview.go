package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/speakup-edu/speakup/internal/quiz"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Run a quiz in plain text (no TUI, no audio)",
	Long: `Answer quiz questions line by line on standard input.

This is a stateless tool for checking a catalog: no microphone, no speech,
no screens. An empty answer reveals the expected one and moves on.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("mode", "words", "Quiz to run: words or sentences")
	previewCmd.Flags().Int("count", 5, "Number of questions to ask (0 for all)")
}

// drill is the part of a quiz session preview drives.
type drill interface {
	Index() int
	Len() int
	Finished() bool
	SubmitAnswer(input string) bool
	Result() quiz.Result
	ShowHint() bool
	Hint() string
	Answer() string
	Advance()
}

func runPreview(cmd *cobra.Command, args []string) error {
	mode, _ := cmd.Flags().GetString("mode")
	count, _ := cmd.Flags().GetInt("count")
	if count < 0 {
		return fmt.Errorf("invalid count %d", count)
	}

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	var opts quiz.Options
	if e.cfg.Seed != 0 {
		opts.Rand = quiz.NewRand(e.cfg.Seed)
	}

	var (
		d   drill
		ask func() string
	)
	switch strings.ToLower(mode) {
	case "words":
		s := quiz.NewWordSession(e.store, opts)
		d = s
		ask = func() string {
			w := s.Current()
			form := "past"
			if s.Direction() == quiz.PastToPresent {
				form = "present"
			}
			return fmt.Sprintf("%s (%s)\nType the %s form:", s.Question(), w.Korean, form)
		}
	case "sentences":
		s := quiz.NewSentenceSession(e.store, opts)
		d = s
		ask = func() string {
			q := s.Current()
			return fmt.Sprintf("%s\nUnscramble the words: %s", q.Korean, strings.Join(q.Scrambled, " / "))
		}
	default:
		return fmt.Errorf("invalid mode %q: must be words or sentences", mode)
	}

	if count == 0 || count > d.Len() {
		count = d.Len()
	}
	e.log.WithField("mode", mode).WithField("count", count).Info("preview started")

	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	var correct int

questions:
	for i := 1; i <= count && !d.Finished(); i++ {
		fmt.Fprintf(out, "── Question %d/%d ──\n", i, count)
		fmt.Fprintln(out, ask())

		for {
			fmt.Fprint(out, "\nYour answer: ")
			if !scanner.Scan() {
				fmt.Fprintln(out, "\n(input closed)")
				break questions
			}
			answer := strings.TrimSpace(scanner.Text())
			if answer == "" {
				fmt.Fprintf(out, "(skipped) Answer: %s\n\n", d.Answer())
				break
			}

			d.SubmitAnswer(answer)
			if d.Result() == quiz.ResultCorrect {
				correct++
				fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
				fmt.Fprintln(out)
				break
			}
			fmt.Fprintln(out, "\033[31m✗ Try again!\033[0m")
			if d.ShowHint() {
				fmt.Fprintf(out, "Hint: %s\n", d.Hint())
			}
		}
		d.Advance()
	}

	// Summary.
	fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", correct, count)
	return nil
}
