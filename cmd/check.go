package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report which speech and audio capabilities are available",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Provider:     %s\n", e.cfg.Speech.Provider)

		svc, err := e.speech(cmd.Context())
		if err != nil {
			fmt.Fprintf(out, "              %v\n", err)
		}
		fmt.Fprintf(out, "Recognition:  %s\n", capability(svc.Recognizer))
		fmt.Fprintf(out, "Synthesis:    %s\n", capability(svc.Synthesizer))

		src, player := e.devices()
		fmt.Fprintf(out, "Microphone:   %s\n", yesNo(src != nil))
		fmt.Fprintf(out, "Speaker:      %s\n", yesNo(player != nil))

		if svc.Recognizer != nil && src != nil {
			fmt.Fprintln(out, "\nPronunciation practice is ready.")
		} else {
			fmt.Fprintln(out, "\nPronunciation practice is unavailable.")
		}
		return nil
	},
}

func capability(c interface{ Name() string }) string {
	if c == nil {
		return "unavailable"
	}
	return c.Name()
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
