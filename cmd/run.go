package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/speakup-edu/speakup/internal/app"
	"github.com/speakup-edu/speakup/internal/practice"
	"github.com/speakup-edu/speakup/internal/screens/quizkit"
	"github.com/speakup-edu/speakup/internal/speech"
)

// runApp loads configuration, opens audio and speech, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	svc, err := e.speech(cmd.Context())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Speech provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Pronunciation practice will be unavailable.")
		e.log.WithError(err).Warn("speech unavailable")
	}
	src, player := e.devices()

	deps := quizkit.Deps{
		Store: e.store,
		Practice: practice.Options{
			Source:     src,
			Recognizer: svc.Recognizer,
			Player:     player,
			Logger:     e.log,
			Listen:     e.cfg.ListenConfig(),
			ClipDir:    e.cfg.Practice.ClipDir,
		},
		Speaker: speech.NewSpeaker(svc.Synthesizer, player, e.log),
		Seed:    e.cfg.Seed,
		Logger:  e.log,
	}
	return app.Run(app.Options{Quiz: deps, Logger: e.log})
}
