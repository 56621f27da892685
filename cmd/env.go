package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/speakup-edu/speakup/internal/audio"
	"github.com/speakup-edu/speakup/internal/audio/device"
	"github.com/speakup-edu/speakup/internal/config"
	"github.com/speakup-edu/speakup/internal/content"
	"github.com/speakup-edu/speakup/internal/logging"
	"github.com/speakup-edu/speakup/internal/speech"
)

// env is the configuration, logger and catalog shared by every command.
type env struct {
	cfg   *config.Config
	log   *logrus.Entry
	store *content.Store

	closers []io.Closer
}

// loadEnv reads configuration from the command's flags, opens the log and
// loads the catalog. The caller must Close the result.
func loadEnv(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, logFile, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}
	e := &env{
		cfg:     cfg,
		log:     logrus.NewEntry(logger),
		closers: []io.Closer{logFile},
	}

	if cfg.Content.Path != "" {
		e.store, err = content.LoadFile(cfg.Content.Path)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("load content: %w", err)
		}
	} else {
		e.store = content.Default()
	}
	e.log.WithFields(logrus.Fields{
		"title":     e.store.Title(),
		"words":     len(e.store.Vocabulary()),
		"sentences": len(e.store.Sentences()),
	}).Info("catalog loaded")
	return e, nil
}

// Close releases everything opened through e, newest first.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			e.log.WithError(err).Warn("close failed")
		}
	}
	e.closers = nil
}

// speech builds the configured recognizer and synthesizer.
func (e *env) speech(ctx context.Context) (speech.Services, error) {
	return speech.New(ctx, e.cfg.Speech, e.log)
}

// devices opens the system microphone and speakers. Either may be nil. When
// audio is disabled under the mock provider, a canned utterance stands in
// for the microphone so practice can still be exercised.
func (e *env) devices() (audio.Source, audio.Player) {
	if !e.cfg.Audio.Enabled {
		if e.cfg.Speech.Provider == speech.ProviderMock {
			return demoSource(), nil
		}
		return nil, nil
	}

	sys, err := device.Open()
	if err != nil {
		e.log.WithError(err).Warn("audio devices unavailable")
		return nil, nil
	}
	e.closers = append(e.closers, sys)

	src, player := sys.Microphone(), sys.Speaker()
	e.log.WithFields(logrus.Fields{
		"microphone": src != nil,
		"speaker":    player != nil,
	}).Info("audio devices opened")
	return src, player
}

// demoSource is half a second of tone followed by enough silence to end the
// utterance.
func demoSource() *audio.MemorySource {
	tone := make([]int16, audio.FramesPerBuffer)
	for i := range tone {
		if i%2 == 0 {
			tone[i] = 8000
		} else {
			tone[i] = -8000
		}
	}
	silence := make([]int16, audio.FramesPerBuffer)

	perSecond := audio.SampleRate / audio.FramesPerBuffer
	var chunks [][]int16
	for range perSecond / 2 {
		chunks = append(chunks, tone)
	}
	for range perSecond * 2 {
		chunks = append(chunks, silence)
	}
	return &audio.MemorySource{Chunks: chunks, Rate: audio.SampleRate}
}
