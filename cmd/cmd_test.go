package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speakup-edu/speakup/internal/audio"
	"github.com/speakup-edu/speakup/internal/content"
	"github.com/speakup-edu/speakup/internal/quiz"
)

// execute runs the root command offline with the given stdin.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args,
		"--no-audio",
		"--speech", "none",
		"--seed", "7",
		"--log-file", filepath.Join(t.TempDir(), "speakup.log"),
	))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "speakup")
}

func TestScore(t *testing.T) {
	out, err := execute(t, "", "score", "I went to school.", "i went to the school")
	require.NoError(t, err)
	assert.Contains(t, out, "Score: 75%")
	assert.Contains(t, out, "went✓")
	assert.Contains(t, out, "the✗")
}

func TestScore_NothingDetected(t *testing.T) {
	out, err := execute(t, "", "score", "went", "  ...  ")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing detected.")
}

func TestScore_RequiresTwoArgs(t *testing.T) {
	_, err := execute(t, "", "score", "went")
	assert.Error(t, err)
}

func TestContent(t *testing.T) {
	store := content.Default()

	out, err := execute(t, "", "content", "--kind", "words")
	require.NoError(t, err)
	assert.Contains(t, out, store.Title())
	assert.Contains(t, out, store.Vocabulary()[0].Present)
	assert.Contains(t, out, "19 words")

	out, err = execute(t, "", "content", "--kind", "sentences")
	require.NoError(t, err)
	assert.Contains(t, out, "10 sentences")
	assert.NotContains(t, out, "19 words")
}

func TestContent_InvalidKind(t *testing.T) {
	_, err := execute(t, "", "content", "--kind", "verbs")
	assert.ErrorContains(t, err, "invalid kind")
}

func TestCheck_Offline(t *testing.T) {
	out, err := execute(t, "", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "Provider:     none")
	assert.Contains(t, out, "Recognition:  unavailable")
	assert.Contains(t, out, "Microphone:   no")
	assert.Contains(t, out, "Pronunciation practice is unavailable.")
}

func TestPreview_SkipRevealsAnswer(t *testing.T) {
	s := quiz.NewWordSession(content.Default(), quiz.Options{Rand: quiz.NewRand(7)})

	out, err := execute(t, "\n", "preview", "--mode", "words", "--count", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Question 1/1")
	assert.Contains(t, out, "(skipped) Answer: "+s.Answer())
	assert.Contains(t, out, "Summary: 0/1 correct")
}

func TestPreview_WrongThenRight(t *testing.T) {
	s := quiz.NewWordSession(content.Default(), quiz.Options{Rand: quiz.NewRand(7)})
	answer := content.Variants(s.Answer())[0]

	out, err := execute(t, "zzz\n"+answer+"\n", "preview", "--mode", "words", "--count", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Try again!")
	assert.Contains(t, out, "Hint: ")
	assert.Contains(t, out, "Correct!")
	assert.Contains(t, out, "Summary: 1/1 correct")
}

func TestPreview_Sentences(t *testing.T) {
	s := quiz.NewSentenceSession(content.Default(), quiz.Options{Rand: quiz.NewRand(7)})

	out, err := execute(t, strings.ToUpper(s.Answer())+"\n", "preview", "--mode", "sentences", "--count", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Unscramble the words:")
	assert.Contains(t, out, "Summary: 1/1 correct")
}

func TestPreview_InputClosed(t *testing.T) {
	out, err := execute(t, "", "preview", "--mode", "sentences", "--count", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "(input closed)")
	assert.Contains(t, out, "Summary: 0/3 correct")
}

func TestPreview_InvalidMode(t *testing.T) {
	_, err := execute(t, "", "preview", "--mode", "numbers", "--count", "1")
	assert.ErrorContains(t, err, "invalid mode")
}

func TestDemoSource_ToneThenSilence(t *testing.T) {
	src := demoSource()
	require.NotEmpty(t, src.Chunks)
	assert.Equal(t, audio.SampleRate, src.Rate)
	assert.Greater(t, audio.RMS(src.Chunks[0]), 0.1)
	assert.Zero(t, audio.RMS(src.Chunks[len(src.Chunks)-1]))
}
