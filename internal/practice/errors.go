package practice

import (
	"errors"

	"github.com/speakup-edu/speakup/internal/speech"
)

var (
	// ErrRecognitionUnsupported means no speech recognizer is configured.
	ErrRecognitionUnsupported = errors.New("speech recognition is not supported")

	// ErrRecordingUnsupported means no microphone source is available.
	ErrRecordingUnsupported = errors.New("recording is not supported")

	// ErrMicrophone wraps failures to open the microphone.
	ErrMicrophone = errors.New("microphone unavailable")

	// ErrNoRecording is returned by PlayRecording before anything was recorded.
	ErrNoRecording = errors.New("no recording to play")

	// ErrPlaybackUnsupported means no audio output is available.
	ErrPlaybackUnsupported = errors.New("playback is not supported")
)

// Learner-facing messages.
const (
	MsgRecognitionUnsupported = "음성 인식이 지원되지 않는 환경입니다."
	MsgRecordingUnsupported   = "녹음 기능이 지원되지 않는 환경입니다."
	MsgMicrophone             = "마이크에 접근할 수 없습니다. 권한을 확인해주세요."
	MsgNoSpeech               = "음성이 감지되지 않았습니다. 다시 시도해주세요."
	MsgRecognitionError       = "음성 인식 오류: "
)

// Message returns the text shown to the learner for a practice error, or ""
// for nil.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var re *speech.RecognitionError
	switch {
	case errors.Is(err, ErrRecognitionUnsupported):
		return MsgRecognitionUnsupported
	case errors.Is(err, ErrRecordingUnsupported):
		return MsgRecordingUnsupported
	case errors.Is(err, ErrMicrophone):
		return MsgMicrophone
	case errors.Is(err, speech.ErrNoSpeech):
		return MsgNoSpeech
	case errors.As(err, &re):
		return MsgRecognitionError + re.Code
	}
	return MsgRecognitionError + speech.CodeUnknown
}
