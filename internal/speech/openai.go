package speech

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// openaiPCMRate is the sample rate of OpenAI's raw PCM speech output.
const openaiPCMRate = 24000

// OpenAIProvider implements Recognizer and Synthesizer using the OpenAI SDK.
type OpenAIProvider struct {
	client          *openai.Client
	transcribeModel string
	speechModel     string
	voice           string
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	p := &OpenAIProvider{
		client:          openai.NewClientWithConfig(config),
		transcribeModel: cfg.TranscribeModel,
		speechModel:     cfg.SpeechModel,
		voice:           cfg.Voice,
	}
	if p.transcribeModel == "" {
		p.transcribeModel = openai.Whisper1
	}
	if p.speechModel == "" {
		p.speechModel = string(openai.TTSModel1)
	}
	if p.voice == "" {
		p.voice = string(openai.VoiceAlloy)
	}
	return p, nil
}

func (p *OpenAIProvider) Transcribe(ctx context.Context, wav []byte, language string) (string, error) {
	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    p.transcribeModel,
		FilePath: "speech.wav",
		Reader:   bytes.NewReader(wav),
		Language: isoLanguage(language),
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", mapOpenAIError(err)
	}
	return strings.TrimSpace(resp.Text), nil
}

func (p *OpenAIProvider) Synthesize(ctx context.Context, u Utterance) (PCM, error) {
	rate := u.Rate
	if rate == 0 {
		rate = DefaultRate
	}
	resp, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.speechModel),
		Input:          u.Text,
		Voice:          openai.SpeechVoice(p.voice),
		ResponseFormat: openai.SpeechResponseFormatPcm,
		Speed:          rate,
	})
	if err != nil {
		return PCM{}, mapOpenAIError(err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return PCM{}, &ErrProviderUnavailable{Err: fmt.Errorf("read speech: %w", err)}
	}
	return PCM{Samples: decodePCM16(data), SampleRate: openaiPCMRate}, nil
}

func (p *OpenAIProvider) Name() string {
	return "openai/" + p.transcribeModel
}

// decodePCM16 converts little-endian 16-bit samples. A trailing odd byte is
// dropped.
func decodePCM16(data []byte) []int16 {
	out := make([]int16, len(data)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}
	return out
}

func mapOpenAIError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.HTTPStatusCode >= 500:
			return &ErrProviderUnavailable{Err: err}
		}
	}
	return &ErrProviderUnavailable{Err: err}
}
