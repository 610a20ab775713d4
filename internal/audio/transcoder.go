package audio

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/healbot/medconsult/internal/apierr"
	"github.com/healbot/medconsult/pkg/logging"
)

// Transcoder converts arbitrary uploaded audio containers into
// PCM-16 mono 16 kHz WAV by driving an ffmpeg subprocess. Both the raw
// upload and the converted file live in ephemeral storage and are
// removed on every exit path.
type Transcoder struct {
	ffmpegPath string
	timeout    time.Duration
	logger     *logging.Logger
}

// NewTranscoder creates a transcoder. An empty path means "ffmpeg" on
// PATH; a zero timeout defaults to 30 seconds.
func NewTranscoder(ffmpegPath string, timeout time.Duration, logger *logging.Logger) *Transcoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Transcoder{ffmpegPath: ffmpegPath, timeout: timeout, logger: logger}
}

// Transcode converts raw container bytes into a validated PCM-16 mono
// 16 kHz WAV.
func (t *Transcoder) Transcode(ctx context.Context, raw []byte) (*WAV, error) {
	input, err := os.CreateTemp("", "upload-*.webm")
	if err != nil {
		return nil, apierr.Wrap(apierr.KindPersistence, "failed to create temp file", err)
	}
	inputPath := input.Name()
	defer os.Remove(inputPath)

	if _, err := input.Write(raw); err != nil {
		input.Close()
		return nil, apierr.Wrap(apierr.KindPersistence, "failed to write temp file", err)
	}
	if err := input.Close(); err != nil {
		return nil, apierr.Wrap(apierr.KindPersistence, "failed to close temp file", err)
	}

	output, err := os.CreateTemp("", "converted-*.wav")
	if err != nil {
		return nil, apierr.Wrap(apierr.KindPersistence, "failed to create temp file", err)
	}
	outputPath := output.Name()
	output.Close()
	defer os.Remove(outputPath)

	runCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, t.ffmpegPath,
		"-y",
		"-i", inputPath,
		"-ar", "16000",
		"-ac", "1",
		"-sample_fmt", "s16",
		outputPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, apierr.Wrap(apierr.KindAudioTimeout, "Audio processing timeout", err)
		}
		t.logger.Error("ffmpeg conversion failed", "error", err, "output", truncate(string(out), 512))
		return nil, apierr.Wrap(apierr.KindAudioConversion, "Audio conversion failed", err)
	}

	converted, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindPersistence, "failed to read converted audio", err)
	}

	wav, err := ParseWAV(converted)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindInvalidAudioFormat, "Invalid WAV format", err)
	}
	if !wav.IsPCM16Mono() {
		return nil, apierr.New(apierr.KindInvalidAudioFormat, "Invalid WAV format")
	}
	return wav, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
