// Package transcribe turns a remote or local media file into transcript
// text: download to scratch storage, extract a mono 16 kHz PCM stream with
// ffmpeg, run whisper over it. Platform videos take the transcript-service
// fast path instead (see PlatformClient).
package transcribe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// MaxTranscriptChars bounds what we feed the oracle.
const MaxTranscriptChars = 15000

const maxDownloadBytes = 512 << 20

// Truncate caps a transcript at max characters.
func Truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

type Transcriber struct {
	FFmpegBin    string
	WhisperBin   string
	WhisperModel string

	httpc *http.Client
	log   zerolog.Logger
}

func New(ffmpegBin, whisperBin, whisperModel string, log zerolog.Logger) *Transcriber {
	return &Transcriber{
		FFmpegBin:    ffmpegBin,
		WhisperBin:   whisperBin,
		WhisperModel: whisperModel,
		httpc:        &http.Client{Timeout: 5 * time.Minute},
		log:          log.With().Str("component", "transcribe").Logger(),
	}
}

// Transcribe accepts an http(s) URL or a local file path and returns the
// transcript text. All scratch files live in one temp dir removed on every
// exit path.
func (t *Transcriber) Transcribe(ctx context.Context, urlOrPath string) (string, error) {
	scratch, err := os.MkdirTemp("", "misinfo-media-")
	if err != nil {
		return "", fmt.Errorf("transcribe: scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	input := urlOrPath
	if strings.HasPrefix(urlOrPath, "http://") || strings.HasPrefix(urlOrPath, "https://") {
		input = filepath.Join(scratch, "input"+mediaExt(urlOrPath))
		if err := t.download(ctx, urlOrPath, input); err != nil {
			return "", fmt.Errorf("transcribe: download: %w", err)
		}
	}

	wav := filepath.Join(scratch, "audio.wav")
	if err := t.extractAudio(ctx, input, wav); err != nil {
		return "", fmt.Errorf("transcribe: extract audio: %w", err)
	}

	txt, err := t.runWhisper(ctx, wav, scratch)
	if err != nil {
		return "", fmt.Errorf("transcribe: speech-to-text: %w", err)
	}
	return txt, nil
}

func (t *Transcriber) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := t.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(f, io.LimitReader(resp.Body, maxDownloadBytes)); err != nil {
		return err
	}
	return nil
}

// extractAudio produces a mono 16 kHz PCM wav, the input whisper expects.
func (t *Transcriber) extractAudio(ctx context.Context, input, output string) error {
	cmd := exec.CommandContext(ctx, t.FFmpegBin,
		"-y", "-i", input,
		"-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1",
		output,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %s", err, tail(string(out)))
	}
	return nil
}

func (t *Transcriber) runWhisper(ctx context.Context, wav, outDir string) (string, error) {
	cmd := exec.CommandContext(ctx, t.WhisperBin,
		wav,
		"--model", t.WhisperModel,
		"--output_format", "txt",
		"--output_dir", outDir,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%s: %s", err, tail(string(out)))
	}

	// whisper writes <input-stem>.txt into the output dir
	txtPath := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(wav), filepath.Ext(wav))+".txt")
	b, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(b), nil
}

// mediaExt keeps the remote file's extension so ffmpeg can sniff the
// container; defaults to .mp4.
func mediaExt(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	if ext := filepath.Ext(url); ext != "" && len(ext) <= 5 {
		return ext
	}
	return ".mp4"
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 300 {
		return s[len(s)-300:]
	}
	return s
}
