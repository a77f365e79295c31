package extractor

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/denisAlshanov/tikgrab/internal/config"
	"github.com/denisAlshanov/tikgrab/internal/models"
)

// YtDlp runs the yt-dlp binary in metadata-only mode.
type YtDlp struct {
	binary      string
	timeout     time.Duration
	cookiesFile string
}

func NewYtDlp(cfg *config.ExtractorConfig) *YtDlp {
	return &YtDlp{
		binary:      cfg.Binary,
		timeout:     cfg.Timeout,
		cookiesFile: cfg.CookiesFile,
	}
}

// args builds the command line: single JSON dump, no warnings, no playlist
// expansion and flat (fast) metadata. The URL goes after "--" so a value
// starting with a dash is never read as an option.
func (y *YtDlp) args(url string) []string {
	args := []string{
		"--dump-single-json",
		"--quiet",
		"--no-warnings",
		"--no-playlist",
		"--flat-playlist",
		"--no-progress",
	}
	if y.cookiesFile != "" {
		args = append(args, "--cookies", y.cookiesFile)
	}
	return append(args, "--", url)
}

func (y *YtDlp) Extract(ctx context.Context, url string) (*models.RawMediaRecord, error) {
	if y.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, y.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, y.binary, y.args(url)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("yt-dlp interrupted: %w", ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := reportedError(stderr.Bytes()); msg != "" {
				return nil, fmt.Errorf("%w: %s", ErrInvalidSource, msg)
			}
			return nil, fmt.Errorf("yt-dlp exited with code %d: %s", exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("failed to run yt-dlp: %w", err)
	}

	record, err := DecodeRecord(&stdout)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (y *YtDlp) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, y.binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to query yt-dlp version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// DecodeRecord parses a yt-dlp JSON dump.
func DecodeRecord(r io.Reader) (*models.RawMediaRecord, error) {
	var record models.RawMediaRecord
	if err := json.NewDecoder(r).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode yt-dlp output: %w", err)
	}
	return &record, nil
}

// reportedError returns the first "ERROR:" line yt-dlp wrote. yt-dlp prints
// one for every extraction failure it recognises (unsupported URL, private
// or removed video, network failure), which is how it signals a bad source
// as opposed to a crash.
func reportedError(stderr []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(stderr))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "ERROR:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "ERROR:"))
		}
	}
	return ""
}
