// Package transcript records the lines exchanged with the game into a
// zstd-compressed file and reads them back for offline replays.
package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
)

const (
	receivedPrefix = "< "
	sentPrefix     = "> "
)

// Writer appends every received and sent line to a compressed transcript.
type Writer struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// Create opens a new transcript at path, creating its directory.
func Create(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create transcript directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcript: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to start transcript encoder: %w", err)
	}
	return &Writer{f: f, enc: enc, w: bufio.NewWriter(enc)}, nil
}

func (t *Writer) Received(line string) error {
	return t.write(receivedPrefix, line)
}

func (t *Writer) Sent(line string) error {
	return t.write(sentPrefix, line)
}

func (t *Writer) write(prefix, line string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.w == nil {
		return fmt.Errorf("transcript is closed")
	}
	if _, err := t.w.WriteString(prefix + line + "\n"); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	return nil
}

// Close flushes the transcript; the file is only complete once it returns.
func (t *Writer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.w == nil {
		return nil
	}
	flushErr := t.w.Flush()
	encErr := t.enc.Close()
	fileErr := t.f.Close()
	t.w, t.enc, t.f = nil, nil, nil
	for _, err := range []error{flushErr, encErr, fileErr} {
		if err != nil {
			return fmt.Errorf("failed to close transcript: %w", err)
		}
	}
	return nil
}

// Transcript is one recorded game.
type Transcript struct {
	Received []string // Lines the game sent, in order
	Sent     []string // Answers the bot gave, in order
}

// Input returns the received lines as the game sent them, ready to be replayed.
func (t Transcript) Input() io.Reader {
	if len(t.Received) == 0 {
		return strings.NewReader("")
	}
	return strings.NewReader(strings.Join(t.Received, "\n") + "\n")
}

// Read decodes a transcript. Lines without a known prefix are ignored.
func Read(r io.Reader) (Transcript, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return Transcript{}, fmt.Errorf("failed to start transcript decoder: %w", err)
	}
	defer dec.Close()

	var t Transcript
	scanner := bufio.NewScanner(dec)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, receivedPrefix):
			t.Received = append(t.Received, strings.TrimPrefix(line, receivedPrefix))
		case strings.HasPrefix(line, sentPrefix):
			t.Sent = append(t.Sent, strings.TrimPrefix(line, sentPrefix))
		}
	}
	if err := scanner.Err(); err != nil {
		return Transcript{}, fmt.Errorf("failed to read transcript: %w", err)
	}
	return t, nil
}

// ReadFile decodes the transcript stored at path.
func ReadFile(path string) (Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return Transcript{}, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer f.Close()
	return Read(f)
}
