package media

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

var (
	ErrAssetNotFound      = errors.New("asset not found")
	ErrUnsatisfiableRange = errors.New("range start beyond asset size")
)

const copyBufferSize = 512 * 1024

type Config struct {
	// Path of the audio asset on disk.
	Path string
	// ContentType reported for the asset.
	ContentType string
	// ChunkSize caps how many bytes an open-ended range request gets
	// in a single response.
	ChunkSize int64
}

type Asset struct {
	Size        int64
	ContentType string
}

// ByteRange is an inclusive byte interval within an asset.
type ByteRange struct {
	Start int64
	End   int64
}

func (br ByteRange) Length() int64 {
	return br.End - br.Start + 1
}

type service struct {
	path        string
	contentType string
	chunkSize   int64
	logger      *slog.Logger
}

func NewService(cfg *Config, logger *slog.Logger) *service {
	return &service{
		path:        cfg.Path,
		contentType: cfg.ContentType,
		chunkSize:   cfg.ChunkSize,
		logger:      logger,
	}
}

// Stat queries the asset size fresh; the file may be replaced between
// requests but is never partially written during a read.
func (s service) Stat() (Asset, error) {
	fi, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Asset{}, ErrAssetNotFound
		}

		return Asset{}, fmt.Errorf("failed to stat asset: %w", err)
	}

	return Asset{Size: fi.Size(), ContentType: s.contentType}, nil
}

// ResolveRange parses a Range request header value against the asset
// size. ok is false when the header is absent or malformed; the caller
// degrades to serving the full asset. An omitted end is computed from
// the configured chunk size; an explicit end is capped by it as well,
// so a single response never buffers more than one chunk (a shorter
// 206 is permitted, the client follows up with the next range). Both
// forms are clamped to size-1.
func (s service) ResolveRange(header string, size int64) (ByteRange, bool, error) {
	value, found := strings.CutPrefix(header, "bytes=")
	if !found {
		return ByteRange{}, false, nil
	}

	startStr, endStr, found := strings.Cut(value, "-")
	if !found {
		return ByteRange{}, false, nil
	}

	start, err := strconv.ParseInt(strings.TrimSpace(startStr), 10, 64)
	if err != nil || start < 0 {
		return ByteRange{}, false, nil
	}

	if start >= size {
		return ByteRange{}, false, ErrUnsatisfiableRange
	}

	end := start + s.chunkSize - 1
	if endStr = strings.TrimSpace(endStr); endStr != "" {
		parsed, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil {
			return ByteRange{}, false, nil
		}
		if parsed < start {
			return ByteRange{}, false, nil
		}
		if parsed < end {
			end = parsed
		}
	}

	if end > size-1 {
		end = size - 1
	}

	return ByteRange{Start: start, End: end}, true, nil
}

// ReadRange returns exactly the requested slice. A short or failed read
// surfaces as an error, never as a truncated slice, so the caller can
// fail the whole response instead of sending a corrupt body.
func (s service) ReadRange(br ByteRange) ([]byte, error) {
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, br.Length())
	if _, err := f.ReadAt(buf, br.Start); err != nil {
		return nil, fmt.Errorf("failed to read bytes %d-%d: %w", br.Start, br.End, err)
	}

	return buf, nil
}

// ServeFull streams the whole asset to w with a bounded copy buffer.
func (s service) ServeFull(w io.Writer) (int64, error) {
	f, err := s.open()
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return io.CopyBuffer(w, f, make([]byte, copyBufferSize))
}

func (s service) open() (*os.File, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrAssetNotFound
		}

		return nil, fmt.Errorf("failed to open asset: %w", err)
	}

	return f, nil
}
