package store

import (
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Compression modes for buffer files.
const (
	CompressionNone = "none"
	CompressionZstd = "zstd"
)

// WriteBuffer writes buf to path, zstd-compressed when compression is
// CompressionZstd.
func WriteBuffer(path string, buf []byte, compression string) error {
	data := buf
	switch compression {
	case "", CompressionNone:
	case CompressionZstd:
		enc, err := zstd.NewWriter(
			nil,
			zstd.WithEncoderConcurrency(1),
			zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		)
		if err != nil {
			return fmt.Errorf("zstd encoder: %w", err)
		}
		data = enc.EncodeAll(buf, make([]byte, 0, len(buf)/4))
		if err := enc.Close(); err != nil {
			return fmt.Errorf("zstd encoder: %w", err)
		}
	default:
		return fmt.Errorf("unknown compression %q", compression)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadBuffer reads a buffer file written by WriteBuffer.
func ReadBuffer(path, compression string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch compression {
	case "", CompressionNone:
		return data, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(
			nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(true),
		)
		if err != nil {
			return nil, fmt.Errorf("zstd decoder: %w", err)
		}
		defer dec.Close()
		buf, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decode %s: %w", path, err)
		}
		return buf, nil
	default:
		return nil, fmt.Errorf("unknown compression %q", compression)
	}
}
