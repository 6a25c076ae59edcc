// Package store reads and writes the files the bitframe command works with:
// a TOML manifest carrying the frame geometry, the encoded buffer itself,
// and frame images.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/ajroetker/go-bitframe"
)

// Manifest records what is needed to decode a buffer file. The codec does
// not store geometry inside the buffer.
type Manifest struct {
	Buffer      string `toml:"buffer"` // file name, relative to the manifest
	Frames      int    `toml:"frames"`
	Rows        int    `toml:"rows"`
	Columns     int    `toml:"columns"`
	Length      int    `toml:"length"` // encoded length in bytes before compression
	Compression string `toml:"compression"`
}

// Geometry returns the frame geometry described by m.
func (m Manifest) Geometry() bitframe.Geometry {
	return bitframe.Geometry{Frames: m.Frames, Rows: m.Rows, Columns: m.Columns}
}

// Paths returns the manifest and buffer paths for an output base name such
// as "out/scan": "out/scan.toml" and "out/scan.bin" (".bin.zst" when
// compressed).
func Paths(base, compression string) (manifest, buffer string) {
	base = strings.TrimSuffix(base, filepath.Ext(base))
	buffer = base + ".bin"
	if compression == CompressionZstd {
		buffer += ".zst"
	}
	return base + ".toml", buffer
}

// WriteManifest writes m as TOML to path.
func WriteManifest(path string, m Manifest) error {
	b, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}

// ReadManifest reads a manifest and checks its geometry.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	b, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := toml.Unmarshal(b, &m); err != nil {
		return m, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if err := m.Geometry().Validate(); err != nil {
		return m, fmt.Errorf("manifest %s: %w", path, err)
	}
	if m.Buffer == "" {
		return m, fmt.Errorf("manifest %s: buffer file not set", path)
	}
	return m, nil
}

// BufferPath resolves m.Buffer against the directory of the manifest.
func (m Manifest) BufferPath(manifestPath string) string {
	if filepath.IsAbs(m.Buffer) {
		return m.Buffer
	}
	return filepath.Join(filepath.Dir(manifestPath), m.Buffer)
}
