package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// Manifest describes a rendered frame sequence.
type Manifest struct {
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Format string          `json:"format"`
	Frames []ManifestEntry `json:"frames"`
}

// ManifestEntry represents one successfully written frame.
type ManifestEntry struct {
	Frame int     `json:"frame"`
	Angle float64 `json:"angle"`
	Image string  `json:"image"`
}

// WriteManifest writes the manifest for results to path. Failed frames are omitted.
func WriteManifest(path string, w, h int, format string, results []Result) error {
	m := Manifest{Width: w, Height: h, Format: format, Frames: []ManifestEntry{}}
	for _, r := range results {
		if !r.Success {
			continue
		}
		m.Frames = append(m.Frames, ManifestEntry{Frame: r.Frame, Angle: r.Angle, Image: r.Image})
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest %s: %w", path, err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("batch: read manifest %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("batch: parse manifest %s: %w", path, err)
	}
	return m, nil
}
