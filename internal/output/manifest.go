package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Manifest records how an image was rendered and where it was written.
type Manifest struct {
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Supersample int      `json:"supersample"`
	Mode        string   `json:"mode"`
	MaxDepth    int      `json:"max_depth"`
	TIR         string   `json:"tir"`
	Spheres     int      `json:"spheres"`
	Lights      int      `json:"lights"`
	Workers     int      `json:"workers"`
	ElapsedMS   int64    `json:"elapsed_ms"`
	Outputs     []string `json:"outputs"`
	RenderedAt  string   `json:"rendered_at"`
}

// SetElapsed stores a render duration in milliseconds.
func (m *Manifest) SetElapsed(d time.Duration) {
	m.ElapsedMS = d.Milliseconds()
}

// WriteManifest writes m as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("output: manifest %s: %w", path, err)
	}
	return nil
}
