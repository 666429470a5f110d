package main

import (
	"os"

	"github.com/go-json-experiment/json"
)

// ManifestEntry describes one rendered frame.
type ManifestEntry struct {
	Frame int     `json:"frame"`
	Time  float32 `json:"time"`
	Scene string  `json:"scene"`
	Image string  `json:"image"`
}

// WriteManifest writes the frame list of an animation, for feeding an encoder
// such as ffmpeg in order.
func WriteManifest(path string, entries []ManifestEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
