package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"travel-agent/internal/domain/entity"
)

const filePrefix = "travel_assistant_output_"

var nameReplacer = strings.NewReplacer(" ", "_", "/", "_", `\`, "_")

// OutputPath returns where the run dump for destination is written.
func OutputPath(dir, destination string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, filePrefix+nameReplacer.Replace(destination)+".json")
}

// Write dumps resp as indented JSON with non-ASCII text kept as is.
func Write(dir string, resp *entity.AgentResponse) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return "", fmt.Errorf("failed to encode agent output: %w", err)
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	path := OutputPath(dir, resp.Destination)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write agent output: %w", err)
	}

	return path, nil
}
