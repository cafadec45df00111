// Package sysconfig writes the system configuration text consumed by
// external daemons and firmware: the boot config display overlay and the
// Wi-Fi fallback hotspot files. It only renders and writes files; driver
// and daemon behavior stay with the system.
package sysconfig

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/berrysetup/berrysetup/internal/domain/entities"
	"github.com/berrysetup/berrysetup/internal/domain/interfaces"
)

// Managed block markers in the boot config file. Everything between them
// belongs to this tool and is replaced on rewrite.
const (
	displayBlockBegin = "# BEGIN berrysetup display"
	displayBlockEnd   = "# END berrysetup display"
)

var validRotations = map[int]bool{0: true, 90: true, 180: true, 270: true}

// DisplayWriter maintains the GPIO display overlay block in the boot
// configuration file
type DisplayWriter struct {
	configPath string
	log        interfaces.Logger
}

// NewDisplayWriter creates a writer for the given boot config path
// (normally /boot/config.txt; tests point it elsewhere)
func NewDisplayWriter(configPath string, log interfaces.Logger) *DisplayWriter {
	if log == nil {
		log = &interfaces.NoOpLogger{}
	}
	return &DisplayWriter{configPath: configPath, log: log}
}

// Apply replaces the managed display block with one rendered from cfg.
// Rewriting never duplicates the block and never touches lines outside
// the markers.
func (w *DisplayWriter) Apply(cfg entities.DisplayConfig) error {
	if cfg.Overlay == "" {
		return fmt.Errorf("display overlay name is required")
	}
	if !validRotations[cfg.Rotation] {
		return fmt.Errorf("rotation must be 0, 90, 180 or 270, got %d", cfg.Rotation)
	}

	existing, err := os.ReadFile(w.configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read boot config: %w", err)
	}

	content := stripManagedBlock(string(existing))
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += renderDisplayBlock(cfg)

	if err := os.MkdirAll(filepath.Dir(w.configPath), 0750); err != nil {
		return fmt.Errorf("failed to create boot config directory: %w", err)
	}
	if err := os.WriteFile(w.configPath, []byte(content), 0644); err != nil { //nolint:gosec // G306: boot config is world-readable
		return fmt.Errorf("failed to write boot config: %w", err)
	}

	w.log.Info("display overlay written",
		interfaces.F("path", w.configPath),
		interfaces.F("overlay", cfg.Overlay))
	return nil
}

// Remove deletes the managed display block if present
func (w *DisplayWriter) Remove() error {
	existing, err := os.ReadFile(w.configPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read boot config: %w", err)
	}

	content := stripManagedBlock(string(existing))
	if err := os.WriteFile(w.configPath, []byte(content), 0644); err != nil { //nolint:gosec // G306: boot config is world-readable
		return fmt.Errorf("failed to write boot config: %w", err)
	}
	return nil
}

func renderDisplayBlock(cfg entities.DisplayConfig) string {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, displayBlockBegin)
	fmt.Fprintln(&buf, "dtparam=spi=on")

	overlay := fmt.Sprintf("dtoverlay=%s,rotate=%d", cfg.Overlay, cfg.Rotation)
	if cfg.SpeedHz > 0 {
		overlay += fmt.Sprintf(",speed=%d", cfg.SpeedHz)
	}
	for _, kv := range sortedParams(cfg.Params) {
		overlay += fmt.Sprintf(",%s=%s", kv[0], kv[1])
	}
	fmt.Fprintln(&buf, overlay)
	fmt.Fprintln(&buf, displayBlockEnd)
	return buf.String()
}

// sortedParams returns overlay parameters in deterministic key order
func sortedParams(params map[string]string) [][2]string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, [2]string{k, params[k]})
	}
	return out
}

func stripManagedBlock(content string) string {
	begin := strings.Index(content, displayBlockBegin)
	if begin < 0 {
		return content
	}
	end := strings.Index(content, displayBlockEnd)
	if end < 0 {
		// Broken block: drop from the begin marker onward
		return content[:begin]
	}
	rest := content[end+len(displayBlockEnd):]
	rest = strings.TrimPrefix(rest, "\n")
	return content[:begin] + rest
}
