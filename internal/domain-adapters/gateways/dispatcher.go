package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/berrysetup/berrysetup/internal/domain/entities"
	"github.com/berrysetup/berrysetup/internal/domain/interfaces"
)

// URLPlaceholder is substituted in install command templates
const URLPlaceholder = "{url}"

// InstallDispatcher executes install commands for resolved entries. Each
// entry produces one log artifact under the log directory; a failing
// entry never aborts the rest of the batch.
type InstallDispatcher struct {
	logDir         string
	defaultTimeout time.Duration
	log            interfaces.Logger
}

// NewInstallDispatcher creates a dispatcher writing per-entry logs under
// logDir
func NewInstallDispatcher(logDir string, log interfaces.Logger) *InstallDispatcher {
	if log == nil {
		log = &interfaces.NoOpLogger{}
	}
	return &InstallDispatcher{
		logDir:         logDir,
		defaultTimeout: 30 * time.Minute,
		log:            log,
	}
}

// InstallResult contains the outcome of one entry's installation
type InstallResult struct {
	EntryID  string
	Skipped  bool
	Success  bool
	ExitCode int
	LogPath  string
	Duration time.Duration
	Err      error
}

// Install runs the entry's install command with the resolution's URL
// substituted. A skipped resolution omits the entry entirely: no command
// is built, and a blank URL is never substituted into a shell command.
func (d *InstallDispatcher) Install(ctx context.Context, entry *entities.SoftwareEntry, res entities.Resolution) *InstallResult {
	result := &InstallResult{EntryID: entry.ID}

	if res.Skipped() {
		result.Skipped = true
		d.log.Info("entry omitted from install batch", interfaces.F("software", entry.ID))
		return result
	}

	command, err := buildCommand(entry.InstallCommand, res.URL)
	if err != nil {
		result.Err = err
		return result
	}

	startTime := time.Now()
	execCtx, cancel := context.WithTimeout(ctx, d.defaultTimeout)
	defer cancel()

	// Use /bin/sh for maximum compatibility
	//nolint:gosec // G204: Command execution is intentional and controlled by catalog configuration
	cmd := exec.CommandContext(execCtx, "/bin/sh", "-c", command)
	cmd.Env = append(os.Environ(),
		"BERRYSETUP_PACKAGE="+entry.ID,
		"BERRYSETUP_URL="+res.URL,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	d.log.Info("installing", interfaces.F("software", entry.ID))
	runErr := cmd.Run()
	result.Duration = time.Since(startTime)

	if runErr != nil {
		result.Err = runErr
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else if execCtx.Err() == context.DeadlineExceeded {
			result.Err = fmt.Errorf("install timed out after %v", d.defaultTimeout)
			result.ExitCode = -1
		} else {
			result.ExitCode = -1
		}
	} else {
		result.Success = true
	}

	logPath, logErr := d.writeLog(entry.ID, command, stdout.String(), stderr.String(), result)
	if logErr != nil {
		d.log.Warn("failed to write install log",
			interfaces.F("software", entry.ID),
			interfaces.F("error", logErr))
	} else {
		result.LogPath = logPath
	}

	if result.Success {
		d.log.Info("install succeeded",
			interfaces.F("software", entry.ID),
			interfaces.F("duration", result.Duration))
	} else {
		d.log.Error("install failed",
			interfaces.F("software", entry.ID),
			interfaces.F("exit_code", result.ExitCode),
			interfaces.F("log", result.LogPath))
	}

	return result
}

// buildCommand substitutes the resolved URL into the command template. A
// template expecting a URL with none resolved is an error, never an empty
// substitution.
func buildCommand(template, url string) (string, error) {
	if !strings.Contains(template, URLPlaceholder) {
		return template, nil
	}
	if url == "" {
		return "", fmt.Errorf("install command expects %s but no URL was resolved", URLPlaceholder)
	}
	return strings.ReplaceAll(template, URLPlaceholder, url), nil
}

func (d *InstallDispatcher) writeLog(entryID, command, stdout, stderr string, result *InstallResult) (string, error) {
	if err := os.MkdirAll(d.logDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "package: %s\n", entryID)
	fmt.Fprintf(&buf, "command: %s\n", command)
	fmt.Fprintf(&buf, "exit_code: %d\n", result.ExitCode)
	fmt.Fprintf(&buf, "duration: %v\n", result.Duration)
	fmt.Fprintf(&buf, "\n--- stdout ---\n%s", stdout)
	fmt.Fprintf(&buf, "\n--- stderr ---\n%s", stderr)

	logPath := filepath.Join(d.logDir, entryID+".log")
	if err := os.WriteFile(logPath, buf.Bytes(), 0640); err != nil {
		return "", fmt.Errorf("failed to write log file: %w", err)
	}
	return logPath, nil
}
