// Package pydeps installs the Python dependency packages listed in the
// requirements manifest shipped next to the main application.
package pydeps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/logger"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/shell"
)

// RequirementsFile is the dependency manifest expected beside the installed
// application. Overridable for tests.
var RequirementsFile = "requirements.txt"

// InstallRequirements runs pip against the requirements manifest. A missing
// manifest is a soft warning, not an error: the host tooling is still
// usable without the Python application's dependencies.
func InstallRequirements() error {
	log := logger.Logger()

	reqPath, err := resolveRequirementsPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(reqPath); err != nil {
		log.Warnf("Requirements manifest %s not found, skipping Python dependencies", reqPath)
		return nil
	}

	log.Infof("Installing Python dependencies from %s", reqPath)
	cmd := fmt.Sprintf("pip3 install --break-system-packages -r %s", reqPath)
	if _, err := shell.ExecCmdWithStream(cmd, true, nil); err != nil {
		// Older pip rejects --break-system-packages; retry without it.
		cmd = fmt.Sprintf("pip3 install -r %s", reqPath)
		if _, err := shell.ExecCmdWithStream(cmd, true, nil); err != nil {
			return fmt.Errorf("failed to install Python dependencies: %w", err)
		}
	}
	return nil
}

// resolveRequirementsPath resolves RequirementsFile relative to the
// executable's directory so the manifest is found no matter where the tool
// is invoked from. Absolute paths are used as-is.
func resolveRequirementsPath() (string, error) {
	if filepath.IsAbs(RequirementsFile) {
		return RequirementsFile, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), RequirementsFile), nil
}
