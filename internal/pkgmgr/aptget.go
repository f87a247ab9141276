// Package pkgmgr wraps the apt toolchain. The index refresh is the one
// fatal operation; package installs come in a strict batch flavor and a
// tolerant per-package flavor that reports an outcome for every package
// instead of discarding errors.
package pkgmgr

import (
	"fmt"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/logger"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/shell"
)

// aptEnv keeps apt from stopping on debconf prompts mid-run.
var aptEnv = []string{"DEBIAN_FRONTEND=noninteractive"}

// UpdateIndex refreshes the apt package index. A failed refresh makes every
// later install unreliable, so the error is returned as-is for the caller
// to treat as fatal.
func UpdateIndex() error {
	log := logger.Logger()
	log.Infof("Updating package index with apt-get update")

	if _, err := shell.ExecCmdWithStream("apt-get update", true, aptEnv); err != nil {
		return fmt.Errorf("failed to update package index: %w", err)
	}
	return nil
}

// Install installs the given packages in one apt-get transaction.
func Install(packages []string) error {
	if len(packages) == 0 {
		return nil
	}

	log := logger.Logger()
	cmd := "apt-get install -y " + strings.Join(packages, " ")
	log.Infof("Installing packages: %v", packages)

	if _, err := shell.ExecCmdWithStream(cmd, true, aptEnv); err != nil {
		return fmt.Errorf("failed to install packages %v: %w", packages, err)
	}
	return nil
}

// InstallResult is the outcome of one tolerant package install.
type InstallResult struct {
	Package string
	Err     error
}

// Installed reports whether the package ended up installed.
func (r InstallResult) Installed() bool { return r.Err == nil }

// InstallEach installs packages one at a time, absorbing individual
// failures. It shows a single progress bar tracking packages completed vs
// total and returns the per-package outcomes.
func InstallEach(packages []string, desc string) []InstallResult {
	log := logger.Logger()
	results := make([]InstallResult, 0, len(packages))

	bar := progressbar.NewOptions(len(packages),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
	)

	for _, pkg := range packages {
		bar.Describe(fmt.Sprintf("%s %s", desc, pkg))

		_, err := shell.ExecCmd("apt-get install -y "+pkg, true, aptEnv)
		if err != nil {
			log.Warnf("Failed to install %s: %v (continuing)", pkg, err)
			logger.Record("%s: failed: %v", pkg, err)
		} else {
			logger.Record("%s: installed", pkg)
		}
		results = append(results, InstallResult{Package: pkg, Err: err})

		bar.Add(1)
	}
	bar.Finish()

	return results
}

// IsPackageInstalled checks the dpkg database for an installed package.
func IsPackageInstalled(pkg string) bool {
	output, err := shell.ExecCmdSilent("dpkg-query -W -f='${Status}' "+pkg, false, nil)
	if err != nil {
		return false
	}
	return strings.Contains(output, "install ok installed")
}
