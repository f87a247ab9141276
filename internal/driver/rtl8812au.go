// Package driver installs the out-of-tree RTL8812AU USB adapter driver.
// Three routes are tried in order: the kernel module is already present, a
// prebuilt DKMS package exists in the repositories, or the driver is built
// from source in a temporary directory that is removed on every exit path.
package driver

import (
	"fmt"
	"os"

	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/config"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/pkgmgr"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/logger"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/shell"
)

// Outcome is the result of one driver install attempt.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeAlreadyPresent
	OutcomeInstalledFromRepo
	OutcomeBuiltFromSource
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAlreadyPresent:
		return "already present"
	case OutcomeInstalledFromRepo:
		return "installed from repository"
	case OutcomeBuiltFromSource:
		return "built from source"
	default:
		return "failed"
	}
}

// mkdirTemp is os.MkdirTemp, overridable so tests can observe the scoped
// build directory.
var mkdirTemp = os.MkdirTemp

// Install installs the driver described by spec and reports how it got
// there. Only the OutcomeFailed result carries an error.
func Install(spec config.DriverSpec) (Outcome, error) {
	log := logger.Logger()

	module := spec.Module
	if module == "" {
		module = "88XXau"
	}

	if isModulePresent(module) {
		log.Infof("Kernel module %s already present, skipping driver install", module)
		return OutcomeAlreadyPresent, nil
	}

	if spec.Package != "" {
		log.Infof("Trying prebuilt driver package %s", spec.Package)
		if _, err := shell.ExecCmd("apt-get install -y "+spec.Package, true,
			[]string{"DEBIAN_FRONTEND=noninteractive"}); err != nil {
			log.Infof("Prebuilt package %s not installable: %v, falling back to source build", spec.Package, err)
		} else if isModulePresent(module) || pkgmgr.IsPackageInstalled(spec.Package) {
			log.Infof("Installed driver from repository package %s", spec.Package)
			return OutcomeInstalledFromRepo, nil
		} else {
			log.Warnf("Package %s installed but module %s still missing, falling back to source build",
				spec.Package, module)
		}
	}

	if err := buildFromSource(spec); err != nil {
		return OutcomeFailed, err
	}
	return OutcomeBuiltFromSource, nil
}

// isModulePresent checks whether the kernel knows the module, without
// loading it.
func isModulePresent(module string) bool {
	if _, err := shell.ExecCmdSilent("modinfo "+module, false, nil); err == nil {
		return true
	}
	// modinfo misses modules provided by DKMS before depmod ran
	_, err := shell.ExecCmdSilent("modprobe -n "+module, false, nil)
	return err == nil
}

// buildFromSource fetches the driver source into a scoped temporary
// directory, builds and installs it. The directory is removed regardless of
// the build result.
func buildFromSource(spec config.DriverSpec) error {
	log := logger.Logger()

	buildDir, err := mkdirTemp("", "rtl8812au-build-")
	if err != nil {
		return fmt.Errorf("failed to create build directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(buildDir); err != nil {
			log.Warnf("Failed to remove build directory %s: %v", buildDir, err)
		}
	}()

	srcDir, err := fetchSource(spec, buildDir)
	if err != nil {
		return fmt.Errorf("failed to fetch driver source: %w", err)
	}

	log.Infof("Building driver in %s", srcDir)
	if _, err := shell.ExecCmdWithStream(fmt.Sprintf("make -C %s", srcDir), false, nil); err != nil {
		return fmt.Errorf("driver build failed: %w", err)
	}
	if _, err := shell.ExecCmdWithStream(fmt.Sprintf("make -C %s install", srcDir), true, nil); err != nil {
		return fmt.Errorf("driver install failed: %w", err)
	}

	log.Infof("Driver built and installed from source")
	return nil
}
