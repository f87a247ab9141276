// Package setup orchestrates the host provisioning sequence: consent
// prompts, package installs, the optional out-of-tree driver, the
// NetworkManager drop-in and the Python dependencies. Steps run strictly in
// order; apart from the package index refresh, failures are logged and the
// run continues.
package setup

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/config"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/driver"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/netmgr"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/pkgmgr"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/pydeps"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/logger"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/system"
)

// ErrCancelled is returned when the user declines the initial consent
// prompt. Callers treat it as a normal exit.
var ErrCancelled = errors.New("installation cancelled by user")

// Installer runs the provisioning sequence. Distribution identifier and
// consent input are explicit fields rather than ambient state.
type Installer struct {
	Manifest *config.SetupManifest
	Distro   *system.OsDistribution

	// Stdin and Stdout carry the interactive prompts; tests substitute
	// buffers.
	Stdin  io.Reader
	Stdout io.Writer
}

// New builds an Installer wired to the process stdio.
func New(manifest *config.SetupManifest, distro *system.OsDistribution) *Installer {
	return &Installer{
		Manifest: manifest,
		Distro:   distro,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
	}
}

// Run executes the full sequence. It returns ErrCancelled when the user
// declines, and a fatal error only when the package index refresh fails.
func (i *Installer) Run() error {
	log := logger.Logger()
	in := bufio.NewReader(i.Stdin)

	if !ConfirmProceed(in, i.Stdout, "Continue with installation?") {
		log.Infof("Installation cancelled")
		return ErrCancelled
	}

	if err := pkgmgr.UpdateIndex(); err != nil {
		// A stale or broken index makes every later install unreliable.
		return err
	}

	i.installBatch("base tools", i.Manifest.Packages.Base)
	i.installBatch("Python runtime", i.Manifest.Packages.Python)
	i.installBatch("aircrack suite", i.Manifest.Packages.Aircrack)

	log.Infof("Installing firmware packages (best-effort)")
	summarize("firmware", pkgmgr.InstallEach(i.Manifest.Packages.Firmware, "installing"))

	if ConfirmOptIn(in, i.Stdout, "Install RTL8812AU USB adapter driver?") {
		outcome, err := driver.Install(i.Manifest.Driver)
		if err != nil {
			log.Warnf("RTL8812AU driver install failed: %v (continuing)", err)
		} else {
			log.Infof("RTL8812AU driver: %s", outcome)
		}
		logger.Record("rtl8812au driver: %s", outcome)
	} else {
		log.Infof("Skipping RTL8812AU driver")
	}

	if i.Distro.IsKali() {
		log.Infof("Kali Linux detected, installing extra security tools")
		summarize("extra tools", pkgmgr.InstallEach(i.Manifest.Packages.KaliExtras, "installing"))
	}

	if err := netmgr.Configure(i.Manifest.NetworkManager.Unmanaged); err != nil {
		log.Warnf("Failed to configure NetworkManager: %v (continuing)", err)
	}

	if err := pydeps.InstallRequirements(); err != nil {
		log.Warnf("Failed to install Python dependencies: %v (continuing)", err)
	}

	if err := logger.WriteReportToFile(); err != nil {
		log.Debugf("Could not write install report: %v", err)
	}

	log.Infof("Setup complete")
	return nil
}

// installBatch installs one manifest package set in a single transaction.
// Failures are logged and absorbed; the run continues with the next step.
func (i *Installer) installBatch(what string, packages []string) {
	log := logger.Logger()
	if len(packages) == 0 {
		return
	}
	log.Infof("Installing %s", what)
	if err := pkgmgr.Install(packages); err != nil {
		log.Warnf("Failed to install %s: %v (continuing)", what, err)
		logger.Record("%s: failed: %v", what, err)
		return
	}
	logger.Record("%s: installed (%d packages)", what, len(packages))
}

func summarize(what string, results []pkgmgr.InstallResult) {
	log := logger.Logger()
	failed := 0
	for _, r := range results {
		if !r.Installed() {
			failed++
		}
	}
	if failed > 0 {
		log.Warnf("%s: %d of %d packages failed to install", what, failed, len(results))
	} else {
		log.Infof("%s: %d packages installed", what, len(results))
	}
}
