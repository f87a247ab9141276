// Package netmgr writes the NetworkManager drop-in that keeps monitor-mode
// interfaces unmanaged, then restarts the service.
package netmgr

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/logger"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/shell"
)

var ConfFile = "/etc/NetworkManager/conf.d/wifi-tester.conf"

// DefaultUnmanaged are the monitor-mode interface name patterns excluded
// from NetworkManager.
var DefaultUnmanaged = []string{
	"interface-name:wlan*mon",
	"interface-name:mon*",
}

// Configure writes the unmanaged-devices drop-in and restarts
// NetworkManager. The write is idempotent; a failed service restart is
// tolerated since the configuration takes effect on the next restart anyway.
func Configure(unmanaged []string) error {
	log := logger.Logger()

	changed, err := WriteConf(unmanaged)
	if err != nil {
		return err
	}
	if !changed {
		log.Infof("NetworkManager configuration already up to date")
	}

	if _, err := shell.ExecCmd("systemctl restart NetworkManager", true, nil); err != nil {
		log.Warnf("Failed to restart NetworkManager: %v (configuration applies on next restart)", err)
	}
	return nil
}

// WriteConf writes the drop-in file, creating parent directories as needed.
// It reports whether the file content changed; rewriting an up-to-date file
// produces identical bytes and is skipped.
func WriteConf(unmanaged []string) (bool, error) {
	if len(unmanaged) == 0 {
		unmanaged = DefaultUnmanaged
	}
	content := renderConf(unmanaged)

	if existing, err := os.ReadFile(ConfFile); err == nil && bytes.Equal(existing, content) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(ConfFile), 0755); err != nil {
		return false, fmt.Errorf("failed to create %s: %w", filepath.Dir(ConfFile), err)
	}
	if err := os.WriteFile(ConfFile, content, 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", ConfFile, err)
	}

	logger.Logger().Infof("Wrote NetworkManager configuration to %s", ConfFile)
	return true, nil
}

func renderConf(unmanaged []string) []byte {
	var b strings.Builder
	b.WriteString("# Written by wifi-tester-setup. Interfaces in monitor mode must stay\n")
	b.WriteString("# out of NetworkManager's hands.\n")
	b.WriteString("[keyfile]\n")
	b.WriteString("unmanaged-devices=" + strings.Join(unmanaged, ";") + "\n")
	return []byte(b.String())
}
