package system

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/logger"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/shell"
)

var OsReleaseFile = "/etc/os-release"

// UnknownID is the distribution ID used when detection fails. Detection
// failure is never fatal; callers warn and continue.
const UnknownID = "unknown"

// KaliID is the distribution ID of Kali Linux, the only distribution that
// gets the extra security tool set.
const KaliID = "kali"

// OsDistribution contains information about the Linux OS distribution
type OsDistribution struct {
	Name            string   `json:"name"`            // Distribution name (e.g., "Ubuntu", "Kali GNU/Linux")
	Version         string   `json:"version"`         // Version (e.g., "22.04", "2024.3")
	ID              string   `json:"id"`              // Distribution ID (e.g., "ubuntu", "kali")
	IDLike          []string `json:"idLike"`          // Related distributions (e.g., ["debian"])
	PackageManagers []string `json:"packageManagers"` // Package managers (e.g., ["apt", "dpkg"])
}

// IsKali reports whether the detected distribution is Kali Linux itself.
// ID_LIKE does not count: the extra tool set is only known to exist in the
// Kali repositories.
func (d *OsDistribution) IsKali() bool {
	return d.ID == KaliID
}

// IsDebianFamily reports whether the distribution installs deb packages
// through apt, either directly or via ID_LIKE.
func (d *OsDistribution) IsDebianFamily() bool {
	for _, mgr := range d.PackageManagers {
		if mgr == "apt" {
			return true
		}
	}
	return false
}

// DetectOsDistribution detects the underlying Linux OS distribution by
// parsing /etc/os-release and checking available package managers.
func DetectOsDistribution() (*OsDistribution, error) {
	log := logger.Logger()
	osInfo := &OsDistribution{ID: UnknownID}

	if _, err := os.Stat(OsReleaseFile); err != nil {
		return osInfo, fmt.Errorf("file %s not found: %w", OsReleaseFile, err)
	}

	file, err := os.Open(OsReleaseFile)
	if err != nil {
		return osInfo, fmt.Errorf("failed to open %s: %w", OsReleaseFile, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), "\"")

		switch key {
		case "NAME":
			osInfo.Name = value
		case "VERSION_ID":
			osInfo.Version = value
		case "ID":
			if value != "" {
				osInfo.ID = strings.ToLower(value)
			}
		case "ID_LIKE":
			// ID_LIKE can contain multiple space-separated values
			osInfo.IDLike = strings.Fields(value)
		}
	}

	if err := scanner.Err(); err != nil {
		return osInfo, fmt.Errorf("error reading %s: %w", OsReleaseFile, err)
	}

	osInfo.PackageManagers = detectPackageManagers(osInfo.ID, osInfo.IDLike)

	if len(osInfo.PackageManagers) == 0 {
		log.Warnf("Could not determine package manager for distribution: %s (ID: %s)", osInfo.Name, osInfo.ID)
	}

	log.Infof("Detected OS distribution: %s %s (ID: %s, Package Managers: %v)",
		osInfo.Name, osInfo.Version, osInfo.ID, osInfo.PackageManagers)

	return osInfo, nil
}

// detectPackageManagers determines the package managers based on the
// distribution ID, falling back to ID_LIKE and then to probing for known
// package manager commands.
func detectPackageManagers(id string, idLike []string) []string {
	if mgrs := packageManagersForID(id); len(mgrs) > 0 {
		return mgrs
	}

	for _, likeID := range idLike {
		if mgrs := packageManagersForID(likeID); len(mgrs) > 0 {
			return mgrs
		}
	}

	return detectFromCommands()
}

func packageManagersForID(id string) []string {
	switch strings.ToLower(id) {
	case "ubuntu", "debian", "linuxmint", "pop", "elementary", "kali", "raspbian", "parrot":
		return []string{"apt", "dpkg"}
	case "fedora", "rhel", "centos", "rocky", "almalinux":
		return []string{"dnf", "rpm"}
	case "arch", "manjaro", "endeavouros":
		return []string{"pacman"}
	case "alpine":
		return []string{"apk"}
	default:
		return nil
	}
}

// detectFromCommands attempts to detect package support by checking for
// package manager commands - order matters for precedence
func detectFromCommands() []string {
	checks := []struct {
		cmd      string
		managers []string
	}{
		{"apt", []string{"apt", "dpkg"}},
		{"dpkg", []string{"dpkg"}},
		{"dnf", []string{"dnf", "rpm"}},
		{"yum", []string{"yum", "rpm"}},
		{"pacman", []string{"pacman"}},
		{"apk", []string{"apk"}},
	}

	for _, check := range checks {
		if shell.IsCommandExist(check.cmd) {
			return check.managers
		}
	}

	return nil
}
