// Package config loads the setup manifest that drives wifi-tester-setup:
// which package sets to install, where the out-of-tree driver comes from,
// and which interface patterns NetworkManager must leave unmanaged.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/config/validate"
)

//go:embed default_manifest.yml
var defaultManifest []byte

// SetupManifest is the root of the setup manifest document.
type SetupManifest struct {
	Version        string             `yaml:"version" json:"version"`
	Packages       PackageSets        `yaml:"packages" json:"packages"`
	Driver         DriverSpec         `yaml:"driver" json:"driver"`
	NetworkManager NetworkManagerSpec `yaml:"networkManager" json:"networkManager"`
}

// PackageSets groups the apt package lists by install phase.
type PackageSets struct {
	Base     []string `yaml:"base" json:"base"`
	Python   []string `yaml:"python" json:"python"`
	Aircrack []string `yaml:"aircrack" json:"aircrack"`
	// Firmware packages are installed best-effort; not every entry exists
	// on every distribution.
	Firmware []string `yaml:"firmware" json:"firmware"`
	// KaliExtras are only installed when the detected distribution ID is
	// "kali".
	KaliExtras []string `yaml:"kaliExtras,omitempty" json:"kaliExtras,omitempty"`
}

// DriverSpec describes the out-of-tree RTL8812AU driver.
type DriverSpec struct {
	Module  string `yaml:"module" json:"module"`   // kernel module name, e.g. 88XXau
	Package string `yaml:"package" json:"package"` // prebuilt DKMS package, if the repo carries one
	Repo    string `yaml:"repo" json:"repo"`       // git repository for the source build
	// Snapshot tarball fallback for hosts without git. Optional; when both
	// fields are set the download is verified against the SHA-256 pin.
	SnapshotURL    string `yaml:"snapshotURL,omitempty" json:"snapshotURL,omitempty"`
	SnapshotSHA256 string `yaml:"snapshotSHA256,omitempty" json:"snapshotSHA256,omitempty"`
}

// NetworkManagerSpec holds the unmanaged-device patterns written to the
// NetworkManager drop-in.
type NetworkManagerSpec struct {
	Unmanaged []string `yaml:"unmanaged" json:"unmanaged"`
}

// LoadManifest loads a setup manifest from path, or the embedded default
// when path is empty. With validateFull set, the document is also checked
// against the embedded JSON schema.
func LoadManifest(path string, validateFull bool) (*SetupManifest, error) {
	data := defaultManifest
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
		}
	}
	return parseYAMLManifest(data, validateFull)
}

func parseYAMLManifest(data []byte, validateFull bool) (*SetupManifest, error) {
	if validateFull {
		jsonData, err := sigsyaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to convert manifest to JSON: %w", err)
		}
		if err := validate.ValidateSetupManifestJSON(jsonData); err != nil {
			return nil, err
		}
	}

	manifest := &SetupManifest{}
	if err := yaml.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	if manifest.Version == "" {
		return nil, fmt.Errorf("manifest is missing a version")
	}
	if len(manifest.Packages.Base) == 0 && len(manifest.Packages.Aircrack) == 0 {
		return nil, fmt.Errorf("manifest declares no packages to install")
	}

	return manifest, nil
}
