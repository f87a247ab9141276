package system_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/shell"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/system"
)

func TestDetectOsDistribution(t *testing.T) {
	originalExecutor := shell.Default
	originalOsReleaseFile := system.OsReleaseFile
	defer func() {
		shell.Default = originalExecutor
		system.OsReleaseFile = originalOsReleaseFile
	}()

	tests := []struct {
		name             string
		osReleaseContent string
		mockCommands     []shell.MockCommand
		expected         *system.OsDistribution
		expectError      bool
	}{
		{
			name: "ubuntu",
			osReleaseContent: `NAME="Ubuntu"
VERSION="22.04.3 LTS (Jammy Jellyfish)"
ID=ubuntu
ID_LIKE=debian
VERSION_ID="22.04"`,
			expected: &system.OsDistribution{
				Name:            "Ubuntu",
				Version:         "22.04",
				ID:              "ubuntu",
				IDLike:          []string{"debian"},
				PackageManagers: []string{"apt", "dpkg"},
			},
		},
		{
			name: "kali",
			osReleaseContent: `NAME="Kali GNU/Linux"
ID=kali
ID_LIKE=debian
VERSION_ID="2024.3"`,
			expected: &system.OsDistribution{
				Name:            "Kali GNU/Linux",
				Version:         "2024.3",
				ID:              "kali",
				IDLike:          []string{"debian"},
				PackageManagers: []string{"apt", "dpkg"},
			},
		},
		{
			name: "unknown_id_falls_back_to_id_like",
			osReleaseContent: `NAME="Some Derivative"
ID=somederivative
ID_LIKE="ubuntu debian"
VERSION_ID="1.0"`,
			expected: &system.OsDistribution{
				Name:            "Some Derivative",
				Version:         "1.0",
				ID:              "somederivative",
				IDLike:          []string{"ubuntu", "debian"},
				PackageManagers: []string{"apt", "dpkg"},
			},
		},
		{
			name: "unknown_id_probes_commands",
			osReleaseContent: `NAME="Mystery Linux"
ID=mystery`,
			mockCommands: []shell.MockCommand{
				{Pattern: "command -v apt", Output: "/usr/bin/apt\n", Error: nil},
			},
			expected: &system.OsDistribution{
				Name:            "Mystery Linux",
				ID:              "mystery",
				PackageManagers: []string{"apt", "dpkg"},
			},
		},
		{
			name:             "quoted_values",
			osReleaseContent: `NAME="Debian GNU/Linux"` + "\n" + `ID="debian"` + "\n" + `VERSION_ID="12"`,
			expected: &system.OsDistribution{
				Name:            "Debian GNU/Linux",
				Version:         "12",
				ID:              "debian",
				PackageManagers: []string{"apt", "dpkg"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shell.Default = shell.NewMockExecutor(tt.mockCommands)

			tempDir := t.TempDir()
			system.OsReleaseFile = filepath.Join(tempDir, "os-release")
			if err := os.WriteFile(system.OsReleaseFile, []byte(tt.osReleaseContent), 0644); err != nil {
				t.Fatalf("failed to write os-release: %v", err)
			}

			result, err := system.DetectOsDistribution()
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectOsDistribution failed: %v", err)
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %+v, got %+v", tt.expected, result)
			}
		})
	}
}

func TestDetectOsDistributionMissingFile(t *testing.T) {
	originalOsReleaseFile := system.OsReleaseFile
	defer func() { system.OsReleaseFile = originalOsReleaseFile }()
	system.OsReleaseFile = "/nonexistent/os-release"

	result, err := system.DetectOsDistribution()
	if err == nil {
		t.Fatal("expected error for missing os-release")
	}
	// Callers continue with the "unknown" identifier after a warning.
	if result == nil || result.ID != system.UnknownID {
		t.Errorf("expected fallback ID %q, got %+v", system.UnknownID, result)
	}
}

func TestIsKali(t *testing.T) {
	tests := []struct {
		id       string
		idLike   []string
		expected bool
	}{
		{"kali", []string{"debian"}, true},
		{"ubuntu", []string{"debian"}, false},
		// ID_LIKE=kali does not count
		{"somederivative", []string{"kali"}, false},
		{"unknown", nil, false},
	}

	for _, tt := range tests {
		d := &system.OsDistribution{ID: tt.id, IDLike: tt.idLike}
		if got := d.IsKali(); got != tt.expected {
			t.Errorf("IsKali for ID=%s: expected %v, got %v", tt.id, tt.expected, got)
		}
	}
}

func TestIsDebianFamily(t *testing.T) {
	tests := []struct {
		managers []string
		expected bool
	}{
		{[]string{"apt", "dpkg"}, true},
		{[]string{"dnf", "rpm"}, false},
		{nil, false},
	}

	for _, tt := range tests {
		d := &system.OsDistribution{PackageManagers: tt.managers}
		if got := d.IsDebianFamily(); got != tt.expected {
			t.Errorf("IsDebianFamily for %v: expected %v, got %v", tt.managers, tt.expected, got)
		}
	}
}
