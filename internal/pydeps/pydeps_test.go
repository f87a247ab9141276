package pydeps_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/pydeps"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/shell"
)

func withRequirements(t *testing.T, path string) {
	t.Helper()
	original := pydeps.RequirementsFile
	t.Cleanup(func() { pydeps.RequirementsFile = original })
	pydeps.RequirementsFile = path
}

func withMock(t *testing.T, commands []shell.MockCommand) *shell.MockExecutor {
	t.Helper()
	original := shell.Default
	t.Cleanup(func() { shell.Default = original })
	mock := shell.NewMockExecutor(commands)
	shell.Default = mock
	return mock
}

func TestInstallRequirementsMissingManifest(t *testing.T) {
	withRequirements(t, filepath.Join(t.TempDir(), "requirements.txt"))
	mock := withMock(t, nil)

	// A missing manifest is a warning, not an error, and runs no command.
	if err := pydeps.InstallRequirements(); err != nil {
		t.Fatalf("expected missing manifest to be tolerated, got: %v", err)
	}
	if len(mock.Calls) != 0 {
		t.Errorf("expected no pip invocation, got %v", mock.Calls)
	}
}

func TestInstallRequirements(t *testing.T) {
	reqPath := filepath.Join(t.TempDir(), "requirements.txt")
	if err := os.WriteFile(reqPath, []byte("scapy==2.5.0\nrich\n"), 0644); err != nil {
		t.Fatalf("failed to write requirements: %v", err)
	}
	withRequirements(t, reqPath)
	mock := withMock(t, []shell.MockCommand{
		{Pattern: "pip3 install --break-system-packages -r " + reqPath, Output: "", Error: nil},
	})

	if err := pydeps.InstallRequirements(); err != nil {
		t.Fatalf("InstallRequirements failed: %v", err)
	}
	if !mock.Called("pip3 install") {
		t.Error("expected pip3 install to run")
	}
}

func TestInstallRequirementsRetriesWithoutBreakFlag(t *testing.T) {
	reqPath := filepath.Join(t.TempDir(), "requirements.txt")
	if err := os.WriteFile(reqPath, []byte("scapy\n"), 0644); err != nil {
		t.Fatalf("failed to write requirements: %v", err)
	}
	withRequirements(t, reqPath)
	mock := withMock(t, []shell.MockCommand{
		{Pattern: "--break-system-packages", Output: "",
			Error: fmt.Errorf("no such option: --break-system-packages")},
		{Pattern: "pip3 install -r " + reqPath, Output: "", Error: nil},
	})

	if err := pydeps.InstallRequirements(); err != nil {
		t.Fatalf("expected retry without --break-system-packages to succeed: %v", err)
	}
	if len(mock.Calls) != 2 {
		t.Errorf("expected two pip invocations, got %v", mock.Calls)
	}
}

func TestInstallRequirementsFailure(t *testing.T) {
	reqPath := filepath.Join(t.TempDir(), "requirements.txt")
	if err := os.WriteFile(reqPath, []byte("scapy\n"), 0644); err != nil {
		t.Fatalf("failed to write requirements: %v", err)
	}
	withRequirements(t, reqPath)
	withMock(t, []shell.MockCommand{
		{Pattern: "pip3 install", Output: "", Error: fmt.Errorf("network unreachable")},
	})

	if err := pydeps.InstallRequirements(); err == nil {
		t.Fatal("expected error when both pip invocations fail")
	}
}
