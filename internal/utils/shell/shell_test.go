package shell

import (
	"fmt"
	"os/exec"
	"strings"
	"testing"
)

// checkShellAvailable checks if a shell is available for testing
func checkShellAvailable(t *testing.T) {
	t.Helper()
	shells := []string{"/bin/bash", "/usr/bin/bash", "/bin/sh"}
	for _, shell := range shells {
		if _, err := exec.LookPath(shell); err == nil {
			return // Found a shell
		}
	}
	t.Skip("No shell (bash or sh) available in test environment")
}

func TestGetFullCmdStrNoSudo(t *testing.T) {
	cmd := GetFullCmdStr("echo hello", false, nil)
	if cmd != "echo hello" {
		t.Errorf("Expected 'echo hello', got: %s", cmd)
	}
}

func TestGetFullCmdStrSudoAsNonRoot(t *testing.T) {
	originalIsRoot := isRoot
	defer func() { isRoot = originalIsRoot }()
	isRoot = func() bool { return false }

	cmd := GetFullCmdStr("apt-get update", true, nil)
	if !strings.HasPrefix(cmd, "sudo ") {
		t.Errorf("Expected sudo prefix for non-root, got: %s", cmd)
	}
	if !strings.Contains(cmd, "apt-get update") {
		t.Errorf("Expected command to be preserved, got: %s", cmd)
	}
}

func TestGetFullCmdStrSudoAsRoot(t *testing.T) {
	originalIsRoot := isRoot
	defer func() { isRoot = originalIsRoot }()
	isRoot = func() bool { return true }

	cmd := GetFullCmdStr("apt-get update", true, nil)
	if strings.HasPrefix(cmd, "sudo ") {
		t.Errorf("Expected no sudo prefix when already root, got: %s", cmd)
	}
}

func TestGetFullCmdStrEnv(t *testing.T) {
	cmd := GetFullCmdStr("apt-get install -y curl", false, []string{"DEBIAN_FRONTEND=noninteractive"})
	if !strings.HasPrefix(cmd, "DEBIAN_FRONTEND=noninteractive ") {
		t.Errorf("Expected env prefix, got: %s", cmd)
	}
}

func TestExecCmd(t *testing.T) {
	checkShellAvailable(t)

	out, err := ExecCmd("echo test-exec-cmd", false, nil)
	if err != nil {
		t.Fatalf("ExecCmd failed: %v", err)
	}
	if !strings.Contains(out, "test-exec-cmd") {
		t.Errorf("Expected output to contain 'test-exec-cmd', got: %s", out)
	}
}

func TestExecCmdWithStream(t *testing.T) {
	checkShellAvailable(t)

	out, err := ExecCmdWithStream("echo test-exec-stream", false, nil)
	if err != nil {
		t.Fatalf("ExecCmdWithStream failed: %v", err)
	}
	if !strings.Contains(out, "test-exec-stream") {
		t.Errorf("Expected output to contain 'test-exec-stream', got: %s", out)
	}
}

func TestExecCmdOverride(t *testing.T) {
	originalExecCmd := ExecCmd
	defer func() { ExecCmd = originalExecCmd }()
	ExecCmd = func(cmdStr string, sudo bool, envVal []string) (string, error) {
		return "override-test", nil
	}

	out, err := ExecCmd("echo anything", true, nil)
	if err != nil {
		t.Fatalf("ExecCmd with override failed: %v", err)
	}
	if out != "override-test" {
		t.Errorf("Expected 'override-test', got: %s", out)
	}
}

func TestMockExecutor(t *testing.T) {
	originalExecutor := Default
	defer func() { Default = originalExecutor }()

	mock := NewMockExecutor([]MockCommand{
		{Pattern: "apt-get update", Output: "Reading package lists...\n", Error: nil},
		{Pattern: "apt-get install", Output: "", Error: fmt.Errorf("E: Unable to locate package")},
	})
	Default = mock

	out, err := ExecCmd("apt-get update", true, nil)
	if err != nil {
		t.Fatalf("Expected mocked success, got: %v", err)
	}
	if !strings.Contains(out, "Reading package lists") {
		t.Errorf("Unexpected mocked output: %s", out)
	}

	if _, err := ExecCmd("apt-get install -y nonexistent", true, nil); err == nil {
		t.Error("Expected mocked failure for install")
	}

	if _, err := ExecCmd("totally unexpected", false, nil); err == nil {
		t.Error("Expected error for unmatched command")
	}

	if !mock.Called("apt-get update") {
		t.Error("Expected mock to record the update call")
	}
	if len(mock.Calls) != 3 {
		t.Errorf("Expected 3 recorded calls, got %d", len(mock.Calls))
	}
}

func TestIsCommandExist(t *testing.T) {
	originalExecutor := Default
	defer func() { Default = originalExecutor }()

	Default = NewMockExecutor([]MockCommand{
		{Pattern: "command -v git", Output: "/usr/bin/git\n", Error: nil},
		{Pattern: "command -v nothere", Output: "", Error: fmt.Errorf("exit status 1")},
	})

	if !IsCommandExist("git") {
		t.Error("Expected git to exist")
	}
	if IsCommandExist("nothere") {
		t.Error("Expected nothere to be missing")
	}
}

func TestGetOSProxyEnvirons(t *testing.T) {
	t.Setenv("http_proxy", "http://proxy.example:3128")
	t.Setenv("NOT_A_PROXY", "x")

	proxyEnv := GetOSProxyEnvirons()
	if proxyEnv["http_proxy"] != "http://proxy.example:3128" {
		t.Errorf("Expected http_proxy to be picked up, got: %v", proxyEnv)
	}
	if _, ok := proxyEnv["NOT_A_PROXY"]; ok {
		t.Error("Expected non-proxy variables to be excluded")
	}
}
