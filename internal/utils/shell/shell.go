package shell

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/logger"
)

// Executor runs a shell command and returns its combined output.
type Executor interface {
	Exec(cmdStr string, sudo bool, envVal []string) (string, error)
}

// Default is the executor used by the package-level functions. Tests swap it
// for a MockExecutor.
var Default Executor = &hostExecutor{}

// GetOSEnvirons returns the system environment variables as a map
func GetOSEnvirons() map[string]string {
	environ := make(map[string]string)
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) == 2 {
			environ[parts[0]] = parts[1]
		}
	}
	return environ
}

// GetOSProxyEnvirons retrieves HTTP and HTTPS proxy environment variables
func GetOSProxyEnvirons() map[string]string {
	osEnv := GetOSEnvirons()
	proxyEnv := make(map[string]string)

	for key, value := range osEnv {
		if strings.Contains(strings.ToLower(key), "http_proxy") ||
			strings.Contains(strings.ToLower(key), "https_proxy") {
			proxyEnv[key] = value
		}
	}

	return proxyEnv
}

// getShell returns the preferred shell, falling back to /bin/sh if bash is not available
func getShell() string {
	shells := []string{"/bin/bash", "/usr/bin/bash", "/bin/sh"}
	for _, shell := range shells {
		if _, err := os.Stat(shell); err == nil {
			return shell
		}
	}
	return "/bin/sh" // fallback
}

// isRoot reports whether the current process already runs with euid 0.
// Overridable so tests can exercise both sudo paths.
var isRoot = func() bool { return os.Geteuid() == 0 }

// GetFullCmdStr prepares a command string with necessary prefixes. The sudo
// prefix is only applied when the process is not already root, so the tool
// works both as root (its normal precondition) and during development.
func GetFullCmdStr(cmdStr string, sudo bool, envVal []string) string {
	log := logger.Logger()
	envValStr := ""
	for _, env := range envVal {
		envValStr += env + " "
	}

	if sudo && !isRoot() {
		proxyEnv := GetOSProxyEnvirons()
		for key, value := range proxyEnv {
			envValStr += key + "=" + value + " "
		}

		log.Debugf("Exec: [sudo %s]", cmdStr)
		return "sudo " + envValStr + cmdStr
	}

	log.Debugf("Exec: [%s]", cmdStr)
	return envValStr + cmdStr
}

type hostExecutor struct{}

func (h *hostExecutor) Exec(cmdStr string, sudo bool, envVal []string) (string, error) {
	fullCmdStr := GetFullCmdStr(cmdStr, sudo, envVal)

	shell := getShell()
	cmd := exec.Command(shell, "-c", fullCmdStr)
	output, err := cmd.CombinedOutput()
	outputStr := string(output)

	if err != nil {
		return outputStr, fmt.Errorf("failed to exec %s: %w", fullCmdStr, err)
	}
	return outputStr, nil
}

// ExecCmd executes a command via Default and logs its output. It is a
// package-level variable so individual call sites can be overridden in tests.
var ExecCmd = func(cmdStr string, sudo bool, envVal []string) (string, error) {
	log := logger.Logger()
	outputStr, err := Default.Exec(cmdStr, sudo, envVal)
	if err != nil {
		if outputStr != "" {
			log.Infof(outputStr)
		}
		return outputStr, err
	}
	if outputStr != "" {
		log.Debugf(outputStr)
	}
	return outputStr, nil
}

// ExecCmdSilent is ExecCmd without output logging, for probe commands whose
// failure is an expected answer rather than an error.
var ExecCmdSilent = func(cmdStr string, sudo bool, envVal []string) (string, error) {
	return Default.Exec(cmdStr, sudo, envVal)
}

// ExecCmdWithStream executes a command and streams its output line by line
// through the logger. Used for long-running commands (apt, make) where
// buffered output would look like a hang.
var ExecCmdWithStream = func(cmdStr string, sudo bool, envVal []string) (string, error) {
	log := logger.Logger()

	if _, ok := Default.(*hostExecutor); !ok {
		// Mocked executor: no real pipes to stream.
		return Default.Exec(cmdStr, sudo, envVal)
	}

	fullCmdStr := GetFullCmdStr(cmdStr, sudo, envVal)

	shell := getShell()
	cmd := exec.Command(shell, "-c", fullCmdStr)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("failed to get stdout pipe for command %s: %w", fullCmdStr, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("failed to get stderr pipe for command %s: %w", fullCmdStr, err)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start command %s: %w", fullCmdStr, err)
	}

	var outputStr string
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			str := scanner.Text()
			if str != "" {
				outputStr += str + "\n"
				log.Infof(str)
			}
		}
	}()

	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			str := scanner.Text()
			if str != "" {
				log.Infof(str)
			}
		}
	}()

	wg.Wait()

	if err := cmd.Wait(); err != nil {
		return outputStr, fmt.Errorf("failed to wait for command %s: %w", fullCmdStr, err)
	}

	return outputStr, nil
}

// IsCommandExist checks if a command exists on the host
func IsCommandExist(cmd string) bool {
	output, err := ExecCmdSilent("command -v "+cmd, false, nil)
	if err != nil {
		return false
	}
	return strings.TrimSpace(output) != ""
}
