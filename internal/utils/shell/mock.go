package shell

import (
	"fmt"
	"strings"
)

// MockCommand maps a command substring to a canned result.
type MockCommand struct {
	Pattern string
	Output  string
	Error   error
}

// MockExecutor replays canned results for matching commands and records
// every command it was asked to run.
type MockExecutor struct {
	Commands []MockCommand
	Calls    []string
}

// NewMockExecutor creates an Executor that matches commands against the
// given patterns in order. Commands with no matching pattern fail, so tests
// notice unexpected shell-outs.
func NewMockExecutor(commands []MockCommand) *MockExecutor {
	return &MockExecutor{Commands: commands}
}

func (m *MockExecutor) Exec(cmdStr string, sudo bool, envVal []string) (string, error) {
	m.Calls = append(m.Calls, cmdStr)
	for _, mc := range m.Commands {
		if strings.Contains(cmdStr, mc.Pattern) {
			return mc.Output, mc.Error
		}
	}
	return "", fmt.Errorf("unexpected command: %s", cmdStr)
}

// Called reports whether any executed command contains the given substring.
func (m *MockExecutor) Called(substr string) bool {
	for _, c := range m.Calls {
		if strings.Contains(c, substr) {
			return true
		}
	}
	return false
}
