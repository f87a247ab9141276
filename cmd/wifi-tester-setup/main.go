package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/config"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/setup"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/logger"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/system"
)

// Command flags
var (
	logLevel     string // explicit log level; wins over --verbose
	manifestPath string // alternate setup manifest; empty means embedded default
)

// errNotRoot is the failed privilege precondition; it maps to exit code 1
// before any installation action runs.
var errNotRoot = errors.New("wifi-tester-setup must be run as root")

// geteuid is overridable in tests.
var geteuid = os.Geteuid

func main() {
	os.Exit(run())
}

func run() int {
	root := createRootCommand()
	attachLoggingHooks(root)

	if err := root.Execute(); err != nil {
		if errors.Is(err, setup.ErrCancelled) {
			// User said no; that is a normal exit.
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// createRootCommand creates the root command; running it with no subcommand
// starts the interactive installation.
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wifi-tester-setup",
		Short: "provisions a Debian-family host with WiFi testing tools",
		Long: `wifi-tester-setup installs the drivers, firmware, aircrack-ng suite and
Python dependencies the WiFi tester application needs, configures
NetworkManager to leave monitor-mode interfaces unmanaged, and optionally
builds the RTL8812AU USB adapter driver from source.

It must be run as root and is fully interactive.`,
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: executeInstall,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false,
		"Shorthand for --log-level debug")
	rootCmd.Flags().StringVar(&manifestPath, "manifest", "",
		"Path to an alternate setup manifest (default: built-in)")

	rootCmd.AddCommand(createDetectCommand())
	return rootCmd
}

// resolveRequestedLogLevel picks the effective log level: an explicit
// --log-level wins, then --verbose implies debug, then empty (info).
func resolveRequestedLogLevel(cmd *cobra.Command) string {
	if logLevel != "" {
		return logLevel
	}
	if cmd != nil {
		if verbose, err := cmd.Flags().GetBool("verbose"); err == nil && verbose {
			return "debug"
		}
	}
	return ""
}

// attachLoggingHooks initializes the logger before any command body runs,
// on the root command and every subcommand.
func attachLoggingHooks(root *cobra.Command) {
	hook := func(cmd *cobra.Command, args []string) error {
		return logger.InitWithLevel(resolveRequestedLogLevel(cmd))
	}
	root.PersistentPreRunE = hook
	for _, sub := range root.Commands() {
		sub.PersistentPreRunE = hook
	}
}

// executeInstall handles the root command: privilege check, manifest load,
// distro detection, then the interactive installer.
func executeInstall(cmd *cobra.Command, args []string) error {
	if geteuid() != 0 {
		return errNotRoot
	}

	log := logger.Logger()

	manifest, err := config.LoadManifest(manifestPath, true)
	if err != nil {
		return fmt.Errorf("invalid setup manifest: %w", err)
	}

	distro, err := system.DetectOsDistribution()
	if err != nil {
		// Undetectable distribution is a soft warning; the run continues
		// with the "unknown" identifier.
		log.Warnf("Could not detect distribution: %v (continuing as %q)", err, distro.ID)
	}

	installer := setup.New(manifest, distro)
	installer.Stdin = cmd.InOrStdin()
	installer.Stdout = cmd.OutOrStdout()
	return installer.Run()
}
