package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/logger"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/system"
)

// Output format flags
var (
	detectFormat string // "text" | "json"
)

// createDetectCommand creates the detect subcommand
func createDetectCommand() *cobra.Command {
	detectCmd := &cobra.Command{
		Use:   "detect",
		Short: "prints the detected Linux distribution",
		Long: `Detect parses /etc/os-release and reports the distribution name,
version, ID and package managers the installer would use. It does not
require root and performs no installation.`,
		Args: cobra.NoArgs,

		RunE: executeDetect,
	}

	detectCmd.Flags().StringVar(&detectFormat, "format", "text",
		"Output format: text or json")
	return detectCmd
}

// executeDetect handles the detect command execution logic
func executeDetect(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	distro, err := system.DetectOsDistribution()
	if err != nil {
		log.Warnf("Could not detect distribution: %v", err)
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(detectFormat) {
	case "json":
		b, err := json.MarshalIndent(distro, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode distribution info: %w", err)
		}
		fmt.Fprintln(out, string(b))
	case "text":
		fmt.Fprintf(out, "Name:             %s\n", distro.Name)
		fmt.Fprintf(out, "Version:          %s\n", distro.Version)
		fmt.Fprintf(out, "ID:               %s\n", distro.ID)
		fmt.Fprintf(out, "ID_LIKE:          %s\n", strings.Join(distro.IDLike, " "))
		fmt.Fprintf(out, "Package managers: %s\n", strings.Join(distro.PackageManagers, ", "))
	default:
		return fmt.Errorf("invalid --format %q (expected text|json)", detectFormat)
	}
	return nil
}
