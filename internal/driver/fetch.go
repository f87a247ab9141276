package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/config"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/logger"
	"github.com/DiyarNzar/Wifi-Tester-Pro/internal/utils/shell"
)

// fetchSource places the driver source tree under destDir and returns the
// directory containing the makefile. git clone is preferred; hosts without
// git fall back to the pinned snapshot tarball when the manifest provides
// one.
func fetchSource(spec config.DriverSpec, destDir string) (string, error) {
	log := logger.Logger()

	if spec.Repo != "" && shell.IsCommandExist("git") {
		srcDir := filepath.Join(destDir, "rtl8812au")
		log.Infof("Cloning %s", spec.Repo)
		cmd := fmt.Sprintf("git clone --depth=1 %s %s", spec.Repo, srcDir)
		if _, err := shell.ExecCmdWithStream(cmd, false, nil); err != nil {
			return "", fmt.Errorf("git clone failed: %w", err)
		}
		return srcDir, nil
	}

	if spec.SnapshotURL == "" {
		return "", fmt.Errorf("git is not available and no snapshot URL is configured")
	}

	log.Infof("git not available, downloading snapshot %s", spec.SnapshotURL)
	archivePath := filepath.Join(destDir, path.Base(spec.SnapshotURL))
	if err := downloadFile(spec.SnapshotURL, archivePath); err != nil {
		return "", err
	}

	if spec.SnapshotSHA256 != "" {
		if err := verifySHA256(archivePath, spec.SnapshotSHA256); err != nil {
			return "", err
		}
	} else {
		log.Warnf("No SHA-256 pin configured for snapshot, skipping verification")
	}

	extractDir := filepath.Join(destDir, "src")
	if err := ExtractTarArchive(archivePath, extractDir); err != nil {
		return "", err
	}
	return sourceRoot(extractDir)
}

// downloadFile fetches url into destPath.
func downloadFile(url, destPath string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: bad status: %s", url, resp.Status)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	return nil
}

// verifySHA256 compares the file digest against the expected hex string.
func verifySHA256(filePath, expected string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("failed to hash %s: %w", filePath, err)
	}

	actual := hex.EncodeToString(h.Sum(nil))
	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("checksum mismatch for %s: expected %s, got %s", filePath, expected, actual)
	}
	return nil
}

// sourceRoot returns the single top-level directory of an extracted
// snapshot, or extractDir itself when files sit at the top level.
func sourceRoot(extractDir string) (string, error) {
	entries, err := os.ReadDir(extractDir)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", extractDir, err)
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(extractDir, entries[0].Name()), nil
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("snapshot archive was empty")
	}
	return extractDir, nil
}
