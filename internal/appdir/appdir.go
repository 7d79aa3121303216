// Package appdir resolves the per-user application data directory.
package appdir

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "river-run"

// DataDir returns the OS-appropriate application data directory,
// creating it if it does not exist.
//
// Windows: %APPDATA%\river-run
// macOS:   ~/Library/Application Support/river-run
// Linux:   $XDG_DATA_HOME/river-run or ~/.local/share/river-run
func DataDir() (string, error) {
	base, err := baseDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}
	return dir, nil
}

func baseDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return appData, nil
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("os.UserHomeDir() > %w", err)
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return xdg, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("os.UserHomeDir() > %w", err)
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(home, "AppData", "Roaming"), nil
	}
	return filepath.Join(home, ".local", "share"), nil
}

// RelocateLegacyData copies a database file and attachments directory
// from the current working directory into dataDir when they exist there
// and are absent in the destination. Earlier releases kept data next to
// the executable; nothing is removed from the old location.
func RelocateLegacyData(dataDir, databaseFile, attachmentsDirName string) (bool, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return false, fmt.Errorf("os.Getwd() > %w", err)
	}

	moved := false

	oldDB := filepath.Join(cwd, databaseFile)
	newDB := filepath.Join(dataDir, databaseFile)
	if fileExists(oldDB) && !fileExists(newDB) {
		if err := copyFile(oldDB, newDB); err != nil {
			return moved, fmt.Errorf("copyFile(%s) > %w", oldDB, err)
		}
		moved = true
	}

	oldAttachments := filepath.Join(cwd, attachmentsDirName)
	newAttachments := filepath.Join(dataDir, attachmentsDirName)
	if dirExists(oldAttachments) && !dirExists(newAttachments) {
		if err := copyDir(oldAttachments, newAttachments); err != nil {
			return moved, fmt.Errorf("copyDir(%s) > %w", oldAttachments, err)
		}
		moved = true
	}

	return moved, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("os.Open(%s) > %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("io.Copy() > %w", err)
	}
	return out.Close()
}

func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("filepath.Rel() > %w", err)
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target)
	})
}
