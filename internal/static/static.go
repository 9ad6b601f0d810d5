// Package static embeds static files into the binary and copies them to the
// filesystem
package static

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/ayoisaiah/eyestrain/internal/osutil"
)

const (
	filesDir = "files"
	appDir   = "eyestrain"
	iconFile = "icon.svg"
)

//go:embed files/*
var embeddedFiles embed.FS

// Install copies the embedded files into the data directory, leaving
// existing files alone, and returns the path of the notification icon.
func Install() (string, error) {
	err := copyEmbeddedFiles(func(rel string) (string, error) {
		return xdg.DataFile(filepath.Join(appDir, rel))
	})
	if err != nil {
		return "", err
	}

	return xdg.DataFile(filepath.Join(appDir, iconFile))
}

func copyEmbeddedFiles(dest func(rel string) (string, error)) error {
	return fs.WalkDir(
		embeddedFiles,
		filesDir,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			b, err := embeddedFiles.ReadFile(path)
			if err != nil {
				return err
			}

			// embed paths always use forward slashes
			stripped := strings.TrimPrefix(path, filesDir+"/")

			destPath, err := dest(stripped)
			if err != nil {
				return err
			}

			if _, err := os.Stat(destPath); os.IsNotExist(err) {
				if err := os.MkdirAll(filepath.Dir(destPath), osutil.DirPermission); err != nil {
					return err
				}

				if err := os.WriteFile(destPath, b, osutil.FilePermission); err != nil {
					return err
				}
			}

			return nil
		},
	)
}
