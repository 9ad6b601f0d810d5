// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

const (
	appDir     = "eyestrain"
	envVar     = "EYESTRAIN_ENV"
	reportsDir = "reports"
	logDir     = "log"
)

// Paths holds all application path configurations.
type Paths struct {
	configFileName string
	logFileName    string
	reportsDirName string

	// Computed absolute paths
	configFilePath string
	dataDir        string
	logFilePath    string
	reportsDir     string
}

var (
	paths   *Paths
	once    sync.Once
	initErr error
)

// Initialize computes the application paths. Only the first call does any
// work.
func Initialize() error {
	once.Do(func() {
		paths = &Paths{
			configFileName: "config.yml",
			logFileName:    "eyestrain.log",
			reportsDirName: reportsDir,
		}

		paths.applyEnvironmentOverrides(os.Getenv(envVar))
		initErr = paths.computePaths()
	})

	return initErr
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}

	return paths
}

func ConfigFilePath() string {
	return Must().configFilePath
}

func LogFilePath() string {
	return Must().logFilePath
}

// ReportsDir is the default directory for session reports.
func ReportsDir() string {
	return Must().reportsDir
}

// applyEnvironmentOverrides keeps the files of separate environments, such
// as a development build, apart.
func (p *Paths) applyEnvironmentOverrides(env string) {
	env = strings.TrimSpace(env)
	if env == "" {
		return
	}

	p.configFileName = fmt.Sprintf("config_%s.yml", env)
	p.logFileName = fmt.Sprintf("eyestrain_%s.log", env)
	p.reportsDirName = fmt.Sprintf("%s_%s", reportsDir, env)
}

func (p *Paths) computePaths() error {
	var err error

	p.configFilePath, err = xdg.ConfigFile(
		filepath.Join(appDir, p.configFileName),
	)
	if err != nil {
		return fmt.Errorf("locating config file: %w", err)
	}

	p.dataDir, err = xdg.DataFile(appDir)
	if err != nil {
		return fmt.Errorf("locating data directory: %w", err)
	}

	p.logFilePath = filepath.Join(p.dataDir, logDir, p.logFileName)
	p.reportsDir = filepath.Join(p.dataDir, p.reportsDirName)

	return nil
}
