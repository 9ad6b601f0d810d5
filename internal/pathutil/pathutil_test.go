package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironmentOverrides(t *testing.T) {
	testCases := []struct {
		name   string
		env    string
		config string
		log    string
		dir    string
	}{
		{
			name:   "no environment",
			config: "config.yml",
			log:    "eyestrain.log",
			dir:    "reports",
		},
		{
			name:   "dev environment",
			env:    " dev ",
			config: "config_dev.yml",
			log:    "eyestrain_dev.log",
			dir:    "reports_dev",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Paths{
				configFileName: "config.yml",
				logFileName:    "eyestrain.log",
				reportsDirName: reportsDir,
			}

			p.applyEnvironmentOverrides(tc.env)

			assert.Equal(t, tc.config, p.configFileName)
			assert.Equal(t, tc.log, p.logFileName)
			assert.Equal(t, tc.dir, p.reportsDirName)
		})
	}
}

func TestInitialize(t *testing.T) {
	t.Setenv(envVar, "")

	assert.NoError(t, Initialize())

	assert.Equal(t, "config.yml", filepath.Base(ConfigFilePath()))
	assert.Equal(t, filepath.Join("log", "eyestrain.log"),
		filepath.Join(filepath.Base(filepath.Dir(LogFilePath())), filepath.Base(LogFilePath())))
	assert.Equal(t, "reports", filepath.Base(ReportsDir()))
}
