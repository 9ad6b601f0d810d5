// Package osutil holds platform names, exit codes and file modes
package osutil

const (
	Windows = "windows"
	Darwin  = "darwin"
)

type exitCode int

const (
	ExitOK    exitCode = 0
	ExitError exitCode = 1
)

// Code returns the exit code as an int for os.Exit.
func (c exitCode) Code() int {
	return int(c)
}

const (
	DirPermission  = 0o755
	FilePermission = 0o644
)
