package slavelog

import (
	"errors"
	"fmt"
	"path/filepath"
)

// slaveLogPrefix is the filename prefix of the slave's leveled log files,
// e.g. slaved.INFO.
const slaveLogPrefix = "slaved."

// ErrNotRegistered is returned when a framework log path is requested before
// the slave has registered with the master.
var ErrNotRegistered = errors.New("slave not yet registered with master")

// SlaveFileName returns the slave log filename for a level such as "INFO".
func SlaveFileName(level string) string {
	return slaveLogPrefix + level
}

// SlavePath returns the path of the slave's own log file for a level such as
// "INFO". Pure path arithmetic: the file is not checked for existence.
func SlavePath(logDir, level string) string {
	return filepath.Join(logDir, SlaveFileName(level))
}

// FrameworkRelPath returns the path of a framework's log file of the given
// type (stdout, stderr, ...) relative to the slave's working directory. When
// slaveID is negative the slave is unregistered and no path is constructed.
func FrameworkRelPath(slaveID, frameworkID int64, logType string) (string, error) {
	if slaveID < 0 {
		return "", ErrNotRegistered
	}
	return filepath.Join(
		fmt.Sprintf("slave-%d", slaveID),
		fmt.Sprintf("framework-%d", frameworkID),
		logType,
	), nil
}

// FrameworkPath is FrameworkRelPath anchored at the work directory.
func FrameworkPath(workDir string, slaveID, frameworkID int64, logType string) (string, error) {
	rel, err := FrameworkRelPath(slaveID, frameworkID, logType)
	if err != nil {
		return "", err
	}
	return filepath.Join(workDir, rel), nil
}
