package backup

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/habitforge/habitforge/internal/constants"
)

var listProcessesFunc = ps.Processes

// EnsureExclusive fails when another habitforge process is running.
// Restoring or importing while a second process holds the database open
// would hand it a stale connection.
func EnsureExclusive() error {
	processes, err := listProcessesFunc()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	for _, p := range processes {
		if p.Pid() == self {
			continue
		}
		if strings.HasPrefix(p.Executable(), constants.AppName) {
			return fmt.Errorf("another %s process is running (PID %d), close it and retry", constants.AppName, p.Pid())
		}
	}

	return nil
}
