package launcher

import (
	"errors"
	"fmt"
)

var (
	ErrLaunch = errors.New("launch failed")
)

// Carries the isolated run's exit status to the process boundary.
//
// main unwraps this to exit with the same status the build inside the
// container exited with.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("isolated build exited with status %d", e.Code)
}
