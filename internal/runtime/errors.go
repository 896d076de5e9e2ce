package runtime

import "errors"

var (
	ErrRuntime          = errors.New("runtime error")
	ErrImageUnavailable = errors.New("build image unavailable")
)
