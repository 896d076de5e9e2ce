package build

import "errors"

var (
	ErrBuild               = errors.New("build failed")
	ErrFileSystemOperation = errors.New("file system operation failed")
	ErrAudit               = errors.New("wheel audit failed")
	ErrNoWheel             = errors.New("build produced no wheel")
	ErrAmbiguousWheel      = errors.New("build produced more than one wheel")
)
