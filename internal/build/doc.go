// Package build runs the per-variant wheel build loop inside the isolated
// environment.
//
// The loop clears the wheelhouse once, discovers the installed interpreter
// variants, and builds them strictly sequentially. Each variant gets an
// ephemeral workspace with a fresh clone of the project tree; the wheel is
// built with that variant's own interpreter, audited and repaired for
// platform compliance, and copied into the wheelhouse before the workspace
// is destroyed. The default policy is fail-fast: the first failing variant
// aborts the loop, and the wheelhouse keeps only the wheels collected
// before the failure.
//
// External tools (git, pip, auditwheel) run through the command.Runner
// interface, so the loop's sequencing and failure semantics are testable
// without any of them installed.
package build
