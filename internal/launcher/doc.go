// Package launcher provisions the isolated build container from the host.
//
// The launcher resolves the shared caches, ensures the manylinux image is
// available, and runs one container with the project tree, the caches, and
// the orchestrator binary mounted. The orchestrator re-invokes itself inside
// the container in isolated mode; host and container share one codebase with
// no separate remote protocol. The container's exit status is propagated as
// the run's exit status.
package launcher
