package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	containerd "github.com/containerd/containerd/v2/client"
	"github.com/containerd/containerd/v2/pkg/cio"
	"github.com/containerd/containerd/v2/pkg/oci"
	specs "github.com/opencontainers/runtime-spec/specs-go"
)

// One bind mount from the host into the container.
type Mount struct {
	Source   string // Absolute host path.
	Target   string // Absolute container path.
	ReadOnly bool
}

// Describes one isolated container run.
type RunSpec struct {
	ID     string           // Container ID, unique per run.
	Image  containerd.Image // Build image, already unpacked.
	Mounts []Mount          // Bind mounts for project tree, caches, and binary.
	Env    []string         // Environment entries merged over the image config.
	Args   []string         // Process arguments of the container's task.
}

// Runs a container to completion and returns the process exit code.
//
// Any stale container with the same ID is removed first. The container's
// task runs spec.Args directly as the primary process, with stdout and
// stderr streamed to this process's streams, and host networking so package
// downloads work. The call blocks until the task exits; the container and
// its snapshot are destroyed before returning. A non-zero exit code is not
// an error here, the caller decides how to propagate it.
func (rt *Runtime) RunContainer(ctx context.Context, spec RunSpec) (int, error) {
	removeStale(ctx, rt.client, spec.ID)

	ctr, err := rt.createContainer(ctx, spec)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRuntime, err)
	}
	defer ctr.Delete(context.WithoutCancel(ctx), containerd.WithSnapshotCleanup)

	slog.Debug("container created", "id", spec.ID, "args", spec.Args)

	return runTask(ctx, ctr)
}

// Creates the containerd container with the build configuration.
func (rt *Runtime) createContainer(ctx context.Context, spec RunSpec) (containerd.Container, error) {
	return rt.client.NewContainer(ctx, spec.ID,
		containerd.WithImage(spec.Image),
		containerd.WithSnapshotter(snapshotter),
		containerd.WithNewSnapshot(spec.ID, spec.Image),
		containerd.WithRuntime(ociRuntime, nil),
		containerd.WithNewSpec(
			oci.WithDefaultSpecForPlatform(defaultPlatform()),
			oci.WithImageConfig(spec.Image),
			oci.WithHostNamespace(specs.NetworkNamespace),
			oci.WithHostResolvconf,
			oci.WithEnv(spec.Env),
			oci.WithMounts(ociMounts(spec.Mounts)),
			oci.WithProcessArgs(spec.Args...),
		),
	)
}

// Starts the container's task and blocks until it exits, returning the
// exit code.
//
// Wait is registered before Start so the exit event cannot be missed. The
// task is always deleted before returning.
func runTask(ctx context.Context, ctr containerd.Container) (int, error) {
	task, err := ctr.NewTask(ctx, cio.NewCreator(
		cio.WithStreams(nil, os.Stdout, os.Stderr),
	))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRuntime, err)
	}
	defer task.Delete(context.WithoutCancel(ctx), containerd.WithProcessKill)

	statusC, err := task.Wait(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRuntime, err)
	}

	if err := task.Start(ctx); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRuntime, err)
	}

	exitStatus := <-statusC

	code, _, err := exitStatus.Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRuntime, err)
	}

	return int(code), nil
}

// Removes an existing container with this ID, if one exists.
//
// Any running task is killed and the container is deleted along with its
// snapshot. This is a no-op when no container with the ID is found.
func removeStale(ctx context.Context, client *containerd.Client, id string) {
	existing, err := client.LoadContainer(ctx, id)
	if err != nil {
		return
	}
	if task, err := existing.Task(ctx, nil); err == nil {
		task.Kill(ctx, syscall.SIGKILL)
		task.Delete(ctx, containerd.WithProcessKill)
	}
	existing.Delete(ctx, containerd.WithSnapshotCleanup)
}

// Converts bind mounts to OCI spec mounts.
func ociMounts(mounts []Mount) []specs.Mount {
	converted := make([]specs.Mount, 0, len(mounts))
	for _, m := range mounts {
		options := []string{"rbind", "rw"}
		if m.ReadOnly {
			options = []string{"rbind", "ro"}
		}
		converted = append(converted, specs.Mount{
			Destination: m.Target,
			Type:        "bind",
			Source:      m.Source,
			Options:     options,
		})
	}
	return converted
}
