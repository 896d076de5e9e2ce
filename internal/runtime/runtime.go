package runtime

import (
	"context"
	"fmt"
	"log/slog"
	goruntime "runtime"

	containerd "github.com/containerd/containerd/v2/client"
	"github.com/containerd/errdefs"
	"github.com/containerd/platforms"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

const (

	// Snapshotter used for container filesystems. fuse-overlayfs provides
	// overlay semantics without requiring root privileges (no mount(2)),
	// allowing wheelforge to run as a regular user.
	snapshotter = "fuse-overlayfs"

	// OCI runtime shim for running containers.
	ociRuntime = "io.containerd.runc.v2"
)

// Manages the containerd client and provides image and container operations.
type Runtime struct {
	client *containerd.Client // Containerd client for managing containers and images.
}

// Creates a runtime connected to the containerd socket at the given address.
//
// The namespace scopes all containerd operations to a single tenant. The
// runtime must be closed when no longer needed.
func New(address, namespace string) (*Runtime, error) {
	client, err := containerd.New(address, containerd.WithDefaultNamespace(namespace))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRuntime, err)
	}
	return &Runtime{client: client}, nil
}

// Closes the containerd client connection.
func (rt *Runtime) Close() error {
	return rt.client.Close()
}

// Makes the build image available, pulling it if necessary.
//
// A locally present image is reused after verifying it is unpacked into the
// snapshotter. Otherwise the reference is pulled from its registry with the
// host platform's manifest and unpacked. Pull failures are fatal to the run:
// no build work can start without the image.
func (rt *Runtime) EnsureImage(ctx context.Context, ref string) (containerd.Image, error) {
	platform, err := hostPlatform()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRuntime, err)
	}

	record, err := rt.client.ImageService().Get(ctx, ref)
	if err == nil {
		image := containerd.NewImageWithPlatform(rt.client, record, platforms.Only(platform))

		unpacked, err := image.IsUnpacked(ctx, snapshotter)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRuntime, err)
		}
		if !unpacked {
			if err := image.Unpack(ctx, snapshotter); err != nil {
				return nil, fmt.Errorf("%w: unpack %s: %w", ErrRuntime, ref, err)
			}
		}

		slog.Debug("image present", "ref", ref)
		return image, nil
	}

	if !errdefs.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %w", ErrRuntime, err)
	}

	slog.Info("pulling build image", "ref", ref)

	image, err := rt.client.Pull(ctx, ref,
		containerd.WithPlatformMatcher(platforms.Only(platform)),
		containerd.WithPullUnpack,
		containerd.WithPullSnapshotter(snapshotter),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: pull %s: %w", ErrImageUnavailable, ref, err)
	}

	return image, nil
}

// Returns the default OCI platform for the host architecture.
func defaultPlatform() string {
	return "linux/" + goruntime.GOARCH
}

// Returns the host platform as an OCI platform descriptor.
//
// Wheels are always built for the architecture the host runs on; building
// for a foreign platform would require QEMU / binfmt_misc support and is
// not attempted.
func hostPlatform() (ocispec.Platform, error) {
	return platforms.Parse(defaultPlatform())
}
