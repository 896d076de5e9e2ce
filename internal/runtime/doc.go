// Package runtime manages the isolated build container backed by containerd.
//
// A [Runtime] connects to a containerd daemon, ensures the manylinux build
// image is pulled and unpacked for the host platform, and runs one container
// per build with the project tree and caches bind-mounted. The container's
// primary process is the orchestrator itself, re-invoked in isolated mode;
// its exit code is returned to the caller unchanged.
//
// Example usage:
//
//	rt, err := runtime.New("/run/containerd/containerd.sock", "wheelforge")
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//
//	image, err := rt.EnsureImage(ctx, "quay.io/pypa/manylinux2014_x86_64:latest")
//	if err != nil {
//	    return err
//	}
//
//	code, err := rt.RunContainer(ctx, runtime.RunSpec{
//	    ID:    "wheelforge-build",
//	    Image: image,
//	    Args:  []string{"/usr/local/bin/wheelforge", "build", "--mode=isolated"},
//	})
package runtime
