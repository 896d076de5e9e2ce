package runtime

import (
	"strings"
	"testing"
)

func TestDefaultPlatform(t *testing.T) {
	p := defaultPlatform()
	if !strings.HasPrefix(p, "linux/") {
		t.Fatalf("defaultPlatform = %q, want linux/<arch>", p)
	}
	parts := strings.Split(p, "/")
	if len(parts) != 2 || parts[1] == "" {
		t.Fatalf("defaultPlatform = %q, want linux/<arch>", p)
	}
}

func TestHostPlatform(t *testing.T) {
	p, err := hostPlatform()
	if err != nil {
		t.Fatalf("hostPlatform: %v", err)
	}
	if p.OS != "linux" {
		t.Fatalf("OS = %q, want linux", p.OS)
	}
	if p.Architecture == "" {
		t.Fatal("empty architecture")
	}
}

func TestOCIMounts(t *testing.T) {
	mounts := ociMounts([]Mount{
		{Source: "/home/user/project", Target: "/project"},
		{Source: "/usr/bin/tool", Target: "/usr/local/bin/tool", ReadOnly: true},
	})

	if len(mounts) != 2 {
		t.Fatalf("got %d mounts, want 2", len(mounts))
	}

	rw := mounts[0]
	if rw.Type != "bind" || rw.Destination != "/project" || rw.Source != "/home/user/project" {
		t.Fatalf("rw mount = %+v", rw)
	}
	if rw.Options[1] != "rw" {
		t.Fatalf("rw mount options = %v", rw.Options)
	}

	ro := mounts[1]
	if ro.Options[1] != "ro" {
		t.Fatalf("ro mount options = %v", ro.Options)
	}
}
