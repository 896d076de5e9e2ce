package mode

import (
	"errors"
	"testing"
)

func TestParseExplicit(t *testing.T) {
	m, err := Parse("host")
	if err != nil || m != Host {
		t.Fatalf("Parse(host) = %v, %v", m, err)
	}

	m, err = Parse("isolated")
	if err != nil || m != Isolated {
		t.Fatalf("Parse(isolated) = %v, %v", m, err)
	}
}

func TestParseUnknown(t *testing.T) {
	if _, err := Parse("container"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("err = %v, want ErrUnknownMode", err)
	}
}

func TestString(t *testing.T) {
	if Host.String() != "host" {
		t.Fatalf("Host.String() = %q", Host.String())
	}
	if Isolated.String() != "isolated" {
		t.Fatalf("Isolated.String() = %q", Isolated.String())
	}
}

func TestIsDir(t *testing.T) {
	dir := t.TempDir()
	if !isDir(dir) {
		t.Fatal("isDir rejected an existing directory")
	}
	if isDir(dir + "/absent") {
		t.Fatal("isDir accepted a missing path")
	}
}
