package inject

import (
	"os"
	"path/filepath"
	"testing"

	"asgen.dev/asgen/pkgindex"
)

func TestContentsEmptyWhenDataLocationMissing(t *testing.T) {
	pkg := New("amd64", "/usr", "", "")
	contents, err := pkg.Contents()
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 0 {
		t.Fatalf("expected empty contents, got %v", contents)
	}
}

func TestArchOverridesGeneric(t *testing.T) {
	root := t.TempDir()
	main := filepath.Join(root, "main")
	archDir := filepath.Join(main, "amd64")
	if err := os.MkdirAll(archDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(main, "foo.xml"), []byte("generic"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(archDir, "foo.xml"), []byte("arch"), 0o644); err != nil {
		t.Fatal(err)
	}

	amd64Pkg := New("amd64", "/usr", main, archDir)
	contents, err := amd64Pkg.Contents()
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 || contents[0] != "/usr/share/metainfo/foo.xml" {
		t.Fatalf("unexpected contents: %v", contents)
	}
	data, err := amd64Pkg.GetFileData("/usr/share/metainfo/foo.xml")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "arch" {
		t.Fatalf("expected arch override data, got %q", data)
	}

	i386Pkg := New("i386", "/usr", main, "")
	data, err = i386Pkg.GetFileData("/usr/share/metainfo/foo.xml")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "generic" {
		t.Fatalf("expected generic data for i386, got %q", data)
	}
}

func TestIconDiscovery(t *testing.T) {
	root := t.TempDir()
	iconDir := filepath.Join(root, "icons", "48x48")
	if err := os.MkdirAll(iconDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(iconDir, "foo.png"), []byte("icon"), 0o644); err != nil {
		t.Fatal(err)
	}

	pkg := New("amd64", "/usr", root, "")
	contents, err := pkg.Contents()
	if err != nil {
		t.Fatal(err)
	}
	want := "/usr/share/icons/hicolor/48x48/foo.png"
	found := false
	for _, c := range contents {
		if c == want {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %q in contents, got %v", want, contents)
	}
}

func TestKindIsFake(t *testing.T) {
	pkg := New("amd64", "", "", "")
	if pkg.Kind() != pkgindex.KindFake {
		t.Fatalf("expected kind %v, got %v", pkgindex.KindFake, pkg.Kind())
	}
	if pkg.Version() != Version {
		t.Fatalf("expected version %q, got %q", Version, pkg.Version())
	}
}
