package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"asgen.dev/asgen/pkgindex/dummy"
)

type alwaysFoundIcons struct{}

func (alwaysFoundIcons) ResolveIcon(string, string) bool { return true }

func TestReferenceExtractsInterestingComponent(t *testing.T) {
	pkg := dummy.NewPackage("foo", "1.0", "amd64")
	pkg.AddFile("/usr/share/applications/foo.desktop", []byte("[Desktop Entry]\nName=Foo\n"))

	ext := NewReference(nil, alwaysFoundIcons{}, InjectedModifications{})
	result, err := ext.ProcessPackage(pkg)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Components) != 1 {
		t.Fatalf("expected 1 component, got %d", len(result.Components))
	}
	if result.Components[0].ID != "foo" {
		t.Fatalf("expected component id %q, got %q", "foo", result.Components[0].ID)
	}
}

func TestReferenceIgnoresUninterestingPaths(t *testing.T) {
	pkg := dummy.NewPackage("foo", "1.0", "amd64")
	pkg.AddFile("/usr/share/doc/foo/README", []byte("docs"))

	ext := NewReference(nil, alwaysFoundIcons{}, InjectedModifications{})
	result, err := ext.ProcessPackage(pkg)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Components) != 0 {
		t.Fatalf("expected no components, got %d", len(result.Components))
	}
}

func TestReferenceHonorsRemovedComponentIDs(t *testing.T) {
	pkg := dummy.NewPackage("foo", "1.0", "amd64")
	pkg.AddFile("/usr/share/metainfo/foo.xml", []byte("<component/>"))

	ext := NewReference(nil, alwaysFoundIcons{}, InjectedModifications{RemovedComponentIDs: map[string]bool{"foo": true}})
	result, err := ext.ProcessPackage(pkg)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Components) != 0 {
		t.Fatalf("expected removed component to be filtered out, got %d", len(result.Components))
	}
}

func TestLoadInjectedModificationsMissingFileIsNotError(t *testing.T) {
	mods, err := LoadInjectedModifications(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("expected no error for a missing overrides file, got %v", err)
	}
	if len(mods.RemovedComponentIDs) != 0 {
		t.Fatalf("expected no removals, got %v", mods.RemovedComponentIDs)
	}
}

func TestLoadInjectedModificationsParsesRemovals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "testing.yaml")
	if err := os.WriteFile(path, []byte("removedComponentIds:\n  - org.example.Foo\n  - org.example.Bar\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	mods, err := LoadInjectedModifications(path)
	if err != nil {
		t.Fatal(err)
	}
	if !mods.RemovedComponentIDs["org.example.Foo"] || !mods.RemovedComponentIDs["org.example.Bar"] {
		t.Fatalf("expected both ids to be marked removed, got %v", mods.RemovedComponentIDs)
	}
}

func TestLoadInjectedModificationsMalformedFileErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "testing.yaml")
	if err := os.WriteFile(path, []byte("removedComponentIds: [this is not valid: yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadInjectedModifications(path); err == nil {
		t.Fatal("expected a malformed overrides file to produce an error")
	}
}
