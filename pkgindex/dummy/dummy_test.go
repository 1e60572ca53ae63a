package dummy

import (
	"testing"

	"asgen.dev/asgen/pkgindex"
)

func TestPackagesForCachesWithinLifetime(t *testing.T) {
	idx := New()
	pkg := NewPackage("test", "1.0", "amd64")
	idx.Add("testing", "main", "amd64", pkg)

	first, err := idx.PackagesFor("testing", "main", "amd64", true)
	if err != nil {
		t.Fatal(err)
	}
	second, err := idx.PackagesFor("testing", "main", "amd64", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected 1 package both times, got %d and %d", len(first), len(second))
	}
}

func TestContentsInsertionOrder(t *testing.T) {
	pkg := NewPackage("test", "1.0", "amd64")
	pkg.AddFile("NOTHING1", []byte("a"))
	pkg.AddFile("NOTHING2", []byte("b"))

	contents, err := pkg.Contents()
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 2 || contents[0] != "NOTHING1" || contents[1] != "NOTHING2" {
		t.Fatalf("unexpected contents order: %v", contents)
	}
}

func TestHasChangesAlwaysTrue(t *testing.T) {
	idx := New()
	changed, err := idx.HasChanges(nil, "testing", "main", "amd64")
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("PackageIndex.HasChanges must always report true")
	}
}

func TestFinishMarksPackage(t *testing.T) {
	pkg := NewPackage("test", "1.0", "amd64")
	if pkg.Finished() {
		t.Fatal("should not be finished yet")
	}
	pkg.Finish()
	if !pkg.Finished() {
		t.Fatal("expected Finish() to mark package finished")
	}
}

func TestPkidFormat(t *testing.T) {
	pkg := NewPackage("test", "1.0", "amd64")
	var p pkgindex.Package = pkg
	if got, want := pkgindex.PkidOf(p), pkgindex.Pkid("test/1.0/amd64"); got != want {
		t.Fatalf("pkid = %q, want %q", got, want)
	}
}
