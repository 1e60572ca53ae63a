package store

import (
	"testing"

	"asgen.dev/asgen/component"
)

func TestContentsStoreRoundTrip(t *testing.T) {
	cs := NewContentsStore(t.TempDir())
	if err := cs.Set("pkg/1.0/amd64", []string{"/usr/bin/pkg"}); err != nil {
		t.Fatal(err)
	}
	contents, ok, err := cs.Get("pkg/1.0/amd64")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || len(contents) != 1 || contents[0] != "/usr/bin/pkg" {
		t.Fatalf("unexpected contents: %v ok=%v", contents, ok)
	}
}

func TestContentsStoreMissingKey(t *testing.T) {
	cs := NewContentsStore(t.TempDir())
	_, ok, err := cs.Get("missing/1.0/amd64")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected missing key to report ok=false")
	}
}

func TestContentsStoreRepoInfo(t *testing.T) {
	cs := NewContentsStore(t.TempDir())
	cs.SetRepoInfo("testing", "main", "amd64", map[string]string{"mtime": "123"})
	info, ok := cs.GetRepoInfo("testing", "main", "amd64")
	if !ok || info["mtime"] != "123" {
		t.Fatalf("unexpected repo info: %v ok=%v", info, ok)
	}
}

func TestContentsStoreRemove(t *testing.T) {
	cs := NewContentsStore(t.TempDir())
	if err := cs.Set("pkg/1.0/amd64", []string{"a"}); err != nil {
		t.Fatal(err)
	}
	if err := cs.Remove("pkg/1.0/amd64"); err != nil {
		t.Fatal(err)
	}
	_, ok, err := cs.Get("pkg/1.0/amd64")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected contents row to be gone after Remove")
	}
}

func TestDataStoreRoundTripAndHasGCID(t *testing.T) {
	ds := NewDataStore(t.TempDir())
	result := component.GeneratorResult{
		Pkid: "pkg/1.0/amd64",
		Components: []component.Component{
			{ID: "org.example.App", GCID: component.NewGCID("org.example.App", []byte("content"))},
		},
	}
	if err := ds.AddGeneratorResult("pkg/1.0/amd64", result); err != nil {
		t.Fatal(err)
	}
	got, ok, err := ds.GetGeneratorResult("pkg/1.0/amd64")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || len(got.Components) != 1 {
		t.Fatalf("unexpected result: %+v ok=%v", got, ok)
	}
	if !ds.HasGCID(got.Components[0].GCID) {
		t.Fatal("expected HasGCID to find the stored component's gcid")
	}
	if ds.HasGCID(component.GCID("org.example.Other/deadbeef")) {
		t.Fatal("expected HasGCID to be false for an unreferenced gcid")
	}
}

func TestDataStoreIgnoreFlag(t *testing.T) {
	ds := NewDataStore(t.TempDir())
	if err := ds.SetPackageIgnore("pkg/1.0/amd64"); err != nil {
		t.Fatal(err)
	}
	if !ds.IsIgnored("pkg/1.0/amd64") {
		t.Fatal("expected pkid to be recorded as ignored")
	}
	if !ds.PackageExists("pkg/1.0/amd64") {
		t.Fatal("expected packageExists to be true for an ignore-only row")
	}
	if _, ok, err := ds.GetGeneratorResult("pkg/1.0/amd64"); err != nil || ok {
		t.Fatalf("expected no metadata for an ignored pkid, ok=%v err=%v", ok, err)
	}
}

func TestDataStoreGetPkidsMatching(t *testing.T) {
	ds := NewDataStore(t.TempDir())
	for _, pkid := range []string{"foo/1/amd64", "foo/2/amd64", "bar/1/amd64"} {
		if err := ds.AddGeneratorResult(pkid, component.GeneratorResult{Pkid: pkid}); err != nil {
			t.Fatal(err)
		}
	}
	matches := ds.GetPkidsMatching("foo")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches for prefix %q, got %v", "foo", matches)
	}
}

func TestDataStoreRemovePackage(t *testing.T) {
	ds := NewDataStore(t.TempDir())
	if err := ds.AddGeneratorResult("pkg/1.0/amd64", component.GeneratorResult{Pkid: "pkg/1.0/amd64"}); err != nil {
		t.Fatal(err)
	}
	if err := ds.RemovePackage("pkg/1.0/amd64"); err != nil {
		t.Fatal(err)
	}
	_, ok, err := ds.GetGeneratorResult("pkg/1.0/amd64")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected data row to be gone after RemovePackage")
	}
}
