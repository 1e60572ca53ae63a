/*
Copyright © 2025 Benny Powers

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package engine

import (
	"testing"

	"asgen.dev/asgen/component"
	"asgen.dev/asgen/extractor"
	"asgen.dev/asgen/pkgindex"
	"asgen.dev/asgen/pkgindex/dummy"
)

func TestProcessPackagesWritesGeneratorResult(t *testing.T) {
	e, _ := newTestEngine(t, testSuite())
	pkg := dummy.NewPackage("foo", "1.0", "amd64")
	pkg.AddFile("/usr/share/metainfo/foo.appdata.xml", []byte("<component/>"))

	iconh := NewIconHandler(e.Pool, map[string]pkgindex.Package{}, "", nil)
	err := e.ProcessPackages([]pkgindex.Package{pkg}, iconh, extractor.InjectedModifications{})
	if err != nil {
		t.Fatalf("ProcessPackages: %v", err)
	}

	pkid := string(pkgindex.PkidOf(pkg))
	result, ok, err := e.Data.GetGeneratorResult(pkid)
	if err != nil {
		t.Fatalf("GetGeneratorResult: %v", err)
	}
	if !ok {
		t.Fatal("expected a stored generator result")
	}
	if result.ComponentsCount() != 1 {
		t.Fatalf("ComponentsCount = %d, want 1", result.ComponentsCount())
	}
}

func TestProcessPackagesSkipsAlreadyProcessed(t *testing.T) {
	e, _ := newTestEngine(t, testSuite())
	pkg := dummy.NewPackage("foo", "1.0", "amd64")
	pkg.AddFile("/usr/share/metainfo/foo.appdata.xml", []byte("<component/>"))
	pkid := string(pkgindex.PkidOf(pkg))

	if err := e.Data.AddGeneratorResult(pkid, component.GeneratorResult{Pkid: pkid}); err != nil {
		t.Fatalf("seeding prior result: %v", err)
	}

	iconh := NewIconHandler(e.Pool, map[string]pkgindex.Package{}, "", nil)
	if err := e.ProcessPackages([]pkgindex.Package{pkg}, iconh, extractor.InjectedModifications{}); err != nil {
		t.Fatalf("ProcessPackages: %v", err)
	}

	result, _, _ := e.Data.GetGeneratorResult(pkid)
	if result.ComponentsCount() != 0 {
		t.Fatal("expected the pre-existing (empty) result to be left untouched")
	}
}

func TestProcessExtraMetainfoDataNoOpWithoutDirOrRemovals(t *testing.T) {
	e, _ := newTestEngine(t, testSuite())
	iconh := NewIconHandler(e.Pool, map[string]pkgindex.Package{}, "", nil)
	pkg, err := e.ProcessExtraMetainfoData(testSuite(), iconh, "main", "amd64", extractor.InjectedModifications{})
	if err != nil {
		t.Fatalf("ProcessExtraMetainfoData: %v", err)
	}
	if pkg != nil {
		t.Fatal("expected no injected package when neither extraMetainfoDir nor removals are configured")
	}
}
