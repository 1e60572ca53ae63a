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

// Package dummy is a fixture PackageIndex/Package backend: an in-memory
// index used by the engine's own test suite and by `asgen run` with
// `backend: dummy` in the configuration, for smoke-testing a workspace.
package dummy

import (
	"sync"

	"asgen.dev/asgen/pkgindex"
)

// Package is the in-memory Package fixture.
type Package struct {
	name, version, arch, maintainer string
	filename                        string
	kind                            pkgindex.Kind
	description                     map[string]string
	summary                         map[string]string
	contents                        []string
	files                           map[string][]byte
	gst                             *pkgindex.GStreamer

	mu       sync.Mutex
	finished bool
}

// NewPackage constructs a fixture package with the given pkid components.
func NewPackage(name, version, arch string) *Package {
	return &Package{
		name:        name,
		version:     version,
		arch:        arch,
		kind:        pkgindex.KindPhysical,
		description: map[string]string{},
		summary:     map[string]string{},
		files:       map[string][]byte{},
	}
}

func (p *Package) SetMaintainer(m string)       { p.maintainer = m }
func (p *Package) SetFilename(f string)         { p.filename = f }
func (p *Package) SetKind(k pkgindex.Kind)       { p.kind = k }
func (p *Package) SetGST(g *pkgindex.GStreamer)  { p.gst = g }
func (p *Package) SetDescription(locale, text string) {
	p.description[locale] = text
}
func (p *Package) SetSummary(locale, text string) {
	p.summary[locale] = text
}

// SetContents replaces the package's payload file list and associates each
// path with its byte content for GetFileData.
func (p *Package) SetContents(files map[string][]byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.files = files
	p.contents = p.contents[:0]
	for path := range files {
		p.contents = append(p.contents, path)
	}
}

// AddFile appends a single payload path, preserving insertion order.
func (p *Package) AddFile(path string, data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.files == nil {
		p.files = map[string][]byte{}
	}
	if _, exists := p.files[path]; !exists {
		p.contents = append(p.contents, path)
	}
	p.files[path] = data
}

func (p *Package) Name() string       { return p.name }
func (p *Package) Version() string    { return p.version }
func (p *Package) Arch() string       { return p.arch }
func (p *Package) Maintainer() string { return p.maintainer }
func (p *Package) Kind() pkgindex.Kind {
	return p.kind
}
func (p *Package) Summary() map[string]string     { return p.summary }
func (p *Package) Description() map[string]string  { return p.description }
func (p *Package) GetFilename() string             { return p.filename }
func (p *Package) GST() *pkgindex.GStreamer        { return p.gst }

func (p *Package) Contents() ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.contents))
	copy(out, p.contents)
	return out, nil
}

func (p *Package) GetFileData(path string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.files[path], nil
}

func (p *Package) GetDesktopFileTranslations(string) map[string]string { return map[string]string{} }
func (p *Package) HasDesktopFileTranslations() bool                    { return false }

func (p *Package) CleanupTemp() {}
func (p *Package) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finished = true
}

// Finished reports whether Finish was called, for tests.
func (p *Package) Finished() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.finished
}

// index key is suite/section/arch.
type tripleKey struct{ suite, section, arch string }

// PackageIndex is the in-memory fixture backend.
type PackageIndex struct {
	mu       sync.Mutex
	packages map[tripleKey][]*Package
	cache    map[tripleKey][]pkgindex.Package
}

// New constructs an empty fixture index.
func New() *PackageIndex {
	return &PackageIndex{
		packages: map[tripleKey][]*Package{},
		cache:    map[tripleKey][]pkgindex.Package{},
	}
}

// Add registers a fixture package under (suite, section, arch).
func (idx *PackageIndex) Add(suite, section, arch string, pkg *Package) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	key := tripleKey{suite, section, arch}
	idx.packages[key] = append(idx.packages[key], pkg)
	delete(idx.cache, key) // invalidate cache on mutation
}

func (idx *PackageIndex) PackagesFor(suite, section, arch string, withLongDescs bool) ([]pkgindex.Package, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	key := tripleKey{suite, section, arch}
	if cached, ok := idx.cache[key]; ok {
		return cached, nil
	}
	var out []pkgindex.Package
	for _, pkg := range idx.packages[key] {
		out = append(out, pkg)
	}
	idx.cache[key] = out
	return out, nil
}

func (idx *PackageIndex) PackageForFile(path, suite, section string) (pkgindex.Package, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for key, pkgs := range idx.packages {
		if suite != "" && key.suite != suite {
			continue
		}
		if section != "" && key.section != section {
			continue
		}
		for _, pkg := range pkgs {
			for _, c := range pkg.contents {
				if c == path {
					return pkg, nil
				}
			}
		}
	}
	return nil, pkgindex.ErrNotSupported
}

// HasChanges always returns true: this fixture backend has no real
// change-tracking state, so every run is treated as a fresh scan. A real
// backend would resolve this with actual content-based change detection.
func (idx *PackageIndex) HasChanges(pkgindex.RepoInfoStore, string, string, string) (bool, error) {
	return true, nil
}

// Release invalidates the cached package-set lookups.
func (idx *PackageIndex) Release() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.cache = map[tripleKey][]pkgindex.Package{}
}

func (idx *PackageIndex) DataPrefix() string { return "/usr" }
