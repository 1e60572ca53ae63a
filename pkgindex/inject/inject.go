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

// Package inject implements DataInjectPackage, the synthetic Fake package
// that lets a suite inject locally-provided metainfo and icons into the
// catalog. Icons are discovered with doublestar globs; metainfo files are
// the .xml files directly inside each data directory, with no recursion.
package inject

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"asgen.dev/asgen/pkgindex"
)

// Name is the fixed synthetic package name used for injected metainfo.
const Name = "_asgen-local-metainfo"

// Version is the fixed synthetic version.
const Version = "0~0"

// Package synthesizes its Contents() from two filesystem directories.
type Package struct {
	arch             string
	prefix           string
	dataLocation     string
	archDataLocation string
	maintainer       string

	mu       sync.Mutex
	contents map[string]string // fake path -> local file path
	order    []string
	scanned  bool
}

// New constructs a DataInjectPackage for the given architecture. prefix
// defaults to "/usr" when empty.
func New(arch, prefix, dataLocation, archDataLocation string) *Package {
	if prefix == "" {
		prefix = "/usr"
	}
	return &Package{
		arch:             arch,
		prefix:           path.Clean(prefix),
		dataLocation:     dataLocation,
		archDataLocation: archDataLocation,
		contents:         map[string]string{},
	}
}

func (p *Package) Name() string        { return Name }
func (p *Package) Version() string     { return Version }
func (p *Package) Arch() string        { return p.arch }
func (p *Package) Maintainer() string  { return p.maintainer }
func (p *Package) Kind() pkgindex.Kind { return pkgindex.KindFake }

func (p *Package) SetMaintainer(m string) { p.maintainer = m }

func (p *Package) Summary() map[string]string     { return map[string]string{} }
func (p *Package) Description() map[string]string { return map[string]string{} }
func (p *Package) GetFilename() string             { return "_local_" }
func (p *Package) GST() *pkgindex.GStreamer        { return nil }

func (p *Package) GetDesktopFileTranslations(string) map[string]string { return map[string]string{} }
func (p *Package) HasDesktopFileTranslations() bool                    { return false }

func (p *Package) CleanupTemp() {}
func (p *Package) Finish()      {}

// Contents synthesizes the fake payload path list: every icon under
// <dataLocation>/icons/ maps to /usr/share/icons/hicolor/<relpath>, every
// .xml directly inside <dataLocation> maps to <prefix>/share/metainfo/<name>,
// and every .xml directly inside <archDataLocation> overrides the generic
// one keyed by fake path.
func (p *Package) Contents() ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.scanned {
		out := make([]string, len(p.order))
		copy(out, p.order)
		return out, nil
	}
	p.scanned = true

	if p.dataLocation == "" || !isDir(p.dataLocation) {
		return nil, nil
	}

	p.scanIcons()
	p.scanMetainfo(p.dataLocation)
	if p.archDataLocation != "" && isDir(p.archDataLocation) {
		p.scanMetainfo(p.archDataLocation)
	}

	out := make([]string, len(p.order))
	copy(out, p.order)
	return out, nil
}

func (p *Package) scanIcons() {
	iconRoot := filepath.Join(p.dataLocation, "icons")
	if !isDir(iconRoot) {
		return
	}
	matches, err := doublestar.Glob(os.DirFS(iconRoot), "**/*.{svg,svgz,png}")
	if err != nil {
		return
	}
	for _, rel := range matches {
		fakePath := path.Join("/usr/share/icons/hicolor", filepath.ToSlash(rel))
		p.set(fakePath, filepath.Join(iconRoot, rel))
	}
}

// scanMetainfo adds every .xml file directly under dir, keyed by its fake
// metainfo path. Called once for dataLocation, then again for
// archDataLocation: the second call's set() overwrites any fake path the
// first call already claimed, giving the arch-specific file priority.
func (p *Package) scanMetainfo(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".xml") {
			continue
		}
		fakePath := fmt.Sprintf("%s/share/metainfo/%s", p.prefix, entry.Name())
		p.set(fakePath, filepath.Join(dir, entry.Name()))
	}
}

func (p *Package) set(fakePath, localPath string) {
	if _, exists := p.contents[fakePath]; !exists {
		p.order = append(p.order, fakePath)
	}
	p.contents[fakePath] = localPath
}

func (p *Package) GetFileData(fname string) ([]byte, error) {
	if _, err := p.Contents(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	localPath, ok := p.contents[fname]
	p.mu.Unlock()
	if !ok || localPath == "" {
		return nil, nil
	}
	return os.ReadFile(localPath)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
