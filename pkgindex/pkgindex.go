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

// Package pkgindex defines the external contract between the generation
// engine and a distribution-specific backend. Backends — the per-distro
// repository parsers — are out of scope for this engine; this package
// only defines the capability sets (Package, PackageIndex) they must
// satisfy and the pkid addressing scheme.
package pkgindex

import "fmt"

// Pkid addresses a package uniquely per backend: name/version/arch.
type Pkid string

// NewPkid builds the pkid addressing scheme: name/version/arch.
func NewPkid(name, version, arch string) Pkid {
	return Pkid(fmt.Sprintf("%s/%s/%s", name, version, arch))
}

// Kind distinguishes physical packages from fake/virtual ones used
// internally.
type Kind int

const (
	KindUnknown Kind = iota
	KindPhysical
	KindFake
)

func (k Kind) String() string {
	switch k {
	case KindPhysical:
		return "physical"
	case KindFake:
		return "fake"
	default:
		return "unknown"
	}
}

// GStreamer carries GStreamer codec capability metadata a package may
// advertise; a non-empty capability set makes a package interesting
// independent of its file contents.
type GStreamer struct {
	Decoders   []string
	Encoders   []string
	Elements   []string
	URISinks   []string
	URISources []string
}

// NotEmpty reports whether any capability list is non-empty.
func (g GStreamer) NotEmpty() bool {
	return len(g.Decoders) > 0 || len(g.Encoders) > 0 || len(g.Elements) > 0 ||
		len(g.URISinks) > 0 || len(g.URISources) > 0
}

// Package is the abstract package contract. Concrete implementations are
// supplied by a PackageIndex backend; the engine only ever interacts with
// packages through this interface.
type Package interface {
	Name() string
	Version() string
	Arch() string
	Maintainer() string
	Kind() Kind

	// Summary and Description are locale -> text maps.
	Summary() map[string]string
	Description() map[string]string

	// GetFilename returns a local path used only for issue reporting; file
	// data is always retrieved through GetFileData.
	GetFilename() string

	// Contents returns the ordered sequence of payload file paths. First
	// call may populate an internal cache; subsequent calls are memoized.
	Contents() ([]string, error)

	// GetFileData lazily decompresses and returns file data for one path.
	// Must be safe for concurrent callers on the same Package instance,
	// guarded internally by a per-package mutex.
	GetFileData(path string) ([]byte, error)

	// GST returns GStreamer codec capabilities, if any.
	GST() *GStreamer

	GetDesktopFileTranslations(desktopFileText string) map[string]string
	HasDesktopFileTranslations() bool

	// CleanupTemp releases caches but permits reopening the package.
	CleanupTemp()
	// Finish is terminal: releases the temporary extraction area.
	Finish()
}

// PkidOf returns the package's unique identifier: name/version/arch.
func PkidOf(p Package) Pkid {
	return NewPkid(p.Name(), p.Version(), p.Arch())
}

// IsValid reports whether a package has at least name, version and arch.
func IsValid(p Package) bool {
	return p.Name() != "" && p.Version() != "" && p.Arch() != ""
}

// RepoInfoStore is the store surface a PackageIndex may use to persist
// mtimes/digests for change detection. store.ContentsStore implements it
// and is what the engine passes; store.DataStore does not implement it.
type RepoInfoStore interface {
	GetRepoInfo(suite, section, arch string) (map[string]string, bool)
	SetRepoInfo(suite, section, arch string, info map[string]string)
}

// PackageIndex is the contract a distribution-specific backend must
// satisfy.
type PackageIndex interface {
	// PackagesFor returns the package set for (suite, section, arch). Two
	// calls with the same triple during one PackageIndex lifetime must
	// return equivalent sets (not necessarily the same slice identity).
	PackagesFor(suite, section, arch string, withLongDescs bool) ([]Package, error)

	// PackageForFile resolves a single file to a Package, or reports
	// ErrNotSupported if the backend does not implement this capability.
	PackageForFile(path, suite, section string) (Package, error)

	// HasChanges reports whether the upstream index changed since the last
	// run for this triple. Must be stable for the PackageIndex's lifetime.
	HasChanges(rstore RepoInfoStore, suite, section, arch string) (bool, error)

	// Release drops cached package sets to bound memory. Callers must not
	// retain Package references across Release.
	Release()

	// DataPrefix is the installation prefix assumed when inspecting
	// contents; defaults to "/usr".
	DataPrefix() string
}

// ErrNotSupported is returned by PackageForFile when a backend does not
// implement single-file resolution.
var ErrNotSupported = notSupportedError{}

type notSupportedError struct{}

func (notSupportedError) Error() string { return "operation not supported by this backend" }
