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
	"strings"
	"sync/atomic"

	"asgen.dev/asgen/pkgindex"
)

var interestingPrefixes = []string{
	"/usr/share/applications/",
	"/usr/share/metainfo/",
	"/usr/local/share/applications/",
	"/usr/local/share/metainfo/",
}

// packageIsInteresting reports whether a package is interesting: any
// payload path starts with one of the metainfo/desktop prefixes, or it
// reports a non-empty GStreamer capability set. Monotone by construction:
// adding paths or turning gst non-empty can only add true branches, never
// remove one.
func packageIsInteresting(pkg pkgindex.Package, contents []string) bool {
	for _, path := range contents {
		for _, prefix := range interestingPrefixes {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		}
	}
	if gst := pkg.GST(); gst != nil && gst.NotEmpty() {
		return true
	}
	return false
}

// SeedContentsData scans (or reuses cached contents for) each target
// package, classifies it, and records an ignore flag for uninteresting
// packages. Returns whether any package in this triple turned out
// interesting.
func (e *Engine) SeedContentsData(suite, section, arch string, pkgs []pkgindex.Package, forced bool) (bool, error) {
	if len(pkgs) == 0 {
		changed, err := e.Index.HasChanges(e.Contents, suite, section, arch)
		if err != nil {
			return false, err
		}
		if !changed && !forced {
			return false, nil
		}
	}

	targets := pkgs
	if len(targets) == 0 {
		fetched, err := e.Index.PackagesFor(suite, section, arch, true)
		if err != nil {
			return false, nil // index corruption/I/O: logged by caller, empty set
		}
		targets = fetched
	}

	suiteCfg, err := e.suiteByName(suite)
	if err == nil && suiteCfg.BaseSuite != "" {
		basePkgs, berr := e.Index.PackagesFor(suiteCfg.BaseSuite, section, arch, false)
		if berr == nil {
			baseProc := NewPackageBatchProcessor[pkgindex.Package]()
			_ = baseProc.Run("seed", basePkgs, func(pkg pkgindex.Package) error {
				pkid := string(pkgindex.PkidOf(pkg))
				if _, ok, _ := e.Contents.Get(pkid); !ok {
					contents, cerr := pkg.Contents()
					if cerr == nil {
						_ = e.Contents.Set(pkid, contents)
					}
				}
				pkg.CleanupTemp()
				return nil
			})
		}
	}

	var interesting atomic.Bool
	proc := NewPackageBatchProcessor[pkgindex.Package]()
	_ = proc.Run("seed", targets, func(pkg pkgindex.Package) error {
		pkid := string(pkgindex.PkidOf(pkg))

		_, inContents, _ := e.Contents.Get(pkid)
		inData := e.Data.PackageExists(pkid)

		if inContents && inData {
			if !e.Data.IsIgnored(pkid) {
				interesting.Store(true)
			}
			return nil
		}

		var contents []string
		if inContents {
			contents, _, _ = e.Contents.Get(pkid)
		} else {
			fetched, cerr := pkg.Contents()
			if cerr != nil {
				return cerr
			}
			contents = fetched
			if err := e.Contents.Set(pkid, contents); err != nil {
				return err
			}
		}

		if packageIsInteresting(pkg, contents) {
			interesting.Store(true)
		} else {
			if err := e.Data.SetPackageIgnore(pkid); err != nil {
				return err
			}
			pkg.Finish()
		}
		return nil
	})

	return interesting.Load(), nil
}
