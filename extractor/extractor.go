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

// Package extractor defines the contract boundary of the component data
// extractor: it reads a desktop entry or metainfo file and emits a
// GeneratorResult, treated as a black-box function extract(pkg) ->
// GeneratorResult. This package only fixes that contract plus a minimal
// reference implementation used by the engine's own tests; a real
// implementation able to parse full metainfo XML is out of scope here.
package extractor

import (
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"asgen.dev/asgen/component"
	"asgen.dev/asgen/localeunit"
	"asgen.dev/asgen/pkgindex"
)

// DataExtractor is the per-(store, icon handler, locale unit, injected
// modifications) collaborator constructed once per processing phase.
type DataExtractor interface {
	ProcessPackage(pkg pkgindex.Package) (component.GeneratorResult, error)
}

// IconHandler is the minimal surface the extractor needs from the engine's
// icon resolution collaborator; ProcessSuiteSection builds one per arch
// and hands it to ProcessPackages/ProcessExtraMetainfoData.
type IconHandler interface {
	ResolveIcon(pkid, name string) (found bool)
}

// InjectedModifications is the per-suite override set: component removal
// requests loaded from a suite's overrides file. The extractor consults
// RemovedComponentIDs to drop components from its own result; the engine's
// export step additionally consults it to drop already-cached components
// belonging to other packages.
type InjectedModifications struct {
	RemovedComponentIDs map[string]bool
}

// injectedModificationsDoc is the on-disk YAML shape of a suite's overrides
// file.
type injectedModificationsDoc struct {
	RemovedComponentIDs []string `yaml:"removedComponentIds"`
}

// LoadInjectedModifications reads a suite's overrides file from path. A
// missing file means the suite has no overrides and is not an error; a
// present but malformed file is, since it would otherwise mask requests
// the operator actually made.
func LoadInjectedModifications(path string) (InjectedModifications, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return InjectedModifications{}, nil
		}
		return InjectedModifications{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc injectedModificationsDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return InjectedModifications{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	mods := InjectedModifications{RemovedComponentIDs: make(map[string]bool, len(doc.RemovedComponentIDs))}
	for _, id := range doc.RemovedComponentIDs {
		mods.RemovedComponentIDs[id] = true
	}
	return mods, nil
}

// metainfoPrefixes and desktopPrefixes are the path prefixes that make a
// package "interesting"; kept here because the reference extractor uses
// the same classification to decide which files to read.
var metainfoPrefixes = []string{
	"/usr/share/metainfo/", "/usr/local/share/metainfo/",
}
var desktopPrefixes = []string{
	"/usr/share/applications/", "/usr/local/share/applications/",
}

// Reference is a minimal, real (not a mock) extractor: it treats every
// metainfo/desktop-entry payload whose file data is non-empty as a single
// component named after the file, content-addressed via component.NewGCID.
// It implements only enough behavior to drive the engine's own tests: no XML
// parsing, no icon resolution beyond recording the candidate name.
type Reference struct {
	Locale *localeunit.Unit
	Icons  IconHandler
	Mods   InjectedModifications
}

// NewReference builds a reference extractor instance for one processing
// phase.
func NewReference(locale *localeunit.Unit, icons IconHandler, mods InjectedModifications) *Reference {
	return &Reference{Locale: locale, Icons: icons, Mods: mods}
}

// ProcessPackage implements DataExtractor.
func (r *Reference) ProcessPackage(pkg pkgindex.Package) (component.GeneratorResult, error) {
	pkid := string(pkgindex.PkidOf(pkg))
	contents, err := pkg.Contents()
	if err != nil {
		return component.GeneratorResult{}, err
	}

	result := component.GeneratorResult{Pkid: pkid}
	for _, file := range contents {
		if !isMetainfoOrDesktop(file) {
			continue
		}
		data, err := pkg.GetFileData(file)
		if err != nil {
			result.Hints = append(result.Hints, component.Hint{
				Tag:         "metainfo-parsing-error",
				Severity:    "error",
				Explanation: "could not read " + file,
			})
			continue
		}
		if len(data) == 0 {
			continue
		}
		id := componentIDFromFilename(file)
		if r.Mods.RemovedComponentIDs[id] {
			continue
		}
		gcid := component.NewGCID(id, data)
		result.Components = append(result.Components, component.Component{
			ID:      id,
			GCID:    gcid,
			Kind:    kindForFile(file),
			Name:    map[string]string{"C": id},
			Summary: pkg.Summary(),
			Doc:     data,
		})
		if r.Icons != nil && !r.Icons.ResolveIcon(pkid, id) {
			result.Hints = append(result.Hints, component.Hint{Tag: "icon-not-found", Severity: "warning", Vars: map[string]string{"cid": id}})
		}
	}

	if gst := pkg.GST(); gst != nil && gst.NotEmpty() && len(result.Components) == 0 {
		id := pkg.Name() + ".codec"
		result.Components = append(result.Components, component.Component{
			ID:   id,
			GCID: component.NewGCID(id, []byte(pkg.Name())),
			Kind: "codec",
			Name: map[string]string{"C": id},
		})
	}

	return result, nil
}

func isMetainfoOrDesktop(file string) bool {
	for _, prefix := range metainfoPrefixes {
		if strings.HasPrefix(file, prefix) {
			return true
		}
	}
	for _, prefix := range desktopPrefixes {
		if strings.HasPrefix(file, prefix) {
			return true
		}
	}
	return false
}

func kindForFile(file string) string {
	if strings.HasSuffix(file, ".desktop") {
		return "desktop-application"
	}
	return "generic"
}

func componentIDFromFilename(file string) string {
	base := path.Base(file)
	base = strings.TrimSuffix(base, path.Ext(base))
	return base
}
