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
	"fmt"
	"path/filepath"
	"time"

	"asgen.dev/asgen/catalog"
	"asgen.dev/asgen/extractor"
	"asgen.dev/asgen/internal/config"
	"asgen.dev/asgen/pkgindex"
)

// ExportMetadata assembles catalog.PackageExport entries from the stored
// GeneratorResult of each package and delegates to catalog.ExportMetadata
// for the actual head/body/tail assembly and compressed writes. mods'
// RemovedComponentIDs excludes already-cached components from the export
// even when they belong to a different package than the one that
// originally requested the removal.
func (e *Engine) ExportMetadata(suiteCfg config.SuiteConfig, section, arch string, pkgs []pkgindex.Package, mods extractor.InjectedModifications) (catalog.ExportResult, error) {
	format := catalog.FormatXML
	if e.Config.ArchiveFormat == "yaml" {
		format = catalog.FormatYAML
	}

	exports := make([]catalog.PackageExport, 0, len(pkgs))
	for _, pkg := range pkgs {
		pkid := string(pkgindex.PkidOf(pkg))
		result, ok, err := e.Data.GetGeneratorResult(pkid)
		if err != nil || !ok {
			continue
		}
		exp := catalog.PackageExport{Pkid: pkid, Hints: result.Hints}
		for _, c := range result.Components {
			if mods.RemovedComponentIDs[c.ID] {
				continue
			}
			exp.GCIDs = append(exp.GCIDs, c.GCID)
			exp.Docs = append(exp.Docs, catalog.Sanitize(c.Doc))
		}
		exports = append(exports, exp)
	}

	mediaBase := ""
	if e.Config.Features.StoreScreenshots {
		mediaBase = catalog.MediaBaseURL(e.Config.MediaBaseUrl, suiteCfg.Name, e.Config.Features.ImmutableSuites)
	}
	head := catalog.HeadOptions{
		FormatVersion: "0.14",
		Project:       e.Config.Project,
		Suite:         suiteCfg.Name,
		Section:       section,
		Priority:      suiteCfg.DataPriority,
		HasPriority:   suiteCfg.DataPriority != 0,
		MediaBaseUrl:  mediaBase,
	}
	if e.Config.Features.MetadataTimestamps {
		head.Timestamp = time.Now()
		head.HasTimestamp = true
	}

	outDir := filepath.Join(e.Config.WorkspaceDir, "data", suiteCfg.Name, section)
	suiteMediaDir := ""
	if e.Config.Features.ImmutableSuites {
		suiteMediaDir = e.suiteMediaDir(suiteCfg)
	}

	result, err := catalog.ExportMetadata(outDir, arch, format, head, exports, e.Pool, suiteMediaDir, e.Config.Features.ImmutableSuites)
	if err != nil {
		return catalog.ExportResult{}, fmt.Errorf("exporting metadata for %s/%s/%s: %w", suiteCfg.Name, section, arch, err)
	}

	if err := catalog.WriteHintDefinitions(filepath.Join(e.Config.WorkspaceDir, "hints", suiteCfg.Name), e.Hints.All()); err != nil {
		return result, fmt.Errorf("writing hint definitions for %s: %w", suiteCfg.Name, err)
	}

	return result, nil
}

// suiteMediaDir resolves where per-suite media hardlinks are materialized
// under the immutable-suites feature.
func (e *Engine) suiteMediaDir(suiteCfg config.SuiteConfig) string {
	return filepath.Join(e.Config.WorkspaceDir, "media", suiteCfg.Name)
}

// ExportIconTarballs collects icons across the section's packages for
// every cached icon-size policy entry and writes icons-<sizeTag>.tar.gz.
func (e *Engine) ExportIconTarballs(suiteCfg config.SuiteConfig, section string, pkgs []pkgindex.Package) error {
	bySize := map[string]map[string]bool{}
	for _, sz := range e.Config.IconPolicy {
		if sz.Cached() {
			bySize[sz.SizeTag()] = map[string]bool{}
		}
	}
	if len(bySize) == 0 {
		return nil
	}

	for _, pkg := range pkgs {
		pkid := string(pkgindex.PkidOf(pkg))
		result, ok, err := e.Data.GetGeneratorResult(pkid)
		if err != nil || !ok {
			continue
		}
		for _, gcid := range result.GCIDs() {
			for sizeTag := range bySize {
				bySize[sizeTag][string(gcid)] = true
			}
		}
	}

	var requests []catalog.IconSizeRequest
	for sizeTag, gcidSet := range bySize {
		gcids := make([]string, 0, len(gcidSet))
		for gcid := range gcidSet {
			gcids = append(gcids, gcid)
		}
		requests = append(requests, catalog.IconSizeRequest{SizeTag: sizeTag, GCIDs: gcids})
	}

	mediaExportDir := e.suiteMediaDir(suiteCfg)
	if !e.Config.Features.ImmutableSuites {
		mediaExportDir = e.Pool.BasePath()
	}
	outDir := filepath.Join(e.Config.WorkspaceDir, "data", suiteCfg.Name, section)
	return catalog.ExportIconTarballs(mediaExportDir, outDir, requests)
}
