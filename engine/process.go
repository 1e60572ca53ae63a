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
	"sync"

	"asgen.dev/asgen/component"
	"asgen.dev/asgen/extractor"
	"asgen.dev/asgen/internal/config"
	"asgen.dev/asgen/internal/logging"
	"asgen.dev/asgen/localeunit"
	"asgen.dev/asgen/pkgindex"
	"asgen.dev/asgen/pkgindex/inject"
)

// iconStager is implemented by *IconHandler; checked via type assertion so
// ProcessPackages can stay written against the narrow extractor.IconHandler
// contract while still materializing any located icon bytes once a
// component's real gcid is known (pool directories are keyed by gcid, not
// by plain cid).
type iconStager interface {
	StagedIcons(cid string) map[string][]byte
}

// ProcessPackages builds a locale unit over pkgs, then per package in
// parallel skips already-processed pkids, extracts, writes the result
// under a store-write critical section, and logs the per-package
// completion line.
func (e *Engine) ProcessPackages(pkgs []pkgindex.Package, iconHandler extractor.IconHandler, injMods extractor.InjectedModifications) error {
	locale := localeunit.New(pkgs)
	ext := extractor.NewReference(locale, iconHandler, injMods)
	stager, _ := iconHandler.(iconStager)

	var writeMu sync.Mutex
	proc := NewPackageBatchProcessor[pkgindex.Package]()
	return proc.Run("extract", pkgs, func(pkg pkgindex.Package) error {
		pkid := string(pkgindex.PkidOf(pkg))
		if e.Data.PackageExists(pkid) {
			return nil
		}

		result, err := ext.ProcessPackage(pkg)
		if err != nil {
			return fmt.Errorf("processing %s: %w", pkid, err)
		}

		if stager != nil {
			if err := e.materializeIcons(stager, result); err != nil {
				return err
			}
		}

		writeMu.Lock()
		writeErr := e.Data.AddGeneratorResult(pkid, result)
		writeMu.Unlock()
		if writeErr != nil {
			return writeErr
		}

		logging.Info("pkid=%s components=%d hints=%d", pkid, result.ComponentsCount(), result.HintsCount())
		pkg.Finish()
		return nil
	})
}

// materializeIcons writes any icon bytes staged for a component's cid into
// the media pool under that component's real gcid.
func (e *Engine) materializeIcons(stager iconStager, result component.GeneratorResult) error {
	for _, c := range result.Components {
		staged := stager.StagedIcons(c.ID)
		for sizeTag, data := range staged {
			name := fmt.Sprintf("icons/%s/%s", sizeTag, c.ID)
			if err := e.Pool.WriteFile(c.GCID, name, data); err != nil {
				return fmt.Errorf("writing icon for %s: %w", c.ID, err)
			}
		}
	}
	return nil
}

// ProcessExtraMetainfoData builds a synthetic DataInjectPackage from the
// suite's extraMetainfoDir (if configured, or if injMods carries removal
// requests), force-reprocesses it every run, and returns it so callers
// append it to the section's package list. Returns (nil, nil) when there
// is nothing to inject.
func (e *Engine) ProcessExtraMetainfoData(suiteCfg config.SuiteConfig, iconHandler extractor.IconHandler, section, arch string, injMods extractor.InjectedModifications) (pkgindex.Package, error) {
	if suiteCfg.ExtraMetainfoDir == "" && len(injMods.RemovedComponentIDs) == 0 {
		return nil, nil
	}

	base := suiteCfg.ExtraMetainfoDir
	pkg := inject.New(arch, e.Index.DataPrefix(), base+"/"+section, base+"/"+section+"/"+arch)

	pkid := string(pkgindex.PkidOf(pkg))
	if err := e.Data.RemovePackage(pkid); err != nil {
		return nil, err
	}

	ext := extractor.NewReference(nil, iconHandler, injMods)
	result, err := ext.ProcessPackage(pkg)
	if err != nil {
		return nil, fmt.Errorf("processing injected metainfo for %s/%s: %w", section, arch, err)
	}

	if err := e.Data.AddGeneratorResult(pkid, result); err != nil {
		return nil, err
	}

	return pkg, nil
}
