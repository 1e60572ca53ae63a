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

	"asgen.dev/asgen/hints"
	"asgen.dev/asgen/internal/asgenerr"
	"asgen.dev/asgen/internal/config"
	"asgen.dev/asgen/internal/logging"
	"asgen.dev/asgen/pkgindex"
	"asgen.dev/asgen/store"
)

// Engine is the orchestrator: it holds the stores, the backend package
// index, the media pool, and the hint-template registry, loaded once at
// construction and read-only thereafter.
type Engine struct {
	Config    *config.EngineConfig
	Index     pkgindex.PackageIndex
	Contents  *store.ContentsStore
	Data      *store.DataStore
	Pool      *store.MediaPool
	Stats     *store.StatisticsStore
	Hints     *hints.TemplateRegistry
}

// New constructs an Engine over an already-built backend index and
// workspace-rooted stores.
func New(cfg *config.EngineConfig, index pkgindex.PackageIndex) *Engine {
	return &Engine{
		Config:   cfg,
		Index:    index,
		Contents: store.NewContentsStore(cfg.WorkspaceDir),
		Data:     store.NewDataStore(cfg.WorkspaceDir),
		Pool:     store.NewMediaPool(cfg.WorkspaceDir),
		Stats:    store.NewStatisticsStore(),
		Hints:    hints.NewRegistry(),
	}
}

// suiteByName resolves a suite, returning a wrapped configuration error
// when absent.
func (e *Engine) suiteByName(name string) (config.SuiteConfig, error) {
	suite, ok := e.Config.SuiteByName(name)
	if !ok {
		return config.SuiteConfig{}, asgenerr.WrapConfig("suite lookup", fmt.Errorf("%w: %q", asgenerr.ErrSuiteNotFound, name))
	}
	if len(suite.Sections) == 0 {
		return config.SuiteConfig{}, asgenerr.WrapConfig("suite validation", fmt.Errorf("%w: %q", asgenerr.ErrSuiteMissingSections, name))
	}
	if len(suite.Architectures) == 0 {
		return config.SuiteConfig{}, asgenerr.WrapConfig("suite validation", fmt.Errorf("%w: %q", asgenerr.ErrSuiteMissingArchitectures, name))
	}
	return suite, nil
}

func (e *Engine) logf(suite, section, arch, phase string, err error) {
	logging.Fatal(suite, section, arch, phase, err)
}
