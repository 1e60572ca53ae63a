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

	"asgen.dev/asgen/internal/config"
	"asgen.dev/asgen/pkgindex/dummy"
)

// testSuite is a minimal single-arch, single-section suite used by every
// engine test in this package.
func testSuite() config.SuiteConfig {
	return config.SuiteConfig{
		Name:          "testing",
		Sections:      []string{"main"},
		Architectures: []string{"amd64"},
	}
}

func newTestEngine(t *testing.T, suites ...config.SuiteConfig) (*Engine, *dummy.PackageIndex) {
	t.Helper()
	idx := dummy.New()
	cfg := &config.EngineConfig{
		WorkspaceDir:      t.TempDir(),
		Project:           "testing",
		ArchiveFormat:     "xml",
		Suites:            suites,
		AuxiliarySections: config.DefaultAuxiliarySections,
	}
	return New(cfg, idx), idx
}

func TestSuiteByNameMissing(t *testing.T) {
	e, _ := newTestEngine(t, testSuite())
	if _, err := e.suiteByName("nope"); err == nil {
		t.Fatal("expected error for unknown suite")
	}
}

func TestSuiteByNameMissingSections(t *testing.T) {
	e, _ := newTestEngine(t, config.SuiteConfig{Name: "bare", Architectures: []string{"amd64"}})
	if _, err := e.suiteByName("bare"); err == nil {
		t.Fatal("expected error for suite with no sections")
	}
}

func TestSuiteByNameMissingArchitectures(t *testing.T) {
	e, _ := newTestEngine(t, config.SuiteConfig{Name: "bare", Sections: []string{"main"}})
	if _, err := e.suiteByName("bare"); err == nil {
		t.Fatal("expected error for suite with no architectures")
	}
}
