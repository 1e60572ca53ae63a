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

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"asgen.dev/asgen/engine"
	"asgen.dev/asgen/internal/asgenerr"
	"asgen.dev/asgen/internal/config"
	"asgen.dev/asgen/pkgindex"
	"asgen.dev/asgen/pkgindex/dummy"
)

// loadEngine reads configuration from the resolved --config path and
// constructs an Engine over the configured backend. Only the "dummy" fixture
// backend ships with this repository; real distributions wire their own
// pkgindex.PackageIndex implementation here, external to this engine.
func loadEngine(cmd *cobra.Command) (*engine.Engine, error) {
	cfg, err := config.Load(configPath(cmd))
	if err != nil {
		return nil, asgenerr.WrapConfig("load", err)
	}

	index, err := newBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}

	return engine.New(cfg, index), nil
}

func newBackend(name string) (pkgindex.PackageIndex, error) {
	switch name {
	case "", "dummy":
		return dummy.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", asgenerr.ErrUnknownBackend, name)
	}
}

// suiteArg resolves the suite named by args[0] from cfg and checks that it
// is usable: must exist, must not be immutable, and must have at least one
// section and one architecture configured. Every command that mutates a
// suite's cache or republishes its artifacts goes through this before doing
// anything else.
func suiteArg(cfg *config.EngineConfig, name string) (config.SuiteConfig, error) {
	suite, ok := cfg.SuiteByName(name)
	if !ok {
		return config.SuiteConfig{}, fmt.Errorf("%w: %q", asgenerr.ErrSuiteNotFound, name)
	}
	if err := checkSuiteUsable(suite); err != nil {
		return config.SuiteConfig{}, err
	}
	return suite, nil
}

// checkSuiteUsable rejects an immutable suite, or one with no sections or
// architectures configured.
func checkSuiteUsable(suite config.SuiteConfig) error {
	if suite.Immutable {
		return fmt.Errorf("%w: %q", asgenerr.ErrImmutableSuite, suite.Name)
	}
	if len(suite.Sections) == 0 {
		return fmt.Errorf("%w: %q", asgenerr.ErrSuiteMissingSections, suite.Name)
	}
	if len(suite.Architectures) == 0 {
		return fmt.Errorf("%w: %q", asgenerr.ErrSuiteMissingArchitectures, suite.Name)
	}
	return nil
}

// sectionArg checks that section is configured for suite, for commands
// that take an explicit section argument.
func sectionArg(suite config.SuiteConfig, section string) error {
	if !suite.HasSection(section) {
		return fmt.Errorf("%w: %q not in suite %q", asgenerr.ErrSectionNotInSuite, section, suite.Name)
	}
	return nil
}
