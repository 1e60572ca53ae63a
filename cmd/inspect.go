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
	"path/filepath"

	"github.com/spf13/cobra"

	"asgen.dev/asgen/catalog"
	"asgen.dev/asgen/internal/asgenerr"
	"asgen.dev/asgen/internal/logging"
)

// exportedFilePath resolves the path of one exported <Name>-<arch> document
// under a suite/section's data directory.
func exportedFilePath(workspaceDir, suite, section, name, arch string) string {
	return filepath.Join(workspaceDir, "data", suite, section, fmt.Sprintf("%s-%s.json.gz", name, arch))
}

var lookupGCIDCmd = &cobra.Command{
	Use:   "lookup-gcid <suite> <section> <arch> <cid>",
	Short: "Look up one component id's gcid in a section's exported CID index",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		suiteCfg, ok := e.Config.SuiteByName(args[0])
		if !ok {
			return fmt.Errorf("%w: %q", asgenerr.ErrSuiteNotFound, args[0])
		}
		path := exportedFilePath(e.Config.WorkspaceDir, suiteCfg.Name, args[1], "CID-Index", args[2])
		gcid, found, err := catalog.ReadCIDIndexGCID(path, args[3])
		if err != nil {
			return err
		}
		if !found {
			logging.Info("%s: no gcid recorded", args[3])
			return nil
		}
		logging.Info("%s -> %s", args[3], gcid)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupGCIDCmd)
}

var showHintsCmd = &cobra.Command{
	Use:   "show-hints <suite> <section> <arch> <pkid>",
	Short: "Print the hint entries recorded for one package in a section's exported hints document",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		suiteCfg, ok := e.Config.SuiteByName(args[0])
		if !ok {
			return fmt.Errorf("%w: %q", asgenerr.ErrSuiteNotFound, args[0])
		}
		path := exportedFilePath(e.Config.WorkspaceDir, suiteCfg.Name, args[1], "Hints", args[2])
		hints, err := catalog.ReadHintsForPkid(path, args[3])
		if err != nil {
			return err
		}
		if len(hints) == 0 {
			logging.Info("%s: no hints recorded", args[3])
			return nil
		}
		for _, h := range hints {
			logging.Info("%s", h)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showHintsCmd)
}
