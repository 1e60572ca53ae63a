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
	"github.com/spf13/cobra"

	"asgen.dev/asgen/internal/logging"
)

var runCmd = &cobra.Command{
	Use:   "run <suite> [section]",
	Short: "Seed, process and export metadata for a suite",
	Long: `Runs the full pipeline (seed, process, export) for every section of a
suite, or for a single section when given. Skips (suite, section, arch)
triples whose upstream repository has not changed unless --force is set.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		suiteCfg, err := suiteArg(e.Config, args[0])
		if err != nil {
			return err
		}
		forced, _ := cmd.Flags().GetBool("force")

		if len(args) == 2 {
			if err := sectionArg(suiteCfg, args[1]); err != nil {
				return err
			}
			changed, err := e.RunSection(suiteCfg, args[1], nil, forced)
			if err != nil {
				return err
			}
			logging.Success("suite=%s section=%s changed=%v", suiteCfg.Name, args[1], changed)
			return nil
		}

		if err := e.Run(suiteCfg, nil, forced); err != nil {
			return err
		}
		logging.Success("suite=%s done", suiteCfg.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("force", false, "process every architecture even if the upstream index reports no change")
}

var processFileCmd = &cobra.Command{
	Use:   "process-file <suite> <section> <file>...",
	Short: "Seed and process a specific set of package files, bypassing the index",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		suiteCfg, err := suiteArg(e.Config, args[0])
		if err != nil {
			return err
		}
		if err := sectionArg(suiteCfg, args[1]); err != nil {
			return err
		}
		if err := e.ProcessFile(suiteCfg, args[1], args[2:]); err != nil {
			return err
		}
		logging.Success("suite=%s section=%s processed %d file(s)", suiteCfg.Name, args[1], len(args)-2)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processFileCmd)
}

var publishCmd = &cobra.Command{
	Use:   "publish <suite>",
	Short: "Re-export published artifacts from cached data without seeding or processing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		suiteCfg, err := suiteArg(e.Config, args[0])
		if err != nil {
			return err
		}
		if err := e.Publish(suiteCfg, nil); err != nil {
			return err
		}
		logging.Success("suite=%s published", suiteCfg.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove cache rows and pool media orphaned from every non-immutable suite",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		if err := e.RunCleanup(); err != nil {
			return err
		}
		logging.Success("cleanup complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

var forgetCmd = &cobra.Command{
	Use:   "forget <pkid|prefix>",
	Short: "Remove all cached data for a package, or every package matching a prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		if err := e.ForgetPackage(args[0]); err != nil {
			return err
		}
		logging.Success("forgot %s", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(forgetCmd)
}

var removeHintsCmd = &cobra.Command{
	Use:   "remove-hints-components <suite>",
	Short: "Drop non-ignored data rows and orphaned media for a suite's packages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		suiteCfg, err := suiteArg(e.Config, args[0])
		if err != nil {
			return err
		}
		if err := e.RemoveHintsComponents(suiteCfg); err != nil {
			return err
		}
		logging.Success("suite=%s hints components removed", suiteCfg.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeHintsCmd)
}
