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

package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// WriteGzip writes content gzip-compressed to path, creating parent
// directories as needed.
func WriteGzip(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	gw := gzip.NewWriter(f)
	if _, err := gw.Write(content); err != nil {
		return fmt.Errorf("gzip writing %s: %w", path, err)
	}
	return gw.Close()
}

// WriteXZ writes content xz-compressed to path, creating parent
// directories as needed. Metadata and hints are each exported in both
// .gz and .xz variants.
func WriteXZ(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	xw, err := xz.NewWriter(f)
	if err != nil {
		return fmt.Errorf("xz writer for %s: %w", path, err)
	}
	if _, err := xw.Write(content); err != nil {
		return fmt.Errorf("xz writing %s: %w", path, err)
	}
	return xw.Close()
}
