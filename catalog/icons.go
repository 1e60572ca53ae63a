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
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/klauspost/compress/gzip"
)

// IconSizeRequest names one configured (size, scale) tuple to collect and
// tar; mirrors config.IconSizeConfig
// without importing the config package, keeping catalog free of a
// dependency on configuration shape.
type IconSizeRequest struct {
	SizeTag string
	GCIDs   []string // component gcids whose pool directory may hold icons for this size
}

// ExportIconTarballs collects files under
// <mediaExportDir>/<gcid>/icons/<sizeTag>/ across the given gcids, dedups by
// containing directory, sorts paths, and writes icons-<sizeTag>.tar.gz
// Collection is parallel per gcid, guarded by two mutexes: one for the
// processed-directory set, one for the per-size file list.
func ExportIconTarballs(mediaExportDir, outDir string, requests []IconSizeRequest) error {
	for _, req := range requests {
		if err := exportOneSize(mediaExportDir, outDir, req); err != nil {
			return fmt.Errorf("icons-%s.tar.gz: %w", req.SizeTag, err)
		}
	}
	return nil
}

func exportOneSize(mediaExportDir, outDir string, req IconSizeRequest) error {
	var (
		dirMu      sync.Mutex
		processed  = map[string]bool{}
		fileMu     sync.Mutex
		files      []string
		wg         sync.WaitGroup
	)

	for _, gcid := range req.GCIDs {
		wg.Add(1)
		go func(gcid string) {
			defer wg.Done()
			dir := filepath.Join(mediaExportDir, gcid, "icons", req.SizeTag)
			dirMu.Lock()
			if processed[dir] {
				dirMu.Unlock()
				return
			}
			processed[dir] = true
			dirMu.Unlock()

			entries, err := os.ReadDir(dir)
			if err != nil {
				return // optional scan; missing directory is not an error
			}
			var local []string
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				local = append(local, filepath.Join(dir, e.Name()))
			}
			if len(local) == 0 {
				return
			}
			fileMu.Lock()
			files = append(files, local...)
			fileMu.Unlock()
		}(gcid)
	}
	wg.Wait()

	if len(files) == 0 {
		return nil
	}
	sort.Strings(files)

	return writeTarGz(filepath.Join(outDir, fmt.Sprintf("icons-%s.tar.gz", req.SizeTag)), mediaExportDir, files)
}

// writeTarGz streams a tar.Writer into a gzip.Writer directly to disk,
// rather than through an in-memory byte buffer, since icon tarballs can be
// large.
func writeTarGz(dest, baseDir string, files []string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	gw := gzip.NewWriter(out)
	defer gw.Close()
	tw := tar.NewWriter(gw)
	defer tw.Close()

	for _, path := range files {
		if err := addTarFile(tw, baseDir, path); err != nil {
			return err
		}
	}
	return nil
}

func addTarFile(tw *tar.Writer, baseDir, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = filepath.ToSlash(rel)
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(tw, f)
	return err
}
