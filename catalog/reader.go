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
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/tidwall/gjson"
)

// readGzip decompresses a .gz file fully; CID-Index and Hints documents are
// small enough that reading them whole and querying with gjson is simpler
// than streaming.
func readGzip(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("opening gzip %s: %w", path, err)
	}
	defer gr.Close()
	return io.ReadAll(gr)
}

// ReadCIDIndexGCID reads one cid's gcid out of a CID-Index-<arch>.json.gz
// file without unmarshalling the whole object -- useful for
// `asgen forget`/reporting tools that only need a single lookup.
func ReadCIDIndexGCID(path, cid string) (string, bool, error) {
	raw, err := readGzip(path)
	if err != nil {
		return "", false, err
	}
	result := gjson.GetBytes(raw, gjson.Escape(cid))
	if !result.Exists() {
		return "", false, nil
	}
	return result.String(), true, nil
}

// ReadHintsForPkid scans a Hints-<arch>.json.gz document and returns the
// hint entries recorded for pkid, using gjson to pull the `pkid` field out
// of each array element without a full unmarshal of the (potentially large)
// document.
func ReadHintsForPkid(path, pkid string) ([]string, error) {
	raw, err := readGzip(path)
	if err != nil {
		return nil, err
	}
	var matches []string
	gjson.ParseBytes(raw).ForEach(func(_, entry gjson.Result) bool {
		if entry.Get("pkid").String() == pkid {
			matches = append(matches, entry.Raw)
		}
		return true
	})
	return matches, nil
}
