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
	"asgen.dev/asgen/pkgindex"
	"asgen.dev/asgen/pkgindex/dummy"
)

func TestIconHandlerResolvesStagedIcon(t *testing.T) {
	pkg := dummy.NewPackage("icontheme", "1.0", "amd64")
	pkg.AddFile("/usr/share/icons/hicolor/64x64/apps/foo.png", []byte("pngbytes"))
	candidates := map[string]pkgindex.Package{"icontheme/1.0/amd64": pkg}

	h := NewIconHandler(nil, candidates, "", []config.IconSizeConfig{
		{Width: 64, Height: 64, State: "cached"},
	})

	if !h.ResolveIcon("any/pkid", "foo") {
		t.Fatal("expected icon for cid 'foo' to resolve")
	}
	staged := h.StagedIcons("foo")
	if string(staged["64x64"]) != "pngbytes" {
		t.Fatalf("staged icon bytes = %q, want %q", staged["64x64"], "pngbytes")
	}
}

func TestIconHandlerMissingIcon(t *testing.T) {
	h := NewIconHandler(nil, map[string]pkgindex.Package{}, "", []config.IconSizeConfig{
		{Width: 64, Height: 64, State: "cached"},
	})
	if h.ResolveIcon("pkid", "nothere") {
		t.Fatal("expected no icon to resolve when no candidate carries it")
	}
}

func TestIconHandlerIgnoresUncachedSizes(t *testing.T) {
	pkg := dummy.NewPackage("icontheme", "1.0", "amd64")
	pkg.AddFile("/usr/share/icons/hicolor/128x128/apps/foo.png", []byte("x"))
	candidates := map[string]pkgindex.Package{"icontheme/1.0/amd64": pkg}

	h := NewIconHandler(nil, candidates, "", []config.IconSizeConfig{
		{Width: 128, Height: 128, State: "remote-only"},
	})
	if h.ResolveIcon("pkid", "foo") {
		t.Fatal("a remote-only size policy entry must not be scanned")
	}
}
