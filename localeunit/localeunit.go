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

// Package localeunit implements the short-lived "locale unit" collaborator:
// built per processing phase from the phase's package list alone (the
// contents store is not consulted), it canonicalizes the locale tags found
// in desktop-entry translation keys before they reach the extractor.
package localeunit

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"asgen.dev/asgen/pkgindex"
)

// Unit is rebuilt fresh at the start of each processing phase and
// discarded at its end; it has no lifetime beyond one phase.
type Unit struct {
	mu      sync.Mutex
	locales map[string]language.Tag
}

// New builds a locale unit by scanning the desktop-file translation keys of
// pkgs, recording every distinct locale tag it can parse. Packages that
// don't implement translations simply contribute nothing.
func New(pkgs []pkgindex.Package) *Unit {
	u := &Unit{locales: map[string]language.Tag{}}
	for _, pkg := range pkgs {
		if !pkg.HasDesktopFileTranslations() {
			continue
		}
		for key := range pkg.GetDesktopFileTranslations("") {
			u.record(key)
		}
	}
	return u
}

func (u *Unit) record(key string) {
	tag, err := language.Parse(normalizeKey(key))
	if err != nil {
		return
	}
	canonical := tag.String()
	u.mu.Lock()
	defer u.mu.Unlock()
	u.locales[canonical] = tag
}

// normalizeKey turns a desktop-entry translation key like "Name[pt_BR]"
// into the locale portion "pt_BR", and a bare key like "Name" into "".
func normalizeKey(key string) string {
	start := strings.IndexByte(key, '[')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(key[start:], ']')
	if end < 0 {
		return ""
	}
	return strings.ReplaceAll(key[start+1:start+end], "_", "-")
}

// Canonicalize resolves an arbitrary locale string to its canonical BCP 47
// form, as recorded by this unit, falling back to a best-effort parse for
// locales not seen during construction.
func (u *Unit) Canonicalize(locale string) string {
	normalized := strings.ReplaceAll(locale, "_", "-")
	u.mu.Lock()
	if tag, ok := u.locales[normalized]; ok {
		u.mu.Unlock()
		return tag.String()
	}
	u.mu.Unlock()
	tag, err := language.Parse(normalized)
	if err != nil {
		return locale
	}
	return tag.String()
}

// Locales returns every distinct canonical locale this unit has recorded,
// sorted for deterministic iteration.
func (u *Unit) Locales() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]string, 0, len(u.locales))
	for k := range u.locales {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
