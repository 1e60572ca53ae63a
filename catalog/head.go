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

// Package catalog assembles and writes the per-(suite,section,arch) catalog
// output: a head/body/tail document plus the cid-index, hints, and icon
// tarball side files.
package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// Format selects the catalog wire format.
type Format string

const (
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
)

// HeadOptions carries the fields that may appear in a catalog head.
// Priority, MediaBaseUrl and Time are only emitted when set.
type HeadOptions struct {
	FormatVersion string
	Project       string
	Suite         string
	Section       string
	Priority      int
	HasPriority   bool
	MediaBaseUrl  string
	Timestamp     time.Time
	HasTimestamp  bool
}

// Origin renders `lower("<project>-<suite>-<section>")` using
// github.com/gosimple/slug so the result stays lowercase ASCII for
// arbitrary project/suite/section names, not just ASCII ones.
func Origin(project, suite, section string) string {
	raw := fmt.Sprintf("%s-%s-%s", project, suite, section)
	return strings.ToLower(slug.Make(raw))
}

// BuildHead renders the catalog head for the given format.
func BuildHead(format Format, opts HeadOptions) string {
	origin := Origin(opts.Project, opts.Suite, opts.Section)
	switch format {
	case FormatYAML:
		return buildYAMLHead(origin, opts)
	default:
		return buildXMLHead(origin, opts)
	}
}

func buildXMLHead(origin string, opts HeadOptions) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	fmt.Fprintf(&b, "<components version=%q origin=%q", opts.FormatVersion, origin)
	if opts.HasPriority {
		fmt.Fprintf(&b, " priority=%q", fmt.Sprint(opts.Priority))
	}
	if opts.MediaBaseUrl != "" {
		fmt.Fprintf(&b, " media_baseurl=%q", opts.MediaBaseUrl)
	}
	if opts.HasTimestamp {
		fmt.Fprintf(&b, " time=%q", opts.Timestamp.UTC().Format(time.RFC3339))
	}
	b.WriteString(">\n")
	return b.String()
}

func buildYAMLHead(origin string, opts HeadOptions) string {
	var b strings.Builder
	b.WriteString("%YAML 1.2\n---\n")
	b.WriteString("File: DEP-11\n")
	fmt.Fprintf(&b, "Version: '%s'\n", opts.FormatVersion)
	fmt.Fprintf(&b, "Origin: %s\n", origin)
	if opts.MediaBaseUrl != "" {
		fmt.Fprintf(&b, "MediaBaseUrl: %s\n", opts.MediaBaseUrl)
	}
	if opts.HasPriority {
		fmt.Fprintf(&b, "Priority: %d\n", opts.Priority)
	}
	if opts.HasTimestamp {
		fmt.Fprintf(&b, "Time: '%s'\n", opts.Timestamp.UTC().Format(time.RFC3339))
	}
	return b.String()
}

// Tail returns the format-specific closing text: `</components>` for XML,
// nothing for YAML.
func Tail(format Format) string {
	if format == FormatXML {
		return "</components>"
	}
	return ""
}

// MediaBaseURL computes the head's media_baseurl: rooted at <base>/<suite>
// under the immutable-suites feature, else <base>/pool; only emitted by the
// caller when storeScreenshots is enabled and base is set.
func MediaBaseURL(base, suite string, immutableSuites bool) string {
	if base == "" {
		return ""
	}
	base = strings.TrimRight(base, "/")
	if immutableSuites {
		return base + "/" + suite
	}
	return base + "/pool"
}
