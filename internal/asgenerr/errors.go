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

// Package asgenerr centralizes the engine's error kinds: configuration
// errors, index corruption, store-write failures, and the optional
// filesystem errors that are logged and skipped rather than propagated.
package asgenerr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownBackend is returned when the configuration's backend
	// selector names no known package index backend.
	ErrUnknownBackend = errors.New("unknown backend")
	// ErrSuiteNotFound is returned when a requested suite is absent from config.
	ErrSuiteNotFound = errors.New("suite not found")
	// ErrImmutableSuite is returned when a mutating operation targets an
	// immutable suite.
	ErrImmutableSuite = errors.New("suite is immutable")
	// ErrSuiteMissingSections is returned by the suite checks run when a
	// suite is selected (cmd and engine), not by schema validation.
	ErrSuiteMissingSections = errors.New("suite has no sections")
	// ErrSuiteMissingArchitectures is returned by the suite checks run when
	// a suite is selected (cmd and engine), not by schema validation.
	ErrSuiteMissingArchitectures = errors.New("suite has no architectures")
	// ErrSectionNotInSuite is returned when a requested section isn't configured.
	ErrSectionNotInSuite = errors.New("section not in suite")
	// ErrFileNotResolved is returned by ProcessFile when a backend cannot
	// map a path back to a package.
	ErrFileNotResolved = errors.New("file could not be resolved to a package")
)

// WrapConfig wraps a configuration-time error: logged and causes an early
// return from the entry point.
func WrapConfig(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("config: %s: %w", op, err)
}

// WrapIndex wraps an index corruption / I/O error: the caller logs it and
// treats the triple as having an empty package list, never fatal.
func WrapIndex(suite, section, arch string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("index suite=%s section=%s arch=%s: %w", suite, section, arch, err)
}

// WrapStoreWrite wraps a store mutation failure: propagated as fatal by the
// caller.
func WrapStoreWrite(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("store write failed: %s: %w", op, err)
}

// WrapInjectedMods wraps a failure to load injected modifications: fatal
// for the whole suite.
func WrapInjectedMods(suite string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("loading injected modifications for suite %q: %w", suite, err)
}

// Join aggregates errors from a parallel phase the way the worker pool does
// for every parallel-for range in the engine (seed/process/export).
func Join(errs ...error) error {
	return errors.Join(errs...)
}
