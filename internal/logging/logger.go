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

// Package logging provides the single centralized logger used by every
// phase of a suite run (seed, process, export, cleanup). It adapts between
// a colorized human mode and a machine-readable JSON mode so the same log
// call sites work for an interactive terminal and for a CI log stream.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pterm/pterm"
)

func init() {
	pterm.Info = *pterm.Info.WithPrefix(pterm.Prefix{
		Text:  "INFO",
		Style: pterm.NewStyle(pterm.FgBlue),
	}).WithMessageStyle(&pterm.ThemeDefault.DefaultText)

	pterm.Success = *pterm.Success.WithPrefix(pterm.Prefix{
		Text:  "SUCCESS",
		Style: pterm.NewStyle(pterm.FgGreen),
	}).WithMessageStyle(&pterm.ThemeDefault.DefaultText)

	pterm.Warning = *pterm.Warning.WithPrefix(pterm.Prefix{
		Text:  "WARNING",
		Style: pterm.NewStyle(pterm.FgYellow),
	}).WithMessageStyle(&pterm.ThemeDefault.DefaultText)

	pterm.Error = *pterm.Error.WithPrefix(pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.FgRed),
	}).WithMessageStyle(&pterm.ThemeDefault.DefaultText)

	pterm.Debug = *pterm.Debug.WithPrefix(pterm.Prefix{
		Text:  "DEBUG",
		Style: pterm.NewStyle(pterm.FgCyan),
	}).WithMessageStyle(&pterm.ThemeDefault.DefaultText)
}

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarning
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarning:
		return "WARNING"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerMode selects the output rendering.
type LoggerMode int

const (
	// ModeHuman uses pterm for colorized terminal output.
	ModeHuman LoggerMode = iota
	// ModeJSON emits one JSON object per log line, for CI consumption.
	ModeJSON
)

// Logger is the centralized logger for a run. Phase boundaries
// (seed/process/export/cleanup) and the per-package completion line
// all go through here, never through fmt.Println directly.
type Logger struct {
	mu           sync.RWMutex
	mode         LoggerMode
	debugEnabled bool
	quietEnabled bool
	out          *os.File
}

var globalLogger = &Logger{mode: ModeHuman, out: os.Stderr}

// GetLogger returns the global logger instance.
func GetLogger() *Logger { return globalLogger }

func (l *Logger) SetMode(mode LoggerMode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mode = mode
}

func (l *Logger) SetDebugEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debugEnabled = enabled
}

func (l *Logger) IsDebugEnabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.debugEnabled
}

func (l *Logger) SetQuietEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.quietEnabled = enabled
}

func (l *Logger) IsQuietEnabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.quietEnabled
}

func (l *Logger) Debug(format string, args ...any)   { l.log(LogLevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)    { l.log(LogLevelInfo, format, args...) }
func (l *Logger) Warning(format string, args ...any) { l.log(LogLevelWarning, format, args...) }
func (l *Logger) Error(format string, args ...any)   { l.log(LogLevelError, format, args...) }

// Fatal logs an error and is used for the single human-readable line that
// identifies the affected suite/section/arch/phase.
func (l *Logger) Fatal(suite, section, arch, phase string, err error) {
	l.Error("suite=%s section=%s arch=%s phase=%s: %v", suite, section, arch, phase, err)
}

// Success logs a success message. Suppressed in quiet mode.
func (l *Logger) Success(format string, args ...any) {
	l.mu.RLock()
	mode, quiet := l.mode, l.quietEnabled
	l.mu.RUnlock()
	if quiet {
		return
	}
	message := fmt.Sprintf(format, args...)
	if mode == ModeHuman {
		pterm.Success.Println(message)
	} else {
		l.emitJSON(LogLevelInfo, message)
	}
}

func (l *Logger) log(level LogLevel, format string, args ...any) {
	l.mu.RLock()
	mode, debug, quiet := l.mode, l.debugEnabled, l.quietEnabled
	l.mu.RUnlock()

	if level == LogLevelDebug && !debug {
		return
	}
	if quiet && (level == LogLevelInfo || level == LogLevelDebug) {
		return
	}

	message := fmt.Sprintf(format, args...)
	if mode == ModeHuman {
		l.logHuman(level, message)
	} else {
		l.emitJSON(level, message)
	}
}

func (l *Logger) logHuman(level LogLevel, message string) {
	switch level {
	case LogLevelDebug:
		pterm.Debug.Println(message)
	case LogLevelInfo:
		pterm.Info.Println(message)
	case LogLevelWarning:
		pterm.Warning.Println(message)
	case LogLevelError:
		pterm.Error.Println(message)
	}
}

type jsonLogLine struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
}

func (l *Logger) emitJSON(level LogLevel, message string) {
	line := jsonLogLine{Time: time.Now(), Level: level.String(), Message: message}
	enc := json.NewEncoder(l.out)
	_ = enc.Encode(line)
}

// Convenience wrappers for the global logger.
func Debug(format string, args ...any)   { globalLogger.Debug(format, args...) }
func Info(format string, args ...any)    { globalLogger.Info(format, args...) }
func Warning(format string, args ...any) { globalLogger.Warning(format, args...) }
func Error(format string, args ...any)   { globalLogger.Error(format, args...) }
func Success(format string, args ...any) { globalLogger.Success(format, args...) }
func Fatal(suite, section, arch, phase string, err error) {
	globalLogger.Fatal(suite, section, arch, phase, err)
}
func SetMode(mode LoggerMode)      { globalLogger.SetMode(mode) }
func SetDebugEnabled(enabled bool) { globalLogger.SetDebugEnabled(enabled) }
func IsDebugEnabled() bool         { return globalLogger.IsDebugEnabled() }
func SetQuietEnabled(enabled bool) { globalLogger.SetQuietEnabled(enabled) }
func IsQuietEnabled() bool         { return globalLogger.IsQuietEnabled() }
