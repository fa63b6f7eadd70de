// settings.go: Logger settings, defaults and JSON loading
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mneme

import (
	"os"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/pkg/errors"
)

// Defaults applied by DefaultSettings.
const (
	DefaultModule       = "[ LOGGER ]"
	DefaultLevel        = LevelError
	DefaultMaxBackups   = 3
	DefaultMaxSize      = 2 * MB
	DefaultBytesPerLine = 16
)

// Settings configures a Logger.
//
// Values are taken literally: MaxSize 0 disables file output and MaxBackups
// 0 rotates without keeping backups. Start from DefaultSettings to get the
// documented defaults.
type Settings struct {
	// Level is a name ("debug") or a number (4) in JSON.
	Level  Level  `json:"level"`
	Module string `json:"module"`

	// Filename is the log file. Empty disables file output.
	Filename   string `json:"filename"`
	MaxBackups int    `json:"max_backups"`

	// MaxSize is the size in bytes at which the file is rotated.
	MaxSize int64 `json:"max_size"`

	// MaxSizeStr overrides MaxSize when set ("2MB", "512KB").
	MaxSizeStr string `json:"max_size_str,omitempty"`

	// LockTimeout bounds the wait for the file lock (default 10ms).
	LockTimeout    time.Duration `json:"-"`
	LockTimeoutStr string        `json:"lock_timeout,omitempty"`

	Stamp       StampKind `json:"stamp"`
	StampFormat string    `json:"stamp_format,omitempty"` // strftime pattern, implies StampCustom

	FileMode      os.FileMode   `json:"file_mode,omitempty"`
	RetryCount    int           `json:"retry_count,omitempty"`
	RetryDelay    time.Duration `json:"-"`
	RetryDelayStr string        `json:"retry_delay,omitempty"`

	// BytesPerLine of HexDump (default 16).
	BytesPerLine int `json:"bytes_per_line,omitempty"`

	NoColor  bool `json:"no_color"`
	NoMarker bool `json:"no_marker"` // skip the "rotated" line in fresh files

	// RotationCallback runs before backups are shifted. It must not log to file.
	RotationCallback RotateFunc `json:"-"`

	// ErrorCallback receives failures that logging calls swallow.
	ErrorCallback func(operation string, err error) `json:"-"`

	// Guards shared with other loggers. Nil gets private guards on os.Stdout.
	Guards *Guards `json:"-"`

	// Clock for stamps. Nil uses a millisecond time cache owned by the Logger.
	Clock Clock `json:"-"`
}

// DefaultSettings returns console-only settings with the defaults:
//   - Level: LevelError
//   - Module: "[ LOGGER ]"
//   - MaxBackups: 3, MaxSize: 2MB (used once Filename is set)
//   - LockTimeout: 10ms
//   - Stamp: StampDateTime
//   - FileMode: 0644, RetryCount: 1, RetryDelay: 1ms
//   - BytesPerLine: 16
func DefaultSettings() *Settings {
	return &Settings{
		Level:        DefaultLevel,
		Module:       DefaultModule,
		MaxBackups:   DefaultMaxBackups,
		MaxSize:      DefaultMaxSize,
		LockTimeout:  DefaultLockTimeout,
		Stamp:        StampDateTime,
		FileMode:     DefaultFileMode,
		RetryCount:   1,
		RetryDelay:   time.Millisecond,
		BytesPerLine: DefaultBytesPerLine,
	}
}

// normalize parses string forms and fills zero values that have no literal
// meaning. It works on a copy.
func (s *Settings) normalize() (*Settings, error) {
	if s == nil {
		return nil, errors.New("settings cannot be nil")
	}
	out := *s

	if out.MaxSizeStr != "" {
		size, err := ParseSize(out.MaxSizeStr)
		if err != nil {
			return nil, errors.Wrap(err, "invalid max_size_str")
		}
		out.MaxSize = size
	}
	if out.LockTimeoutStr != "" {
		d, err := ParseDuration(out.LockTimeoutStr)
		if err != nil {
			return nil, errors.Wrap(err, "invalid lock_timeout")
		}
		out.LockTimeout = d
	}
	if out.RetryDelayStr != "" {
		d, err := ParseDuration(out.RetryDelayStr)
		if err != nil {
			return nil, errors.Wrap(err, "invalid retry_delay")
		}
		out.RetryDelay = d
	}

	if out.MaxSize < 0 {
		return nil, errors.Errorf("negative max size %d", out.MaxSize)
	}
	if out.MaxBackups < 0 {
		return nil, errors.Errorf("negative max backups %d", out.MaxBackups)
	}
	if out.LockTimeout <= 0 {
		out.LockTimeout = DefaultLockTimeout
	}
	if out.FileMode == 0 {
		out.FileMode = DefaultFileMode
	}
	if out.BytesPerLine <= 0 {
		out.BytesPerLine = DefaultBytesPerLine
	}

	if out.StampFormat != "" {
		if _, err := CompileStampFormat(out.StampFormat); err != nil {
			return nil, err
		}
		out.Stamp = StampCustom
	} else if out.Stamp == StampCustom {
		return nil, errors.New("custom stamp requires stamp_format")
	}
	if out.Stamp > StampCustom {
		return nil, errors.Errorf("unknown stamp kind %d", out.Stamp)
	}

	path, err := cleanLogPath(out.Filename)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log file path")
	}
	out.Filename = path
	return &out, nil
}

// ParseSettings decodes JSON settings on top of DefaultSettings, so keys
// left out keep their defaults.
//
// Parameters:
//   - data: a JSON object using the field tags of Settings
//
// Returns the decoded settings, or an error for malformed JSON or values
// that NewWithSettings would reject. Unknown keys are ignored.
//
//	{"level": "debug", "filename": "run.log", "max_size_str": "2MB",
//	 "max_backups": 3, "stamp": "millis", "lock_timeout": "10ms"}
func ParseSettings(data []byte) (*Settings, error) {
	s := DefaultSettings()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "decode settings")
	}
	if _, err := s.normalize(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadSettings reads JSON settings from path; see ParseSettings.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- settings path chosen by the application
	if err != nil {
		return nil, errors.Wrapf(err, "read settings %q", path)
	}
	s, err := ParseSettings(data)
	if err != nil {
		return nil, errors.Wrapf(err, "settings %q", path)
	}
	return s, nil
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(b []byte) error {
	v, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// UnmarshalJSON accepts a level name ("debug") or its number (4).
// null leaves the level unchanged.
func (l *Level) UnmarshalJSON(b []byte) error {
	switch {
	case string(b) == "null":
		return nil
	case len(b) > 0 && b[0] == '"':
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return err
		}
		return l.UnmarshalText([]byte(name))
	default:
		return l.UnmarshalText(b)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k StampKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *StampKind) UnmarshalText(b []byte) error {
	v, err := ParseStampKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
