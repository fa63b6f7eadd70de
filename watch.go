// watch.go: Hot reload of a settings file
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mneme

import (
	"time"

	"github.com/agilira/argus"
	"github.com/pkg/errors"
)

// DefaultWatchInterval is the settings file poll interval used when
// WatchSettings gets a non-positive one.
const DefaultWatchInterval = 2 * time.Second

// WatchSettings applies the JSON settings file at path to l now and again
// each time the file changes. Reload failures keep the current settings and
// go to the error callback as "settings_reload". The returned stop function
// ends the watch.
func WatchSettings(path string, l *Logger, interval time.Duration) (stop func() error, err error) {
	if err := ReloadSettings(path, l); err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	w := argus.New(argus.Config{PollInterval: interval})
	err = w.Watch(path, func(ev argus.ChangeEvent) {
		if ev.IsDelete {
			l.notice(LevelWarning, "mneme: settings file %q removed, keeping current settings", path)
			return
		}
		if err := ReloadSettings(path, l); err != nil {
			l.reportError("settings_reload", err)
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "watch %q", path)
	}
	if err := w.Start(); err != nil {
		return nil, errors.Wrap(err, "start settings watcher")
	}
	return w.Stop, nil
}

// ReloadSettings reads the settings file at path and applies it to l.
func ReloadSettings(path string, l *Logger) error {
	s, err := LoadSettings(path)
	if err != nil {
		return err
	}
	if err := l.Apply(s); err != nil {
		return errors.Wrapf(err, "apply %q", path)
	}
	return nil
}
