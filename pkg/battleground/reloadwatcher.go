// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package battleground

import (
	"github.com/fsnotify/fsnotify"

	"github.com/AccelByte/extend-core-battleground/pkg/envelope"
)

// ReloadWatcher re-runs the template load step whenever the watched template
// file changes, replacing the repository wholesale. Live instances keep
// running on the templates they were seeded from.
type ReloadWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchTemplateFile starts watching path for writes. The returned watcher
// must be closed on shutdown.
func (m *Manager) WatchTemplateFile(rootScope *envelope.Scope, path string) (*ReloadWatcher, error) {
	scope := rootScope.NewChildScope("Manager.WatchTemplateFile")
	defer scope.Finish()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err = watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}

	w := &ReloadWatcher{
		watcher: watcher,
		done:    make(chan struct{}),
	}

	go w.run(rootScope, m, path)

	scope.Log.WithField("path", path).Info("watching battleground template file for reloads")
	return w, nil
}

func (w *ReloadWatcher) run(rootScope *envelope.Scope, m *Manager, path string) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			rows, err := LoadTemplateFile(path)
			if err != nil {
				rootScope.Log.WithField("path", path).Errorf("failed to reload battleground template file: %v", err)
				continue
			}
			// The registry is owned by the tick goroutine; hand the rows
			// over and let the next Update run the load step.
			m.stageReload(rows)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			rootScope.Log.Errorf("battleground template watcher error: %v", err)

		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *ReloadWatcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
