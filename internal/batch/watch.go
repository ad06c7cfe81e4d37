package batch

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/statementcore/corebank/internal/layout"
	"github.com/statementcore/corebank/internal/statement"
)

// Watch converts every new PDF file fsnotify reports created in dir,
// invoking onResult for each, until stop is closed. Grounded on the
// pack's standard fsnotify watch-loop shape (create/write events
// filtered to a suffix, logged via the same channel-select pattern).
func Watch(driver *statement.Driver, dir string, layoutParams layout.Params, onResult func(Result), stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("batch: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("batch: watch %s: %w", dir, err)
	}

	for {
		select {
		case <-stop:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !strings.HasSuffix(strings.ToLower(event.Name), ".pdf") {
				continue
			}
			data, err := Convert(driver, event.Name, layoutParams)
			onResult(Result{Path: event.Name, Data: data, Err: err})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("batch: watcher error: %w", err)
		}
	}
}
