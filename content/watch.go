package content

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is how long Watch waits after the last filesystem event before
// reloading, so editor save bursts trigger a single reload.
const debounce = 250 * time.Millisecond

// Watch reloads the library whenever an article in the content directory
// changes. It blocks until ctx is canceled or the watcher fails.
func (l *Library) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("content: create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(l.dir); err != nil {
		return fmt.Errorf("content: watch %s: %w", l.dir, err)
	}
	log.Printf("content: watching %s", l.dir)

	var timer *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isArticle(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				pending = timer.C
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("content: watcher error: %v", err)
		case <-pending:
			timer = nil
			pending = nil
			if err := l.Reload(); err != nil {
				log.Printf("content: reload failed: %v", err)
				continue
			}
			log.Printf("content: reloaded %d posts", len(l.All()))
		}
	}
}
