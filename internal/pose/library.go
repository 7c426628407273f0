package pose

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/normanking/motionsynth/internal/motion"
)

// Library holds named poses loaded from a directory of *.json files and
// optionally watches the directory, reloading files as they change.
type Library struct {
	dir string
	log zerolog.Logger

	mu    sync.RWMutex
	poses map[string]motion.Pose

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewLibrary loads every pose file under dir. Files that fail to parse
// are skipped with a warning; an unreadable directory is an error.
func NewLibrary(dir string, log zerolog.Logger) (*Library, error) {
	lib := &Library{
		dir:   dir,
		log:   log,
		poses: make(map[string]motion.Pose),
	}
	if err := lib.loadAll(); err != nil {
		return nil, err
	}
	return lib, nil
}

func (l *Library) loadAll() error {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("read pose directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		l.loadFile(filepath.Join(l.dir, entry.Name()))
	}
	return nil
}

func (l *Library) loadFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		l.log.Warn().Err(err).Str("file", path).Msg("pose file unreadable")
		return
	}
	p, err := Parse(data)
	if err != nil {
		l.log.Warn().Err(err).Str("file", path).Msg("pose file invalid")
		return
	}

	name := strings.TrimSuffix(filepath.Base(path), ".json")
	l.mu.Lock()
	l.poses[name] = p
	l.mu.Unlock()
	l.log.Debug().Str("pose", name).Msg("pose loaded")
}

// Get returns a named pose.
func (l *Library) Get(name string) (motion.Pose, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.poses[name]
	return p, ok
}

// Names lists the loaded pose names.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.poses))
	for name := range l.poses {
		names = append(names, name)
	}
	return names
}

// Save writes a pose document into the library directory.
func (l *Library) Save(name string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode pose %q: %w", name, err)
	}
	path := filepath.Join(l.dir, name+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write pose %q: %w", name, err)
	}
	l.loadFile(path)
	return nil
}

// Watch starts reloading pose files as they are written. Stop with
// Close.
func (l *Library) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(l.dir); err != nil {
		watcher.Close()
		return err
	}

	l.watcher = watcher
	l.done = make(chan struct{})
	go l.watchLoop()
	return nil
}

func (l *Library) watchLoop() {
	for {
		select {
		case <-l.done:
			return
		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if strings.HasSuffix(event.Name, ".json") {
					l.loadFile(event.Name)
					l.log.Info().Str("file", event.Name).Msg("pose reloaded")
				}
			}
		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			l.log.Warn().Err(err).Msg("pose watcher error")
		}
	}
}

// Close stops the watcher if one is running.
func (l *Library) Close() error {
	if l.watcher == nil {
		return nil
	}
	close(l.done)
	err := l.watcher.Close()
	l.watcher = nil
	return err
}
