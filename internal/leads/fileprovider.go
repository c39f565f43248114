package leads

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/mmesoai/Omarim-AI-sub000/internal/logging"
)

// FileProvider serves the dataset from a YAML file and hot-reloads it when
// the file changes on disk. Missing or malformed reloads keep the last good
// dataset.
type FileProvider struct {
	mu      sync.RWMutex
	path    string
	rows    []Business
	watcher *fsnotify.Watcher
	done    chan struct{}
}

type datasetFile struct {
	Businesses []Business `yaml:"businesses"`
}

// NewFileProvider loads the dataset from path. When watch is true, a
// filesystem watcher reloads the dataset on writes until Close is called.
func NewFileProvider(path string, watch bool) (*FileProvider, error) {
	p := &FileProvider{path: path}
	if err := p.reload(); err != nil {
		return nil, err
	}

	if watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("failed to create watcher: %w", err)
		}
		// Watch the directory: editors replace files rather than write in
		// place, which drops the watch on the file itself.
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch dataset directory: %w", err)
		}
		p.watcher = watcher
		p.done = make(chan struct{})
		go p.watchLoop()
		logging.Leads("Watching dataset file: %s", path)
	}

	return p, nil
}

// Businesses returns the current dataset.
func (p *FileProvider) Businesses(ctx context.Context) ([]Business, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Business, len(p.rows))
	copy(out, p.rows)
	return out, nil
}

// Close stops the watcher, if any.
func (p *FileProvider) Close() error {
	if p.watcher == nil {
		return nil
	}
	err := p.watcher.Close()
	<-p.done
	return err
}

func (p *FileProvider) reload() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("failed to read dataset file: %w", err)
	}

	var file datasetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse dataset file: %w", err)
	}

	p.mu.Lock()
	p.rows = file.Businesses
	p.mu.Unlock()

	logging.LeadsDebug("Loaded %d businesses from %s", len(file.Businesses), p.path)
	return nil
}

func (p *FileProvider) watchLoop() {
	defer close(p.done)
	for {
		select {
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(p.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := p.reload(); err != nil {
				logging.Get(logging.CategoryLeads).Warn("Dataset reload failed: %v", err)
			}
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryLeads).Warn("Dataset watcher error: %v", err)
		}
	}
}
