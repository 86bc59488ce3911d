package generator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a burst of file events is collected before a
// render starts.
const DefaultDebounce = 100 * time.Millisecond

// watchedExtensions are the input files a change is noticed in, besides the
// template and its settings.
var watchedExtensions = map[string]bool{".go": true, ".yaml": true, ".yml": true, ".json": true}

// Watcher re-renders a template whenever its inputs change. Renders run one
// at a time on a single worker.
type Watcher struct {
	gen      *Generator
	template string
	sources  []Source
	debounce time.Duration
	onRender func(*Report, error)

	mu      sync.Mutex
	outputs map[string]bool
	pending map[string]bool
}

// NewWatcher creates a watcher for the template gen has loaded and for
// sources. onRender receives the outcome of every render, including the first one.
// The watcher learns gen's outputs as they are written, so their events are
// ignored.
func NewWatcher(gen *Generator, sources []Source, onRender func(*Report, error)) *Watcher {
	if onRender == nil {
		onRender = func(*Report, error) {}
	}
	w := &Watcher{
		gen:      gen,
		template: gen.TemplatePath(),
		sources:  sources,
		debounce: DefaultDebounce,
		onRender: onRender,
		outputs:  make(map[string]bool),
		pending:  make(map[string]bool),
	}
	gen.outputHooks = append(gen.outputHooks, w.own)
	return w
}

// own records path as written by the watcher itself.
func (w *Watcher) own(path string) {
	w.mu.Lock()
	w.outputs[filepath.Clean(path)] = true
	w.mu.Unlock()
}

// SetDebounce changes the delay between the last event of a burst and the
// render it triggers.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Run renders once, then again after every change until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer fsw.Close()

	for _, dir := range w.dirs() {
		if err := fsw.Add(dir); err != nil {
			return errors.Wrapf(err, "watching %s", dir)
		}
		w.gen.logger.Debug("watching directory", zap.String("dir", dir))
	}

	// Changes pile up in pending while a render runs; wake holds at most one
	// signal so bursts collapse into a single follow-up render.
	wake := make(chan struct{}, 1)
	debouncer := newDebouncer(w.debounce, func(files []string) {
		w.mu.Lock()
		for _, f := range files {
			w.pending[filepath.Clean(f)] = true
		}
		w.mu.Unlock()
		select {
		case wake <- struct{}{}:
		default:
		}
	})
	defer debouncer.stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.render(ctx, nil)
		for {
			select {
			case <-wake:
				w.render(ctx, w.takePending())
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				<-done
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if w.relevant(event.Name) {
				w.gen.logger.Debug("file changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
				debouncer.add(event.Name)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				<-done
				return nil
			}
			w.gen.logger.Warn("file watcher error", zap.Error(err))

		case <-ctx.Done():
			<-done
			return nil
		}
	}
}

// render reloads the template when it or its settings changed, then
// generates.
func (w *Watcher) render(ctx context.Context, files []string) {
	if ctx.Err() != nil {
		return
	}
	for _, f := range files {
		if w.templateFile(f) {
			if err := w.gen.LoadTemplate(w.template); err != nil {
				w.onRender(nil, err)
				return
			}
			break
		}
	}

	report, err := w.gen.Generate(ctx, w.sources...)
	w.onRender(report, err)
}

func (w *Watcher) takePending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	files := make([]string, 0, len(w.pending))
	for f := range w.pending {
		files = append(files, f)
	}
	w.pending = make(map[string]bool)
	return files
}

// dirs lists the directories holding the template and every source.
func (w *Watcher) dirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	add(filepath.Dir(w.template))
	for _, src := range w.sources {
		for _, p := range src.Paths() {
			if info, err := os.Stat(p); err == nil && info.IsDir() {
				add(p)
			} else {
				add(filepath.Dir(p))
			}
		}
	}
	return dirs
}

// relevant reports whether a change to path may alter the rendered output.
// Outputs the watcher wrote itself are ignored.
func (w *Watcher) relevant(path string) bool {
	path = filepath.Clean(path)
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, "_test.go") {
		return false
	}

	w.mu.Lock()
	own := w.outputs[path]
	w.mu.Unlock()
	if own {
		return false
	}
	return w.templateFile(path) || watchedExtensions[strings.ToLower(filepath.Ext(path))]
}

func (w *Watcher) templateFile(path string) bool {
	tmpl := filepath.Clean(w.template)
	path = filepath.Clean(path)
	if path == tmpl {
		return true
	}
	if filepath.Dir(path) != filepath.Dir(tmpl) {
		return false
	}
	for _, name := range settingsNames {
		candidate := filepath.Join(filepath.Dir(tmpl), name)
		if strings.HasPrefix(name, "%") {
			candidate = tmpl + strings.TrimPrefix(name, "%")
		}
		if path == candidate {
			return true
		}
	}
	return false
}

// debouncer collects changed files and calls back once no change arrived
// for the configured duration.
type debouncer struct {
	duration time.Duration
	callback func([]string)

	mu      sync.Mutex
	timer   *time.Timer
	files   map[string]struct{}
	stopped bool
}

func newDebouncer(d time.Duration, callback func([]string)) *debouncer {
	return &debouncer{duration: d, callback: callback, files: make(map[string]struct{})}
}

func (d *debouncer) add(file string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.files[file] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, d.flush)
}

func (d *debouncer) flush() {
	d.mu.Lock()
	if d.stopped || len(d.files) == 0 {
		d.mu.Unlock()
		return
	}
	files := make([]string, 0, len(d.files))
	for f := range d.files {
		files = append(files, f)
	}
	d.files = make(map[string]struct{})
	d.mu.Unlock()

	d.callback(files)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
