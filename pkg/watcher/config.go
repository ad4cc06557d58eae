package watcher

import (
	"github.com/vanderheijden86/xorwheel/pkg/config"
)

// ConfigWatcher re-reads a config file whenever it changes.
type ConfigWatcher struct {
	*Watcher
	reloads chan Reload
}

// Reload is the outcome of one reload. Err is set when the file could not
// be read or did not validate; Config then holds the defaults.
type Reload struct {
	Config config.Config
	Err    error
}

// WatchConfig starts watching the config file at path. Reloads are
// delivered on Reloads; only the most recent unread one is kept.
func WatchConfig(path string, opts ...WatcherOption) (*ConfigWatcher, error) {
	cw := &ConfigWatcher{reloads: make(chan Reload, 1)}
	opts = append(opts,
		WithOnChange(cw.reload),
		WithOnError(func(err error) { cw.publish(Reload{Config: config.DefaultConfig(), Err: err}) }),
	)
	w, err := NewWatcher(path, opts...)
	if err != nil {
		return nil, err
	}
	cw.Watcher = w
	if err := w.Start(); err != nil {
		return nil, err
	}
	return cw, nil
}

// Reloads returns the channel reloads arrive on.
func (cw *ConfigWatcher) Reloads() <-chan Reload {
	return cw.reloads
}

func (cw *ConfigWatcher) reload() {
	cfg, err := config.LoadFrom(cw.Path())
	cw.publish(Reload{Config: cfg, Err: err})
}

func (cw *ConfigWatcher) publish(r Reload) {
	for {
		select {
		case cw.reloads <- r:
			return
		default:
		}
		// drop the stale reload and retry
		select {
		case <-cw.reloads:
		default:
		}
	}
}
