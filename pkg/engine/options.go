package engine

import "time"

type Option func(*Engine)

func WithDataFile(filename string) Option {
	return func(engine *Engine) {
		engine.dataFile = filename
	}
}

// WithBackgroundSave periodically writes the namespace to the data file when it changed.
// It has no effect without WithDataFile.
func WithBackgroundSave(interval time.Duration) Option {
	return func(engine *Engine) {
		engine.backgroundSave = interval > 0
		engine.saveInterval = interval
	}
}
