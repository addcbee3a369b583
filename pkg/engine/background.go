package engine

import (
	"log"
	"runtime"
	"time"
)

// GetMemoryStats returns current memory usage and namespace statistics
func (e *Engine) GetMemoryStats() map[string]interface{} {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	e.mu.RLock()
	defer e.mu.RUnlock()

	aliases := 0
	documents := 0
	for _, index := range e.indices {
		aliases += len(index.Aliases)
		documents += len(index.Documents)
	}

	return map[string]interface{}{
		"alloc_mb":       m.Alloc / 1024 / 1024,
		"sys_mb":         m.Sys / 1024 / 1024,
		"num_goroutines": runtime.NumGoroutine(),
		"indices":        len(e.indices),
		"aliases":        aliases,
		"documents":      documents,
	}
}

// StartBackgroundWorkers starts the background save worker
func (e *Engine) StartBackgroundWorkers() {
	if !e.backgroundSave || e.dataFile == "" {
		return
	}

	e.backgroundWg.Add(1)
	go func() {
		defer e.backgroundWg.Done()
		ticker := time.NewTicker(e.saveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				e.saveIfDirty()
			case <-e.stopChan:
				return
			}
		}
	}()
}

// StopBackgroundWorkers stops background workers
func (e *Engine) StopBackgroundWorkers() {
	select {
	case <-e.stopChan:
		// Channel already closed, do nothing
	default:
		close(e.stopChan)
	}
	e.backgroundWg.Wait()
}

func (e *Engine) saveIfDirty() {
	if !e.IsDirty() {
		return
	}

	start := time.Now()
	if err := e.SaveToFile(e.dataFile); err != nil {
		log.Printf("ERROR: Background save to %s failed: %v", e.dataFile, err)
		return
	}
	log.Printf("INFO: Background save to %s completed in %v", e.dataFile, time.Since(start))
}
