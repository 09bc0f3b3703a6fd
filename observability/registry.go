package observability

import (
	"fmt"
	"sync"
)

// Named observers selectable through the engine config's "observer" field.
// "slog" follows the process-wide default logger, resolved per event, so it
// honors the handler and level the command line configures after this
// package initializes. "noop" discards everything.
var (
	observers = map[string]Observer{
		"noop": NoOpObserver{},
		"slog": &SlogObserver{},
	}
	mutex sync.RWMutex
)

// GetObserver returns a registered observer by name. The engine resolves its
// configured observer through this lookup at construction.
func GetObserver(name string) (Observer, error) {
	mutex.RLock()
	defer mutex.RUnlock()

	obs, exists := observers[name]
	if !exists {
		return nil, fmt.Errorf("unknown observer: %s", name)
	}
	return obs, nil
}

// RegisterObserver adds or replaces a named observer. Custom observers must
// be registered before the engine resolves its config.
func RegisterObserver(name string, observer Observer) {
	mutex.Lock()
	defer mutex.Unlock()

	observers[name] = observer
}
