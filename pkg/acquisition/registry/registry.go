package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/crowdsecurity/logtail/pkg/acquisition/types"
)

// factoriesByName is filled at init time by each datasource package.
var (
	factoriesByName = map[string]types.DataSourceFactory{}
	mu              sync.RWMutex
)

func register(module string, factory types.DataSourceFactory) (restore func()) {
	if module == "" {
		panic("registry: datasource type is empty")
	}

	if factory == nil {
		panic("registry: factory is nil for " + module)
	}

	mu.Lock()
	prev, had := factoriesByName[module]
	factoriesByName[module] = factory
	mu.Unlock()

	return func() {
		mu.Lock()
		if had {
			factoriesByName[module] = prev
		} else {
			delete(factoriesByName, module)
		}
		mu.Unlock()
	}
}

// RegisterFactory registers a datasource constructor in the factoriesByName
// map. It must be called in the init() function of the datasource package.
func RegisterFactory(module string, factory types.DataSourceFactory) {
	register(module, factory)
}

// RegisterTestFactory registers a datasource constructor and returns a
// closure restoring the previous registration. It may be called outside
// init().
func RegisterTestFactory(module string, factory types.DataSourceFactory) (restore func()) {
	return register(module, factory)
}

func LookupFactory(module string) (types.DataSourceFactory, error) {
	if module == "" {
		return nil, errors.New("data source type is empty")
	}

	mu.RLock()
	factory, registered := factoriesByName[module]
	mu.RUnlock()

	if !registered {
		return nil, fmt.Errorf("unknown data source %s", module)
	}

	return factory, nil
}
