package kinematics

import (
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"
)

var (
	geometryRegistryMu sync.RWMutex
	geometryRegistry   = map[string]LinkGeometry{}
)

// RegisterGeometry registers the link geometry of a robot model so that configs can refer to it by name.
// It is meant to be called from init functions and panics on an invalid or duplicate registration.
func RegisterGeometry(model string, geometry LinkGeometry) {
	if err := geometry.Validate(model); err != nil {
		panic(err)
	}
	geometryRegistryMu.Lock()
	defer geometryRegistryMu.Unlock()
	if _, ok := geometryRegistry[model]; ok {
		panic(fmt.Sprintf("trying to register two geometries with the same model %q", model))
	}
	geometryRegistry[model] = geometry
}

// LookupGeometry returns the geometry registered for a model.
func LookupGeometry(model string) (LinkGeometry, bool) {
	geometryRegistryMu.RLock()
	defer geometryRegistryMu.RUnlock()
	g, ok := geometryRegistry[model]
	return g, ok
}

// RegisteredModels returns the names of every registered model, sorted.
func RegisteredModels() []string {
	geometryRegistryMu.RLock()
	defer geometryRegistryMu.RUnlock()
	models := lo.Keys(geometryRegistry)
	sort.Strings(models)
	return models
}
