package memory

import (
	"time"

	"paint-estimate-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// WorkflowCache keeps hot workflow states in memory in front of the durable
// store. Entries expire so abandoned sessions do not accumulate.
type WorkflowCache struct {
	cache *cache.Cache
}

func NewWorkflowCache() *WorkflowCache {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &WorkflowCache{
		cache: c,
	}
}

func (r *WorkflowCache) Save(key string, state *entity.WorkflowState) {
	r.cache.Set(key, state.Clone(), cache.DefaultExpiration)
}

// Get returns a copy so callers mutating the state in place cannot alias
// the cached entry; the mutated copy only lands back here through Save.
func (r *WorkflowCache) Get(key string) (*entity.WorkflowState, bool) {
	if x, found := r.cache.Get(key); found {
		return x.(*entity.WorkflowState).Clone(), true
	}
	return nil, false
}

func (r *WorkflowCache) Delete(key string) {
	r.cache.Delete(key)
}
