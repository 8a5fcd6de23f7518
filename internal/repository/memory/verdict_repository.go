package memory

import (
	"time"

	"ai-moderouter-be/pkg/classifier"

	"github.com/patrickmn/go-cache"
)

// VerdictRepository keeps recent classifier verdicts so identical repeated
// queries skip the backend round trip. Routing is deterministic for a fixed
// classifier reply, so a cached verdict is always valid within its TTL.
type VerdictRepository struct {
	cache *cache.Cache
}

func NewVerdictRepository(ttl time.Duration) *VerdictRepository {
	c := cache.New(ttl, ttl/2+time.Minute)
	return &VerdictRepository{
		cache: c,
	}
}

func (r *VerdictRepository) Save(key string, result classifier.Result) {
	r.cache.Set(key, result, cache.DefaultExpiration)
}

func (r *VerdictRepository) Get(key string) (classifier.Result, bool) {
	if x, found := r.cache.Get(key); found {
		return x.(classifier.Result), true
	}
	return classifier.Result{}, false
}
