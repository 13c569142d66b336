package api

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/samcharles93/edictsave/internal/catalog"
	"github.com/samcharles93/edictsave/internal/savegame"
)

// DefaultCacheSize bounds the number of cached inspection summaries.
const DefaultCacheSize = 128

// SummaryStore inspects saves on demand and caches the summaries. Inspection
// goes through one mutex; the engine is single-threaded.
type SummaryStore struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *savegame.Summary]
	opts  savegame.Options
}

func NewSummaryStore(size int, opts savegame.Options) (*SummaryStore, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *savegame.Summary](size)
	if err != nil {
		return nil, err
	}
	return &SummaryStore{cache: cache, opts: opts}, nil
}

// cacheKey changes whenever the file is rewritten.
func cacheKey(e catalog.Entry) string {
	return fmt.Sprintf("%s@%d:%d", e.ID, e.ModTime.UnixNano(), e.Size)
}

// Get returns the summary of the save behind e, inspecting it on a miss.
func (s *SummaryStore) Get(e catalog.Entry) (*savegame.Summary, error) {
	key := cacheKey(e)
	if sum, ok := s.cache.Get(key); ok {
		return sum, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sum, ok := s.cache.Get(key); ok {
		return sum, nil
	}
	sum, err := savegame.Inspect(e.Path, s.opts)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, sum)
	return sum, nil
}

func (s *SummaryStore) Purge() { s.cache.Purge() }

func (s *SummaryStore) Len() int { return s.cache.Len() }

// Lock serialises work that must not overlap an inspection.
func (s *SummaryStore) Lock() { s.mu.Lock() }

func (s *SummaryStore) Unlock() { s.mu.Unlock() }
