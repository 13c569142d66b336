package savegame

import (
	"fmt"
	"strings"

	"github.com/samcharles93/edictsave/internal/game"
	"github.com/samcharles93/edictsave/internal/logger"
)

// Tag identifies a class of engine memory released together.
type Tag int

const (
	// TagGame memory lives until the next game load.
	TagGame Tag = 765
	// TagLevel memory lives until the next level load.
	TagLevel Tag = 766
)

func (t Tag) String() string {
	switch t {
	case TagGame:
		return "game"
	case TagLevel:
		return "level"
	default:
		return fmt.Sprintf("tag(%d)", int(t))
	}
}

// Host is the set of engine services the save engine consumes.
type Host interface {
	// TagMalloc returns size zeroed bytes owned by tag.
	TagMalloc(size int, tag Tag) []byte
	// FreeTags releases every allocation owned by tag.
	FreeTags(tag Tag)
	// LinkEntity rebuilds the spatial link state of ent.
	LinkEntity(ent *game.Entity)
	// Dprintf prints a developer diagnostic.
	Dprintf(format string, args ...any)
}

const arenaChunk = 64 << 10

// Arena is a Host backed by Go memory. Small allocations are carved out of shared
// chunks per tag; FreeTags drops the chunks.
type Arena struct {
	log    logger.Logger
	chunks map[Tag][][]byte
	free   map[Tag][]byte
	bytes  map[Tag]int
	linked int
}

// NewArena returns an Arena that routes Dprintf to log at debug level.
func NewArena(log logger.Logger) *Arena {
	if log == nil {
		log = logger.Nop()
	}
	return &Arena{
		log:    log,
		chunks: make(map[Tag][][]byte),
		free:   make(map[Tag][]byte),
		bytes:  make(map[Tag]int),
	}
}

func (a *Arena) TagMalloc(size int, tag Tag) []byte {
	if size <= 0 {
		return nil
	}
	a.bytes[tag] += size
	if size > arenaChunk/4 {
		b := make([]byte, size)
		a.chunks[tag] = append(a.chunks[tag], b)
		return b
	}
	cur := a.free[tag]
	if len(cur) < size {
		cur = make([]byte, arenaChunk)
		a.chunks[tag] = append(a.chunks[tag], cur)
	}
	b := cur[:size:size]
	a.free[tag] = cur[size:]
	return b
}

func (a *Arena) FreeTags(tag Tag) {
	delete(a.chunks, tag)
	delete(a.free, tag)
	delete(a.bytes, tag)
}

// LinkEntity only counts calls; an Arena has no spatial world to link into.
func (a *Arena) LinkEntity(*game.Entity) {
	a.linked++
}

func (a *Arena) Dprintf(format string, args ...any) {
	a.log.Debug(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// Allocated reports the bytes handed out under tag since it was last freed.
func (a *Arena) Allocated(tag Tag) int { return a.bytes[tag] }

// Linked reports the number of LinkEntity calls.
func (a *Arena) Linked() int { return a.linked }
