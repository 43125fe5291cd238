package repo

import (
	"context"
	"slices"
	"sync"

	dmn "github.com/beka-birhanu/vinom-robomaze/domain"
	"github.com/beka-birhanu/vinom-robomaze/service/i"
	"github.com/google/uuid"
)

// MemoryMazeRepo keeps mazes in process memory.
type MemoryMazeRepo struct {
	mu    sync.RWMutex
	mazes map[uuid.UUID]dmn.MazeRecord
}

// NewMemoryMazeRepo creates an empty repository.
func NewMemoryMazeRepo() *MemoryMazeRepo {
	return &MemoryMazeRepo{mazes: make(map[uuid.UUID]dmn.MazeRecord)}
}

var _ i.MazeRepo = &MemoryMazeRepo{}

// Save inserts or replaces a maze.
func (m *MemoryMazeRepo) Save(_ context.Context, maze *dmn.MazeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mazes[maze.ID] = copyRecord(*maze)
	return nil
}

// ByID retrieves a maze by its ID.
func (m *MemoryMazeRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	maze, ok := m.mazes[id]
	if !ok {
		return nil, i.ErrNotFound
	}
	maze = copyRecord(maze)
	return &maze, nil
}

func copyRecord(r dmn.MazeRecord) dmn.MazeRecord {
	layout := make([][]int, len(r.Layout))
	for y, row := range r.Layout {
		layout[y] = slices.Clone(row)
	}
	r.Layout = layout
	return r
}
