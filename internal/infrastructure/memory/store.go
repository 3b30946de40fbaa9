// Package memory implementa los puertos de persistencia en memoria (STORE_DRIVER=memory).
// Sirve para desarrollo local y para los tests de punta a punta: evalúa los mismos
// criterios que el constructor SQL.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Inventario-ai/internal/application/inventory"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store guarda copias de las entidades; nunca entrega punteros a su estado interno.
type Store struct {
	mu         sync.RWMutex
	items      map[string]entity.InventoryItem
	categories map[string]entity.Category
	profiles   map[string]entity.Profile
	now        func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		items:      make(map[string]entity.InventoryItem),
		categories: make(map[string]entity.Category),
		profiles:   make(map[string]entity.Profile),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Items repositorio de ítems.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

// Categories repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Profiles repositorio de perfiles.
func (s *Store) Profiles() *ProfileRepo { return &ProfileRepo{s: s} }

// Run ejecuta fn con el lock de escritura tomado. Si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items := cloneMap(s.items)
	categories := cloneMap(s.categories)

	if err := fn(&ItemRepo{s: s, held: true}, &CategoryRepo{s: s, held: true}); err != nil {
		s.items = items
		s.categories = categories
		return err
	}
	return nil
}

// read/write toman el lock salvo que el repositorio pertenezca a una tx en curso.
func (s *Store) read(held bool, fn func()) {
	if !held {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(held bool, fn func()) {
	if !held {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn()
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
