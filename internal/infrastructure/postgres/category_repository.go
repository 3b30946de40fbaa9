package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-ai/internal/domain"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	db Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(db Querier) *CategoryRepo {
	return &CategoryRepo{db: db}
}

const categorySelect = `SELECT id, name, description, created_by, created_at FROM categories`

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.db.Query(ctx, categorySelect+` ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, categorySelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO categories (id, name, description, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		c.ID, c.Name, nullable(c.Description), nullable(c.CreatedBy),
	).Scan(&c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// Update también refresca el nombre denormalizado de los ítems de la categoría.
// Ambas sentencias van en una transacción (savepoint si r ya corre dentro de una).
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cmd, err := tx.Exec(ctx, `UPDATE categories SET name = $2, description = $3 WHERE id = $1`,
		c.ID, c.Name, nullable(c.Description))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `UPDATE inventory_items SET category = $2 WHERE category_id = $1`, c.ID, c.Name); err != nil {
		return fmt.Errorf("sync item category name: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var (
		c               entity.Category
		desc, createdBy *string
	)
	if err := row.Scan(&c.ID, &c.Name, &desc, &createdBy, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Description = deref(desc)
	c.CreatedBy = deref(createdBy)
	return &c, nil
}
