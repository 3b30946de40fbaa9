package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-ai/internal/domain"
	"github.com/jhoicas/Inventario-ai/internal/domain/criteria"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	db Querier
}

// NewItemRepository construye el adaptador; db puede ser el pool o una tx.
func NewItemRepository(db Querier) *ItemRepo {
	return &ItemRepo{db: db}
}

func (r *ItemRepo) Find(ctx context.Context, q criteria.Query) ([]*entity.InventoryItem, error) {
	query, args, err := buildItemQuery(q)
	if err != nil {
		return nil, fmt.Errorf("build item query: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	it, err := scanItem(r.db.QueryRow(ctx, itemSelect+"\n\t\tWHERE i.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

func (r *ItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_items (id, name, quantity, category_id, category, status, sku, location,
			supplier, unit_cost, reorder_threshold, notes, last_updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.Exec(ctx, query,
		item.ID, item.Name, item.Quantity, item.CategoryID, item.Category, item.Status,
		nullable(item.SKU), nullable(item.Location), nullable(item.Supplier), item.UnitCost,
		item.ReorderThreshold, nullable(item.Notes), item.UpdatedAt, nullable(item.UpdatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidCategory
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET name = $2, quantity = $3, category_id = $4, category = $5, status = $6,
			sku = $7, location = $8, supplier = $9, unit_cost = $10, reorder_threshold = $11, notes = $12,
			last_updated_at = $13, updated_by = $14
		WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query,
		item.ID, item.Name, item.Quantity, item.CategoryID, item.Category, item.Status,
		nullable(item.SKU), nullable(item.Location), nullable(item.Supplier), item.UnitCost,
		item.ReorderThreshold, nullable(item.Notes), item.UpdatedAt, nullable(item.UpdatedBy),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidCategory
		}
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_items WHERE category_id = $1`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count items by category: %w", err)
	}
	return n, nil
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var (
		it                                     entity.InventoryItem
		categoryID                             *string
		sku, location, supplier, notes, editor *string
	)
	err := row.Scan(
		&it.ID, &it.Name, &it.Quantity, &categoryID, &it.Category,
		&it.Status, &sku, &location, &supplier, &it.UnitCost, &it.ReorderThreshold,
		&notes, &it.UpdatedAt, &editor,
	)
	if err != nil {
		return nil, err
	}
	it.CategoryID = deref(categoryID)
	it.SKU = deref(sku)
	it.Location = deref(location)
	it.Supplier = deref(supplier)
	it.Notes = deref(notes)
	it.UpdatedBy = deref(editor)
	return &it, nil
}
