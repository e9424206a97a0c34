package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador (pool o tx).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, hsn_code, default_unit, default_mrp, purchase_price,
	default_sale_price, default_tax_rate, inclusive_of_tax, created_at, updated_at`

// Create persiste un artículo. El nombre es único sin distinguir mayúsculas.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.Name, it.HSNCode, it.DefaultUnit, it.DefaultMRP, it.PurchasePrice,
		it.DefaultSalePrice, it.DefaultTaxRate, it.InclusiveOfTax, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: artículo %q", domain.ErrDuplicate, it.Name)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Search busca por nombre; con search vacío devuelve los primeros limit en orden alfabético.
func (r *ItemRepo) Search(ctx context.Context, search string, limit int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
		WHERE ($1 = '' OR name ILIKE $2)
		ORDER BY name
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, search, containsPattern(search), limit)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Item, 0, limit)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(&it.ID, &it.Name, &it.HSNCode, &it.DefaultUnit, &it.DefaultMRP, &it.PurchasePrice,
		&it.DefaultSalePrice, &it.DefaultTaxRate, &it.InclusiveOfTax, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
