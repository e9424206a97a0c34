package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, invoice_no, date, customer_id, sale_type, notes, price_mode,
	sub_total, final_discount_percent, final_discount, taxable_value,
	cgst, sgst, igst, cess, round_off, total_value, status, created_at, updated_at`

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.InvoiceNo, inv.Date, inv.CustomerID, inv.SaleType, inv.Notes, inv.PriceMode,
		inv.SubTotal, inv.FinalDiscountPercent, inv.FinalDiscount, inv.TaxableValue,
		inv.CGST, inv.SGST, inv.IGST, inv.Cess, inv.RoundOff, inv.TotalValue, inv.Status,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: factura %s", domain.ErrDuplicate, inv.InvoiceNo)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Update reemplaza cabecera y totales. created_at no se toca.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET invoice_no = $2, date = $3, customer_id = $4, sale_type = $5, notes = $6, price_mode = $7,
		    sub_total = $8, final_discount_percent = $9, final_discount = $10, taxable_value = $11,
		    cgst = $12, sgst = $13, igst = $14, cess = $15, round_off = $16, total_value = $17,
		    status = $18, updated_at = $19
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.InvoiceNo, inv.Date, inv.CustomerID, inv.SaleType, inv.Notes, inv.PriceMode,
		inv.SubTotal, inv.FinalDiscountPercent, inv.FinalDiscount, inv.TaxableValue,
		inv.CGST, inv.SGST, inv.IGST, inv.Cess, inv.RoundOff, inv.TotalValue, inv.Status,
		inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: factura %s", domain.ErrDuplicate, inv.InvoiceNo)
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la cabecera (las líneas caen por ON DELETE CASCADE).
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene la cabecera. Devuelve (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id).Scan(
		&inv.ID, &inv.InvoiceNo, &inv.Date, &inv.CustomerID, &inv.SaleType, &inv.Notes, &inv.PriceMode,
		&inv.SubTotal, &inv.FinalDiscountPercent, &inv.FinalDiscount, &inv.TaxableValue,
		&inv.CGST, &inv.SGST, &inv.IGST, &inv.Cess, &inv.RoundOff, &inv.TotalValue, &inv.Status,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// List devuelve las facturas más recientes primero, con el nombre del cliente.
// Fechas nulas no filtran; Limit 0 devuelve todas.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.InvoiceSummary, error) {
	query := `
		SELECT i.id, i.invoice_no, i.date, i.total_value, i.status, c.name
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		WHERE ($1 = '' OR i.invoice_no ILIKE $2 OR c.name ILIKE $2)
		  AND ($3::date IS NULL OR i.date >= $3::date)
		  AND ($4::date IS NULL OR i.date <= $4::date)
		ORDER BY i.date DESC, i.created_at DESC
		LIMIT NULLIF($5, 0)`
	rows, err := r.q.Query(ctx, query, f.Search, containsPattern(f.Search), f.StartDate, f.EndDate, f.Limit)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	list := []*entity.InvoiceSummary{}
	for rows.Next() {
		var s entity.InvoiceSummary
		if err := rows.Scan(&s.ID, &s.InvoiceNo, &s.Date, &s.TotalValue, &s.Status, &s.CustomerName); err != nil {
			return nil, fmt.Errorf("scan invoice summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CreateItem persiste una línea de la factura.
func (r *InvoiceRepo) CreateItem(ctx context.Context, it *entity.InvoiceItem) error {
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_items (id, invoice_id, item_id, hsn_code, quantity, free_quantity, unit,
			price_per_unit, discount_percent, discount, gst_rate, cgst_amount, sgst_amount, total_amount, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.InvoiceID, it.ItemID, it.HSNCode, it.Quantity, it.FreeQuantity, it.Unit,
		it.PricePerUnit, it.DiscountPercent, it.Discount, it.GSTRate, it.CGSTAmount, it.SGSTAmount,
		it.TotalAmount, it.Position,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, it.ItemID)
		}
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// DeleteItems borra todas las líneas de la factura.
func (r *InvoiceRepo) DeleteItems(ctx context.Context, invoiceID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return nil
}

// GetItems devuelve las líneas en el orden en que se capturaron.
func (r *InvoiceRepo) GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT ii.id, ii.invoice_id, ii.item_id, it.name, ii.hsn_code, ii.quantity, ii.free_quantity, ii.unit,
		       ii.price_per_unit, ii.discount_percent, ii.discount, ii.gst_rate,
		       ii.cgst_amount, ii.sgst_amount, ii.total_amount, ii.position
		FROM invoice_items ii
		JOIN items it ON it.id = ii.item_id
		WHERE ii.invoice_id = $1
		ORDER BY ii.position`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice items: %w", err)
	}
	defer rows.Close()

	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		err := rows.Scan(&it.ID, &it.InvoiceID, &it.ItemID, &it.ItemName, &it.HSNCode, &it.Quantity,
			&it.FreeQuantity, &it.Unit, &it.PricePerUnit, &it.DiscountPercent, &it.Discount, &it.GSTRate,
			&it.CGSTAmount, &it.SGSTAmount, &it.TotalAmount, &it.Position)
		if err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// LatestNumber devuelve el número con el sufijo numérico más alto para el prefijo.
// La comparación es numérica: INV/0010 va después de INV/0009 aunque tengan distinto ancho.
func (r *InvoiceRepo) LatestNumber(ctx context.Context, prefix string) (string, error) {
	query := `
		SELECT invoice_no FROM invoices
		WHERE left(invoice_no, length($1)) = $1
		  AND invoice_no ~ '/[0-9]+$'
		ORDER BY CAST(substring(invoice_no FROM '/([0-9]+)$') AS NUMERIC) DESC
		LIMIT 1`
	var no string
	err := r.q.QueryRow(ctx, query, prefix).Scan(&no)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("latest invoice number: %w", err)
	}
	return no, nil
}

// ExistsNumber indica si el número ya está usado por otra factura (excludeID vacío no excluye nada).
func (r *InvoiceRepo) ExistsNumber(ctx context.Context, invoiceNo, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM invoices WHERE invoice_no = $1 AND ($2 = '' OR id::text <> $2))`
	var exists bool
	if err := r.q.QueryRow(ctx, query, invoiceNo, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists invoice number: %w", err)
	}
	return exists, nil
}
