package billing

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/facturacion-gst/internal/application/dto"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
)

const (
	defaultCustomerPage = 15
	maxCustomerPage     = 100
)

// gstinPattern 2 dígitos de estado + PAN (5 letras, 4 dígitos, 1 letra) + entidad + Z + control.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// ValidGSTIN indica si el GSTIN tiene el formato de 15 caracteres.
func ValidGSTIN(s string) bool {
	return gstinPattern.MatchString(s)
}

// CustomerUseCase casos de uso para clientes (facturación).
type CustomerUseCase struct {
	repo repository.CustomerRepository
	now  func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, now: time.Now}
}

// normalizeCustomer recorta espacios, pasa el GSTIN a mayúsculas y lo valida si viene.
func normalizeCustomer(in dto.CreateCustomerRequest) (dto.CreateCustomerRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	in.PlaceOfSupply = strings.TrimSpace(in.PlaceOfSupply)
	in.GSTIN = strings.ToUpper(strings.TrimSpace(in.GSTIN))
	if in.Name == "" || in.Address == "" {
		return in, fmt.Errorf("%w: nombre y dirección son obligatorios", domain.ErrInvalidInput)
	}
	if in.GSTIN != "" && !ValidGSTIN(in.GSTIN) {
		return in, fmt.Errorf("%w: GSTIN %q", domain.ErrInvalidInput, in.GSTIN)
	}
	return in, nil
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Phone:         c.Phone,
		GSTIN:         c.GSTIN,
		Address:       c.Address,
		PlaceOfSupply: c.PlaceOfSupply,
	}
}

// Create crea un nuevo cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	in, err := normalizeCustomer(in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	customer := &entity.Customer{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Phone:         in.Phone,
		GSTIN:         in.GSTIN,
		Address:       in.Address,
		PlaceOfSupply: in.PlaceOfSupply,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(customer)
	return &resp, nil
}

func (uc *CustomerUseCase) load(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// Get obtiene un cliente por ID.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// Update reemplaza los datos del cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	in, err = normalizeCustomer(in)
	if err != nil {
		return nil, err
	}
	c.Name, c.Phone, c.GSTIN = in.Name, in.Phone, in.GSTIN
	c.Address, c.PlaceOfSupply = in.Address, in.PlaceOfSupply
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// Delete elimina el cliente si ninguna factura lo referencia.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	n, err := uc.repo.CountInvoices(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: el cliente tiene %d factura(s)", domain.ErrConflict, n)
	}
	return uc.repo.Delete(ctx, id)
}

// List lista clientes con búsqueda por nombre, teléfono o GSTIN.
func (uc *CustomerUseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.Normalize(defaultCustomerPage, maxCustomerPage)
	list, total, err := uc.repo.List(ctx, repository.CustomerFilter{
		Search: strings.TrimSpace(search),
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerListResponse{
		Customers: make([]dto.CustomerResponse, 0, len(list)),
		Total:     total,
		Page:      page.Page,
		Limit:     page.Limit,
	}
	for _, c := range list {
		out.Customers = append(out.Customers, toCustomerResponse(c))
	}
	return out, nil
}
