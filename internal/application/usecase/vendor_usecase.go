package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/tu-usuario/stockpos-backend/internal/application/dto"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
	"github.com/tu-usuario/stockpos-backend/internal/domain/repository"
)

// VendorUseCase casos de uso CRUD para proveedores.
type VendorUseCase struct {
	repo repository.VendorRepository
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository) *VendorUseCase {
	return &VendorUseCase{repo: repo}
}

// Create crea un proveedor.
func (uc *VendorUseCase) Create(ctx context.Context, in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	vendor := &entity.Vendor{
		ID:      uuid.NewString(),
		Name:    in.Name,
		TaxID:   in.TaxID,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
	}
	if err := uc.repo.Create(ctx, vendor); err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// GetByID devuelve un proveedor.
func (uc *VendorUseCase) GetByID(ctx context.Context, id string) (*dto.VendorResponse, error) {
	vendor, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// List devuelve proveedores paginados.
func (uc *VendorUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.VendorResponse, error) {
	page.DefaultPage()
	vendors, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, *toVendorResponse(v))
	}
	return out, nil
}

// Update actualiza los datos de contacto.
func (uc *VendorUseCase) Update(ctx context.Context, id string, in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	vendor, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	vendor.Name = in.Name
	vendor.TaxID = in.TaxID
	vendor.Email = in.Email
	vendor.Phone = in.Phone
	vendor.Address = in.Address
	if err := uc.repo.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

func toVendorResponse(v *entity.Vendor) *dto.VendorResponse {
	return &dto.VendorResponse{
		ID:        v.ID,
		Name:      v.Name,
		TaxID:     v.TaxID,
		Email:     v.Email,
		Phone:     v.Phone,
		Address:   v.Address,
		CreatedAt: v.CreatedAt,
	}
}
