package port

import (
	"context"

	"github.com/procurehub/procurehub/internal/domain/entity"
)

// DepartmentRepository defines persistence operations for Department masters
type DepartmentRepository interface {
	List(ctx context.Context) ([]entity.Department, error)
	Create(ctx context.Context, d *entity.Department) error
	Update(ctx context.Context, d *entity.Department) error
	Delete(ctx context.Context, id int64) error
}

// LocationRepository defines persistence operations for Location masters
type LocationRepository interface {
	List(ctx context.Context) ([]entity.Location, error)
	Create(ctx context.Context, l *entity.Location) error
	Update(ctx context.Context, l *entity.Location) error
	Delete(ctx context.Context, id int64) error
}

// VendorRepository defines persistence operations for Vendor masters
type VendorRepository interface {
	List(ctx context.Context) ([]entity.Vendor, error)
	Create(ctx context.Context, v *entity.Vendor) error
	Update(ctx context.Context, v *entity.Vendor) error
	Delete(ctx context.Context, id int64) error
}

// InventoryRepository defines persistence operations for inventory masters
type InventoryRepository interface {
	List(ctx context.Context) ([]entity.InventoryItem, error)
	Create(ctx context.Context, i *entity.InventoryItem) error
	Update(ctx context.Context, i *entity.InventoryItem) error
	Delete(ctx context.Context, id int64) error
}
