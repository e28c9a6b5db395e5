package service

import (
	"context"
	"fmt"

	"github.com/procurehub/procurehub/internal/application/port"
	"github.com/procurehub/procurehub/internal/domain/entity"
	"github.com/procurehub/procurehub/internal/domain/workflow"
)

// MasterService exposes the admin reference data: departments, locations,
// vendors, inventory and the approval matrix.
type MasterService interface {
	Departments(ctx context.Context) ([]entity.Department, error)
	CreateDepartment(ctx context.Context, d *entity.Department) error
	UpdateDepartment(ctx context.Context, d *entity.Department) error
	DeleteDepartment(ctx context.Context, id int64) error

	Locations(ctx context.Context) ([]entity.Location, error)
	CreateLocation(ctx context.Context, l *entity.Location) error
	UpdateLocation(ctx context.Context, l *entity.Location) error
	DeleteLocation(ctx context.Context, id int64) error

	Vendors(ctx context.Context) ([]entity.Vendor, error)
	CreateVendor(ctx context.Context, v *entity.Vendor) error
	UpdateVendor(ctx context.Context, v *entity.Vendor) error
	DeleteVendor(ctx context.Context, id int64) error

	Inventory(ctx context.Context) ([]entity.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, i *entity.InventoryItem) error
	UpdateInventoryItem(ctx context.Context, i *entity.InventoryItem) error
	DeleteInventoryItem(ctx context.Context, id int64) error

	ApprovalMatrix(ctx context.Context) ([]entity.ApprovalWorkflowEntry, error)
	CreateMatrixEntry(ctx context.Context, e *entity.ApprovalWorkflowEntry) error
	UpdateMatrixEntry(ctx context.Context, e *entity.ApprovalWorkflowEntry) error
	DeleteMatrixEntry(ctx context.Context, id int64) error

	WorkflowFor(ctx context.Context, department, location string) (workflow.Chain, error)
	Users(ctx context.Context) ([]entity.User, error)
}

type masterServiceImpl struct {
	departmentRepo port.DepartmentRepository
	locationRepo   port.LocationRepository
	vendorRepo     port.VendorRepository
	inventoryRepo  port.InventoryRepository
	workflowRepo   port.WorkflowRepository
	userRepo       port.UserRepository
	logger         Logger
}

// NewMasterService creates a new MasterService
func NewMasterService(
	departmentRepo port.DepartmentRepository,
	locationRepo port.LocationRepository,
	vendorRepo port.VendorRepository,
	inventoryRepo port.InventoryRepository,
	workflowRepo port.WorkflowRepository,
	userRepo port.UserRepository,
	logger Logger,
) MasterService {
	return &masterServiceImpl{
		departmentRepo: departmentRepo,
		locationRepo:   locationRepo,
		vendorRepo:     vendorRepo,
		inventoryRepo:  inventoryRepo,
		workflowRepo:   workflowRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

func (s *masterServiceImpl) Departments(ctx context.Context) ([]entity.Department, error) {
	return s.departmentRepo.List(ctx)
}

func (s *masterServiceImpl) CreateDepartment(ctx context.Context, d *entity.Department) error {
	if d.Code == "" || d.Name == "" {
		return fmt.Errorf("%w: department code and name are required", entity.ErrValidation)
	}
	return s.departmentRepo.Create(ctx, d)
}

func (s *masterServiceImpl) UpdateDepartment(ctx context.Context, d *entity.Department) error {
	return s.departmentRepo.Update(ctx, d)
}

func (s *masterServiceImpl) DeleteDepartment(ctx context.Context, id int64) error {
	return s.departmentRepo.Delete(ctx, id)
}

func (s *masterServiceImpl) Locations(ctx context.Context) ([]entity.Location, error) {
	return s.locationRepo.List(ctx)
}

func (s *masterServiceImpl) CreateLocation(ctx context.Context, l *entity.Location) error {
	if l.Code == "" || l.Name == "" {
		return fmt.Errorf("%w: location code and name are required", entity.ErrValidation)
	}
	return s.locationRepo.Create(ctx, l)
}

func (s *masterServiceImpl) UpdateLocation(ctx context.Context, l *entity.Location) error {
	return s.locationRepo.Update(ctx, l)
}

func (s *masterServiceImpl) DeleteLocation(ctx context.Context, id int64) error {
	return s.locationRepo.Delete(ctx, id)
}

func (s *masterServiceImpl) Vendors(ctx context.Context) ([]entity.Vendor, error) {
	return s.vendorRepo.List(ctx)
}

func (s *masterServiceImpl) CreateVendor(ctx context.Context, v *entity.Vendor) error {
	if v.Name == "" {
		return fmt.Errorf("%w: vendor name is required", entity.ErrValidation)
	}
	return s.vendorRepo.Create(ctx, v)
}

func (s *masterServiceImpl) UpdateVendor(ctx context.Context, v *entity.Vendor) error {
	return s.vendorRepo.Update(ctx, v)
}

func (s *masterServiceImpl) DeleteVendor(ctx context.Context, id int64) error {
	return s.vendorRepo.Delete(ctx, id)
}

func (s *masterServiceImpl) Inventory(ctx context.Context) ([]entity.InventoryItem, error) {
	return s.inventoryRepo.List(ctx)
}

func (s *masterServiceImpl) CreateInventoryItem(ctx context.Context, i *entity.InventoryItem) error {
	if i.ItemName == "" {
		return fmt.Errorf("%w: item name is required", entity.ErrValidation)
	}
	if i.StockOnHand < 0 {
		return fmt.Errorf("%w: stock on hand cannot be negative", entity.ErrValidation)
	}
	return s.inventoryRepo.Create(ctx, i)
}

func (s *masterServiceImpl) UpdateInventoryItem(ctx context.Context, i *entity.InventoryItem) error {
	return s.inventoryRepo.Update(ctx, i)
}

func (s *masterServiceImpl) DeleteInventoryItem(ctx context.Context, id int64) error {
	return s.inventoryRepo.Delete(ctx, id)
}

func (s *masterServiceImpl) ApprovalMatrix(ctx context.Context) ([]entity.ApprovalWorkflowEntry, error) {
	return s.workflowRepo.ListAll(ctx)
}

func (s *masterServiceImpl) CreateMatrixEntry(ctx context.Context, e *entity.ApprovalWorkflowEntry) error {
	if err := validateMatrixEntry(e); err != nil {
		return err
	}
	return s.workflowRepo.Create(ctx, e)
}

func (s *masterServiceImpl) UpdateMatrixEntry(ctx context.Context, e *entity.ApprovalWorkflowEntry) error {
	if err := validateMatrixEntry(e); err != nil {
		return err
	}
	return s.workflowRepo.Update(ctx, e)
}

func (s *masterServiceImpl) DeleteMatrixEntry(ctx context.Context, id int64) error {
	return s.workflowRepo.Delete(ctx, id)
}

// WorkflowFor returns the ordered approval chain for a department/location
func (s *masterServiceImpl) WorkflowFor(ctx context.Context, department, location string) (workflow.Chain, error) {
	entries, err := s.workflowRepo.GetByDepartmentLocation(ctx, department, location)
	if err != nil {
		return nil, err
	}
	return workflow.NewChain(entries), nil
}

func (s *masterServiceImpl) Users(ctx context.Context) ([]entity.User, error) {
	return s.userRepo.List(ctx)
}

func validateMatrixEntry(e *entity.ApprovalWorkflowEntry) error {
	if e.Department == "" || e.Location == "" {
		return fmt.Errorf("%w: department and location are required", entity.ErrValidation)
	}
	if e.ApprovalLevel < 1 {
		return fmt.Errorf("%w: approval level must be positive", entity.ErrValidation)
	}
	if e.ApproverID == 0 {
		return fmt.Errorf("%w: approver is required", entity.ErrValidation)
	}
	return nil
}
