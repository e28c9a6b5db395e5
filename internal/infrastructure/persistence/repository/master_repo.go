package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/procurehub/procurehub/internal/application/port"
	"github.com/procurehub/procurehub/internal/domain/entity"
)

// DepartmentRepository implements port.DepartmentRepository
type DepartmentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDepartmentRepository creates a new department master repository
func NewDepartmentRepository(db *sql.DB, logger *zap.Logger) port.DepartmentRepository {
	return &DepartmentRepository{db: db, logger: logger}
}

func (r *DepartmentRepository) List(ctx context.Context) ([]entity.Department, error) {
	query := `SELECT id, code, name FROM departments ORDER BY name`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list departments", zap.Error(err))
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []entity.Department
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.Code, &d.Name); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *DepartmentRepository) Create(ctx context.Context, d *entity.Department) error {
	result, err := getExecutor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO departments (code, name) VALUES (?, ?)`, d.Code, d.Name)
	if err != nil {
		r.logger.Error("Failed to create department", zap.Error(err))
		return fmt.Errorf("failed to create department: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	d.ID = id
	return nil
}

func (r *DepartmentRepository) Update(ctx context.Context, d *entity.Department) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx,
		`UPDATE departments SET code = ?, name = ? WHERE id = ?`, d.Code, d.Name, d.ID)
	if err != nil {
		r.logger.Error("Failed to update department", zap.Int64("id", d.ID), zap.Error(err))
		return fmt.Errorf("failed to update department: %w", err)
	}
	return nil
}

func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM departments WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete department", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete department: %w", err)
	}
	return nil
}

// LocationRepository implements port.LocationRepository
type LocationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLocationRepository creates a new location master repository
func NewLocationRepository(db *sql.DB, logger *zap.Logger) port.LocationRepository {
	return &LocationRepository{db: db, logger: logger}
}

func (r *LocationRepository) List(ctx context.Context) ([]entity.Location, error) {
	query := `SELECT id, code, name FROM locations ORDER BY name`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list locations", zap.Error(err))
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Code, &l.Name); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (r *LocationRepository) Create(ctx context.Context, l *entity.Location) error {
	result, err := getExecutor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO locations (code, name) VALUES (?, ?)`, l.Code, l.Name)
	if err != nil {
		r.logger.Error("Failed to create location", zap.Error(err))
		return fmt.Errorf("failed to create location: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	l.ID = id
	return nil
}

func (r *LocationRepository) Update(ctx context.Context, l *entity.Location) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx,
		`UPDATE locations SET code = ?, name = ? WHERE id = ?`, l.Code, l.Name, l.ID)
	if err != nil {
		r.logger.Error("Failed to update location", zap.Int64("id", l.ID), zap.Error(err))
		return fmt.Errorf("failed to update location: %w", err)
	}
	return nil
}

func (r *LocationRepository) Delete(ctx context.Context, id int64) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete location", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete location: %w", err)
	}
	return nil
}

// VendorRepository implements port.VendorRepository
type VendorRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVendorRepository creates a new vendor master repository
func NewVendorRepository(db *sql.DB, logger *zap.Logger) port.VendorRepository {
	return &VendorRepository{db: db, logger: logger}
}

func (r *VendorRepository) List(ctx context.Context) ([]entity.Vendor, error) {
	query := `SELECT id, name, email FROM vendors ORDER BY name`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list vendors", zap.Error(err))
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []entity.Vendor
	for rows.Next() {
		var v entity.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Email); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func (r *VendorRepository) Create(ctx context.Context, v *entity.Vendor) error {
	result, err := getExecutor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO vendors (name, email) VALUES (?, ?)`, v.Name, v.Email)
	if err != nil {
		r.logger.Error("Failed to create vendor", zap.Error(err))
		return fmt.Errorf("failed to create vendor: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	v.ID = id
	return nil
}

func (r *VendorRepository) Update(ctx context.Context, v *entity.Vendor) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx,
		`UPDATE vendors SET name = ?, email = ? WHERE id = ?`, v.Name, v.Email, v.ID)
	if err != nil {
		r.logger.Error("Failed to update vendor", zap.Int64("id", v.ID), zap.Error(err))
		return fmt.Errorf("failed to update vendor: %w", err)
	}
	return nil
}

func (r *VendorRepository) Delete(ctx context.Context, id int64) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM vendors WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete vendor", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete vendor: %w", err)
	}
	return nil
}

// InventoryRepository implements port.InventoryRepository
type InventoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewInventoryRepository creates a new inventory master repository
func NewInventoryRepository(db *sql.DB, logger *zap.Logger) port.InventoryRepository {
	return &InventoryRepository{db: db, logger: logger}
}

func (r *InventoryRepository) List(ctx context.Context) ([]entity.InventoryItem, error) {
	query := `SELECT id, item_name, unit_of_measure, stock_on_hand, updated_at FROM inventory_items ORDER BY item_name`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list inventory", zap.Error(err))
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	var items []entity.InventoryItem
	for rows.Next() {
		var i entity.InventoryItem
		if err := rows.Scan(&i.ID, &i.ItemName, &i.UnitOfMeasure, &i.StockOnHand, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *InventoryRepository) Create(ctx context.Context, i *entity.InventoryItem) error {
	result, err := getExecutor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO inventory_items (item_name, unit_of_measure, stock_on_hand) VALUES (?, ?, ?)`,
		i.ItemName, i.UnitOfMeasure, i.StockOnHand)
	if err != nil {
		r.logger.Error("Failed to create inventory item", zap.Error(err))
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	i.ID = id
	return nil
}

func (r *InventoryRepository) Update(ctx context.Context, i *entity.InventoryItem) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx,
		`UPDATE inventory_items SET item_name = ?, unit_of_measure = ?, stock_on_hand = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		i.ItemName, i.UnitOfMeasure, i.StockOnHand, i.ID)
	if err != nil {
		r.logger.Error("Failed to update inventory item", zap.Int64("id", i.ID), zap.Error(err))
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	return nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id int64) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM inventory_items WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete inventory item", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return nil
}

// Verify interface compliance
var (
	_ port.DepartmentRepository = (*DepartmentRepository)(nil)
	_ port.LocationRepository   = (*LocationRepository)(nil)
	_ port.VendorRepository     = (*VendorRepository)(nil)
	_ port.InventoryRepository  = (*InventoryRepository)(nil)
)
