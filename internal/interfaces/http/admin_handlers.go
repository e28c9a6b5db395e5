package http

import (
	"github.com/gin-gonic/gin"

	"github.com/procurehub/procurehub/internal/domain/entity"
)

// registerMasterRoutes wires the admin reference data endpoints. Each master
// gets its own typed handler set rather than a shared dynamic endpoint, so an
// unknown resource name is a routing 404 and every payload is bound to a
// concrete type.
func registerMasterRoutes(g *gin.RouterGroup, h *Handlers) {
	g.GET("/departments", h.ListDepartments)
	g.POST("/departments", h.CreateDepartment)
	g.PUT("/departments/:id", h.UpdateDepartment)
	g.DELETE("/departments/:id", h.DeleteDepartment)

	g.GET("/locations", h.ListLocations)
	g.POST("/locations", h.CreateLocation)
	g.PUT("/locations/:id", h.UpdateLocation)
	g.DELETE("/locations/:id", h.DeleteLocation)

	g.GET("/vendors", h.ListVendors)
	g.POST("/vendors", h.CreateVendor)
	g.PUT("/vendors/:id", h.UpdateVendor)
	g.DELETE("/vendors/:id", h.DeleteVendor)

	g.GET("/inventory", h.ListInventory)
	g.POST("/inventory", h.CreateInventoryItem)
	g.PUT("/inventory/:id", h.UpdateInventoryItem)
	g.DELETE("/inventory/:id", h.DeleteInventoryItem)

	g.GET("/workflows", h.ListMatrixEntries)
	g.POST("/workflows", h.CreateMatrixEntry)
	g.PUT("/workflows/:id", h.UpdateMatrixEntry)
	g.DELETE("/workflows/:id", h.DeleteMatrixEntry)

	g.GET("/users", h.ListUsers)
}

// DepartmentPayload is the department master body
type DepartmentPayload struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// ListDepartments handles GET /api/admin/departments
func (h *Handlers) ListDepartments(c *gin.Context) {
	departments, err := h.services.Master.Departments(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, departments)
}

// CreateDepartment handles POST /api/admin/departments
func (h *Handlers) CreateDepartment(c *gin.Context) {
	var payload DepartmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respondBadRequest(c, "code and name are required")
		return
	}

	department := &entity.Department{Code: payload.Code, Name: payload.Name}
	if err := h.services.Master.CreateDepartment(c.Request.Context(), department); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondCreated(c, department)
}

// UpdateDepartment handles PUT /api/admin/departments/:id
func (h *Handlers) UpdateDepartment(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var payload DepartmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respondBadRequest(c, "code and name are required")
		return
	}

	department := &entity.Department{ID: id, Code: payload.Code, Name: payload.Name}
	if err := h.services.Master.UpdateDepartment(c.Request.Context(), department); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, department)
}

// DeleteDepartment handles DELETE /api/admin/departments/:id
func (h *Handlers) DeleteDepartment(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Master.DeleteDepartment(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, gin.H{"message": "department deleted"})
}

// LocationPayload is the location master body
type LocationPayload struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// ListLocations handles GET /api/admin/locations
func (h *Handlers) ListLocations(c *gin.Context) {
	locations, err := h.services.Master.Locations(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, locations)
}

// CreateLocation handles POST /api/admin/locations
func (h *Handlers) CreateLocation(c *gin.Context) {
	var payload LocationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respondBadRequest(c, "code and name are required")
		return
	}

	location := &entity.Location{Code: payload.Code, Name: payload.Name}
	if err := h.services.Master.CreateLocation(c.Request.Context(), location); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondCreated(c, location)
}

// UpdateLocation handles PUT /api/admin/locations/:id
func (h *Handlers) UpdateLocation(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var payload LocationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respondBadRequest(c, "code and name are required")
		return
	}

	location := &entity.Location{ID: id, Code: payload.Code, Name: payload.Name}
	if err := h.services.Master.UpdateLocation(c.Request.Context(), location); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, location)
}

// DeleteLocation handles DELETE /api/admin/locations/:id
func (h *Handlers) DeleteLocation(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Master.DeleteLocation(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, gin.H{"message": "location deleted"})
}

// VendorPayload is the vendor master body
type VendorPayload struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
}

// ListVendors handles GET /api/admin/vendors
func (h *Handlers) ListVendors(c *gin.Context) {
	vendors, err := h.services.Master.Vendors(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, vendors)
}

// CreateVendor handles POST /api/admin/vendors
func (h *Handlers) CreateVendor(c *gin.Context) {
	var payload VendorPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respondBadRequest(c, "name is required")
		return
	}

	vendor := &entity.Vendor{Name: payload.Name, Email: payload.Email}
	if err := h.services.Master.CreateVendor(c.Request.Context(), vendor); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondCreated(c, vendor)
}

// UpdateVendor handles PUT /api/admin/vendors/:id
func (h *Handlers) UpdateVendor(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var payload VendorPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respondBadRequest(c, "name is required")
		return
	}

	vendor := &entity.Vendor{ID: id, Name: payload.Name, Email: payload.Email}
	if err := h.services.Master.UpdateVendor(c.Request.Context(), vendor); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, vendor)
}

// DeleteVendor handles DELETE /api/admin/vendors/:id
func (h *Handlers) DeleteVendor(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Master.DeleteVendor(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, gin.H{"message": "vendor deleted"})
}

// InventoryPayload is the inventory master body
type InventoryPayload struct {
	ItemName      string     `json:"item_name" binding:"required"`
	UnitOfMeasure string     `json:"unit_of_measure"`
	StockOnHand   flexNumber `json:"stock_on_hand"`
}

// ListInventory handles GET /api/admin/inventory
func (h *Handlers) ListInventory(c *gin.Context) {
	items, err := h.services.Master.Inventory(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, items)
}

func (h *Handlers) bindInventory(c *gin.Context) (*entity.InventoryItem, bool) {
	var payload InventoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respondBadRequest(c, "item_name is required")
		return nil, false
	}

	stock := 0
	if payload.StockOnHand != "" {
		var err error
		stock, err = payload.StockOnHand.Int()
		if err != nil {
			h.respondBadRequest(c, "stock_on_hand must be a whole number")
			return nil, false
		}
	}

	return &entity.InventoryItem{
		ItemName:      payload.ItemName,
		UnitOfMeasure: payload.UnitOfMeasure,
		StockOnHand:   stock,
	}, true
}

// CreateInventoryItem handles POST /api/admin/inventory
func (h *Handlers) CreateInventoryItem(c *gin.Context) {
	item, ok := h.bindInventory(c)
	if !ok {
		return
	}
	if err := h.services.Master.CreateInventoryItem(c.Request.Context(), item); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondCreated(c, item)
}

// UpdateInventoryItem handles PUT /api/admin/inventory/:id
func (h *Handlers) UpdateInventoryItem(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	item, ok := h.bindInventory(c)
	if !ok {
		return
	}
	item.ID = id
	if err := h.services.Master.UpdateInventoryItem(c.Request.Context(), item); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, item)
}

// DeleteInventoryItem handles DELETE /api/admin/inventory/:id
func (h *Handlers) DeleteInventoryItem(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Master.DeleteInventoryItem(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, gin.H{"message": "inventory item deleted"})
}

// MatrixEntryPayload is the approval matrix body
type MatrixEntryPayload struct {
	Department    string     `json:"department" binding:"required"`
	Location      string     `json:"location" binding:"required"`
	ApprovalLevel flexNumber `json:"approval_level" binding:"required"`
	ApproverID    flexNumber `json:"approver_id" binding:"required"`
}

// ListMatrixEntries handles GET /api/admin/workflows
func (h *Handlers) ListMatrixEntries(c *gin.Context) {
	entries, err := h.services.Master.ApprovalMatrix(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, entries)
}

func (h *Handlers) bindMatrixEntry(c *gin.Context) (*entity.ApprovalWorkflowEntry, bool) {
	var payload MatrixEntryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respondBadRequest(c, "department, location, approval_level and approver_id are required")
		return nil, false
	}

	level, err := payload.ApprovalLevel.Int()
	if err != nil {
		h.respondBadRequest(c, "approval_level must be a whole number")
		return nil, false
	}
	approverID, err := payload.ApproverID.Int()
	if err != nil {
		h.respondBadRequest(c, "approver_id must be a whole number")
		return nil, false
	}

	return &entity.ApprovalWorkflowEntry{
		Department:    payload.Department,
		Location:      payload.Location,
		ApprovalLevel: level,
		ApproverID:    int64(approverID),
	}, true
}

// CreateMatrixEntry handles POST /api/admin/workflows
func (h *Handlers) CreateMatrixEntry(c *gin.Context) {
	entry, ok := h.bindMatrixEntry(c)
	if !ok {
		return
	}
	if err := h.services.Master.CreateMatrixEntry(c.Request.Context(), entry); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondCreated(c, entry)
}

// UpdateMatrixEntry handles PUT /api/admin/workflows/:id
func (h *Handlers) UpdateMatrixEntry(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	entry, ok := h.bindMatrixEntry(c)
	if !ok {
		return
	}
	entry.ID = id
	if err := h.services.Master.UpdateMatrixEntry(c.Request.Context(), entry); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, entry)
}

// DeleteMatrixEntry handles DELETE /api/admin/workflows/:id
func (h *Handlers) DeleteMatrixEntry(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Master.DeleteMatrixEntry(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, gin.H{"message": "workflow entry deleted"})
}

// ListUsers handles GET /api/admin/users
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.services.Master.Users(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, users)
}
