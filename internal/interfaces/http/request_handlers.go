package http

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/procurehub/procurehub/internal/application/port"
	"github.com/procurehub/procurehub/internal/application/service"
	"github.com/procurehub/procurehub/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// flexNumber accepts a JSON number or a numeric string. Clients are
// inconsistent about quoting quantities and costs; anything that does not
// parse as a number is rejected at the handler boundary.
type flexNumber string

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		s = strings.TrimSpace(unquoted)
	}
	*n = flexNumber(s)
	return nil
}

func (n flexNumber) Int() (int, error) {
	return strconv.Atoi(string(n))
}

func (n flexNumber) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(string(n))
}

// SubmitRequestPayload is the purchase request submission body
type SubmitRequestPayload struct {
	Title                 string `json:"title" binding:"required"`
	Department            string `json:"department" binding:"required"`
	Location              string `json:"location" binding:"required"`
	RequestDate           string `json:"request_date" binding:"required"`
	BusinessJustification string `json:"business_justification"`
}

// ResubmitRequestPayload carries the editable fields of a returned request
type ResubmitRequestPayload struct {
	Title                 string `json:"title"`
	RequestDate           string `json:"request_date"`
	BusinessJustification string `json:"business_justification"`
}

// LineItemPayload is the line item create/update body
type LineItemPayload struct {
	ItemName         string     `json:"item_name" binding:"required"`
	RequiredQuantity flexNumber `json:"required_quantity" binding:"required"`
	UnitOfMeasure    string     `json:"unit_of_measure"`
	RequiredByDate   string     `json:"required_by_date"`
	DeliveryLocation string     `json:"delivery_location"`
	EstimatedCost    flexNumber `json:"estimated_cost" binding:"required"`
	Justification    string     `json:"justification"`
	StockAvailable   flexNumber `json:"stock_available"`
}

// ApprovalActionPayload carries the optional approver comments
type ApprovalActionPayload struct {
	Comments string `json:"comments"`
}

// RequestDetailResponse bundles a request with its line items
type RequestDetailResponse struct {
	Request   *entity.PurchaseRequest `json:"request"`
	LineItems []entity.LineItem       `json:"line_items"`
}

// SubmitRequest handles POST /api/purchase-requests
func (h *Handlers) SubmitRequest(c *gin.Context) {
	var payload SubmitRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respondBadRequest(c, "title, department, location and request_date are required")
		return
	}

	requestDate, err := time.Parse(dateLayout, payload.RequestDate)
	if err != nil {
		h.respondBadRequest(c, "request_date must be YYYY-MM-DD")
		return
	}

	request, err := h.services.Request.Submit(c.Request.Context(), actorFrom(c), service.SubmitRequestInput{
		Title:                 payload.Title,
		Department:            payload.Department,
		Location:              payload.Location,
		RequestDate:           requestDate,
		BusinessJustification: payload.BusinessJustification,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondCreated(c, request)
}

// ListRequests handles GET /api/purchase-requests
func (h *Handlers) ListRequests(c *gin.Context) {
	filter := port.RequestFilter{
		Status:     c.Query("status"),
		Department: c.Query("department"),
		Location:   c.Query("location"),
		Search:     c.Query("search"),
	}

	// pending_approval=true scopes the listing to requests awaiting the
	// caller's own approval
	if c.Query("pending_approval") == "true" {
		filter.CurrentApproverID = actorFrom(c).UserID
		filter.Status = string(entity.StatusPending)
	}

	requests, err := h.services.Request.List(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, requests)
}

// GetRequest handles GET /api/purchase-requests/:id
func (h *Handlers) GetRequest(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	request, err := h.services.Request.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	items, err := h.services.LineItem.ListByRequest(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, RequestDetailResponse{Request: request, LineItems: items})
}

// ResubmitRequest handles PUT /api/purchase-requests/:id/resubmit
func (h *Handlers) ResubmitRequest(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var payload ResubmitRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respondBadRequest(c, "invalid resubmit payload")
		return
	}

	input := service.ResubmitRequestInput{
		Title:                 payload.Title,
		BusinessJustification: payload.BusinessJustification,
	}
	if payload.RequestDate != "" {
		requestDate, err := time.Parse(dateLayout, payload.RequestDate)
		if err != nil {
			h.respondBadRequest(c, "request_date must be YYYY-MM-DD")
			return
		}
		input.RequestDate = requestDate
	}

	request, err := h.services.Request.Resubmit(c.Request.Context(), actorFrom(c), id, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, request)
}

// ListLineItems handles GET /api/purchase-requests/:id/line-items
func (h *Handlers) ListLineItems(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.services.LineItem.ListByRequest(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, items)
}

// CreateLineItem handles POST /api/purchase-requests/:id/line-items
func (h *Handlers) CreateLineItem(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	input, ok := h.bindLineItem(c)
	if !ok {
		return
	}

	item, err := h.services.LineItem.Create(c.Request.Context(), id, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondCreated(c, item)
}

// UpdateLineItem handles PUT /api/purchase-requests/:id/line-items/:itemId
func (h *Handlers) UpdateLineItem(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}

	input, ok := h.bindLineItem(c)
	if !ok {
		return
	}

	item, err := h.services.LineItem.Update(c.Request.Context(), id, itemID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, item)
}

// DeleteLineItem handles DELETE /api/purchase-requests/:id/line-items/:itemId
func (h *Handlers) DeleteLineItem(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}

	if err := h.services.LineItem.Delete(c.Request.Context(), id, itemID); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, gin.H{"message": "line item deleted"})
}

// ApproveRequest handles POST /api/purchase-requests/:id/approve
func (h *Handlers) ApproveRequest(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var payload ApprovalActionPayload
	_ = c.ShouldBindJSON(&payload)

	outcome, err := h.services.Approval.Approve(c.Request.Context(), actorFrom(c), id, payload.Comments)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, outcome)
}

// RejectRequest handles POST /api/purchase-requests/:id/reject
func (h *Handlers) RejectRequest(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var payload ApprovalActionPayload
	_ = c.ShouldBindJSON(&payload)

	if err := h.services.Approval.Reject(c.Request.Context(), actorFrom(c), id, payload.Comments); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, gin.H{"message": "purchase request rejected"})
}

// ReturnRequest handles POST /api/purchase-requests/:id/return
func (h *Handlers) ReturnRequest(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var payload ApprovalActionPayload
	_ = c.ShouldBindJSON(&payload)

	if err := h.services.Approval.Return(c.Request.Context(), actorFrom(c), id, payload.Comments); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, gin.H{"message": "purchase request returned for revision"})
}

// RequestHistory handles GET /api/purchase-requests/:id/history
func (h *Handlers) RequestHistory(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	history, err := h.services.Approval.History(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, history)
}

// GetWorkflow handles GET /api/workflows?department=X&location=Y
func (h *Handlers) GetWorkflow(c *gin.Context) {
	department := c.Query("department")
	location := c.Query("location")
	if department == "" || location == "" {
		h.respondBadRequest(c, "department and location are required")
		return
	}

	chain, err := h.services.Master.WorkflowFor(c.Request.Context(), department, location)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, chain)
}

// pathID parses a numeric path parameter, responding 400 on garbage
func (h *Handlers) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		h.respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// bindLineItem parses and converts the line item payload. All numeric
// conversion failures surface as 400 before the service layer runs.
func (h *Handlers) bindLineItem(c *gin.Context) (service.LineItemInput, bool) {
	var payload LineItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respondBadRequest(c, "item_name, required_quantity and estimated_cost are required")
		return service.LineItemInput{}, false
	}

	quantity, err := payload.RequiredQuantity.Int()
	if err != nil {
		h.respondBadRequest(c, "required_quantity must be a whole number")
		return service.LineItemInput{}, false
	}

	cost, err := payload.EstimatedCost.Decimal()
	if err != nil {
		h.respondBadRequest(c, "estimated_cost must be a number")
		return service.LineItemInput{}, false
	}

	stock := 0
	if payload.StockAvailable != "" {
		stock, err = payload.StockAvailable.Int()
		if err != nil {
			h.respondBadRequest(c, "stock_available must be a whole number")
			return service.LineItemInput{}, false
		}
	}

	input := service.LineItemInput{
		ItemName:         payload.ItemName,
		RequiredQuantity: quantity,
		UnitOfMeasure:    payload.UnitOfMeasure,
		DeliveryLocation: payload.DeliveryLocation,
		EstimatedCost:    cost,
		Justification:    payload.Justification,
		StockAvailable:   stock,
	}
	if payload.RequiredByDate != "" {
		requiredBy, err := time.Parse(dateLayout, payload.RequiredByDate)
		if err != nil {
			h.respondBadRequest(c, "required_by_date must be YYYY-MM-DD")
			return service.LineItemInput{}, false
		}
		input.RequiredByDate = requiredBy
	}

	return input, true
}
