package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/procurehub/procurehub/internal/application/port"
	"github.com/procurehub/procurehub/internal/domain/entity"
)

// ReportService produces dashboard statistics and report exports
type ReportService interface {
	Stats(ctx context.Context, actor entity.Actor) (*port.RequestStats, error)
	ListForReport(ctx context.Context, actor entity.Actor, filter port.RequestFilter) ([]*entity.PurchaseRequest, error)
	ExportXLSX(ctx context.Context, actor entity.Actor, filter port.RequestFilter) ([]byte, error)
}

type reportServiceImpl struct {
	requestRepo port.RequestRepository
	logger      Logger
}

// NewReportService creates a new ReportService
func NewReportService(requestRepo port.RequestRepository, logger Logger) ReportService {
	return &reportServiceImpl{
		requestRepo: requestRepo,
		logger:      logger,
	}
}

// Stats returns status counts: all requests for admins, own requests otherwise
func (s *reportServiceImpl) Stats(ctx context.Context, actor entity.Actor) (*port.RequestStats, error) {
	requesterID := actor.UserID
	if actor.Role == entity.RoleAdmin {
		requesterID = 0
	}

	stats, err := s.requestRepo.Stats(ctx, requesterID)
	if err != nil {
		s.logger.Error("Failed to load request stats", "error", err, "actor_id", actor.UserID)
		return nil, err
	}
	return stats, nil
}

// ListForReport returns filtered requests scoped by role
func (s *reportServiceImpl) ListForReport(ctx context.Context, actor entity.Actor, filter port.RequestFilter) ([]*entity.PurchaseRequest, error) {
	if actor.Role != entity.RoleAdmin {
		filter.RequesterID = actor.UserID
	}

	requests, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list requests for report", "error", err)
		return nil, err
	}
	return requests, nil
}

var reportHeaders = []string{
	"Requisition Number", "Title", "Department", "Location",
	"Status", "Approval Level", "Total Estimated Cost", "Request Date",
}

// ExportXLSX renders the filtered request listing as a spreadsheet
func (s *reportServiceImpl) ExportXLSX(ctx context.Context, actor entity.Actor, filter port.RequestFilter) ([]byte, error) {
	requests, err := s.ListForReport(ctx, actor, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Purchase Requests"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range reportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, req := range requests {
		values := []interface{}{
			req.RequisitionNumber,
			req.Title,
			req.Department,
			req.Location,
			string(req.Status),
			req.CurrentApprovalLevel,
			req.TotalEstimatedCost.StringFixed(2),
			req.RequestDate.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("Report exported", "rows", len(requests), "actor_id", actor.UserID)
	return buf.Bytes(), nil
}
