package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/internal/domain/repository"
	"github.com/petrodesk/station-api/pkg/apperror"
	"github.com/petrodesk/station-api/pkg/pagination"
	"github.com/xuri/excelize/v2"
)

// ReportService builds downloadable Excel reports
type ReportService struct {
	customerRepo  repository.CreditCustomerRepository
	creditTxnRepo repository.CreditTransactionRepository
	saleRepo      repository.SaleRepository
	settingsRepo  repository.SettingsRepository
}

// NewReportService creates a new report service
func NewReportService(
	customerRepo repository.CreditCustomerRepository,
	creditTxnRepo repository.CreditTransactionRepository,
	saleRepo repository.SaleRepository,
	settingsRepo repository.SettingsRepository,
) *ReportService {
	return &ReportService{
		customerRepo:  customerRepo,
		creditTxnRepo: creditTxnRepo,
		saleRepo:      saleRepo,
		settingsRepo:  settingsRepo,
	}
}

// CustomerStatement generates an Excel statement of a customer's ledger.
// Returns the file bytes and a suggested filename.
func (s *ReportService) CustomerStatement(ctx context.Context, customerID uuid.UUID) ([]byte, string, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, "", err
	}
	if customer == nil {
		return nil, "", apperror.NewNotFoundError("Credit customer")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, "", err
	}

	txns, _, err := s.creditTxnRepo.ListByCustomer(ctx, customerID,
		&pagination.PaginationParams{Page: 1, PerPage: 100})
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Statement"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", settings.StationName)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Statement for %s", customer.Name))
	f.SetCellValue(sheet, "A3", fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02 15:04")))
	f.SetCellValue(sheet, "A4", fmt.Sprintf("Current balance: %s %s", settings.Currency, customer.CurrentBalance.StringFixed(2)))

	headers := []string{"Date", "Type", "Reference", "Amount", "Balance After", "Notes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 6)
		f.SetCellValue(sheet, cell, h)
	}

	for i, txn := range txns {
		row := i + 7
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), txn.TransactionDate.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), txn.Type.String())
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), txn.ReferenceNo)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), txn.Amount.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), txn.BalanceAfter.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), txn.Notes)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("statement-%s-%s.xlsx", customer.ID, time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

// SalesReport generates an Excel report of sales in a date range
func (s *ReportService) SalesReport(ctx context.Context, start, end time.Time) ([]byte, string, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, "", err
	}

	sales, _, err := s.saleRepo.List(ctx, &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 100},
		StartDate:  &start,
		EndDate:    &end,
	})
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sales"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", settings.StationName)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Sales %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")))

	headers := []string{"Invoice", "Date", "Type", "Payment", "Total", "Discount", "Net"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(sheet, cell, h)
	}

	writeSaleRow := func(row int, sale *entity.Sale) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), sale.InvoiceNo)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), sale.SaleDate.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), sale.SaleType.String())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), sale.PaymentStatus.String())
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), sale.TotalAmount.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), sale.DiscountAmount.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), sale.NetAmount.InexactFloat64())
	}
	for i := range sales {
		writeSaleRow(i+5, &sales[i])
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("sales-%s-%s.xlsx", start.Format("20060102"), end.Format("20060102"))
	return buf.Bytes(), filename, nil
}
