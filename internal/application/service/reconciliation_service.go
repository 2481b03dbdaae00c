package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/petrodesk/station-api/internal/domain/repository"
	"github.com/petrodesk/station-api/pkg/apperror"
	"github.com/petrodesk/station-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ReconciliationService repairs the consistency chain behind a cash
// settlement's credit collections: every credit entry must end up with a
// Sale, a CreditSale receivable and a ledger CreditTransaction, and the
// customer balance must reflect it exactly once. Safe to run repeatedly;
// existing artifacts are recognized and only the missing ones are created.
type ReconciliationService struct {
	txManager      repository.TxManager
	cashRecordRepo repository.CashRecordRepository
	detailRepo     repository.CreditSaleDetailRepository
	saleRepo       repository.SaleRepository
	creditSaleRepo repository.CreditSaleRepository
	creditTxnRepo  repository.CreditTransactionRepository
	customerRepo   repository.CreditCustomerRepository
	settingsRepo   repository.SettingsRepository
	userRepo       repository.UserRepository
	logger         *logrus.Logger
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(
	txManager repository.TxManager,
	cashRecordRepo repository.CashRecordRepository,
	detailRepo repository.CreditSaleDetailRepository,
	saleRepo repository.SaleRepository,
	creditSaleRepo repository.CreditSaleRepository,
	creditTxnRepo repository.CreditTransactionRepository,
	customerRepo repository.CreditCustomerRepository,
	settingsRepo repository.SettingsRepository,
	userRepo repository.UserRepository,
	logger *logrus.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		txManager:      txManager,
		cashRecordRepo: cashRecordRepo,
		detailRepo:     detailRepo,
		saleRepo:       saleRepo,
		creditSaleRepo: creditSaleRepo,
		creditTxnRepo:  creditTxnRepo,
		customerRepo:   customerRepo,
		settingsRepo:   settingsRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// ReconcileResult reports the outcome of reconciling one settlement
type ReconcileResult struct {
	SettlementID uuid.UUID `json:"settlement_id"`
	Success      bool      `json:"success"`
	Messages     []string  `json:"messages"`
}

// creditEntry is one customer's share of a settlement's credit, resolved
// either from the itemized detail rows or the legacy single-customer field.
type creditEntry struct {
	CustomerID uuid.UUID
	Amount     decimal.Decimal
}

// ReconcileSettlement repairs all credit artifacts of one settlement inside
// a single transaction. actorID stamps any ledger entries it has to create.
func (s *ReconciliationService) ReconcileSettlement(ctx context.Context, settlementID, actorID uuid.UUID) (*ReconcileResult, error) {
	record, err := s.cashRecordRepo.GetByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Settlement record")
	}

	result := &ReconcileResult{SettlementID: settlementID, Messages: []string{}}

	if !record.HasCredit() {
		result.Messages = append(result.Messages, "Settlement has no credit collections to reconcile")
		return result, nil
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		entries, err := s.resolveEntries(ctx, record)
		if err != nil {
			return err
		}

		for _, entry := range entries {
			if err := s.reconcileEntry(ctx, record, entry, settings.CreditTermDays, actorID, result); err != nil {
				return err
			}
		}

		if record.Status != enum.RecordStatusReconciled {
			if err := s.cashRecordRepo.UpdateStatus(ctx, record.ID, enum.RecordStatusReconciled); err != nil {
				return err
			}
			result.Messages = append(result.Messages, "Settlement marked as reconciled")
		}
		return nil
	})
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"settlement_id": settlementID,
			"error":         err,
		}).Error("settlement reconciliation rolled back")
		return nil, err
	}

	result.Success = true
	if len(result.Messages) == 0 {
		result.Messages = append(result.Messages, "Settlement already consistent, nothing to repair")
	}

	s.logger.WithFields(logrus.Fields{
		"settlement_id": settlementID,
		"repairs":       len(result.Messages),
	}).Info("settlement reconciled")

	return result, nil
}

// resolveEntries returns the per-customer credit breakdown of a record.
// Records created before itemized details existed fall back to the legacy
// single-customer field carrying the full credit amount.
func (s *ReconciliationService) resolveEntries(ctx context.Context, record *entity.DailyCashRecord) ([]creditEntry, error) {
	details, err := s.detailRepo.GetByRecordID(ctx, record.ID)
	if err != nil {
		return nil, err
	}

	if len(details) > 0 {
		entries := make([]creditEntry, 0, len(details))
		for _, d := range details {
			if !d.Amount.IsPositive() {
				continue
			}
			entries = append(entries, creditEntry{CustomerID: d.CustomerID, Amount: d.Amount})
		}
		if len(entries) == 0 {
			return nil, apperror.NewBadRequestError("Credit entries carry no positive amounts")
		}
		return entries, nil
	}

	if record.CreditCustomerID != nil {
		return []creditEntry{{CustomerID: *record.CreditCustomerID, Amount: record.CollectedCredit}}, nil
	}

	return nil, apperror.NewBadRequestError("Settlement has credit collections but no customer attribution")
}

func (s *ReconciliationService) reconcileEntry(
	ctx context.Context,
	record *entity.DailyCashRecord,
	entry creditEntry,
	creditTermDays int,
	actorID uuid.UUID,
	result *ReconcileResult,
) error {
	customer, err := s.customerRepo.GetByID(ctx, entry.CustomerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError(fmt.Sprintf("Credit customer %s", entry.CustomerID))
	}

	sale, created, err := s.resolveSale(ctx, record, entry, creditTermDays, actorID)
	if err != nil {
		return err
	}
	if created {
		result.Messages = append(result.Messages,
			fmt.Sprintf("Created sale %s for %s (%s)", sale.InvoiceNo, customer.Name, entry.Amount.StringFixed(2)))
	}

	creditSale, err := s.creditSaleRepo.GetBySaleID(ctx, sale.ID)
	if err != nil {
		return err
	}
	if creditSale == nil {
		// Hand-entered settlement sales may not carry a due date
		dueDate := record.RecordDate.AddDate(0, 0, creditTermDays)
		if sale.DueDate != nil {
			dueDate = *sale.DueDate
		}
		creditSale = &entity.CreditSale{
			CustomerID:      entry.CustomerID,
			SaleID:          sale.ID,
			CreditAmount:    entry.Amount,
			RemainingAmount: entry.Amount,
			DueDate:         dueDate,
			Status:          enum.CreditStatusPending,
		}
		if err := s.creditSaleRepo.Create(ctx, creditSale); err != nil {
			return err
		}
		// The receivable is the authority on whether this credit has been
		// applied, so the balance moves only when it is first created.
		if err := s.customerRepo.IncrementBalance(ctx, entry.CustomerID, entry.Amount); err != nil {
			return err
		}
		result.Messages = append(result.Messages,
			fmt.Sprintf("Created receivable for %s and increased balance by %s", customer.Name, entry.Amount.StringFixed(2)))
	}

	referenceNo := record.ID.String()
	txn, err := s.creditTxnRepo.GetByReference(ctx, referenceNo, entry.CustomerID, enum.TransactionTypeSale)
	if err != nil {
		return err
	}
	if txn == nil {
		// Balance read back after any increment so the snapshot includes it.
		fresh, err := s.customerRepo.GetByID(ctx, entry.CustomerID)
		if err != nil {
			return err
		}
		txn = &entity.CreditTransaction{
			CustomerID:   entry.CustomerID,
			SaleID:       &sale.ID,
			Type:         enum.TransactionTypeSale,
			Amount:       entry.Amount,
			ReferenceNo:  referenceNo,
			BalanceAfter: fresh.CurrentBalance,
			Notes:        fmt.Sprintf("Credit sale from cash settlement on %s", record.RecordDate.Format("2006-01-02")),
			CreatedBy:    actorID,
		}
		if err := s.creditTxnRepo.Create(ctx, txn); err != nil {
			return err
		}
		result.Messages = append(result.Messages,
			fmt.Sprintf("Recorded ledger entry for %s", customer.Name))
	} else if txn.SaleID == nil {
		if err := s.creditTxnRepo.UpdateSaleID(ctx, txn.ID, sale.ID); err != nil {
			return err
		}
		result.Messages = append(result.Messages,
			fmt.Sprintf("Linked existing ledger entry for %s to sale %s", customer.Name, sale.InvoiceNo))
	}

	return nil
}

// resolveSale finds the settlement-backed sale for an entry or creates it.
// Lookup tries the per-customer invoice format first, then the legacy
// single-customer format for settlements reconciled before itemization.
func (s *ReconciliationService) resolveSale(
	ctx context.Context,
	record *entity.DailyCashRecord,
	entry creditEntry,
	creditTermDays int,
	actorID uuid.UUID,
) (*entity.Sale, bool, error) {
	invoiceNo := utils.SettlementInvoiceNo(record.ID, entry.CustomerID)

	sale, err := s.saleRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, false, err
	}
	if sale == nil {
		legacy, err := s.saleRepo.GetByInvoiceNo(ctx, utils.LegacySettlementInvoiceNo(record.ID))
		if err != nil {
			return nil, false, err
		}
		if legacy != nil && legacy.CustomerID != nil && *legacy.CustomerID == entry.CustomerID {
			sale = legacy
		}
	}
	if sale != nil {
		return sale, false, nil
	}

	dueDate := record.RecordDate.AddDate(0, 0, creditTermDays)
	creditStatus := enum.CreditStatusPending
	sale = &entity.Sale{
		InvoiceNo:     invoiceNo,
		SaleDate:      record.RecordDate,
		StaffID:       &record.StaffID,
		UserID:        actorID,
		CustomerID:    &entry.CustomerID,
		SaleType:      enum.SaleTypeFuel,
		PaymentStatus: enum.PaymentStatusCredit,
		TotalAmount:   entry.Amount,
		NetAmount:     entry.Amount,
		DueDate:       &dueDate,
		CreditStatus:  &creditStatus,
		ReferenceNo:   record.ID.String(),
	}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, false, err
	}
	return sale, true, nil
}

// ReconcileAll reconciles every pending settlement that carries credit.
// A failing settlement is reported and skipped; the rest continue. When no
// actor is given (the nightly job), artifacts are stamped with the default
// admin user.
func (s *ReconciliationService) ReconcileAll(ctx context.Context, actorID uuid.UUID) ([]ReconcileResult, error) {
	if actorID == uuid.Nil {
		admin, err := s.userRepo.GetDefaultAdmin(ctx)
		if err != nil {
			return nil, err
		}
		if admin == nil {
			return nil, apperror.NewBadRequestError("No admin user available to attribute reconciliation to")
		}
		actorID = admin.ID
	}

	records, err := s.cashRecordRepo.ListUnreconciledWithCredit(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]ReconcileResult, 0, len(records))
	for _, record := range records {
		res, err := s.ReconcileSettlement(ctx, record.ID, actorID)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"settlement_id": record.ID,
				"error":         err,
			}).Warn("skipping settlement that failed to reconcile")
			results = append(results, ReconcileResult{
				SettlementID: record.ID,
				Success:      false,
				Messages:     []string{err.Error()},
			})
			continue
		}
		results = append(results, *res)
	}
	return results, nil
}

// EntrySyncStatus describes the consistency of one credit entry
type EntrySyncStatus struct {
	CustomerID       uuid.UUID       `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	Amount           decimal.Decimal `json:"amount"`
	InvoiceNo        string          `json:"invoice_no"`
	SaleExists       bool            `json:"sale_exists"`
	ReceivableExists bool            `json:"receivable_exists"`
	LedgerExists     bool            `json:"ledger_exists"`
	LedgerLinked     bool            `json:"ledger_linked"`
}

// SyncStatusReport summarizes whether a settlement needs reconciliation
type SyncStatusReport struct {
	SettlementID uuid.UUID         `json:"settlement_id"`
	Status       enum.RecordStatus `json:"status"`
	Consistent   bool              `json:"consistent"`
	Entries      []EntrySyncStatus `json:"entries"`
}

// SyncStatus inspects a settlement's credit artifacts without writing
// anything, reporting which pieces are present and which a reconciliation
// run would create.
func (s *ReconciliationService) SyncStatus(ctx context.Context, settlementID uuid.UUID) (*SyncStatusReport, error) {
	record, err := s.cashRecordRepo.GetByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Settlement record")
	}

	report := &SyncStatusReport{
		SettlementID: settlementID,
		Status:       record.Status,
		Consistent:   true,
		Entries:      []EntrySyncStatus{},
	}
	if !record.HasCredit() {
		return report, nil
	}

	entries, err := s.resolveEntries(ctx, record)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		status := EntrySyncStatus{
			CustomerID: entry.CustomerID,
			Amount:     entry.Amount,
			InvoiceNo:  utils.SettlementInvoiceNo(record.ID, entry.CustomerID),
		}

		if customer, err := s.customerRepo.GetByID(ctx, entry.CustomerID); err != nil {
			return nil, err
		} else if customer != nil {
			status.CustomerName = customer.Name
		}

		sale, err := s.saleRepo.GetByInvoiceNo(ctx, status.InvoiceNo)
		if err != nil {
			return nil, err
		}
		if sale == nil {
			legacy, err := s.saleRepo.GetByInvoiceNo(ctx, utils.LegacySettlementInvoiceNo(record.ID))
			if err != nil {
				return nil, err
			}
			if legacy != nil && legacy.CustomerID != nil && *legacy.CustomerID == entry.CustomerID {
				sale = legacy
				status.InvoiceNo = legacy.InvoiceNo
			}
		}
		status.SaleExists = sale != nil

		if sale != nil {
			creditSale, err := s.creditSaleRepo.GetBySaleID(ctx, sale.ID)
			if err != nil {
				return nil, err
			}
			status.ReceivableExists = creditSale != nil
		}

		txn, err := s.creditTxnRepo.GetByReference(ctx, record.ID.String(), entry.CustomerID, enum.TransactionTypeSale)
		if err != nil {
			return nil, err
		}
		status.LedgerExists = txn != nil
		status.LedgerLinked = txn != nil && txn.SaleID != nil

		if !status.SaleExists || !status.ReceivableExists || !status.LedgerExists || !status.LedgerLinked {
			report.Consistent = false
		}
		report.Entries = append(report.Entries, status)
	}

	return report, nil
}
