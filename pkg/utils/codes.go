package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ShortID returns the first 8 hex characters of a UUID, uppercased. Used to
// build human-readable invoice and reference numbers.
func ShortID(id uuid.UUID) string {
	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

// SettlementInvoiceNo builds the deterministic invoice number for credit
// reconciled from a cash settlement. Including the customer keeps invoices
// distinct when one settlement covers several customers.
func SettlementInvoiceNo(recordID, customerID uuid.UUID) string {
	return fmt.Sprintf("CASH-%s-%s", ShortID(recordID), ShortID(customerID))
}

// LegacySettlementInvoiceNo builds the old single-customer invoice format.
// Still matched on lookup so historical reconciliations are recognized.
func LegacySettlementInvoiceNo(recordID uuid.UUID) string {
	return fmt.Sprintf("CASH-%s", ShortID(recordID))
}

// GenerateInvoiceNo generates an invoice number for a point-of-sale
// transaction.
func GenerateInvoiceNo() string {
	return "INV-" + ShortID(uuid.New())
}

// GeneratePaymentRef generates a reference number for a credit payment.
func GeneratePaymentRef() string {
	return "PAY-" + ShortID(uuid.New())
}

// GenerateProductCode generates a unique product code
func GenerateProductCode() string {
	return "PROD-" + ShortID(uuid.New())
}
