package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestShortID(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d")
	assert.Equal(t, "A1B2C3D4", ShortID(id))
}

func TestSettlementInvoiceNoIsDeterministic(t *testing.T) {
	recordID := uuid.New()
	customerID := uuid.New()

	first := SettlementInvoiceNo(recordID, customerID)
	second := SettlementInvoiceNo(recordID, customerID)
	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "CASH-"))

	// Different customers on the same settlement get distinct invoices
	other := SettlementInvoiceNo(recordID, uuid.New())
	assert.NotEqual(t, first, other)
}

func TestLegacySettlementInvoiceNo(t *testing.T) {
	recordID := uuid.MustParse("a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d")
	assert.Equal(t, "CASH-A1B2C3D4", LegacySettlementInvoiceNo(recordID))
}

func TestGeneratedReferences(t *testing.T) {
	assert.True(t, strings.HasPrefix(GenerateInvoiceNo(), "INV-"))
	assert.True(t, strings.HasPrefix(GeneratePaymentRef(), "PAY-"))
	assert.NotEqual(t, GenerateInvoiceNo(), GenerateInvoiceNo())
}
