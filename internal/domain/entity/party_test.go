package entity

import (
	"strings"
	"testing"

	errs "github.com/amirhossein-jamali/realty-processor/internal/domain/error"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParty(t *testing.T) {
	transactionID := uuid.New()

	t.Run("Valid person party", func(t *testing.T) {
		party, err := NewParty(transactionID, "Maria Silva", "12345678901", RoleBuyer, "maria@example.com")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, party.ID)
		assert.Equal(t, transactionID, party.TransactionID)
		assert.Equal(t, "Maria Silva", party.Name)
		assert.Equal(t, "12345678901", party.Document)
		assert.Equal(t, RoleBuyer, party.Role)
		assert.Equal(t, "maria@example.com", party.Email)
	})

	t.Run("Valid company party without email", func(t *testing.T) {
		party, err := NewParty(transactionID, "Acme Imoveis", "12345678000199", RoleBroker, "")

		require.NoError(t, err)
		assert.Equal(t, "12345678000199", party.Document)
		assert.Empty(t, party.Email)
	})

	t.Run("Name is trimmed", func(t *testing.T) {
		party, err := NewParty(transactionID, "  Joao  ", "12345678901", RoleSeller, "")

		require.NoError(t, err)
		assert.Equal(t, "Joao", party.Name)
	})

	t.Run("Empty name", func(t *testing.T) {
		_, err := NewParty(transactionID, "   ", "12345678901", RoleBuyer, "")
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Name too long", func(t *testing.T) {
		_, err := NewParty(transactionID, strings.Repeat("a", 101), "12345678901", RoleBuyer, "")
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Document with wrong length", func(t *testing.T) {
		_, err := NewParty(transactionID, "Maria", "123456", RoleBuyer, "")
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Document with letters", func(t *testing.T) {
		_, err := NewParty(transactionID, "Maria", "1234567890a", RoleBuyer, "")
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Invalid role", func(t *testing.T) {
		_, err := NewParty(transactionID, "Maria", "12345678901", PartyRole("notary"), "")
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Invalid email", func(t *testing.T) {
		_, err := NewParty(transactionID, "Maria", "12345678901", RoleBuyer, "not-an-email")
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole("buyer"))
	assert.True(t, IsValidRole("seller"))
	assert.True(t, IsValidRole("broker"))
	assert.False(t, IsValidRole("notary"))
	assert.False(t, IsValidRole(""))
	assert.False(t, IsValidRole("Buyer"))
}

func TestCheckApprovalRoster(t *testing.T) {
	testCases := []struct {
		name    string
		counts  RoleCounts
		wantErr bool
	}{
		{"One of each role", RoleCounts{RoleBuyer: 1, RoleSeller: 1, RoleBroker: 1}, false},
		{"Multiple parties per role", RoleCounts{RoleBuyer: 2, RoleSeller: 3, RoleBroker: 1}, false},
		{"Missing buyer", RoleCounts{RoleSeller: 1, RoleBroker: 1}, true},
		{"Missing seller", RoleCounts{RoleBuyer: 1, RoleBroker: 1}, true},
		{"Missing broker", RoleCounts{RoleBuyer: 1, RoleSeller: 1}, true},
		{"Empty roster", RoleCounts{}, true},
		{"Nil roster", nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckApprovalRoster(tc.counts)
			if tc.wantErr {
				assert.ErrorIs(t, err, errs.ErrUnmetPartyRequirement)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
