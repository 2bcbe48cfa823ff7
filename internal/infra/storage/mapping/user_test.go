package mapping

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore"
)

var ignoreUserSource = cmpopts.IgnoreFields(domain.User{}, "Source")

func TestMapper_User_StatusDecisionTable(t *testing.T) {
	tests := []struct {
		name string
		doc  docstore.Document
		want domain.UserStatus
	}{
		{"blocked beats active", docstore.Document{"isBlocked": true, "isActive": true}, domain.UserStatusInactive},
		{"deleted", docstore.Document{"isDeleted": true}, domain.UserStatusInactive},
		{"disabled", docstore.Document{"disabled": "yes"}, domain.UserStatusInactive},
		{"active flag", docstore.Document{"isActive": true}, domain.UserStatusActive},
		{"inactive flag beats legacy", docstore.Document{"isActive": false, "status": "active"}, domain.UserStatusInactive},
		{"legacy active", docstore.Document{"status": "Active"}, domain.UserStatusActive},
		{"legacy other", docstore.Document{"status": "suspended"}, domain.UserStatusInactive},
		{"verified", docstore.Document{"email_verified": true, "phone_verified": true}, domain.UserStatusActive},
		{"half verified", docstore.Document{"email_verified": true}, domain.UserStatusInactive},
		{"nothing", docstore.Document{}, domain.UserStatusInactive},
	}

	m := NewMapper(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := m.User("u1", tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, user.Status)
		})
	}
}

func TestMapper_User_NegativeWalletClamped(t *testing.T) {
	rec := &Recorder{}
	user, err := NewMapper(rec).User("u1", docstore.Document{"walletBalance": -20.5, "first_name": "Sara"})
	require.NoError(t, err)

	assert.True(t, user.WalletBalance.IsZero())
	clamps := rec.OfKind(EventClamp)
	require.Len(t, clamps, 1)
	assert.Equal(t, "walletBalance", clamps[0].Field)

	doc := NewMapper(nil).UserDocument(user)
	assert.Equal(t, -20.5, doc["walletBalance"])
}

func TestMapper_User_RoundTrip(t *testing.T) {
	m := NewMapper(nil)
	user, err := m.User("u1", docstore.Document{
		"firstName":       "Omar",
		"last_name":       "Hassan",
		"email":           "omar@example.com",
		"phoneNumber":     "+966500000000",
		"wallet_balance":  "120.75",
		"isEmailVerified": true,
		"isPhoneVerified": true,
		"fcmToken":        "abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "Omar Hassan", user.FullName())
	assert.True(t, user.WalletBalance.Amount.Equal(decimal.RequireFromString("120.75")))
	assert.Equal(t, domain.UserStatusActive, user.Status)

	doc := m.UserDocument(user)
	assert.Equal(t, "Omar", doc["firstName"])
	assert.Equal(t, "120.75", doc["wallet_balance"])
	assert.Equal(t, "abc", doc["fcmToken"])
	assert.NotContains(t, doc, "isActive")
	assert.NotContains(t, doc, "nationality")

	again, err := m.User("u1", doc)
	require.NoError(t, err)
	if diff := cmp.Diff(user, again, ignoreUserSource); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, doc, m.UserDocument(again))
}

func TestMapper_UserDocument_ActivationClearsBlock(t *testing.T) {
	m := NewMapper(nil)
	user, err := m.User("u1", docstore.Document{"isBlocked": true, "email": "a@b.c"})
	require.NoError(t, err)
	require.Equal(t, domain.UserStatusInactive, user.Status)

	user.Activate()
	doc := m.UserDocument(user)
	assert.Equal(t, false, doc["isBlocked"])
	assert.Equal(t, true, doc["isActive"])

	again, err := m.User("u1", doc)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusActive, again.Status)
}
