package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/giang1412/ecom/services/auth"
	"github.com/giang1412/ecom/testutils"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	db := testutils.SetupTestDB(t, auth.Models()...)
	return NewService(db, nil), db
}

func seedUser(t *testing.T, db *gorm.DB) *auth.User {
	t.Helper()
	role := auth.Role{Name: auth.RoleClient}
	require.NoError(t, db.Create(&role).Error)

	user := auth.User{
		Email:      "a@x.com",
		Name:       "Alice",
		Password:   "hashed",
		TOTPSecret: "secret",
		RoleID:     role.ID,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestService_Me(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db)

	me, err := svc.Me(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", me.Email)
	assert.Equal(t, auth.RoleClient, me.Role.Name)
	assert.Empty(t, me.Password, "secret fields are stripped")
	assert.Empty(t, me.TOTPSecret)

	_, err = svc.Me(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_Update(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db)

	updated, err := svc.Update(user.ID, UpdateRequest{Name: "Alice B", PhoneNumber: "555-0101"})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "555-0101", updated.PhoneNumber)

	_, err = svc.Update(999, UpdateRequest{Name: "Nobody"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
