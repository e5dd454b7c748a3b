package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagcentrum/backend/internal/config"
	"github.com/dagcentrum/backend/internal/dto"
	"github.com/dagcentrum/backend/internal/models"
	"github.com/dagcentrum/backend/internal/testutil"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 24 * time.Hour,
	}
	return NewAuthService(testutil.OpenDB(t), cfg)
}

func TestEnsureAdminSeedsOnce(t *testing.T) {
	svc := newAuthService(t)

	require.NoError(t, svc.EnsureAdmin("beheer", "wachtwoord123", "Beheerder"))

	resp, err := svc.Login(&dto.LoginRequest{Username: "beheer", Password: "wachtwoord123"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Staff.Role)

	// A second call never overwrites the existing account.
	require.NoError(t, svc.EnsureAdmin("beheer", "ander-wachtwoord", "Beheerder"))
	_, err = svc.Login(&dto.LoginRequest{Username: "beheer", Password: "wachtwoord123"})
	assert.NoError(t, err)

	var count int64
	require.NoError(t, svc.db.Model(&models.StaffUser{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnsureAdminWithoutCredentialsIsNoop(t *testing.T) {
	svc := newAuthService(t)
	require.NoError(t, svc.EnsureAdmin("", "", ""))

	var count int64
	require.NoError(t, svc.db.Model(&models.StaffUser{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)
	require.NoError(t, svc.EnsureAdmin("beheer", "wachtwoord123", "Beheerder"))

	_, err := svc.Login(&dto.LoginRequest{Username: "beheer", Password: "fout"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Username: "onbekend", Password: "wachtwoord123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc := newAuthService(t)
	require.NoError(t, svc.EnsureAdmin("beheer", "wachtwoord123", "Beheerder"))

	login, err := svc.Login(&dto.LoginRequest{Username: "beheer", Password: "wachtwoord123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The presented token is single-use.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The rotated one still works.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: refreshed.RefreshToken})
	assert.NoError(t, err)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc := newAuthService(t)
	require.NoError(t, svc.EnsureAdmin("beheer", "wachtwoord123", "Beheerder"))

	login, err := svc.Login(&dto.LoginRequest{Username: "beheer", Password: "wachtwoord123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: login.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCreateStaff(t *testing.T) {
	svc := newAuthService(t)

	created, err := svc.CreateStaff(&dto.CreateStaffRequest{
		Username: "mvries",
		Password: "wachtwoord123",
		Name:     "Marieke de Vries",
	})
	require.NoError(t, err)
	assert.Equal(t, "staff", created.Role)

	_, err = svc.Login(&dto.LoginRequest{Username: "mvries", Password: "wachtwoord123"})
	assert.NoError(t, err)

	_, err = svc.CreateStaff(&dto.CreateStaffRequest{
		Username: "mvries",
		Password: "ander-wachtwoord",
		Name:     "Dubbel",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}
