package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := NewJWTService("secret")
	require.NoError(t, err)

	token, err := svc.GenerateAdminJWT("018f-admin", "ops@treadle.example", "super_admin")
	require.NoError(t, err)

	claims, err := svc.VerifyAdminJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "018f-admin", claims.AdminID)
	assert.Equal(t, "ops@treadle.example", claims.Email)
	assert.Equal(t, "super_admin", claims.Role)
	assert.Equal(t, adminTokenIssuer, claims.Issuer)
}

func TestJWTService_RejectsForeignAndExpiredTokens(t *testing.T) {
	a, _ := NewJWTService("secret-a")
	b, _ := NewJWTService("secret-b")

	token, err := a.GenerateAdminJWT("id", "a@example.com", "admin")
	require.NoError(t, err)
	_, err = b.VerifyAdminJWT(token)
	assert.Error(t, err)

	issued := time.Now()
	a.now = func() time.Time { return issued }
	token, err = a.GenerateAdminJWT("id", "a@example.com", "admin")
	require.NoError(t, err)

	a.now = func() time.Time { return issued.Add(adminTokenLifetime + time.Minute) }
	_, err = a.VerifyAdminJWT(token)
	assert.Error(t, err)
}

func TestJWTService_Validation(t *testing.T) {
	_, err := NewJWTService("")
	assert.Error(t, err)

	svc, _ := NewJWTService("secret")
	_, err = svc.GenerateAdminJWT("", "a@example.com", "admin")
	assert.Error(t, err)

	_, err = svc.VerifyAdminJWT("not-a-token")
	assert.Error(t, err)
}

func TestGlobalJWTHelpers(t *testing.T) {
	prev := jwtService
	t.Cleanup(func() { jwtService = prev })

	jwtService = nil
	_, err := GenerateAdminJWT("id", "a@example.com", "admin")
	assert.ErrorIs(t, err, ErrJWTNotInitialised)

	require.NoError(t, InitJWTService("secret"))
	token, err := GenerateAdminJWT("id", "a@example.com", "admin")
	require.NoError(t, err)
	claims, err := VerifyAdminJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "id", claims.AdminID)
}
