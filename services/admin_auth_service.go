package services

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"golang.org/x/crypto/bcrypt"
)

// MinAdminPasswordLength is enforced by the seeder.
const MinAdminPasswordLength = 8

// inactiveAfter marks an admin inactive when they have not logged in for this long
const inactiveAfter = 7 * 24 * time.Hour

// AdminAuthService handles admin authentication operations
type AdminAuthService struct{}

// NewAdminAuthService creates a new admin auth service
func NewAdminAuthService() *AdminAuthService {
	return &AdminAuthService{}
}

// ════════════════════════════════════════════════════════════
// Password Management
// ════════════════════════════════════════════════════════════

// HashPassword hashes a password using bcrypt
func (s *AdminAuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if a password matches its bcrypt hash
func (s *AdminAuthService) VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword checks the minimum length
func (s *AdminAuthService) ValidatePassword(password string) bool {
	return len(password) >= MinAdminPasswordLength
}

// HashToken hashes a token using SHA256 for storage in database
func (s *AdminAuthService) HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// ════════════════════════════════════════════════════════════
// Admin Status Management
// ════════════════════════════════════════════════════════════

// GetAdminStatus calculates the displayed status:
// suspended stays suspended, no login within 7 days is inactive, otherwise active.
func (s *AdminAuthService) GetAdminStatus(currentStatus string, lastLoginAt *time.Time, now time.Time) string {
	if currentStatus == models.AdminStatusSuspended {
		return models.AdminStatusSuspended
	}
	if lastLoginAt != nil && now.Sub(*lastLoginAt) > inactiveAfter {
		return models.AdminStatusInactive
	}
	return models.AdminStatusActive
}

// ════════════════════════════════════════════════════════════
// Global Instance
// ════════════════════════════════════════════════════════════

var adminAuthService *AdminAuthService

// GetAdminAuthService returns the global admin auth service instance
func GetAdminAuthService() *AdminAuthService {
	if adminAuthService == nil {
		adminAuthService = NewAdminAuthService()
	}
	return adminAuthService
}
