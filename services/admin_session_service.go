package services

import (
	"context"
	"errors"
	"time"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSessionRevoked means the token is valid but its session was logged out
// or has expired.
var ErrSessionRevoked = errors.New("session revoked")

// AdminSessionService handles admin session operations
type AdminSessionService struct{}

// NewAdminSessionService creates a new session service
func NewAdminSessionService() *AdminSessionService {
	return &AdminSessionService{}
}

// CreateSession records a freshly issued token
func (s *AdminSessionService) CreateSession(
	ctx context.Context,
	adminID uuid.UUID,
	token string,
	ipAddress string,
	userAgent string,
) (*models.AdminSession, error) {
	now := time.Now()
	device := utils.ParseUserAgent(userAgent)
	session := &models.AdminSession{
		AdminID:        adminID,
		TokenHash:      GetAdminAuthService().HashToken(token),
		IPAddress:      ipAddress,
		UserAgent:      userAgent,
		DeviceType:     device.Type,
		Browser:        device.Browser,
		OS:             device.OS,
		LastActivityAt: now,
		ExpiresAt:      now.Add(models.SessionLifetime),
		IsActive:       true,
	}

	if err := config.CmsGorm.WithContext(ctx).Create(session).Error; err != nil {
		config.Log.Errorf("[session] failed to create session: %v", err)
		return nil, err
	}

	config.Log.Infof("[session] created session %s for admin %s", session.ID, adminID)
	return session, nil
}

// TouchSession checks that the token's session is still usable and bumps its
// last activity.
func (s *AdminSessionService) TouchSession(ctx context.Context, tokenHash string) error {
	var session models.AdminSession
	if err := config.CmsGorm.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionRevoked
		}
		return err
	}

	now := time.Now()
	if !session.IsUsable(now) {
		return ErrSessionRevoked
	}

	if err := config.CmsGorm.WithContext(ctx).
		Model(&session).
		Update("last_activity_at", now).Error; err != nil {
		config.Log.Warnf("[session] failed to update session activity: %v", err)
	}
	return nil
}

// DeactivateSession ends the session of one token (logout)
func (s *AdminSessionService) DeactivateSession(ctx context.Context, tokenHash string) error {
	if err := config.CmsGorm.WithContext(ctx).
		Model(&models.AdminSession{}).
		Where("token_hash = ? AND is_active = ?", tokenHash, true).
		Update("is_active", false).Error; err != nil {
		config.Log.Errorf("[session] failed to deactivate session: %v", err)
		return err
	}
	return nil
}

// CleanupExpiredSessions removes expired sessions and logged-out sessions
// idle for more than a week
func (s *AdminSessionService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	now := time.Now()
	result := config.CmsGorm.WithContext(ctx).
		Where("expires_at < ? OR (is_active = ? AND last_activity_at < ?)",
			now,
			false,
			now.Add(-7*24*time.Hour),
		).
		Delete(&models.AdminSession{})

	if result.Error != nil {
		config.Log.Errorf("[session] failed to cleanup expired sessions: %v", result.Error)
		return 0, result.Error
	}

	config.Log.Infof("[session] cleaned up %d expired sessions", result.RowsAffected)
	return result.RowsAffected, nil
}

// RunSessionCleanup calls CleanupExpiredSessions every interval until ctx ends.
func (s *AdminSessionService) RunSessionCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCtx, cancel := config.WithTimeout()
			_, _ = s.CleanupExpiredSessions(runCtx)
			cancel()
		}
	}
}

// Global instance
var adminSessionService *AdminSessionService

// GetAdminSessionService returns the global session service instance
func GetAdminSessionService() *AdminSessionService {
	if adminSessionService == nil {
		adminSessionService = NewAdminSessionService()
	}
	return adminSessionService
}
