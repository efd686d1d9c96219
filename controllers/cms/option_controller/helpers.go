package option_controller

import (
	"context"
	"errors"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// valueTaken reports whether another option in category already uses value.
func valueTaken(ctx context.Context, category, value string, except uuid.UUID) (bool, error) {
	var existing models.Option
	err := config.CmsGorm.WithContext(ctx).
		Select("id").
		Where("category = ? AND value = ? AND id <> ?", category, value, except).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}
