package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tommy-vpr/sales-report/pkg/enums"
)

// Campaign is the per-platform, per-month campaign identity. Flat-file import
// derives the name deterministically, so (name, platform) is a natural key
// and re-importing a month reuses the same row.
type Campaign struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string         `gorm:"column:name;not null;uniqueIndex:idx_campaigns_name_platform"`
	Platform  enums.Platform `gorm:"column:platform;type:platform;not null;uniqueIndex:idx_campaigns_name_platform"`
	StartDate time.Time      `gorm:"column:start_date;not null"`
	EndDate   time.Time      `gorm:"column:end_date;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
