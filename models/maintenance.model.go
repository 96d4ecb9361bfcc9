package models

import (
	"gorm.io/gorm"
)

// PortalSettings is the global application state admins manage. A single
// row; created on first read if missing.
type PortalSettings struct {
	gorm.Model
	MaintenanceMode bool   `gorm:"default:false" json:"maintenanceMode"`
	Notice          string `gorm:"type:text" json:"notice"`
}
