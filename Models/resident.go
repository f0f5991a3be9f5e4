package Models

import (
	"gorm.io/gorm"
)

// Resident is one physical unit in the building. One row per flat.
type Resident struct {
	gorm.Model
	Name       string `json:"name" gorm:"not null"`
	FlatNumber string `json:"flat_number" gorm:"not null;uniqueIndex"`
}
