package models

import "time"

// ExpertiseArea names a subject domain. It is both the unit a post gets
// classified into and the unit of community membership.
type ExpertiseArea struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
