// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account on the Fameboard platform. IsActive flips to
// false when the moderation cascade bans the account; there is no
// reinstatement path.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Bio       string         `json:"bio"`
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
	IsAdmin   bool           `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Follows is the directed set of users this account follows.
	Follows []*User `gorm:"many2many:user_follows;joinForeignKey:FollowerID;joinReferences:FolloweeID" json:"follows,omitempty"`
	// Communities are the expertise areas the user is a member of.
	Communities []*ExpertiseArea `gorm:"many2many:community_members" json:"communities,omitempty"`
	Posts       []Post           `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}
