package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a submitted post. Published is decided by the publication
// gate at submission time and may be forced back to false later when the
// author gets banned. CreatedAt doubles as the submission timestamp that all
// timeline ordering uses.
type Post struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Content   string `gorm:"type:text;not null" json:"content"`
	AuthorID  uint   `gorm:"not null;index" json:"author_id"`
	Author    User   `gorm:"foreignKey:AuthorID" json:"author"`
	Published bool   `gorm:"not null;default:false;index" json:"published"`

	// Cites and RepliesTo are optional self-references to other posts.
	CitesID     *uint `gorm:"index" json:"cites_id,omitempty"`
	Cites       *Post `gorm:"foreignKey:CitesID" json:"cites,omitempty"`
	RepliesToID *uint `gorm:"index" json:"replies_to_id,omitempty"`
	RepliesTo   *Post `gorm:"foreignKey:RepliesToID" json:"replies_to,omitempty"`

	Classifications []PostClassification `gorm:"foreignKey:PostID" json:"classifications,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostClassification is one (post, expertise area) verdict from the
// classification oracle. A nil TruthRating means the oracle recognized the
// topic but had no verdict; the moderation cascade treats that as
// non-negative and skips it.
type PostClassification struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	PostID          uint          `gorm:"not null;uniqueIndex:idx_post_area" json:"post_id"`
	ExpertiseAreaID uint          `gorm:"not null;uniqueIndex:idx_post_area" json:"expertise_area_id"`
	ExpertiseArea   ExpertiseArea `gorm:"foreignKey:ExpertiseAreaID" json:"expertise_area"`
	TruthRating     *int          `json:"truth_rating,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}
