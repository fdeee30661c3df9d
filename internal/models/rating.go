package models

import "time"

// PostRating is a reader's rating of a post. A user can hold one rating per
// (post, rating type); re-rating updates the score in place. Authors cannot
// rate their own posts.
type PostRating struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;uniqueIndex:idx_rating_post_user_type" json:"post_id"`
	Post       *Post     `gorm:"foreignKey:PostID" json:"post,omitempty"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_rating_post_user_type" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RatingType string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_rating_post_user_type" json:"rating_type"`
	Score      int       `gorm:"not null" json:"score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
