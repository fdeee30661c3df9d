package models

import (
	"time"

	"gorm.io/gorm"
)

// FameLevel is one tier of the ordered reputation ladder. Every level has a
// signed rank; negative ranks mark users with a standing misinformation
// record in a topic.
type FameLevel string

const (
	FameSuperPro             FameLevel = "Super Pro"
	FameExpert               FameLevel = "Expert"
	FameKnowledgeable        FameLevel = "Knowledgeable"
	FameDabbler              FameLevel = "Dabbler"
	FameConfuser             FameLevel = "Confuser"
	FameBullshitter          FameLevel = "Bullshitter"
	FameDangerousBullshitter FameLevel = "Dangerous Bullshitter"
)

// FameFirstOffense is the tier a user lands on when they earn their first
// negative truth rating in a topic they had no fame record for.
const FameFirstOffense = FameConfuser

// SuperProRank is the rank at or below which a demotion revokes the user's
// membership in the affected topic community. Holding membership effectively
// requires staying above Super Pro standing.
const SuperProRank = 100

// fameLadder orders every level from best to worst standing.
var fameLadder = []FameLevel{
	FameSuperPro,
	FameExpert,
	FameKnowledgeable,
	FameDabbler,
	FameConfuser,
	FameBullshitter,
	FameDangerousBullshitter,
}

var fameRanks = map[FameLevel]int{
	FameSuperPro:             100,
	FameExpert:               70,
	FameKnowledgeable:        40,
	FameDabbler:              10,
	FameConfuser:             -10,
	FameBullshitter:          -40,
	FameDangerousBullshitter: -100,
}

// Rank returns the signed numeric standing of the level.
func (l FameLevel) Rank() int {
	return fameRanks[l]
}

// Valid reports whether l is a known ladder tier.
func (l FameLevel) Valid() bool {
	_, ok := fameRanks[l]
	return ok
}

// NextLower returns the tier one step below l. The second return value is
// false when l already sits at the ladder floor; the caller treats that as
// the ban signal, not as an error.
func (l FameLevel) NextLower() (FameLevel, bool) {
	for i, level := range fameLadder {
		if level == l {
			if i == len(fameLadder)-1 {
				return l, false
			}
			return fameLadder[i+1], true
		}
	}
	return l, false
}

// FameFloor returns the lowest tier of the ladder.
func FameFloor() FameLevel {
	return fameLadder[len(fameLadder)-1]
}

// CompareFame orders two levels by rank: negative when a is worse than b,
// zero when equal, positive when a is better.
func CompareFame(a, b FameLevel) int {
	return a.Rank() - b.Rank()
}

// FameLevels returns the full ladder from best to worst standing.
func FameLevels() []FameLevel {
	out := make([]FameLevel, len(fameLadder))
	copy(out, fameLadder)
	return out
}

// Fame is the reputation record of one user in one expertise area. There is
// at most one record per (user, area) pair; it is created lazily on the
// first offense and its level only ever moves one step down at a time.
type Fame struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          uint          `gorm:"not null;uniqueIndex:idx_fame_user_area" json:"user_id"`
	User            *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ExpertiseAreaID uint          `gorm:"not null;uniqueIndex:idx_fame_user_area" json:"expertise_area_id"`
	ExpertiseArea   *ExpertiseArea `gorm:"foreignKey:ExpertiseAreaID" json:"expertise_area,omitempty"`
	Level           FameLevel     `gorm:"type:varchar(32);not null" json:"level"`
	// Rank mirrors Level's numeric value so SQL can order and filter on it.
	Rank      int       `gorm:"not null;index" json:"rank"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave keeps the denormalized rank column in lockstep with the level.
func (f *Fame) BeforeSave(_ *gorm.DB) error {
	if !f.Level.Valid() {
		return NewValidationError("unknown fame level " + string(f.Level))
	}
	f.Rank = f.Level.Rank()
	return nil
}
