package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	UserFameKeyPrefix = "user:%d:fame"
	FameKeyPrefix     = "fame:%d:%d"
	BullshittersKey   = "bullshitters"
)

const (
	UserTTL         = 5 * time.Minute
	FameTTL         = 2 * time.Minute
	BullshittersTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func UserFameKey(userID uint) string {
	return fmt.Sprintf(UserFameKeyPrefix, userID)
}

func FameKey(userID, areaID uint) string {
	return fmt.Sprintf(FameKeyPrefix, userID, areaID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateFame drops every cached view a demotion can stale: the single
// fame record, the user's fame listing, and the offender board.
func InvalidateFame(ctx context.Context, userID, areaID uint) {
	Invalidate(ctx, FameKey(userID, areaID))
	Invalidate(ctx, UserFameKey(userID))
	Invalidate(ctx, BullshittersKey)
}
