// Package observability provides metrics and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fameboard_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// PostsSubmitted counts submitted posts by gate outcome.
	PostsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fameboard_posts_submitted_total",
		Help: "Total number of submitted posts by publication outcome",
	}, []string{"published"})

	// FameDemotions counts single-step fame demotions by expertise area.
	FameDemotions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fameboard_fame_demotions_total",
		Help: "Total number of fame demotions by expertise area",
	}, []string{"area"})

	// CommunityEvictions counts community memberships revoked by the cascade.
	CommunityEvictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fameboard_community_evictions_total",
		Help: "Total number of community evictions triggered by demotion",
	}, []string{"area"})

	// AccountBans counts accounts deactivated at the fame floor.
	AccountBans = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fameboard_account_bans_total",
		Help: "Total number of accounts banned by the moderation cascade",
	})

	// DemotionConflicts counts optimistic-concurrency retries during demotion.
	DemotionConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fameboard_fame_demotion_conflicts_total",
		Help: "Total number of demotion attempts that lost a concurrent-update race",
	})
)
