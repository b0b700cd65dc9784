package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/PieceOfFire/cats/bottemplate/metrics"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"golang.org/x/time/rate"
)

const slowDownMessage = "⏳ Slow down a little, your last action is still being processed."

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserLimiter keeps one token bucket per user.
type UserLimiter struct {
	mu      sync.Mutex
	buckets map[snowflake.ID]*bucket
	limit   rate.Limit
	burst   int
	idle    time.Duration
	now     func() time.Time
}

func NewUserLimiter(perSecond float64, burst int) *UserLimiter {
	if burst < 1 {
		burst = 1
	}
	return &UserLimiter{
		buckets: make(map[snowflake.ID]*bucket),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idle:    time.Hour,
		now:     time.Now,
	}
}

// Allow consumes one token for userID. A nil limiter allows everything.
func (l *UserLimiter) Allow(userID snowflake.ID) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[userID]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[userID] = b
	}
	b.lastSeen = now
	if !b.limiter.AllowN(now, 1) {
		metrics.RateLimited.Inc()
		return false
	}
	return true
}

func (l *UserLimiter) cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for id, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idle {
			delete(l.buckets, id)
			removed++
		}
	}
	return removed
}

func (l *UserLimiter) StartCleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.cleanup()
			}
		}
	}()
}

// LimitCommand rejects a command with an ephemeral notice when the user is over the limit.
func LimitCommand(l *UserLimiter, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !l.Allow(e.User().ID) {
			return e.CreateMessage(discord.MessageCreate{
				Content: slowDownMessage,
				Flags:   discord.MessageFlagEphemeral,
			})
		}
		return h(e)
	}
}

// LimitComponent is LimitCommand for buttons and select menus.
func LimitComponent(l *UserLimiter, h handler.ComponentHandler) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		if !l.Allow(e.User().ID) {
			return e.CreateMessage(discord.MessageCreate{
				Content: slowDownMessage,
				Flags:   discord.MessageFlagEphemeral,
			})
		}
		return h(e)
	}
}
