package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/victorhaugaard/sugar-reset-sub002/models"
	"github.com/victorhaugaard/sugar-reset-sub002/utils"
)

// CheckInRecord is the wire form of a check-in. The date travels as a
// YYYY-MM-DD string so both sides agree on the calendar day regardless
// of timezone.
type CheckInRecord struct {
	Date          string  `json:"date"`
	SugarFree     bool    `json:"sugar_free"`
	GramsConsumed float64 `json:"grams_consumed,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	Mood          int     `json:"mood,omitempty"`
}

// RemoteProfile is the remote copy of a user's engine state.
type RemoteProfile struct {
	UserID    uint               `json:"user_id"`
	Streak    models.StreakState `json:"streak"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// RemoteProfileStore is the remote collaborator behind the sync
// reconciler. FetchProfile returns (nil, nil) when no profile exists.
type RemoteProfileStore interface {
	FetchProfile(ctx context.Context, userID uint) (*RemoteProfile, error)
	WriteCheckIn(ctx context.Context, userID uint, rec CheckInRecord) error
	WriteStreak(ctx context.Context, userID uint, streak models.StreakState) error
}

// SyncPolicy makes the timeout/fallback behavior an explicit, testable
// value instead of ad hoc deadlines at each call site.
type SyncPolicy struct {
	FetchTimeout time.Duration // session-start pull; local wins on expiry
	WriteTimeout time.Duration // background mirror writes
}

func DefaultSyncPolicy() SyncPolicy {
	return SyncPolicy{FetchTimeout: 3 * time.Second, WriteTimeout: 10 * time.Second}
}

// SyncService mirrors local state to the remote profile store.
// Local writes never wait on it: mirrors run in the background and
// swallow failures, and a session-start fetch is bounded by the policy
// timeout. A per-user revision counter guards against late-arriving
// fetch results overwriting state that has moved on.
type SyncService struct {
	remote RemoteProfileStore
	policy SyncPolicy

	mu   sync.Mutex
	revs map[uint]int64
}

func NewSyncService(remote RemoteProfileStore, policy SyncPolicy) *SyncService {
	return &SyncService{remote: remote, policy: policy, revs: make(map[uint]int64)}
}

// NoteLocalMutation bumps the user's revision. A fetch issued before
// the bump is stale and its result will be discarded.
func (s *SyncService) NoteLocalMutation(userID uint) {
	s.mu.Lock()
	s.revs[userID]++
	s.mu.Unlock()
}

func (s *SyncService) revision(userID uint) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revs[userID]
}

// MirrorCheckIn writes the check-in to the remote store in the
// background. Failures are logged and swallowed; local state is the
// source of truth for the session and is never rolled back.
func (s *SyncService) MirrorCheckIn(userID uint, rec models.CheckIn) {
	if s == nil || s.remote == nil {
		return
	}
	wire := CheckInRecord{
		Date:          utils.DateKey(rec.Date),
		SugarFree:     rec.SugarFree,
		GramsConsumed: rec.GramsConsumed,
		Notes:         rec.Notes,
		Mood:          rec.Mood,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.policy.WriteTimeout)
		defer cancel()
		if err := s.remote.WriteCheckIn(ctx, userID, wire); err != nil {
			log.Printf("sync: check-in mirror failed for user %d: %v", userID, err)
		}
	}()
}

// MirrorStreak mirrors the streak snapshot, same best-effort contract
// as MirrorCheckIn.
func (s *SyncService) MirrorStreak(userID uint, streak models.StreakState) {
	if s == nil || s.remote == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.policy.WriteTimeout)
		defer cancel()
		if err := s.remote.WriteStreak(ctx, userID, streak); err != nil {
			log.Printf("sync: streak mirror failed for user %d: %v", userID, err)
		}
	}()
}

// FetchRemoteStreak pulls the remote profile within the policy timeout.
// ok is false on timeout, error, absent profile, or when local state
// advanced while the fetch was in flight; the caller then sticks with
// local/default state.
func (s *SyncService) FetchRemoteStreak(ctx context.Context, userID uint) (models.StreakState, bool) {
	if s == nil || s.remote == nil {
		return models.StreakState{}, false
	}
	issued := s.revision(userID)

	ctx, cancel := context.WithTimeout(ctx, s.policy.FetchTimeout)
	defer cancel()

	type result struct {
		profile *RemoteProfile
		err     error
	}
	ch := make(chan result, 1)
	go func() {
		p, err := s.remote.FetchProfile(ctx, userID)
		ch <- result{profile: p, err: err}
	}()

	select {
	case <-ctx.Done():
		log.Printf("sync: profile fetch timed out for user %d", userID)
		return models.StreakState{}, false
	case r := <-ch:
		if r.err != nil {
			log.Printf("sync: profile fetch failed for user %d: %v", userID, r.err)
			return models.StreakState{}, false
		}
		if r.profile == nil {
			return models.StreakState{}, false
		}
		if s.revision(userID) != issued {
			// a local write landed while the fetch was in flight
			log.Printf("sync: discarding stale profile for user %d", userID)
			return models.StreakState{}, false
		}
		return r.profile.Streak, true
	}
}
