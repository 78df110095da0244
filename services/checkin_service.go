package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/victorhaugaard/sugar-reset-sub002/models"
	"github.com/victorhaugaard/sugar-reset-sub002/utils"
)

var streakMilestones = []int{7, 30, 100}

// CheckInService owns the check-in ledger and the derived streak state.
// Writes apply to Postgres synchronously, the snapshot is cached in the
// KV store, and the sync service mirrors both to the remote profile in
// the background.
type CheckInService struct {
	db   *gorm.DB
	kv   KV
	sync *SyncService
}

func NewCheckInService(db *gorm.DB, kv KV, sync *SyncService) *CheckInService {
	return &CheckInService{db: db, kv: kv, sync: sync}
}

// UpsertCheckIn records one day's sugar-free self-report. Writing an
// existing day overwrites it in place; retroactive corrections are
// allowed and trigger a full recompute of the streak.
func (s *CheckInService) UpsertCheckIn(
	ctx context.Context, userID uint, day time.Time,
	sugarFree bool, grams float64, notes string, mood int,
) (*models.CheckIn, models.StreakState, error) {

	day = utils.DayStart(day)
	today := utils.DayStart(time.Now())
	if day.After(today) {
		return nil, models.StreakState{}, errors.New("check-ins cannot be dated in the future")
	}
	if mood != 0 && (mood < 1 || mood > 5) { // 0 means not reported
		return nil, models.StreakState{}, errors.New("mood must be between 1 and 5")
	}

	var prev *models.CheckIn
	var existing models.CheckIn
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		First(&existing).Error
	switch {
	case err == nil:
		cp := existing
		prev = &cp
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, models.StreakState{}, err
	}

	rec := models.CheckIn{
		UserID:        userID,
		Date:          day,
		SugarFree:     sugarFree,
		GramsConsumed: grams,
		Notes:         notes,
		Mood:          mood,
	}
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		Assign(rec).
		FirstOrCreate(&rec).Error; err != nil {
		return nil, models.StreakState{}, err
	}

	before, err := s.loadState(ctx, userID)
	if err != nil {
		return nil, models.StreakState{}, err
	}

	state, ok := advanceStreak(before, prev, rec, today)
	if !ok {
		// overwrite, retroactive edit, or a snapshot that has already
		// seen this day: an incremental patch can invalidate continuity
		// for every later date, so rescan the ledger
		records, rerr := s.Range(ctx, userID, time.Time{}, today.AddDate(0, 0, 1))
		if rerr != nil {
			return nil, models.StreakState{}, rerr
		}
		state = RecomputeStreak(records, today)
	}

	if err := s.saveState(ctx, userID, state); err != nil {
		return nil, models.StreakState{}, err
	}
	s.announce(userID, before, state)

	if s.sync != nil {
		s.sync.NoteLocalMutation(userID)
		s.sync.MirrorCheckIn(userID, rec)
		s.sync.MirrorStreak(userID, state)
	}
	return &rec, state, nil
}

// Range returns the ledger slice for [from, to), date ascending. A zero
// from means "from the beginning".
func (s *CheckInService) Range(ctx context.Context, userID uint, from, to time.Time) ([]models.CheckIn, error) {
	q := s.db.WithContext(ctx).
		Where("user_id = ? AND date < ?", userID, utils.DayStart(to))
	if !from.IsZero() {
		q = q.Where("date >= ?", utils.DayStart(from))
	}
	var records []models.CheckIn
	err := q.Order("date ASC").Find(&records).Error
	return records, err
}

// GetStreak returns the cached snapshot, rebuilding it from the ledger
// when the cache is cold.
func (s *CheckInService) GetStreak(ctx context.Context, userID uint) (models.StreakState, error) {
	return s.loadState(ctx, userID)
}

// ResetStreak starts over from today. Distinct from logging a had-sugar
// day: the longest streak and lifetime sugar-free count are kept.
func (s *CheckInService) ResetStreak(ctx context.Context, userID uint) (models.StreakState, error) {
	state, err := s.loadState(ctx, userID)
	if err != nil {
		return models.StreakState{}, err
	}
	state.CurrentStreak = 0
	state.StartDate = utils.DateKey(time.Now())
	if err := s.saveState(ctx, userID, state); err != nil {
		return models.StreakState{}, err
	}
	if s.sync != nil {
		s.sync.NoteLocalMutation(userID)
		s.sync.MirrorStreak(userID, state)
	}
	return state, nil
}

// StartSession reconciles local state against the remote profile at a
// session boundary. The remote snapshot wins if it arrives within the
// sync policy's fetch timeout; otherwise local/default state is used.
func (s *CheckInService) StartSession(ctx context.Context, userID uint) (models.StreakState, error) {
	if remote, ok := s.sync.FetchRemoteStreak(ctx, userID); ok {
		if err := s.saveState(ctx, userID, remote); err != nil {
			return models.StreakState{}, err
		}
		return remote, nil
	}
	return s.loadState(ctx, userID)
}

func (s *CheckInService) loadState(ctx context.Context, userID uint) (models.StreakState, error) {
	raw, err := s.kv.Get(ctx, streakKey(userID))
	if err == nil && raw != nil {
		var state models.StreakState
		if jerr := json.Unmarshal(raw, &state); jerr == nil {
			return state, nil
		}
	}

	// cold or corrupt cache: rebuild from the ledger
	today := utils.DayStart(time.Now())
	records, err := s.Range(ctx, userID, time.Time{}, today.AddDate(0, 0, 1))
	if err != nil {
		return models.StreakState{}, err
	}
	state := RecomputeStreak(records, today)
	_ = s.saveState(ctx, userID, state)
	return state, nil
}

func (s *CheckInService) saveState(ctx context.Context, userID uint, state models.StreakState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, streakKey(userID), raw)
}

func (s *CheckInService) announce(userID uint, before, after models.StreakState) {
	EmitStreakUpdate(userID, after)
	if after.CurrentStreak <= before.CurrentStreak {
		return
	}
	for _, m := range streakMilestones {
		if after.CurrentStreak == m {
			EmitAlert(userID, "milestone", fmt.Sprintf("%d days sugar-free. Keep it going!", m))
		}
	}
}
