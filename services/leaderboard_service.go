package services

import (
	"context"
	"sort"
	"time"

	"querynest/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeaderboardService snapshots profile point totals into ranked monthly
// buckets, overall and per tag. Generation replaces each bucket wholesale,
// so a rerun over unchanged profiles produces an identical document.
type LeaderboardService struct {
	store Store
}

func NewLeaderboardService(store Store) *LeaderboardService {
	return &LeaderboardService{store: store}
}

var leaderboardService *LeaderboardService

func InitLeaderboardService(store Store) {
	leaderboardService = NewLeaderboardService(store)
}

func GetLeaderboardService() *LeaderboardService {
	return leaderboardService
}

// GenerateAll builds and upserts the overall leaderboard plus one board
// per tag referenced by at least one profile. Month and year default to
// the current calendar bucket when zero.
func (s *LeaderboardService) GenerateAll(ctx context.Context, month, year int) error {
	now := time.Now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	profiles, err := s.store.Profiles(ctx)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		return ErrNoProfiles
	}

	// Distinct tag names in first-seen order keeps reruns deterministic.
	var tagNames []string
	seen := map[string]bool{}
	for _, profile := range profiles {
		for _, name := range profile.Tags {
			if !seen[name] {
				seen[name] = true
				tagNames = append(tagNames, name)
			}
		}
	}

	tags, err := s.store.TagsByNames(ctx, tagNames)
	if err != nil {
		return err
	}
	tagIDs := map[string]primitive.ObjectID{}
	for _, tag := range tags {
		tagIDs[tag.TagName] = tag.ID
	}

	// Overall board: every profile, with its resolvable tag ids attached.
	// Tag names that no longer resolve are silently dropped.
	overall := make([]models.LeaderboardEntry, 0, len(profiles))
	for _, profile := range profiles {
		var resolved []primitive.ObjectID
		for _, name := range profile.Tags {
			if id, ok := tagIDs[name]; ok {
				resolved = append(resolved, id)
			}
		}
		overall = append(overall, models.LeaderboardEntry{
			UserID: profile.UserID,
			Points: profile.TotalPoints,
			Tags:   resolved,
		})
	}
	rankEntries(overall)

	if err := s.store.UpsertLeaderboard(ctx, &models.Leaderboard{
		Time:        models.LeaderboardTime{Month: month, Year: year},
		Type:        models.LeaderboardOverall,
		Users:       overall,
		GeneratedAt: now,
	}); err != nil {
		return err
	}

	for _, name := range tagNames {
		tagID, ok := tagIDs[name]
		if !ok {
			continue
		}

		var entries []models.LeaderboardEntry
		for _, profile := range profiles {
			if !containsTag(profile.Tags, name) {
				continue
			}
			entries = append(entries, models.LeaderboardEntry{
				UserID: profile.UserID,
				Points: profile.TotalPoints,
			})
		}
		rankEntries(entries)

		id := tagID
		if err := s.store.UpsertLeaderboard(ctx, &models.Leaderboard{
			Time:        models.LeaderboardTime{Month: month, Year: year},
			Type:        models.LeaderboardTagWise,
			TagID:       &id,
			Users:       entries,
			GeneratedAt: now,
		}); err != nil {
			return err
		}
	}

	return nil
}

// Get loads the persisted bucket for the requested month/year, overall or
// for one tag, and re-derives order and ranks at read time rather than
// trusting the stored rank fields.
func (s *LeaderboardService) Get(ctx context.Context, month, year int, tagName string) (*models.Leaderboard, error) {
	now := time.Now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	boardType := models.LeaderboardOverall
	var tagID *primitive.ObjectID
	if tagName != "" {
		tag, err := s.store.TagByName(ctx, tagName)
		if err != nil {
			return nil, orNotFound(err, ErrTagNotFound)
		}
		boardType = models.LeaderboardTagWise
		tagID = &tag.ID
	}

	board, err := s.store.LeaderboardByBucket(ctx, month, year, boardType, tagID)
	if err != nil {
		return nil, orNotFound(err, ErrLeaderboardNotFound)
	}

	rankEntries(board.Users)
	return board, nil
}

// rankEntries sorts by points descending and assigns 1-based ranks. The
// sort is stable; equal point totals keep their input order.
func rankEntries(entries []models.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

func containsTag(tags []string, name string) bool {
	for _, tag := range tags {
		if tag == name {
			return true
		}
	}
	return false
}
