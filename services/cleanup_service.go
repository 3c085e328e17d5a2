package services

import (
	"context"
	"log"
	"time"
)

// unverifiedGracePeriod is how long after OTP expiry an unverified user
// survives before the sweep removes them.
const unverifiedGracePeriod = 10 * time.Minute

// CleanupService removes stale unverified registrations.
type CleanupService struct {
	store Store
}

func NewCleanupService(store Store) *CleanupService {
	return &CleanupService{store: store}
}

var cleanupService *CleanupService

func InitCleanupService(store Store) {
	cleanupService = NewCleanupService(store)
}

func GetCleanupService() *CleanupService {
	return cleanupService
}

// RemoveExpiredUnverifiedUsers deletes users whose OTP expired more than
// the grace period ago and who never verified.
func (s *CleanupService) RemoveExpiredUnverifiedUsers(ctx context.Context) {
	cutoff := time.Now().Add(-unverifiedGracePeriod)
	deleted, err := s.store.DeleteExpiredUnverifiedUsers(ctx, cutoff)
	if err != nil {
		log.Printf("Error removing expired users: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Deleted %d expired, unverified users", deleted)
	}
}
