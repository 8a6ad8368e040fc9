package stores

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// failOpen is the result used whenever the backing store misbehaves.
// Availability of the chat feature beats strict quota enforcement.
func failOpen() RateLimitResult {
	return RateLimitResult{Allowed: true, Remaining: RateLimitMaxRequests}
}

// check_and_increment implements the fixed-window counter on any gorm
// backend. It finds the most recent window for the key; a missing or expired
// window starts a fresh one, a live window below the cap is incremented
// atomically, a full window denies.
func check_and_increment(db *gorm.DB, clientKey, endpoint string) (RateLimitResult, error) {
	if db == nil {
		return failOpen(), errors.New("database connection is nil")
	}

	windowFloor := time.Now().Add(-RateLimitWindow)

	var record RateLimit
	err := db.Where("ip_address = ? AND endpoint = ? AND window_start > ?", clientKey, endpoint, windowFloor).
		Order("window_start DESC").
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		fresh := RateLimit{
			IPAddress:    clientKey,
			Endpoint:     endpoint,
			WindowStart:  time.Now(),
			RequestCount: 1,
		}
		if err := db.Create(&fresh).Error; err != nil {
			return failOpen(), err
		}
		return RateLimitResult{Allowed: true, Remaining: RateLimitMaxRequests - 1}, nil
	}
	if err != nil {
		return failOpen(), err
	}

	if record.RequestCount >= RateLimitMaxRequests {
		return RateLimitResult{Allowed: false, Remaining: 0}, nil
	}

	// Guarded in-place increment: the WHERE clause re-checks the cap so two
	// concurrent requests cannot both take the last slot.
	res := db.Model(&RateLimit{}).
		Where("id = ? AND request_count < ?", record.ID, RateLimitMaxRequests).
		UpdateColumn("request_count", gorm.Expr("request_count + 1"))
	if res.Error != nil {
		return failOpen(), res.Error
	}
	if res.RowsAffected == 0 {
		return RateLimitResult{Allowed: false, Remaining: 0}, nil
	}

	remaining := RateLimitMaxRequests - record.RequestCount - 1
	if remaining < 0 {
		remaining = 0
	}
	return RateLimitResult{Allowed: true, Remaining: remaining}, nil
}

// prune_windows deletes rows whose window started before the cutoff.
func prune_windows(db *gorm.DB, olderThan time.Duration) error {
	if db == nil {
		return errors.New("database connection is nil")
	}
	cutoff := time.Now().Add(-olderThan)
	return db.Where("window_start < ?", cutoff).Delete(&RateLimit{}).Error
}
