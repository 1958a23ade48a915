package storage

import (
	"context"
	"time"

	"linkshield/pkg/domain"
)

// UserScans groups a page of scan history rows for a user together with an
// optional NextCursor used for pagination.
type UserScans struct {
	// Scans contains the current page of scan records, newest first.
	Scans []domain.Scan
	// NextCursor is the created-at timestamp to use as the cursor for the next
	// page. It is nil when there is no next page.
	NextCursor *time.Time
}

// ScanStorage defines the persistence operations for scan history.
// Implementations must honor soft deletes: deleted rows stay in the table but
// are excluded from all reads.
type ScanStorage interface {
	// StoreScans inserts one or more completed scans and returns the stored
	// rows as they exist in the database.
	StoreScans(ctx context.Context, scans ...domain.Scan) ([]domain.Scan, error)
	// UserScans returns a page of scans for a user created before the optional
	// cursor time, limited by the given limit. A zero cursor means the newest
	// page.
	UserScans(ctx context.Context, userID domain.UserID, cursor time.Time, limit uint) (UserScans, error)
	// ScanByID fetches a scan by its ID for the given user, excluding
	// soft-deleted records. Returns nil when not found.
	ScanByID(ctx context.Context, userID domain.UserID, ID domain.ScanID) (*domain.Scan, error)
	// DeleteScan performs a soft delete for the given scan ID and user ID and
	// returns the deleted scan, or nil if it was not found.
	DeleteScan(ctx context.Context, userID domain.UserID, ID domain.ScanID) (*domain.Scan, error)
}
