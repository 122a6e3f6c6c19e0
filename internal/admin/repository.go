// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
)

type PlatformCounts struct {
	Users          int   `db:"users"           json:"users"`
	PremiumUsers   int   `db:"premium_users"   json:"premium_users"`
	Admins         int   `db:"admins"          json:"admins"`
	Lessons        int   `db:"lessons"         json:"lessons"`
	PublicLessons  int   `db:"public_lessons"  json:"public_lessons"`
	PremiumLessons int   `db:"premium_lessons" json:"premium_lessons"`
	Comments       int   `db:"comments"        json:"comments"`
	Favorites      int   `db:"favorites"       json:"favorites"`
	OpenReports    int   `db:"reports"         json:"open_reports"`
	Payments       int   `db:"payments"        json:"payments"`
	RevenueCents   int64 `db:"revenue_cents"   json:"revenue_cents"`
}

type Repository interface {
	Counts(ctx context.Context) (*PlatformCounts, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Counts(ctx context.Context) (*PlatformCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM users WHERE is_premium) AS premium_users,
			(SELECT COUNT(*) FROM users WHERE role = 'admin') AS admins,
			(SELECT COUNT(*) FROM lessons) AS lessons,
			(SELECT COUNT(*) FROM lessons WHERE visibility = 'public') AS public_lessons,
			(SELECT COUNT(*) FROM lessons WHERE access_level = 'premium') AS premium_lessons,
			(SELECT COUNT(*) FROM comments) AS comments,
			(SELECT COUNT(*) FROM favorites) AS favorites,
			(SELECT COUNT(*) FROM reports) AS reports,
			(SELECT COUNT(*) FROM payments) AS payments,
			(SELECT COALESCE(SUM(amount_cents), 0) FROM payments) AS revenue_cents`

	var counts PlatformCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("platform counts: %w", err)
	}

	return &counts, nil
}
