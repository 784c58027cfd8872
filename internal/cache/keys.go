package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	UserKeyPrefix             = "user:%s"
	ProfileKeyPrefix          = "profile:%s"
	ConnectionCountKeyPrefix  = "circle:count:%s"
	DashboardKeyPrefix        = "dashboard:%s"
	QRCodeKeyPrefix           = "qr:%s"
	AnalyticsSummaryKeyPrefix = "analytics:summary:%s"
)

const (
	UserTTL             = 5 * time.Minute
	ProfileTTL          = 5 * time.Minute
	ConnectionCountTTL  = 2 * time.Minute
	DashboardTTL        = 1 * time.Minute
	QRCodeTTL           = 30 * time.Minute
	AnalyticsSummaryTTL = 2 * time.Minute
)

func UserKey(userID uuid.UUID) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ProfileKey(username string) string {
	return fmt.Sprintf(ProfileKeyPrefix, username)
}

func ConnectionCountKey(userID uuid.UUID) string {
	return fmt.Sprintf(ConnectionCountKeyPrefix, userID)
}

func DashboardKey(userID uuid.UUID) string {
	return fmt.Sprintf(DashboardKeyPrefix, userID)
}

func QRCodeKey(userID uuid.UUID) string {
	return fmt.Sprintf(QRCodeKeyPrefix, userID)
}

func AnalyticsSummaryKey(userID uuid.UUID) string {
	return fmt.Sprintf(AnalyticsSummaryKeyPrefix, userID)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidateUser(ctx context.Context, userID uuid.UUID, username string) {
	Invalidate(ctx, UserKey(userID), ProfileKey(username), DashboardKey(userID))
}

// InvalidateCircle drops cached counts and dashboards for both parties of a
// circle transition.
func InvalidateCircle(ctx context.Context, a, b uuid.UUID) {
	Invalidate(ctx,
		ConnectionCountKey(a), ConnectionCountKey(b),
		DashboardKey(a), DashboardKey(b),
	)
}
