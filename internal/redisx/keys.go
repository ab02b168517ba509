package redisx

import "time"

const (
	// User's cart hash: cart:{user_id}. Deleted wholesale after checkout.
	KeyUserCart = "cart:%d"

	// Per-user notification list: notifications:{user_id}
	KeyUserNotifications = "notifications:%d"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLNotifications = 7 * 24 * time.Hour
	TTLDedup         = 48 * time.Hour
)

// Notification lists are trimmed to this many entries.
const MaxNotifications = 50
