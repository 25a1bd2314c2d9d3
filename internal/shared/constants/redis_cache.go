package constants

import "time"

// Redis cache keys and TTL values.
// Pattern: tourly:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_LONG   = 24 * time.Hour // very stable data (categories, service catalog)
	TTL_STATIC_SHORT  = 6 * time.Hour  // tour details
	TTL_SEMI_STATIC   = 1 * time.Hour  // tour listings
	TTL_DYNAMIC_SHORT = 2 * time.Minute // instance availability
	TTL_REALTIME      = 1 * time.Minute // active promotions (read-only preview path)
)

// ================== KEY PREFIX ==================

const (
	CACHE_PREFIX = "tourly"
)

// ================== TOURS MODULE ==================

const (
	CACHE_KEY_TOURS_LIST      = CACHE_PREFIX + ":tours:list"           // + :page:X:limit:Y
	CACHE_KEY_TOUR_DETAIL     = CACHE_PREFIX + ":tours:detail:uuid:"   // + tour-id
	CACHE_KEY_TOUR_BY_SLUG    = CACHE_PREFIX + ":tours:detail:slug:"   // + slug
	CACHE_KEY_INSTANCE_DETAIL = CACHE_PREFIX + ":tours:instance:uuid:" // + instance-id
)

const (
	TTL_TOUR_LIST       = TTL_SEMI_STATIC
	TTL_TOUR_DETAIL     = TTL_STATIC_SHORT
	TTL_INSTANCE_DETAIL = TTL_DYNAMIC_SHORT
)

// ================== PROMOTIONS MODULE ==================

const (
	CACHE_KEY_PROMOTIONS_ACTIVE = CACHE_PREFIX + ":promotions:active" // active, in-window promotions
)

const (
	TTL_PROMOTIONS_ACTIVE = TTL_REALTIME
)

// ================== INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_TOURS_ALL      = CACHE_PREFIX + ":tours:*"
	PATTERN_INVALIDATE_PROMOTIONS_ALL = CACHE_PREFIX + ":promotions:*"
)
