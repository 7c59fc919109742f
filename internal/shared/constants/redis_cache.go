package constants

import "time"

// Redis Cache Configuration
// Centralizes all cache keys and TTL values for the Ticketly engine.
// Pattern: ticketly:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // topology definitions
	TTL_STATIC_MEDIUM = 12 * time.Hour // section metadata
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_LONG  = 4 * time.Hour // venue layouts
	TTL_SEMI_STATIC_SHORT = 1 * time.Hour // section listings
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // seat details
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // seat maps
)

// Highly Dynamic (Micro TTL: real-time sensitive)
const (
	TTL_REALTIME_SHORT = 30 * time.Second // live availability counts
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "ticketly"
)

// ================== VENUES MODULE ==================

const (
	CACHE_KEY_VENUE_LAYOUT   = CACHE_PREFIX + ":venues:layout:"  // + venue-id
	CACHE_KEY_VENUE_SECTIONS = CACHE_PREFIX + ":venues:sections" // active venue section list
)

const (
	TTL_VENUE_LAYOUT   = TTL_SEMI_STATIC_LONG // 4 hours
	TTL_VENUE_SECTIONS = TTL_STATIC_MEDIUM    // 12 hours
)

// ================== SEATS MODULE ==================

const (
	CACHE_KEY_SEAT_MAP    = CACHE_PREFIX + ":seats:map:section:" // + section-id
	CACHE_KEY_SEAT_DETAIL = CACHE_PREFIX + ":seats:detail:"      // + seat-id
)

const (
	TTL_SEAT_MAP    = TTL_DYNAMIC_SHORT  // 5 minutes
	TTL_SEAT_DETAIL = TTL_DYNAMIC_MEDIUM // 10 minutes
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_SEAT_MAPS     = CACHE_PREFIX + ":seats:*"
	PATTERN_INVALIDATE_VENUE_LAYOUTS = CACHE_PREFIX + ":venues:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildSeatMapKey(sectionID string) string {
	return CACHE_KEY_SEAT_MAP + sectionID
}

func BuildSeatDetailKey(seatID string) string {
	return CACHE_KEY_SEAT_DETAIL + seatID
}

func BuildVenueLayoutKey(venueID string) string {
	return CACHE_KEY_VENUE_LAYOUT + venueID
}
