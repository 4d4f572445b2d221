package domain

// Default configuration values
const (
	DefaultStartHour = 9
	DefaultEndHour   = 18
)

// Business validation constants
const (
	// MaxBookingDurationMinutes bounds the overlap query window, longer services are rejected
	MaxBookingDurationMinutes = 480 // 8 hours
	MaxNameLength             = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SlotExcludedStatuses statuses ignored when computing available slots
var SlotExcludedStatuses = []BookingStatus{
	StatusCancelled,
	StatusMissed,
}

// OverlapExcludedStatuses statuses that never block a new booking
var OverlapExcludedStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
	StatusMissed,
}

// MissedCandidateExcluded statuses skipped by missed-booking detection
var MissedCandidateExcluded = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusMissed,
}

// PlaceholderEmailDomain domain of generated emails for walk-in customers without one
const PlaceholderEmailDomain = "placeholder.local"
