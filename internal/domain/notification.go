package domain

import "time"

// NotificationType names a rule family.
type NotificationType string

const (
	TypeWarning      NotificationType = "warning"
	TypeActivity     NotificationType = "activity"
	TypeSeasonal     NotificationType = "seasonal"
	TypeAgricultural NotificationType = "agricultural"
)

// Family priorities; 1 is the highest.
const (
	PriorityWarning  = 1
	PriorityActivity = 2
	PriorityAdvisory = 3 // seasonal and agricultural
)

// Notification is one generated, typed, prioritized message. Immutable once
// produced; it lives for a single request/response cycle. EndDate and
// ConsecutiveDays are set only for run-based notifications and are omitted
// from JSON when absent.
type Notification struct {
	Type            NotificationType `json:"type"`
	Rule            string           `json:"rule"` // e.g. "heat_wave", "gardening"
	Message         string           `json:"message"`
	Icon            string           `json:"icon"`
	Priority        int              `json:"priority"`
	StartDate       Date             `json:"start_date"`
	EndDate         *Date            `json:"end_date,omitempty"`
	ConsecutiveDays int              `json:"consecutive_days,omitempty"`
}

// Bundle holds every notification generated for one city, sorted by
// priority ascending then start date ascending.
type Bundle struct {
	City          string         `json:"city"`
	GeneratedAt   time.Time      `json:"generated_at"`
	Notifications []Notification `json:"notifications"`
}
