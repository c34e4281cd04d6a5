package domain

import "fmt"

// DisplayNotification is a Notification decorated with a human-readable
// date range for rendering. Optional fields inherit the underlying
// omitempty behavior, so absent values are omitted rather than null.
type DisplayNotification struct {
	Notification
	DateRange string `json:"date_range"`
}

// DisplayBundle is a bundle prepared for presentation.
type DisplayBundle struct {
	City          string                `json:"city"`
	GeneratedAt   string                `json:"generated_at"`
	Notifications []DisplayNotification `json:"notifications"`
}

// FormatBundle prepares a bundle for display. Notification order is
// preserved and every notification in the input appears in the output.
func FormatBundle(b Bundle) DisplayBundle {
	out := DisplayBundle{
		City:          b.City,
		GeneratedAt:   b.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Notifications: make([]DisplayNotification, 0, len(b.Notifications)),
	}
	for _, n := range b.Notifications {
		out.Notifications = append(out.Notifications, DisplayNotification{
			Notification: n,
			DateRange:    formatDateRange(n.StartDate, n.EndDate),
		})
	}
	return out
}

// FormatBundles formats several bundles, keeping the input order.
func FormatBundles(bundles []Bundle) []DisplayBundle {
	out := make([]DisplayBundle, 0, len(bundles))
	for _, b := range bundles {
		out = append(out, FormatBundle(b))
	}
	return out
}

func formatDateRange(start Date, end *Date) string {
	if end == nil || end.Equal(start) {
		return start.Time().Format("Jan 2")
	}
	if start.Month() == end.Month() {
		return fmt.Sprintf("%s-%d", start.Time().Format("Jan 2"), end.Day())
	}
	return fmt.Sprintf("%s - %s", start.Time().Format("Jan 2"), end.Time().Format("Jan 2"))
}
