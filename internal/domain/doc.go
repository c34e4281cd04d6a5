// Package domain models air-quality and weather-notification data.
//
// # AQI Banding
//
// Air Quality Index values follow the EPA scale. Classification uses a
// single ordered band table, inclusive upper bounds:
//
//	0–50    Good                            severity 1
//	51–100  Moderate                        severity 2
//	101–150 Unhealthy for Sensitive Groups  severity 3
//	151–200 Unhealthy                       severity 4
//	201–300 Very Unhealthy                  severity 5
//	301+    Hazardous                       severity 6
//
// Values are unbounded above; everything past 300 is Hazardous. Negative
// values are rejected. [ClassifyAQI] is the only banding implementation in
// the repo; every display path consumes it.
//
// PM2.5 concentrations convert to index values with the EPA breakpoint
// table (2024 revision) via [AQIFromPM25], using linear interpolation
// within each breakpoint segment.
//
// # Notifications
//
// [GenerateNotifications] scans a chronological window of daily forecast
// observations once, tracking run lengths per rule. A maximal run of days
// satisfying a rule for at least the rule's minimum duration emits one
// notification spanning the run. Four rule families exist, each with a
// fixed priority (1 = highest):
//
//	warning       priority 1  heat wave, cold snap, dry spell, heavy rain,
//	                          high wind, poor air quality, high UV
//	activity      priority 2  favorable multi-day windows for outdoor
//	                          activities (gardening, hiking, cycling, ...)
//	seasonal      priority 3  calendar events on a forecast date plus
//	                          warming/cooling trend detection
//	agricultural  priority 3  frost, plant heat stress, watering advice
//
// Bundles are sorted by priority ascending, then start date ascending,
// with a stable sort so identical inputs yield identical output order.
// Message templates are chosen by a deterministic index derived from the
// run, never by a random source: re-running the engine over the same
// window produces byte-identical notifications apart from GeneratedAt.
//
// Thresholds live in one immutable [Ruleset] built by [DefaultRuleset] and
// passed explicitly to the engine. Nothing in this package performs I/O;
// fetching forecasts is the adapters' concern.
package domain
