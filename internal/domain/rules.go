package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// run is a maximal stretch of consecutive observations satisfying a rule.
type run struct {
	start  int // index into the observation slice
	length int
}

// findRuns scans the observations and returns every maximal run of at least
// minDays consecutive days for which cond holds, in chronological order.
func findRuns(obs []DailyObservation, minDays int, cond func(DailyObservation) bool) []run {
	var runs []run
	i := 0
	for i < len(obs) {
		if !cond(obs[i]) {
			i++
			continue
		}
		j := i
		for j < len(obs) && cond(obs[j]) {
			j++
		}
		if j-i >= minDays {
			runs = append(runs, run{start: i, length: j - i})
		}
		i = j
	}
	return runs
}

// pickTemplate selects a template deterministically from the run it
// describes, so regenerating a bundle from the same forecast yields the
// same wording.
func pickTemplate(templates []string, start Date, length int) string {
	if len(templates) == 0 {
		return ""
	}
	return templates[(start.YearDay()+length)%len(templates)]
}

func renderTemplate(tmpl string, vars map[string]string) string {
	for k, v := range vars {
		tmpl = strings.ReplaceAll(tmpl, k, v)
	}
	return tmpl
}

// GenerateNotifications evaluates the full ruleset against a chronological
// series of daily observations and returns the resulting bundle, sorted by
// priority and then start date. Observations must be non-empty and strictly
// increasing by date.
func GenerateNotifications(obs []DailyObservation, city string, rules Ruleset) (Bundle, error) {
	if err := validateChronology(obs); err != nil {
		return Bundle{}, fmt.Errorf("generate notifications for %q: %w", city, err)
	}

	var out []Notification
	out = append(out, warningNotifications(obs, rules.Warnings)...)
	out = append(out, activityNotifications(obs, rules.Activities)...)
	out = append(out, seasonalNotifications(obs, rules.Seasonal)...)
	out = append(out, agriculturalNotifications(obs, rules.Agricultural)...)

	slices.SortStableFunc(out, func(a, b Notification) int {
		if a.Priority != b.Priority {
			return a.Priority - b.Priority
		}
		return a.StartDate.Compare(b.StartDate)
	})

	return Bundle{
		City:          city,
		GeneratedAt:   clock.Now().UTC(),
		Notifications: out,
	}, nil
}

func warningNotifications(obs []DailyObservation, rules []WarningRule) []Notification {
	var out []Notification
	for _, rule := range rules {
		for _, r := range findRuns(obs, rule.MinDays, rule.Triggered) {
			start := obs[r.start].Date
			end := obs[r.start+r.length-1].Date
			vars := map[string]string{"{days}": strconv.Itoa(r.length)}
			for k, v := range rule.Vars {
				vars[k] = v
			}
			out = append(out, Notification{
				Type:            TypeWarning,
				Rule:            rule.Name,
				Message:         renderTemplate(pickTemplate(rule.Templates, start, r.length), vars),
				Icon:            rule.Icon,
				Priority:        PriorityWarning,
				StartDate:       start,
				EndDate:         &end,
				ConsecutiveDays: r.length,
			})
		}
	}
	return out
}

func activityNotifications(obs []DailyObservation, rules []ActivityRule) []Notification {
	var out []Notification
	for _, rule := range rules {
		runs := findRuns(obs, rule.MinDays, rule.suitable)
		if len(runs) == 0 {
			continue
		}
		// One notification per activity, for the earliest window.
		r := runs[0]
		start := obs[r.start].Date
		end := obs[r.start+r.length-1].Date
		vars := map[string]string{
			"{days}":   strconv.Itoa(r.length),
			"{nights}": strconv.Itoa(r.length),
		}
		out = append(out, Notification{
			Type:            TypeActivity,
			Rule:            rule.Name,
			Message:         renderTemplate(pickTemplate(rule.Templates, start, r.length), vars),
			Icon:            rule.Icon,
			Priority:        PriorityActivity,
			StartDate:       start,
			EndDate:         &end,
			ConsecutiveDays: r.length,
		})
	}
	return out
}

func seasonalNotifications(obs []DailyObservation, rules SeasonalRules) []Notification {
	var out []Notification
	for _, ev := range rules.Events {
		for _, d := range obs {
			if d.Date.Month() != ev.Month || d.Date.Day() != ev.Day {
				continue
			}
			vars := map[string]string{"{condition}": strings.ToLower(d.Condition)}
			out = append(out, Notification{
				Type:      TypeSeasonal,
				Rule:      ev.Name,
				Message:   renderTemplate(pickTemplate(ev.Templates, d.Date, 1), vars),
				Icon:      ev.Icon,
				Priority:  PriorityAdvisory,
				StartDate: d.Date,
			})
			break
		}
	}
	if n, ok := trendNotification(obs, rules); ok {
		out = append(out, n)
	}
	return out
}

// trendNotification compares the mean temperature at the start and end of
// the forecast and reports a sustained warming or cooling shift.
func trendNotification(obs []DailyObservation, rules SeasonalRules) (Notification, bool) {
	w := rules.TrendWindow
	if w < 2 || len(obs) < w {
		return Notification{}, false
	}
	first := obs[0]
	last := obs[w-1]
	delta := last.TempMean - first.TempMean

	var rule TrendRule
	var change float64
	switch {
	case delta > rules.TrendThreshold:
		rule, change = rules.Warming, delta
	case delta < -rules.TrendThreshold:
		rule, change = rules.Cooling, -delta
	default:
		return Notification{}, false
	}

	return Notification{
		Type:      TypeSeasonal,
		Rule:      rule.Name,
		Icon:      rule.Icon,
		Priority:  PriorityAdvisory,
		StartDate: first.Date,
		Message: renderTemplate(pickTemplate(rule.Templates, first.Date, w), map[string]string{
			"{change}": strconv.FormatFloat(change, 'f', 1, 64),
			"{days}":   strconv.Itoa(w),
		}),
	}, true
}

func agriculturalNotifications(obs []DailyObservation, rules AgriculturalRules) []Notification {
	var out []Notification
	today := obs[0]

	advise := func(rule AdviceRule) {
		out = append(out, Notification{
			Type:      TypeAgricultural,
			Rule:      rule.Name,
			Icon:      rule.Icon,
			Priority:  PriorityAdvisory,
			StartDate: today.Date,
			Message:   pickTemplate(rule.Templates, today.Date, 1),
		})
	}

	if today.TempMin < rules.FrostBelow {
		advise(rules.Frost)
	}
	if today.TempMax > rules.HeatAbove {
		advise(rules.HeatStress)
	}

	rainAhead := false
	for i := 0; i < rules.RainLookahead && i < len(obs); i++ {
		if obs[i].WillRain() {
			rainAhead = true
			break
		}
	}
	if rainAhead {
		advise(rules.WateringSkip)
	} else {
		advise(rules.WateringReminder)
	}

	return out
}
