package domain

import "time"

// Range is an inclusive numeric interval.
type Range struct {
	Min, Max float64
}

func (r Range) contains(lo, hi float64) bool {
	return lo >= r.Min && hi <= r.Max
}

// WarningRule triggers when a daily condition holds for MinDays consecutive
// days. Vars carries the rule's threshold values for message interpolation.
type WarningRule struct {
	Name      string
	Icon      string
	MinDays   int
	Triggered func(DailyObservation) bool
	Templates []string
	Vars      map[string]string
}

// ActivityRule describes the weather window an outdoor activity wants.
// Zero limits mean no limit.
type ActivityRule struct {
	Name       string
	Icon       string
	MinDays    int
	RequireDry bool
	TempRange  *Range   // day min/max temperature must stay inside
	Humidity   *Range   // day min/max humidity must stay inside
	WindMax    float64  // km/h
	CloudMax   float64  // mean cloud cover percent
	Nights     bool     // templates describe the window as nights
	Templates  []string
}

func (r ActivityRule) suitable(d DailyObservation) bool {
	if r.RequireDry && d.WillRain() {
		return false
	}
	if r.TempRange != nil && !r.TempRange.contains(d.TempMin, d.TempMax) {
		return false
	}
	if r.Humidity != nil && !r.Humidity.contains(d.HumidityMin, d.HumidityMax) {
		return false
	}
	if r.WindMax > 0 && d.WindMax > r.WindMax {
		return false
	}
	if r.CloudMax > 0 && d.CloudMean > r.CloudMax {
		return false
	}
	return true
}

// SeasonalEvent is a fixed calendar date worth announcing when it falls
// inside the forecast window.
type SeasonalEvent struct {
	Month     time.Month
	Day       int
	Name      string // machine name, e.g. "spring_equinox"
	Icon      string
	Templates []string
}

// TrendRule names one direction of temperature-trend advisory.
type TrendRule struct {
	Name      string
	Icon      string
	Templates []string
}

// SeasonalRules covers calendar events and temperature-trend detection.
type SeasonalRules struct {
	Events         []SeasonalEvent
	TrendWindow    int     // days compared when looking for a trend
	TrendThreshold float64 // °C mean change that counts as a trend
	Warming        TrendRule
	Cooling        TrendRule
}

// AdviceRule is a single-day garden advisory.
type AdviceRule struct {
	Name      string
	Icon      string
	Templates []string
}

// AgriculturalRules holds the garden-advice thresholds and messages.
type AgriculturalRules struct {
	FrostBelow    float64 // °C, first-day minimum temperature
	HeatAbove     float64 // °C, first-day maximum temperature
	RainLookahead int     // days scanned for incoming rain before advising watering

	Frost            AdviceRule
	HeatStress       AdviceRule
	WateringSkip     AdviceRule
	WateringReminder AdviceRule
}

// Ruleset is the complete, immutable rule configuration. Build it once at
// startup with DefaultRuleset and pass it to the engine explicitly.
type Ruleset struct {
	Warnings     []WarningRule
	Activities   []ActivityRule
	Seasonal     SeasonalRules
	Agricultural AgriculturalRules
}

// DefaultRuleset builds the canonical rule tables. Thresholds are metric:
// temperatures in °C, wind in km/h, precipitation in mm.
func DefaultRuleset() Ruleset {
	return Ruleset{
		Warnings:     defaultWarnings(),
		Activities:   defaultActivities(),
		Seasonal:     defaultSeasonal(),
		Agricultural: defaultAgricultural(),
	}
}

func defaultWarnings() []WarningRule {
	return []WarningRule{
		{
			Name:      "heat_wave",
			Icon:      "temperature-high",
			MinDays:   3,
			Triggered: func(d DailyObservation) bool { return d.TempMax >= 32 },
			Vars:      map[string]string{"{temp}": "32"},
			Templates: []string{
				"Heat wave alert: Temperatures above {temp}°C expected for {days} consecutive days.",
				"Extreme heat warning: {days}-day heat wave with temperatures reaching {temp}°C.",
				"Health alert: Prolonged heat wave with {days} days of temperatures exceeding {temp}°C.",
			},
		},
		{
			Name:      "cold_snap",
			Icon:      "temperature-low",
			MinDays:   3,
			Triggered: func(d DailyObservation) bool { return d.TempMin <= 0 },
			Vars:      map[string]string{"{temp}": "0"},
			Templates: []string{
				"Cold snap alert: Temperatures below {temp}°C expected for {days} consecutive days.",
				"Freezing conditions warning: {days}-day cold spell with temperatures dropping to {temp}°C.",
				"Frost alert: Extended period of {days} days with temperatures at or below {temp}°C.",
			},
		},
		{
			Name:      "dry_spell",
			Icon:      "drought",
			MinDays:   7,
			Triggered: func(d DailyObservation) bool { return d.PrecipSum <= 1 },
			Vars:      map[string]string{"{rain}": "1"},
			Templates: []string{
				"Dry spell alert: Minimal to no rainfall expected for {days} consecutive days.",
				"Drought risk warning: Extended {days}-day period with precipitation below {rain} mm.",
				"Water conservation notice: {days}-day dry spell forecasted with negligible rainfall.",
			},
		},
		{
			Name:      "heavy_rain",
			Icon:      "cloud-showers-heavy",
			MinDays:   2,
			Triggered: func(d DailyObservation) bool { return d.PrecipSum >= 25 },
			Vars:      map[string]string{"{rain}": "25"},
			Templates: []string{
				"Heavy rain alert: Significant rainfall exceeding {rain} mm/day expected for {days} consecutive days.",
				"Flood risk warning: Prolonged heavy precipitation of {rain}+ mm daily for {days} days.",
				"Drainage alert: Extended period of {days} days with heavy rainfall above {rain} mm daily.",
			},
		},
		{
			Name:      "high_wind",
			Icon:      "wind",
			MinDays:   1,
			Triggered: func(d DailyObservation) bool { return d.WindMax >= 40 },
			Vars:      map[string]string{"{wind}": "40"},
			Templates: []string{
				"High wind alert: Sustained winds of {wind} km/h or higher expected for {days} days.",
				"Wind hazard warning: Strong winds exceeding {wind} km/h forecasted for {days}-day period.",
				"Outdoor caution: High winds of {wind}+ km/h expected to persist for {days} days.",
			},
		},
		{
			// AQI 0 means unmeasured, which never triggers.
			Name:      "air_quality",
			Icon:      "smog",
			MinDays:   1,
			Triggered: func(d DailyObservation) bool { return d.AQI >= 150 },
			Vars:      map[string]string{"{aqi}": "150"},
			Templates: []string{
				"Poor air quality alert: AQI levels exceeding {aqi} expected for {days} days.",
				"Health caution: Unhealthy air quality (AQI {aqi}+) forecasted to continue for {days} days.",
				"Respiratory warning: Elevated pollution levels with AQI above {aqi} for {days}-day period.",
			},
		},
		{
			Name:      "high_uv",
			Icon:      "sun",
			MinDays:   1,
			Triggered: func(d DailyObservation) bool { return d.UVIndex >= 8 },
			Vars:      map[string]string{"{uv}": "8"},
			Templates: []string{
				"High UV alert: UV index of {uv} or higher expected for {days} consecutive days.",
				"Sun protection warning: Very high UV levels ({uv}+) forecasted for {days} days.",
				"Skin damage risk: Extreme UV radiation (index {uv}+) continuing for {days} days.",
			},
		},
	}
}

func defaultActivities() []ActivityRule {
	return []ActivityRule{
		{
			Name:       "outdoor_painting",
			Icon:       "paint-brush",
			MinDays:    3,
			RequireDry: true,
			TempRange:  &Range{15, 28},
			Humidity:   &Range{20, 60},
			WindMax:    15,
			Templates: []string{
				"Dry spell alert: No rain expected for {days} days - good week for outdoor painting.",
				"Perfect painting weather ahead: {days} consecutive dry days with mild temperatures.",
				"Great opportunity for outdoor painting projects this week with {days} rain-free days ahead.",
			},
		},
		{
			Name:       "gardening",
			Icon:       "leaf",
			MinDays:    3,
			RequireDry: true,
			TempRange:  &Range{15, 30},
			WindMax:    20,
			Templates: []string{
				"Garden-friendly forecast: Mild temperatures and no heavy rain for the next {days} days.",
				"Ideal gardening window: {days} days of favorable conditions ahead for planting and maintenance.",
				"Green thumb alert: Perfect weather for garden projects over the next {days} days.",
			},
		},
		{
			Name:       "hiking",
			Icon:       "hiking",
			MinDays:    3,
			RequireDry: true,
			TempRange:  &Range{12, 27},
			WindMax:    25,
			Templates: []string{
				"Trail conditions looking great: {days} days of hiking-friendly weather ahead.",
				"Hiking forecast: Clear skies and comfortable temperatures for the next {days} days.",
				"Outdoor adventure alert: Excellent hiking conditions expected for {days} consecutive days.",
			},
		},
		{
			Name:       "beach_day",
			Icon:       "umbrella-beach",
			MinDays:    3,
			RequireDry: true,
			TempRange:  &Range{25, 35},
			CloudMax:   30,
			Templates: []string{
				"Beach weather alert: {days} days of sunshine and warm temperatures perfect for the shore.",
				"Sun and sand forecast: Ideal beach conditions for the next {days} days.",
				"Pack your beach gear: {days} days of perfect beach weather ahead.",
			},
		},
		{
			Name:       "laundry_drying",
			Icon:       "tshirt",
			MinDays:    3,
			RequireDry: true,
			TempRange:  &Range{15, 35},
			Humidity:   &Range{30, 60},
			Templates: []string{
				"Laundry-friendly forecast: Great drying conditions for the next {days} days.",
				"Efficient drying alert: {days} consecutive days optimal for air-drying laundry.",
				"Energy-saving opportunity: Perfect natural drying conditions for {days} days.",
			},
		},
		{
			Name:       "cycling",
			Icon:       "bicycle",
			MinDays:    3,
			RequireDry: true,
			TempRange:  &Range{13, 28},
			WindMax:    20,
			Templates: []string{
				"Cycling weather alert: {days} days of ideal riding conditions ahead.",
				"Perfect for pedaling: {days} consecutive days of cyclist-friendly weather expected.",
				"Bike commute forecast: Favorable conditions for the next {days} days.",
			},
		},
		{
			Name:       "stargazing",
			Icon:       "stars",
			MinDays:    2,
			RequireDry: true,
			CloudMax:   20,
			WindMax:    15,
			Nights:     true,
			Templates: []string{
				"Stargazing alert: Clear night skies expected for the next {nights} nights.",
				"Astronomy-friendly forecast: {nights} consecutive nights with optimal viewing conditions.",
				"Look up! Perfect stargazing conditions for {nights} nights ahead.",
			},
		},
		{
			Name:      "marathon_training",
			Icon:      "running",
			MinDays:   3,
			TempRange: &Range{5, 20},
			Humidity:  &Range{30, 70},
			Templates: []string{
				"Runner's forecast: {days} days of ideal training conditions ahead.",
				"Perfect for marathon training: {days} consecutive days with optimal running weather.",
				"Training opportunity: {days} days of runner-friendly weather expected.",
			},
		},
	}
}

func defaultSeasonal() SeasonalRules {
	return SeasonalRules{
		TrendWindow:    5,
		TrendThreshold: 5,
		Warming: TrendRule{
			Name: "warming_trend",
			Icon: "temperature-arrow-up",
			Templates: []string{
				"Warming trend detected: Temperatures rising by {change}°C over the next {days} days.",
				"Noticeable warm-up ahead: Expect a {change}°C temperature increase within {days} days.",
				"Temperatures on the rise: A {change}°C climb is forecast over the coming {days} days.",
			},
		},
		Cooling: TrendRule{
			Name: "cooling_trend",
			Icon: "temperature-arrow-down",
			Templates: []string{
				"Cooling trend detected: Temperatures dropping by {change}°C over the next {days} days.",
				"Noticeable cool-down ahead: Expect a {change}°C temperature decrease within {days} days.",
				"Temperatures falling: A {change}°C drop is forecast over the coming {days} days.",
			},
		},
		Events: []SeasonalEvent{
			{
				Month: time.March, Day: 20,
				Name: "spring_equinox", Icon: "seedling",
				Templates: []string{
					"Spring officially begins! Expect gradually warming temperatures and increasing daylight.",
					"Welcome spring! The equinox brings day and night of nearly equal length.",
					"Garden planning alert: The spring equinox marks the official start of planting season.",
				},
			},
			{
				Month: time.June, Day: 20,
				Name: "summer_solstice", Icon: "sun",
				Templates: []string{
					"Summer officially begins with the longest day of the year!",
					"Solstice alert: The official start of summer and peak daylight hours.",
					"Seasonal shift: Summer begins with the solstice - the longest day of the year.",
				},
			},
			{
				Month: time.September, Day: 22,
				Name: "fall_equinox", Icon: "leaf",
				Templates: []string{
					"Fall officially begins! Expect gradually cooling temperatures and shortening days.",
					"The autumn equinox marks the official end of summer with day and night of equal length.",
					"Seasonal transition: Fall begins - perfect time for garden cleanup and cool-weather planting.",
				},
			},
			{
				Month: time.December, Day: 21,
				Name: "winter_solstice", Icon: "snowflake",
				Templates: []string{
					"Winter officially begins with the shortest day of the year.",
					"Solstice alert: The official start of winter and the gradual return of daylight.",
					"Seasonal milestone: Winter begins with the solstice - the shortest day of the year.",
				},
			},
			{
				Month: time.April, Day: 22,
				Name: "earth_day", Icon: "globe-americas",
				Templates: []string{
					"Earth Day! The forecast shows {condition} conditions - perfect for outdoor environmental activities.",
					"Earth Day celebration alert: {condition} weather is ideal for community cleanup events.",
					"Environmental awareness day: The Earth Day forecast shows {condition} conditions.",
				},
			},
		},
	}
}

func defaultAgricultural() AgriculturalRules {
	return AgriculturalRules{
		FrostBelow:    3,
		HeatAbove:     32,
		RainLookahead: 2,
		Frost: AdviceRule{
			Name: "frost_protection",
			Icon: "snowflake",
			Templates: []string{
				"Frost alert for gardeners: Protect sensitive plants tonight as temperatures approach freezing.",
				"Garden protection notice: Cover tender plants this evening to guard against frost damage.",
				"Cold night ahead: Move potted plants indoors and cover garden beds before nightfall.",
			},
		},
		HeatStress: AdviceRule{
			Name: "heat_stress",
			Icon: "thermometer-hot",
			Templates: []string{
				"Plant heat stress warning: Water gardens early and provide shade during peak afternoon heat.",
				"Garden heat alert: Deep-water plants in the morning to help them cope with extreme temperatures.",
				"Protect your plants: Today's heat calls for extra watering and afternoon shade cloth.",
			},
		},
		WateringSkip: AdviceRule{
			Name: "watering_skip",
			Icon: "umbrella-rain",
			Templates: []string{
				"Water-saving tip: Skip watering today - rain is expected within the next two days.",
				"Hold off on irrigation: Incoming rainfall will take care of your garden's water needs.",
				"Let nature do the work: Rain in the forecast means no need to water the garden today.",
			},
		},
		WateringReminder: AdviceRule{
			Name: "watering_reminder",
			Icon: "water-droplet",
			Templates: []string{
				"Garden watering reminder: No rain expected soon, so plan to water your plants today.",
				"Dry days ahead: Your garden will need manual watering over the coming days.",
				"Irrigation notice: With no rainfall forecast, keep your plants hydrated today.",
			},
		},
	}
}
