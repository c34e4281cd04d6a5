package openweather

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Anand123098sitare/Weather-Insights/internal/domain"
)

// Simulator implements domain.WeatherProvider with generated data, used
// when no OpenWeatherMap API key is configured. Output is deterministic
// per city and period so repeated calls within the same window agree.
type Simulator struct {
	clock clockwork.Clock
}

// NewSimulator creates a simulator on the real clock.
func NewSimulator() *Simulator {
	return &Simulator{clock: clockwork.NewRealClock()}
}

// NewSimulatorWithClock creates a simulator with an injected time source,
// for tests and fixture generation.
func NewSimulatorWithClock(c clockwork.Clock) *Simulator {
	return &Simulator{clock: c}
}

var simConditions = []string{"Clear", "Clouds", "Rain", "Drizzle", "Mist"}

func (s *Simulator) CurrentWeather(_ context.Context, city string) (domain.CurrentConditions, error) {
	now := s.clock.Now().UTC()
	period := now.Truncate(3 * time.Hour)
	p := simulatePeriod(city, period)

	return domain.CurrentConditions{
		City:        city,
		Time:        now,
		Temperature: p.Temperature,
		FeelsLike:   p.Temperature - p.WindSpeed*0.1,
		Humidity:    p.Humidity,
		WindSpeed:   p.WindSpeed,
		CloudCover:  p.CloudCover,
		Condition:   p.Condition,
		Description: p.Condition,
	}, nil
}

func (s *Simulator) Forecast(_ context.Context, city string, days int) ([]domain.ForecastPeriod, error) {
	start := s.clock.Now().UTC().Truncate(3 * time.Hour)
	periods := make([]domain.ForecastPeriod, 0, days*8)
	for i := 0; i < days*8; i++ {
		periods = append(periods, simulatePeriod(city, start.Add(time.Duration(i)*3*time.Hour)))
	}
	return periods, nil
}

func (s *Simulator) AirQuality(_ context.Context, city string) (domain.AQIReading, error) {
	day := s.clock.Now().UTC().Truncate(24 * time.Hour)
	rng := rand.New(rand.NewSource(seed(city, day)))

	// PM2.5 between roughly clean air and unhealthy levels.
	pm25 := 3 + rng.Float64()*80
	value, err := domain.AQIFromPM25(pm25)
	if err != nil {
		return domain.AQIReading{}, err
	}

	return domain.AQIReading{
		City:  city,
		Value: value,
		Pollutants: map[string]float64{
			"pm2_5": math.Round(pm25*10) / 10,
			"pm10":  math.Round(pm25*1.6*10) / 10,
			"no2":   math.Round((5+rng.Float64()*40)*10) / 10,
			"o3":    math.Round((20+rng.Float64()*60)*10) / 10,
		},
	}, nil
}

// simulatePeriod produces one 3-hourly sample. The seed combines city and
// period start, so the same slot always simulates the same weather.
func simulatePeriod(city string, at time.Time) domain.ForecastPeriod {
	rng := rand.New(rand.NewSource(seed(city, at)))

	// City-specific climate baseline, shifted by season and time of day.
	baseline := 8 + float64(cityHash(city)%20)
	seasonal := 8 * math.Sin(2*math.Pi*float64(at.YearDay()-80)/365)
	diurnal := 4 * math.Sin(2*math.Pi*float64(at.Hour()-9)/24)
	temp := baseline + seasonal + diurnal + rng.Float64()*4 - 2

	cloud := rng.Float64() * 100
	var condition string
	var precip, pop float64
	switch {
	case cloud < 35:
		condition = "Clear"
	case cloud < 70:
		condition = "Clouds"
	case rng.Float64() < 0.6:
		condition = "Rain"
		precip = rng.Float64() * 6
		pop = 0.5 + rng.Float64()*0.5
	default:
		condition = simConditions[rng.Intn(len(simConditions))]
		pop = rng.Float64() * 0.4
	}

	return domain.ForecastPeriod{
		Time:          at,
		Temperature:   math.Round(temp*10) / 10,
		Humidity:      math.Round(40 + cloud*0.4 + rng.Float64()*10),
		WindSpeed:     math.Round(rng.Float64()*35*10) / 10,
		CloudCover:    math.Round(cloud),
		Precipitation: math.Round(precip*10) / 10,
		PrecipProb:    math.Round(pop*100) / 100,
		Condition:     condition,
		UVIndex:       simulateUV(at, cloud),
	}
}

// simulateUV peaks at midday and drops with cloud cover.
func simulateUV(at time.Time, cloud float64) float64 {
	hour := float64(at.Hour())
	if hour < 6 || hour > 18 {
		return 0
	}
	peak := 9 * math.Sin(math.Pi*(hour-6)/12)
	uv := peak * (1 - cloud/150)
	if uv < 0 {
		return 0
	}
	return math.Round(uv*10) / 10
}

func seed(city string, at time.Time) int64 {
	return int64(cityHash(city)) ^ at.Unix()
}

func cityHash(city string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(city))
	return h.Sum32()
}
