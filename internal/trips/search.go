package trips

import (
	"strconv"
	"strings"
	"time"

	"github.com/gdg-garage/safari-trip-api/internal/models"
)

// Criteria are optional filters. A nil pointer, empty string or empty slice
// means "no constraint".
type Criteria struct {
	Destinations []models.Destination
	StartDate    *time.Time
	EndDate      *time.Time
	MinDays      *int
	MaxDays      *int
	MinPrice     *float64
	MaxPrice     *float64
	CarType      models.CarType
	CarState     models.CarState
}

// Stats summarise a whole catalog for range controls. For an empty catalog
// every bound is zero and Empty is true.
type Stats struct {
	MinDays  int     `json:"min_days"`
	MaxDays  int     `json:"max_days"`
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
	Empty    bool    `json:"empty"`
}

type Result struct {
	Trips []models.Trip
	Stats Stats
}

// Search filters the catalog. A trip matches the destination filter when it
// visits ANY of the requested destinations. Stats always cover the
// unfiltered catalog.
func Search(catalog []models.Trip, c Criteria) Result {
	return Result{
		Trips: filter(catalog, c, visitsAny),
		Stats: ComputeStats(catalog),
	}
}

// SearchStrict filters like Search except that a trip must visit ALL
// requested destinations. The two differ on purpose; booking search clients
// rely on the stricter match.
func SearchStrict(catalog []models.Trip, c Criteria) []models.Trip {
	return filter(catalog, c, visitsAll)
}

func ComputeStats(catalog []models.Trip) Stats {
	if len(catalog) == 0 {
		return Stats{Empty: true}
	}
	s := Stats{
		MinDays:  catalog[0].Days,
		MaxDays:  catalog[0].Days,
		MinPrice: catalog[0].PricePerPerson,
		MaxPrice: catalog[0].PricePerPerson,
	}
	for _, t := range catalog[1:] {
		s.MinDays = min(s.MinDays, t.Days)
		s.MaxDays = max(s.MaxDays, t.Days)
		s.MinPrice = min(s.MinPrice, t.PricePerPerson)
		s.MaxPrice = max(s.MaxPrice, t.PricePerPerson)
	}
	return s
}

type destinationMatch func(t models.Trip, wanted []models.Destination) bool

func visitsAny(t models.Trip, wanted []models.Destination) bool {
	for _, d := range wanted {
		if t.Visits(d) {
			return true
		}
	}
	return false
}

func visitsAll(t models.Trip, wanted []models.Destination) bool {
	for _, d := range wanted {
		if !t.Visits(d) {
			return false
		}
	}
	return true
}

func filter(catalog []models.Trip, c Criteria, match destinationMatch) []models.Trip {
	out := []models.Trip{}
	for _, t := range catalog {
		if matches(t, c, match) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t models.Trip, c Criteria, match destinationMatch) bool {
	if len(c.Destinations) > 0 && !match(t, c.Destinations) {
		return false
	}
	if c.StartDate != nil && t.StartDate.Before(*c.StartDate) {
		return false
	}
	if c.EndDate != nil && t.EndDate().After(*c.EndDate) {
		return false
	}
	if c.MinDays != nil && t.Days < *c.MinDays {
		return false
	}
	if c.MaxDays != nil && t.Days > *c.MaxDays {
		return false
	}
	if c.MinPrice != nil && t.PricePerPerson < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && t.PricePerPerson > *c.MaxPrice {
		return false
	}
	if c.CarType != "" && t.CarType != c.CarType {
		return false
	}
	if c.CarState != "" && t.CarState.Rank() > c.CarState.Rank() {
		return false
	}
	return true
}

// CriteriaInput holds search parameters as they arrive in a query string.
type CriteriaInput struct {
	Destinations []string
	StartDate    string
	EndDate      string
	MinDays      string
	MaxDays      string
	MinPrice     string
	MaxPrice     string
	CarType      string
	CarState     string
}

// ParseCriteria coerces query values. Unknown enumeration values and
// malformed numbers or dates are reported as *models.ValidationError.
func ParseCriteria(in CriteriaInput) (Criteria, error) {
	var c Criteria

	for _, raw := range in.Destinations {
		for _, part := range strings.Split(raw, ",") {
			d := models.Destination(strings.TrimSpace(part))
			if d == "" {
				continue
			}
			if !d.Valid() {
				return Criteria{}, models.Invalid("destinations", "invalid destination %q", d)
			}
			c.Destinations = append(c.Destinations, d)
		}
	}

	for _, f := range []struct {
		field string
		value string
		dst   **time.Time
	}{
		{"start_date", in.StartDate, &c.StartDate},
		{"end_date", in.EndDate, &c.EndDate},
	} {
		d, err := ParseDate(f.field, f.value)
		if err != nil {
			return Criteria{}, err
		}
		if !d.IsZero() {
			*f.dst = &d
		}
	}

	var err error
	if c.MinDays, err = optionalInt("min_days", in.MinDays); err != nil {
		return Criteria{}, err
	}
	if c.MaxDays, err = optionalInt("max_days", in.MaxDays); err != nil {
		return Criteria{}, err
	}
	if c.MinPrice, err = optionalFloat("min_price", in.MinPrice); err != nil {
		return Criteria{}, err
	}
	if c.MaxPrice, err = optionalFloat("max_price", in.MaxPrice); err != nil {
		return Criteria{}, err
	}

	if s := strings.TrimSpace(in.CarType); s != "" {
		c.CarType = models.CarType(s)
		if !c.CarType.Valid() {
			return Criteria{}, models.Invalid("car_type", "invalid car type %q", s)
		}
	}
	if s := strings.TrimSpace(in.CarState); s != "" {
		c.CarState = models.CarState(s)
		if !c.CarState.Valid() {
			return Criteria{}, models.Invalid("car_state", "invalid car state %q", s)
		}
	}
	return c, nil
}

func optionalInt(field, value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, models.Invalid(field, "must be an integer, got %q", value)
	}
	return &n, nil
}

func optionalFloat(field, value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, models.Invalid(field, "must be a number, got %q", value)
	}
	return &f, nil
}
