package dataset

// DisasterType is one of the closed set of event classifications used by
// the source dataset.
type DisasterType string

const (
	TypeDrought       DisasterType = "Drought"
	TypeEarthquake    DisasterType = "Earthquake"
	TypeExtremeTemp   DisasterType = "Extreme temperature"
	TypeFlood         DisasterType = "Flood"
	TypeFog           DisasterType = "Fog"
	TypeMassMoveDry   DisasterType = "Mass movement (dry)"
	TypeMassMoveWet   DisasterType = "Mass movement (wet)"
	TypeGlacialFlood  DisasterType = "Glacial lake outburst flood"
	TypeStorm         DisasterType = "Storm"
	TypeVolcanic      DisasterType = "Volcanic activity"
	TypeWildfire      DisasterType = "Wildfire"
)

// AllDisasterTypes lists every known type in canonical enumeration order.
// This order is the tie-breaker wherever groups are ranked.
var AllDisasterTypes = []DisasterType{
	TypeDrought,
	TypeEarthquake,
	TypeExtremeTemp,
	TypeFlood,
	TypeFog,
	TypeMassMoveDry,
	TypeMassMoveWet,
	TypeGlacialFlood,
	TypeStorm,
	TypeVolcanic,
	TypeWildfire,
}

// DisasterRecord is one event-country-year row of the dataset. Optional
// numeric fields are nil when the source left them blank; after parsing
// they are always finite and non-negative.
type DisasterRecord struct {
	ISO       string
	Country   string
	Region    string
	Subregion string

	Year       int
	StartMonth *int
	StartDay   *int
	EndMonth   *int
	EndDay     *int

	DisasterType DisasterType

	TotalDeaths   *float64
	TotalAffected *float64

	// EconomicDamageAdj is derived at load time from the first non-null of
	// (total damage, reconstruction costs, insured damage), all inflation
	// adjusted, converted from thousands to millions of US$.
	EconomicDamageAdj *float64
}

// Metric selects which per-record quantity a pipeline aggregates.
type Metric string

const (
	MetricEvents   Metric = "events"
	MetricDeaths   Metric = "deaths"
	MetricAffected Metric = "affected"
	MetricEconomic Metric = "economic"
)

// Value extracts the record's contribution for the metric. Missing values
// contribute 0 to sums.
func (m Metric) Value(r DisasterRecord) float64 {
	switch m {
	case MetricDeaths:
		return deref(r.TotalDeaths)
	case MetricAffected:
		return deref(r.TotalAffected)
	case MetricEconomic:
		return deref(r.EconomicDamageAdj)
	default:
		return 1
	}
}

// Sample returns the record's raw metric value for distribution views,
// where a missing value is distinguished from a true zero.
func (m Metric) Sample(r DisasterRecord) (float64, bool) {
	switch m {
	case MetricDeaths:
		return ptrSample(r.TotalDeaths)
	case MetricAffected:
		return ptrSample(r.TotalAffected)
	case MetricEconomic:
		return ptrSample(r.EconomicDamageAdj)
	default:
		return 1, true
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func ptrSample(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

// YearExtent returns the minimum and maximum year present in records.
// ok is false when records is empty.
func YearExtent(records []DisasterRecord) (minYear, maxYear int, ok bool) {
	if len(records) == 0 {
		return 0, 0, false
	}
	minYear, maxYear = records[0].Year, records[0].Year
	for _, r := range records[1:] {
		if r.Year < minYear {
			minYear = r.Year
		}
		if r.Year > maxYear {
			maxYear = r.Year
		}
	}
	return minYear, maxYear, true
}
