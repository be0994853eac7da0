package dashboard

import (
	"github.com/KaramelBytes/depdash/internal/aggregate"
	"github.com/KaramelBytes/depdash/internal/enrich"
)

// Columns names the source column for each recognized role. This is the
// closed set of keys the dashboard reads from a record.
type Columns struct {
	YearGroup         string `mapstructure:"year_group" yaml:"year_group"`
	Disadvantaged     string `mapstructure:"disadvantaged" yaml:"disadvantaged"`
	DisadvantageCount string `mapstructure:"disadvantage_count" yaml:"disadvantage_count"`
	FSM               string `mapstructure:"fsm" yaml:"fsm"`
	PupilPremium      string `mapstructure:"pupil_premium" yaml:"pupil_premium"`
	SEN               string `mapstructure:"sen" yaml:"sen"`
	YoungCarer        string `mapstructure:"young_carer" yaml:"young_carer"`
	LookedAfter       string `mapstructure:"looked_after" yaml:"looked_after"`
	ChildProtection   string `mapstructure:"child_protection" yaml:"child_protection"`
	L3Response        string `mapstructure:"l3_response" yaml:"l3_response"`
	RegForm           string `mapstructure:"reg_form" yaml:"reg_form"`
	Attendance        string `mapstructure:"attendance" yaml:"attendance"`
	Suspensions       string `mapstructure:"suspensions" yaml:"suspensions"`
}

// DefaultColumns returns the column names of the anonymised school export.
func DefaultColumns() Columns {
	return Columns{
		YearGroup:         "NC Year(s) for this academic year",
		Disadvantaged:     "Disadvantaged?",
		DisadvantageCount: "Disadvantaged Count",
		FSM:               "Ever 6 FSM at any time between 01 Aug 2020 and 30 Aug 2026?",
		PupilPremium:      "Pupil Premium Recipient at any time between 01 Aug 2020 and 30 Aug 2026?",
		SEN:               "SEN at any time this academic year?",
		YoungCarer:        "Young Carer at any time this academic year?",
		LookedAfter:       "Looked After (In Care) Status",
		ChildProtection:   "Child Protection Status",
		L3Response:        "L3 Graduated Response Recipient",
		RegForm:           "Reg Form",
		Attendance:        "Attendance %",
		Suspensions:       "Number of Suspensions",
	}
}

// All lists every configured column name in a fixed order.
func (c Columns) All() []string {
	return []string{
		c.YearGroup, c.Disadvantaged, c.DisadvantageCount, c.FSM, c.PupilPremium,
		c.SEN, c.YoungCarer, c.LookedAfter, c.ChildProtection, c.L3Response,
		c.RegForm, c.Attendance, c.Suspensions,
	}
}

// NationalAverage is a published national rate for one marker.
type NationalAverage struct {
	Label  string  `mapstructure:"label" yaml:"label"`
	Marker string  `mapstructure:"marker" yaml:"marker"`
	Rate   float64 `mapstructure:"rate" yaml:"rate"`
	Source string  `mapstructure:"source" yaml:"source"`
}

// DefaultNationalAverages returns the DfE 2024 comparison figures.
func DefaultNationalAverages() []NationalAverage {
	return []NationalAverage{
		{Label: "SEN", Marker: MarkerSEN, Rate: 17.3, Source: "DfE Statistics: SEN in England 2024"},
		{Label: "Ever 6 FSM", Marker: MarkerFSM, Rate: 25.0, Source: "DfE Statistics: Schools, Pupils and Their Characteristics 2024"},
		{Label: "Pupil Premium", Marker: MarkerPupilPremium, Rate: 23.7, Source: "DfE Statistics: Pupil Premium Allocations 2024/25"},
		{Label: "Looked After", Marker: MarkerLookedAfter, Rate: 0.9, Source: "DfE Statistics: Children Looked After in England 2024"},
	}
}

// Settings is everything a render needs besides the data and the state.
type Settings struct {
	Columns                      Columns
	ProvisionRules               []enrich.Rule
	DefaultProvision             string
	ScorePrefixes                []string
	ScoreLevels                  map[string]int
	AttendanceBands              aggregate.Bands
	MultipleDeprivationThreshold int
	National                     []NationalAverage
}

// DefaultScorePrefixes names the ordinal score subjects.
func DefaultScorePrefixes() []string {
	return []string{"Attitude to Learning", "Effort"}
}

// DefaultSettings returns settings matching the school export.
func DefaultSettings() Settings {
	return Settings{
		Columns:                      DefaultColumns(),
		ProvisionRules:               enrich.DefaultRules(),
		DefaultProvision:             enrich.DefaultProvision,
		ScorePrefixes:                DefaultScorePrefixes(),
		ScoreLevels:                  aggregate.DefaultScoreLevels(),
		AttendanceBands:              aggregate.DefaultAttendanceBands,
		MultipleDeprivationThreshold: 3,
		National:                     DefaultNationalAverages(),
	}
}

func (s Settings) enricher() enrich.Enricher {
	return enrich.New(s.Columns.RegForm, s.ProvisionRules, s.DefaultProvision)
}
