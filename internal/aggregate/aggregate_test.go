package aggregate

import (
	"errors"
	"math"
	"testing"

	"github.com/KaramelBytes/depdash/internal/dataset"
	"github.com/KaramelBytes/depdash/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cols = []string{"Year", "Disadvantaged?", "Disadvantaged Count", "Attendance %", "Suspensions", "ATL Maths", "ATL English"}

func set(rows ...[]string) dataset.RecordSet {
	out := make(dataset.RecordSet, len(rows))
	for i, r := range rows {
		out[i] = dataset.NewRecord(cols, r)
	}
	return out
}

func fourPupils() dataset.RecordSet {
	return set(
		[]string{"7", "Y", "3", "95.5", "0", "Secure", "Exceeding"},
		[]string{"8", "Y", "1", "", "2", "", ""},
		[]string{"7", "N", "0", "87.2%", "x", "emerging", "Unknown"},
		[]string{"10", "N", "2", "bad", "1", "Developing", ""},
	)
}

var disadvantaged = filter.Equals{Field: "Disadvantaged?", Value: "Y"}.Holds

func TestPercentageWhere(t *testing.T) {
	s := fourPupils()
	assert.Equal(t, 2, CountWhere(s, disadvantaged))
	assert.InDelta(t, 50.0, PercentageWhere(s, disadvantaged), 1e-9)
	assert.Equal(t, 0.0, PercentageWhere(nil, disadvantaged))
	assert.Equal(t, 0.0, Percentage(3, 0))

	m := Measure("Disadvantaged", s, disadvantaged)
	assert.Equal(t, Metric{Label: "Disadvantaged", Count: 2, Total: 4, Percentage: 50}, m)
}

func TestPercentageWhere_Bounds(t *testing.T) {
	s := fourPupils()
	for _, p := range []filter.Predicate{filter.All, filter.None, disadvantaged} {
		v := PercentageWhere(s, p)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestGroupBy_ConservesCountAndSortsNaturally(t *testing.T) {
	s := fourPupils()
	groups := GroupBy(s, FieldKey("Year"))
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"7", "8", "10"}, []string{groups[0].Key, groups[1].Key, groups[2].Key})

	total, dis := 0, 0
	for _, g := range groups {
		total += len(g.Records)
		dis += CountWhere(g.Records, disadvantaged)
	}
	assert.Equal(t, len(s), total)
	assert.Equal(t, CountWhere(s, disadvantaged), dis)

	assert.Empty(t, GroupBy(nil, FieldKey("Year")))
}

func TestBreakdown(t *testing.T) {
	rows := Breakdown(fourPupils(), FieldKey("Year"), disadvantaged)
	require.Len(t, rows, 3)
	assert.Equal(t, BreakdownRow{Key: "7", Count: 1, Total: 2, Percentage: 50}, rows[0])
	assert.Equal(t, BreakdownRow{Key: "8", Count: 1, Total: 1, Percentage: 100}, rows[1])
	assert.Equal(t, BreakdownRow{Key: "10", Count: 0, Total: 1, Percentage: 0}, rows[2])
}

func TestNaturalLess(t *testing.T) {
	assert.True(t, NaturalLess("7", "10"))
	assert.False(t, NaturalLess("10", "7"))
	assert.True(t, NaturalLess("Year 9", "Year 11"))
	assert.True(t, NaturalLess("", "7"))
	assert.True(t, NaturalLess("R", "Rec"))
	assert.False(t, NaturalLess("8", "8"))
	assert.Equal(t, []string{"7", "8", "10"}, Distinct(fourPupils(), FieldKey("Year")))
}

func TestCrossTab(t *testing.T) {
	m := CrossTab(fourPupils(), FieldKey("Year"), []Column{
		{Label: "Disadvantaged", Test: disadvantaged},
		{Label: "All", Test: filter.All},
	})
	assert.Equal(t, []string{"7", "8", "10"}, m.Rows)
	assert.Equal(t, []string{"Disadvantaged", "All"}, m.Columns)
	assert.Equal(t, [][]float64{{50, 100}, {100, 100}, {0, 100}}, m.Values)
	assert.Equal(t, []int{2, 1, 1}, m.Sizes)

	empty := CrossTab(nil, FieldKey("Year"), []Column{{Label: "x", Test: filter.All}})
	assert.Empty(t, empty.Rows)
	assert.Empty(t, empty.Values)
}

func TestBucketDistribution_ClampsTopAndDropsUnparseable(t *testing.T) {
	s := set(
		[]string{"", "", "", "100%"},
		[]string{"", "", "", "99.9"},
		[]string{"", "", "", "0"},
		[]string{"", "", "", "-5"},
		[]string{"", "", "", "150"},
		[]string{"", "", "", ""},
		[]string{"", "", "", "abc"},
		[]string{"", "", "", "45"},
	)
	buckets := BucketDistribution(s, FloatField("Attendance %"), DefaultAttendanceBands)
	require.Len(t, buckets, 10)
	assert.Equal(t, "0-10", buckets[0].Label)
	assert.Equal(t, "90-100", buckets[9].Label)
	assert.Equal(t, 2, buckets[0].Count, "0 and clamped negative")
	assert.Equal(t, 1, buckets[4].Count)
	assert.Equal(t, 3, buckets[9].Count, "99.9, 100 and 150 share the top band")

	sum := 0
	for _, b := range buckets {
		sum += b.Count
	}
	assert.Equal(t, len(Values(s, FloatField("Attendance %"))), sum)
}

func TestBands_Degenerate(t *testing.T) {
	b := Bands{Width: 0, Max: 100}
	assert.Equal(t, 1, b.Count())
	assert.Equal(t, 0, b.Index(55))
	assert.Equal(t, 9, DefaultAttendanceBands.Index(math.Inf(1)))
	assert.Equal(t, 0, DefaultAttendanceBands.Index(math.Inf(-1)))
	odd := Bands{Width: 30, Max: 100}
	assert.Equal(t, 4, odd.Count())
	assert.Equal(t, 3, odd.Index(100))
	buckets := BucketDistribution(nil, FloatField("x"), odd)
	assert.Equal(t, "90-100", buckets[3].Label)
}

func TestAverage_ExcludesUnparseable(t *testing.T) {
	mean, n, ok := Average(fourPupils(), FloatField("Attendance %"))
	require.True(t, ok)
	assert.Equal(t, 2, n)
	assert.InDelta(t, 91.35, mean, 1e-9)

	_, _, ok = Average(nil, FloatField("Attendance %"))
	assert.False(t, ok)
}

func TestAverage_ExcludesNonFinite(t *testing.T) {
	s := set(
		[]string{"7", "Y", "1", "95.5", "", "", ""},
		[]string{"7", "Y", "1", "NaN", "", "", ""},
		[]string{"8", "N", "0", "Inf", "", "", ""},
		[]string{"8", "N", "0", "-inf%", "", "", ""},
	)
	mean, n, ok := Average(s, FloatField("Attendance %"))
	require.True(t, ok)
	assert.Equal(t, 1, n)
	assert.InDelta(t, 95.5, mean, 1e-9)

	sum := Summarize(s, FloatField("Attendance %"))
	assert.Equal(t, 1, sum.N)
	assert.Equal(t, 3, sum.Missing)

	var pe *ParseError
	for _, raw := range []string{"nan", "+Inf", "Infinity"} {
		_, err := ParseFloat("Attendance %", raw)
		assert.True(t, errors.As(err, &pe), raw)
	}
}

func TestAverageByGroup(t *testing.T) {
	got := AverageByGroup(fourPupils(), FieldKey("Year"), FloatField("Attendance %"))
	require.Len(t, got, 3)
	assert.Equal(t, "7", got[0].Key)
	assert.Equal(t, 2, got[0].SampleSize)
	assert.Equal(t, 2, got[0].Total)
	assert.InDelta(t, 91.35, got[0].Mean, 1e-9)
	assert.False(t, got[1].HasData, "year 8 has a blank value")
	assert.Equal(t, 1, got[1].Total)
	assert.False(t, got[2].HasData, "year 10 value is unparseable")
}

func TestSummarize(t *testing.T) {
	s := Summarize(fourPupils(), IntField("Suspensions"))
	assert.True(t, s.HasData)
	assert.Equal(t, 3, s.N)
	assert.Equal(t, 1, s.Missing)
	assert.InDelta(t, 1.0, s.Mean, 1e-9)
	assert.InDelta(t, 1.0, s.Median, 1e-9)
	assert.Equal(t, 0.0, s.Min)
	assert.Equal(t, 2.0, s.Max)

	assert.False(t, Summarize(nil, IntField("Suspensions")).HasData)
}

func TestPyramidLevels(t *testing.T) {
	s := fourPupils()
	lvl := IntLevel("Disadvantaged Count")
	max := MaxLevel(s, lvl)
	require.Equal(t, 3, max)
	got := PyramidLevels(s, lvl, max)
	require.Len(t, got, max+1)
	sum := 0
	for i, l := range got {
		assert.Equal(t, max-i, l.Level)
		assert.Equal(t, 1, l.Count)
		assert.InDelta(t, 25.0, l.Percentage, 1e-9)
		sum += l.Count
	}
	assert.Equal(t, len(s), sum)
	assert.Equal(t, "3 markers", got[0].Label)
	assert.Equal(t, "1 marker", got[2].Label)
}

func TestPyramidLevels_DenseAndClamped(t *testing.T) {
	s := set(
		[]string{"", "", "5"},
		[]string{"", "", "0"},
		[]string{"", "", "oops"},
	)
	got := PyramidLevels(s, IntLevel("Disadvantaged Count"), 2)
	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 0, 1}, []int{got[0].Count, got[1].Count, got[2].Count})

	empty := PyramidLevels(nil, IntLevel("Disadvantaged Count"), MaxLevel(nil, IntLevel("Disadvantaged Count")))
	require.Len(t, empty, 1)
	assert.Equal(t, Level{Level: 0, Label: "0 markers"}, empty[0])
}

func TestLevelCounts_OnlyObserved(t *testing.T) {
	s := set([]string{"", "", "3"}, []string{"", "", "0"}, []string{"", "", "3"})
	got := LevelCounts(s, IntLevel("Disadvantaged Count"))
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Level)
	assert.Equal(t, 3, got[1].Level)
	assert.Equal(t, 2, got[1].Count)
}

func TestScoreScale(t *testing.T) {
	s := fourPupils()
	header := cols
	columns := ScoreColumns(header, "atl ")
	require.Equal(t, []string{"ATL Maths", "ATL English"}, columns)
	assert.Nil(t, ScoreColumns(header, "  "))

	scale := NewScoreScale(DefaultScoreLevels())
	fn := scale.Numeric(columns)

	v, ok := fn(s[0])
	require.True(t, ok)
	assert.InDelta(t, 3.5, v, 1e-9)

	_, ok = fn(s[1])
	assert.False(t, ok, "blank scores are absent, not zero")

	v, ok = fn(s[2])
	require.True(t, ok)
	assert.InDelta(t, 1.0, v, 1e-9, "unknown text ignored, case-insensitive match")

	mean, n, ok := Average(s, fn)
	require.True(t, ok)
	assert.Equal(t, 3, n)
	assert.InDelta(t, (3.5+1+2)/3, mean, 1e-9)
}

func TestParseNumbers(t *testing.T) {
	v, err := ParseFloat("Attendance %", " 95.5% ")
	require.NoError(t, err)
	assert.Equal(t, 95.5, v)

	_, err = ParseFloat("Attendance %", "%")
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "Attendance %", pe.Field)

	n, err := ParseInt("Suspensions", " 3 ")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	_, err = ParseInt("Suspensions", "1.5")
	assert.Error(t, err)
}
