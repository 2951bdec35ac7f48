package value

// Trend compares the last four samples of a series with the rest of it.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

func (t Trend) String() string {
	return string(t)
}

// Verdict names the recommendation branch an analysis took.
type Verdict string

const (
	VerdictNoData        Verdict = "no_data"
	VerdictHistoricalLow Verdict = "historical_low"
	VerdictGoodTime      Verdict = "good_time"
	VerdictWait          Verdict = "wait"
	VerdictNormal        Verdict = "normal"
)

func (v Verdict) String() string {
	return string(v)
}
