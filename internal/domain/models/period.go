package models

// Period is a lookback window understood by the stock-data and training backends.
type Period string

const (
	Period1mo Period = "1mo"
	Period3mo Period = "3mo"
	Period6mo Period = "6mo"
	Period1y  Period = "1y"
	Period2y  Period = "2y"
	Period5y  Period = "5y"
)

// TrainingPeriods are the windows offered by the training form.
var TrainingPeriods = []Period{Period1mo, Period3mo, Period6mo, Period1y, Period2y, Period5y}

// ChartPeriods are the windows offered by the chart view. It is deliberately
// narrower than TrainingPeriods.
var ChartPeriods = []Period{Period1mo, Period3mo, Period6mo, Period1y}

// IsTrainingPeriod reports whether p is offered by the training form.
func IsTrainingPeriod(p string) bool { return contains(TrainingPeriods, p) }

// IsChartPeriod reports whether p is offered by the chart view.
func IsChartPeriod(p string) bool { return contains(ChartPeriods, p) }

func contains(set []Period, p string) bool {
	for _, v := range set {
		if string(v) == p {
			return true
		}
	}
	return false
}
