package generator

import "time"

// Weight tables driving order volume and taxonomy sampling. Weights are
// relative, not probabilities; sampling normalises over whatever subset is
// in play.

var dayOfWeekWeights = map[time.Weekday]float64{
	time.Monday:    0.9,
	time.Tuesday:   0.9,
	time.Wednesday: 1.0,
	time.Thursday:  1.0,
	time.Friday:    1.2,
	time.Saturday:  1.5,
	time.Sunday:    1.4,
}

var monthWeights = map[time.Month]float64{
	time.January:   0.8,
	time.February:  0.85,
	time.March:     0.95,
	time.April:     1.0,
	time.May:       1.0,
	time.June:      0.95,
	time.July:      0.9,
	time.August:    0.95,
	time.September: 1.0,
	time.October:   1.1,
	time.November:  1.3,
	time.December:  1.5,
}

type valueParams struct {
	Mu    float64
	Sigma float64
}

// Log-normal parameters per product category; calibrated so typical order
// values land between $15 and $80 with a right-skewed tail, category Min/Max
// clamp the extremes.
var categoryValueParams = map[string]valueParams{
	"Electronics":    {4.3, 0.6},
	"Fashion":        {3.2, 0.6},
	"Home & Kitchen": {3.8, 0.7},
	"Books":          {2.8, 0.5},
	"Toys":           {3.1, 0.6},
	"Beauty":         {3.0, 0.5},
	"Sports":         {3.6, 0.6},
	"Automotive":     {4.0, 0.8},
	"Grocery":        {2.9, 0.4},
	"Health":         {3.2, 0.5},
}

var defaultValueParams = valueParams{3.5, 0.7}

const (
	minOrderValue = 5.0
	maxOrderValue = 500.0
)

// categoryReasonBias skews return-reason sampling for categories where some
// reasons dominate (fashion sizing, electronics defects). Reasons not listed
// keep weight 1.
var categoryReasonBias = map[string]map[string]float64{
	"Fashion": {
		"Not as described": 2.0,
		"Changed mind":     1.8,
	},
	"Electronics": {
		"Defective product": 2.5,
		"Missing parts":     1.6,
	},
	"Home & Kitchen": {
		"Damaged during shipping": 2.0,
	},
	"Toys": {
		"Damaged during shipping": 1.5,
		"Defective product":       1.5,
	},
}

// specializationShare is the probability an order falls in the seller's
// specialized category rather than a uniformly drawn other one.
const specializationShare = 0.8
