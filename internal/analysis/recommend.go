package analysis

// RecommendationCode identifies a recommendation independently of its wording.
type RecommendationCode string

const (
	RecBoostWeekend    RecommendationCode = "boost_weekend"
	RecMaintainWeekend RecommendationCode = "maintain_weekend"
	RecAcquisition     RecommendationCode = "acquisition"
	RecLoyalty         RecommendationCode = "loyalty"
	RecFamilySlots     RecommendationCode = "family_slots"
)

// AcquisitionThreshold is the new-client rate, in percent, below which acquisition
// offers are recommended.
const AcquisitionThreshold = 10.0

// Recommendation is one line of marketing advice.
type Recommendation struct {
	Code   RecommendationCode `json:"code"`
	Title  string             `json:"title"`
	Detail string             `json:"detail"`
}

var recommendations = map[RecommendationCode]Recommendation{
	RecBoostWeekend: {
		Code:   RecBoostWeekend,
		Title:  "boost weekend programming",
		Detail: "Run weekend events such as competitions and intro sessions.",
	},
	RecMaintainWeekend: {
		Code:   RecMaintainWeekend,
		Title:  "maintain current weekend programming",
		Detail: "Weekends already outperform weekdays; keep the current activities.",
	},
	RecAcquisition: {
		Code:   RecAcquisition,
		Title:  "strengthen acquisition offers",
		Detail: "Push discovery offers and local partnerships.",
	},
	RecLoyalty: {
		Code:   RecLoyalty,
		Title:  "loyalty/referral program",
		Detail: "Use referrals to convert first-time visitors into subscribers.",
	},
	RecFamilySlots: {
		Code:   RecFamilySlots,
		Title:  "promote family-friendly weekday/weekend slots",
		Detail: "Advertise the kids area on Wednesdays and weekends.",
	},
}

// Recommend evaluates the rule table in its fixed order.
func Recommend(ins Insights) []Recommendation {
	codes := make([]RecommendationCode, 0, 4)

	if ins.WeekendRatio < 1 {
		codes = append(codes, RecBoostWeekend)
	} else {
		codes = append(codes, RecMaintainWeekend)
	}
	if ins.NewClientRate < AcquisitionThreshold {
		codes = append(codes, RecAcquisition)
	}
	codes = append(codes, RecLoyalty, RecFamilySlots)

	out := make([]Recommendation, 0, len(codes))
	for _, c := range codes {
		out = append(out, recommendations[c])
	}
	return out
}
