package models

// SubscriptionType identifies an NS Flex subscription variant. The set is
// closed: prices and discount coverage are static configuration, loaded once
// and never mutated.
type SubscriptionType string

const (
	SubscriptionBasis                 SubscriptionType = "BASIS"
	SubscriptionWeekendVoordeel       SubscriptionType = "WEEKEND_VOORDEEL"
	SubscriptionDalVoordeel           SubscriptionType = "DAL_VOORDEEL"
	SubscriptionAltijdVoordeel        SubscriptionType = "ALTIJD_VOORDEEL"
	SubscriptionWeekendVrij           SubscriptionType = "WEEKEND_VRIJ"
	SubscriptionWeekendVrijDalkorting SubscriptionType = "WEEKEND_VRIJ_DALKORTING"
	SubscriptionDalVrij               SubscriptionType = "DAL_VRIJ"
	SubscriptionAltijdVrij            SubscriptionType = "ALTIJD_VRIJ"
)

// AllSubscriptionTypes lists every variant in tier order, cheapest first.
var AllSubscriptionTypes = []SubscriptionType{
	SubscriptionBasis,
	SubscriptionWeekendVoordeel,
	SubscriptionDalVoordeel,
	SubscriptionAltijdVoordeel,
	SubscriptionWeekendVrij,
	SubscriptionWeekendVrijDalkorting,
	SubscriptionDalVrij,
	SubscriptionAltijdVrij,
}

// subscriptionTypeNames maps variants to their commercial names.
var subscriptionTypeNames = map[SubscriptionType]string{
	SubscriptionBasis:                 "Basis",
	SubscriptionWeekendVoordeel:       "Weekend Voordeel",
	SubscriptionDalVoordeel:           "Dal Voordeel",
	SubscriptionAltijdVoordeel:        "Altijd Voordeel",
	SubscriptionWeekendVrij:           "Weekend Vrij",
	SubscriptionWeekendVrijDalkorting: "Weekend Vrij + Dalkorting",
	SubscriptionDalVrij:               "Dal Vrij",
	SubscriptionAltijdVrij:            "Altijd Vrij",
}

// DisplayName returns the commercial name of the subscription variant.
func (s SubscriptionType) DisplayName() string {
	if name, ok := subscriptionTypeNames[s]; ok {
		return name
	}
	return string(s)
}

// IsValidSubscriptionType checks if the variant is one of the known values.
func IsValidSubscriptionType(subscription SubscriptionType) bool {
	_, ok := subscriptionTypeNames[subscription]
	return ok
}

// MonthlyPrice holds the fixed monthly subscription fee per fare class,
// in euro cents.
type MonthlyPrice struct {
	FirstClass  int64
	SecondClass int64
}

// ForClass returns the monthly fee for the given fare class. Any class other
// than 1 is treated as second class.
func (p MonthlyPrice) ForClass(class int) int64 {
	if class == 1 {
		return p.FirstClass
	}
	return p.SecondClass
}

// MonthlyPrices is the fixed monthly fee per variant.
var MonthlyPrices = map[SubscriptionType]MonthlyPrice{
	SubscriptionBasis:                 {FirstClass: 0, SecondClass: 0},
	SubscriptionWeekendVoordeel:       {FirstClass: 340, SecondClass: 200},
	SubscriptionDalVoordeel:           {FirstClass: 952, SecondClass: 560},
	SubscriptionAltijdVoordeel:        {FirstClass: 4488, SecondClass: 2640},
	SubscriptionWeekendVrij:           {FirstClass: 5763, SecondClass: 3390},
	SubscriptionWeekendVrijDalkorting: {FirstClass: 6622, SecondClass: 3895},
	SubscriptionDalVrij:               {FirstClass: 18615, SecondClass: 10950},
	SubscriptionAltijdVrij:            {FirstClass: 59806, SecondClass: 35180},
}

// TimeTypeSet is a set of time types, used for the discount coverage tables.
type TimeTypeSet map[TimeType]struct{}

// Contains reports whether the set covers the given time type.
func (s TimeTypeSet) Contains(timeType TimeType) bool {
	_, ok := s[timeType]
	return ok
}

func newTimeTypeSet(timeTypes ...TimeType) TimeTypeSet {
	set := make(TimeTypeSet, len(timeTypes))
	for _, timeType := range timeTypes {
		set[timeType] = struct{}{}
	}
	return set
}

// FullDiscountCoverage lists, per variant, the time types that travel for
// free (100% discount). The "Vrij" tiers form strictly growing sets:
// WEEKEND_VRIJ ⊂ DAL_VRIJ ⊂ ALTIJD_VRIJ.
var FullDiscountCoverage = map[SubscriptionType]TimeTypeSet{
	SubscriptionWeekendVrij:           newTimeTypeSet(TimeTypeWeekend, TimeTypeHoliday),
	SubscriptionWeekendVrijDalkorting: newTimeTypeSet(TimeTypeWeekend, TimeTypeHoliday),
	SubscriptionDalVrij:               newTimeTypeSet(TimeTypeWeekend, TimeTypeHoliday, TimeTypeOffPeak),
	SubscriptionAltijdVrij:            newTimeTypeSet(TimeTypeWeekend, TimeTypeHoliday, TimeTypeOffPeak, TimeTypePeak),
}

// PartialDiscountCoverage lists, per variant, the time types that travel at a
// 40% discount. The "Voordeel" tiers mirror the "Vrij" tiering.
var PartialDiscountCoverage = map[SubscriptionType]TimeTypeSet{
	SubscriptionWeekendVoordeel:       newTimeTypeSet(TimeTypeWeekend, TimeTypeHoliday),
	SubscriptionDalVoordeel:           newTimeTypeSet(TimeTypeWeekend, TimeTypeHoliday, TimeTypeOffPeak),
	SubscriptionAltijdVoordeel:        newTimeTypeSet(TimeTypeWeekend, TimeTypeHoliday, TimeTypeOffPeak, TimeTypePeak),
	SubscriptionWeekendVrijDalkorting: newTimeTypeSet(TimeTypeOffPeak),
}

// IncomparableTargets maps the currently held variant to the variants a cost
// comparison cannot be computed for. When the current variant fully discounts
// a time type the observed total is zero and the undiscounted price is
// unrecoverable, so any "Vrij" target with a smaller full-discount set would
// need a base price we do not have.
var IncomparableTargets = map[SubscriptionType][]SubscriptionType{
	SubscriptionDalVrij: {
		SubscriptionWeekendVrij,
		SubscriptionWeekendVrijDalkorting,
	},
	SubscriptionAltijdVrij: {
		SubscriptionWeekendVrij,
		SubscriptionWeekendVrijDalkorting,
		SubscriptionDalVrij,
	},
}

// IsComparable reports whether costs under target can be derived from travel
// history recorded while holding current.
func IsComparable(current, target SubscriptionType) bool {
	for _, incomparable := range IncomparableTargets[current] {
		if incomparable == target {
			return false
		}
	}
	return true
}
