package models

// Family is the scenario family decoded from a raw scenario code.
type Family string

const (
	FamilyBase        Family = "BASE"
	FamilyCPP1        Family = "CPP1"
	FamilyCPP2        Family = "CPP2"
	FamilyCPP3        Family = "CPP3"
	FamilyCPP4        Family = "CPP4"
	FamilyCPP4Variant Family = "CPP4_VARIANT"
	FamilyHighCarbon  Family = "HCARB"
	FamilyLowCarbon   Family = "LCARB"
	FamilyOther       Family = "OTHER"
)

// Families lists every family in report order.
var Families = []Family{
	FamilyBase, FamilyCPP1, FamilyCPP2, FamilyCPP3, FamilyCPP4,
	FamilyCPP4Variant, FamilyHighCarbon, FamilyLowCarbon, FamilyOther,
}

var familyDisplay = map[Family]string{
	FamilyBase:        "WEM",
	FamilyCPP1:        "CPP1",
	FamilyCPP2:        "CPP2",
	FamilyCPP3:        "CPP3",
	FamilyCPP4:        "CPP4",
	FamilyCPP4Variant: "CPP4 Variant",
	FamilyHighCarbon:  "High Carbon",
	FamilyLowCarbon:   "Low Carbon",
	FamilyOther:       "Other",
}

// DisplayName returns the label used on charts.
func (f Family) DisplayName() string {
	if name, ok := familyDisplay[f]; ok {
		return name
	}
	return familyDisplay[FamilyOther]
}

// Group is the coarse bucket a family collapses into.
type Group string

const (
	GroupWEM        Group = "WEM"
	GroupCPP        Group = "CPP"
	GroupHighCarbon Group = "HIGH_CARBON"
	GroupLowCarbon  Group = "LOW_CARBON"
	GroupOther      Group = "OTHER"
)

// Groups lists every group in report order.
var Groups = []Group{GroupWEM, GroupCPP, GroupHighCarbon, GroupLowCarbon, GroupOther}

var groupDisplay = map[Group]string{
	GroupWEM:        "WEM",
	GroupCPP:        "CPP",
	GroupHighCarbon: "High Carbon",
	GroupLowCarbon:  "Low Carbon",
	GroupOther:      "Other",
}

// DisplayName returns the label used on charts.
func (g Group) DisplayName() string {
	if name, ok := groupDisplay[g]; ok {
		return name
	}
	return groupDisplay[GroupOther]
}

// Growth is the economic growth assumption of a scenario.
type Growth string

const (
	GrowthLow       Growth = "LOW"
	GrowthReference Growth = "REFERENCE"
	GrowthHigh      Growth = "HIGH"
	GrowthUnknown   Growth = "UNKNOWN"
)

// Growths lists every growth tag in report order.
var Growths = []Growth{GrowthLow, GrowthReference, GrowthHigh, GrowthUnknown}

var growthDisplay = map[Growth]string{
	GrowthLow:       "Low",
	GrowthReference: "Reference",
	GrowthHigh:      "High",
	GrowthUnknown:   "Unknown",
}

// DisplayName returns the label used on charts.
func (g Growth) DisplayName() string {
	if name, ok := growthDisplay[g]; ok {
		return name
	}
	return growthDisplay[GrowthUnknown]
}
