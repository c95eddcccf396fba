package model

// Defaults applied by the validator when an optional field is absent or invalid.
const (
	DefaultRegion     = "North America"
	DefaultExitStatus = ExitPrivate

	ExitIPO     = "IPO"
	ExitPrivate = "Private"
)

// Industries is the supported industry enumeration. A request with an
// industry outside this set is rejected.
var Industries = []string{
	"Cybersecurity",
	"E-Commerce",
	"EdTech",
	"FinTech",
	"Gaming",
	"HealthTech",
	"IoT",
}

// Regions is the supported region enumeration. Unlike industry, an unknown
// region falls back to DefaultRegion instead of rejecting.
var Regions = []string{
	"North America",
	"Europe",
	"Asia Pacific",
	"Middle East",
	"South America",
	"Africa",
}

// ExitStatuses is the supported exit status enumeration. Unknown values fall
// back to DefaultExitStatus.
var ExitStatuses = []string{ExitIPO, ExitPrivate}

// Fallback formula constants. Revenue and funding amount are raw currency
// units (USD), and the multiplier tables below are calibrated to that scale.
const (
	PerEmployeeValue      = 50000
	FundingAmountFactor   = 2
	MarketSharePointValue = 100000

	DefaultIndustryMultiplier = 5.0
	DefaultRegionMultiplier   = 1.0

	IPOMultiplier        = 1.5
	ProfitableMultiplier = 1.3
)

// IndustryMultipliers maps each supported industry to its revenue multiple.
var IndustryMultipliers = map[string]float64{
	"Cybersecurity": 9,
	"E-Commerce":    5,
	"EdTech":        6,
	"FinTech":       10,
	"Gaming":        5,
	"HealthTech":    7,
	"IoT":           6,
}

// RegionMultipliers adjusts the base figure for regional market conditions.
var RegionMultipliers = map[string]float64{
	"North America": 1.2,
	"Europe":        1.1,
	"Asia Pacific":  1.05,
	"Middle East":   1.0,
	"South America": 0.95,
	"Africa":        0.9,
}

// IsValidIndustry reports whether s is a member of the industry enumeration.
func IsValidIndustry(s string) bool {
	for _, ind := range Industries {
		if ind == s {
			return true
		}
	}
	return false
}

// IsValidRegion reports whether s is a member of the region enumeration.
func IsValidRegion(s string) bool {
	for _, r := range Regions {
		if r == s {
			return true
		}
	}
	return false
}
