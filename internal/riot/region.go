package riot

import "strings"

// Platform is a platform routing value, eg. EUW1.
type Platform string

// Cluster is a regional routing value used by the account and match apis.
type Cluster string

const (
	Americas Cluster = "americas"
	Europe   Cluster = "europe"
	Asia     Cluster = "asia"
	SEA      Cluster = "sea"
)

// DefaultCluster is used for any platform not present in platformClusters.
const DefaultCluster = Europe

// regionPlatforms maps the region reported by the local client to its platform routing value.
var regionPlatforms = map[string]Platform{ //nolint:gochecknoglobals
	"EUW":  "EUW1",
	"EUNE": "EUN1",
	"NA":   "NA1",
	"BR":   "BR1",
	"LAN":  "LA1",
	"LAS":  "LA2",
	"OCE":  "OC1",
	"KR":   "KR",
	"JP":   "JP1",
	"TR":   "TR1",
	"RU":   "RU",
	"ME":   "ME1",
	"SG":   "SG2",
	"PH":   "PH2",
	"TH":   "TH2",
	"TW":   "TW2",
	"VN":   "VN2",
	"PBE":  "PBE1",
}

var platformClusters = map[Platform]Cluster{ //nolint:gochecknoglobals
	"NA1":  Americas,
	"BR1":  Americas,
	"LA1":  Americas,
	"LA2":  Americas,
	"OC1":  Americas,
	"PBE1": Americas,
	"EUW1": Europe,
	"EUN1": Europe,
	"TR1":  Europe,
	"RU":   Europe,
	"ME1":  Europe,
	"KR":   Asia,
	"JP1":  Asia,
	"SG2":  SEA,
	"PH2":  SEA,
	"TH2":  SEA,
	"TW2":  SEA,
	"VN2":  SEA,
}

// PlatformFromRegion resolves a client region code such as "EUW" into a platform. Platform codes
// themselves are accepted as well since some client builds report them directly.
func PlatformFromRegion(region string) (Platform, bool) {
	region = strings.ToUpper(strings.TrimSpace(region))
	if platform, found := regionPlatforms[region]; found {
		return platform, true
	}

	if _, found := platformClusters[Platform(region)]; found {
		return Platform(region), true
	}

	return "", false
}

// Cluster returns the regional routing cluster for the platform. Unknown platforms fall back
// to DefaultCluster.
func (p Platform) Cluster() Cluster {
	if cluster, found := platformClusters[Platform(strings.ToUpper(string(p)))]; found {
		return cluster
	}

	return DefaultCluster
}

func (p Platform) String() string {
	return string(p)
}

func (c Cluster) String() string {
	return string(c)
}
