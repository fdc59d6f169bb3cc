package config

import "confstats/pkg/contracts"

// Application constants
const (
	AppName    = "confstats"
	AppVersion = contracts.Version

	// EnvPrefix namespaces environment overrides, e.g. CONFSTATS_CONFERENCE_NAME.
	EnvPrefix = "CONFSTATS"

	// Conference defaults
	DefaultConferenceName = "ESA 2021"
	DefaultTopicsMarker   = "Topics"

	// EasyChair export resources
	DefaultReviewsResource     = "review.csv"
	DefaultFieldValuesResource = "submission_field_value.csv"

	// Output
	DefaultOutputPath = "scores.html"
	DefaultLogFile    = "logs/confstats.log"

	// Log Settings
	DefaultLogLevel = "info"
)

// Score scale defaults. The scale is ordered from best to worst; the accept
// scores count toward the acceptance rate numerator.
var (
	DefaultScores       = []int{3, 2, 1, 0, -1, -2}
	DefaultAcceptScores = []int{3, 2, 1}
)
