package consts

import "time"

// Server configuration
const (
	DefaultPort       = "8080"
	ReadHeaderTimeout = 3 * time.Second
	RateLimitRequests = 10
	RateLimitWindow   = 1 * time.Minute
)

// Cron schedules
const (
	CronGenerateCharts = "15 0 * * *" // Daily at 00:15 UTC
)

// File paths and directories
const (
	ChartDataDir   = "web/chartdata"
	WebIndexPath   = "web/index.html"
	ChartsJSONFile = "charts.json"
)

// File permissions
const (
	DirPermissions  = 0750
	FilePermissions = 0600
)

// Chart configuration
const (
	ChartWidth  = "1400px"
	ChartHeight = "500px"

	// TopTypesCount is how many disaster types keep their own layer in
	// stacked/timeline charts before collapsing into "Other".
	TopTypesCount = 5

	// TopCountriesCount bounds the country axis of the country×type matrix.
	TopCountriesCount = 15

	// TypeShareThreshold groups types below this fraction of total events
	// into "Other" in the share pie.
	TypeShareThreshold = 0.01

	DefaultYearBin = 5
)

// Statistics configuration
const (
	// KDEGridSteps is the number of evenly spaced evaluation points of the
	// density grid.
	KDEGridSteps = 80

	// KDEBandwidthFraction sets the kernel bandwidth to this fraction of
	// the sample domain span. A tunable heuristic, not an optimal
	// bandwidth selector.
	KDEBandwidthFraction = 0.06

	// LogFloor replaces non-positive values before taking log10, so
	// log-scaled views never see -Inf.
	LogFloor = 0.01
)

// Sparkline logical coordinate box
const (
	SparklineWidth  = 100.0
	SparklineHeight = 28.0
)

// Chart colors and styling
const (
	ChartBackgroundColor = "#ffffff"
	ChartTextColor       = "#000000"
	DisabledCellColor    = "#e0e0e0"
)

// API configuration
const (
	AuthHeaderPrefix = "Bearer "
	APIKeyQueryParam = "api_key"
)
