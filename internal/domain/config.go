package domain

type Config struct {
	Version          string
	ConfigPath       string
	Language         string            `yaml:"language"`
	ShowR18          string            `yaml:"showR18"`
	ThumbnailQuality string            `yaml:"thumbnailQuality"`
	ImageServer      string            `yaml:"imageServer"`
	UserAgent        string            `yaml:"userAgent"`
	RateLimit        int               `yaml:"rateLimit"`
	RateLimitPeriod  int               `yaml:"rateLimitPeriod"` // in seconds
	RequestTimeout   int               `yaml:"requestTimeout"`  // in seconds
	RetryAttempts    int               `yaml:"retryAttempts"`
	CloudflareBypass bool              `yaml:"cloudflareBypass"`
	CheckInterval    int               `yaml:"checkInterval"`
	MonitoredManga   map[string]string `yaml:"monitoredManga"`
	LogPath          string            `yaml:"logPath"`
	LogLevel         string            `yaml:"logLevel"`
	LogMaxSize       int               `yaml:"logMaxSize"` // in megabytes
	LogMaxBackups    int               `yaml:"logMaxBackups"`
}

// ContentRating is the adult content visibility mode. The numeric value is
// sent as-is in the mangadex_h_toggle cookie.
type ContentRating int

const (
	ShowNoR18 ContentRating = iota
	ShowAll
	ShowOnlyR18
)

func (c ContentRating) String() string {
	switch c {
	case ShowAll:
		return "all"
	case ShowOnlyR18:
		return "only"
	default:
		return "none"
	}
}

type ThumbnailQuality int

const (
	ThumbnailStandard ThumbnailQuality = iota
	ThumbnailLow
)

func (t ThumbnailQuality) String() string {
	if t == ThumbnailLow {
		return "low"
	}
	return "standard"
}

// Preferences is an immutable snapshot of the user settings, taken once per
// operation.
type Preferences struct {
	ContentRating ContentRating
	Thumbnail     ThumbnailQuality
	Server        string
	Locale        Locale
}

// ImageServers lists the accepted imageServer values in display order.
var ImageServers = []Option{
	{Value: "auto", Label: "Auto"},
	{Value: "na", Label: "North America"},
	{Value: "na2", Label: "North America 2"},
	{Value: "eu", Label: "Europe"},
	{Value: "eu2", Label: "Europe 2"},
	{Value: "row", Label: "Rest of the World"},
}

var ContentRatings = []Option{
	{Value: ShowNoR18.String(), Label: "Show No R18+"},
	{Value: ShowAll.String(), Label: "Show All"},
	{Value: ShowOnlyR18.String(), Label: "Show Only R18+"},
}

var ThumbnailQualities = []Option{
	{Value: ThumbnailStandard.String(), Label: "Show high quality"},
	{Value: ThumbnailLow.String(), Label: "Show low quality"},
}

type Option struct {
	Value string
	Label string
}

// ParseContentRating maps a showR18 setting to its mode. Unknown values fall
// back to ShowNoR18.
func ParseContentRating(s string) ContentRating {
	switch s {
	case "all", "1":
		return ShowAll
	case "only", "2":
		return ShowOnlyR18
	default:
		return ShowNoR18
	}
}

func ParseThumbnailQuality(s string) ThumbnailQuality {
	if s == "low" || s == "1" {
		return ThumbnailLow
	}
	return ThumbnailStandard
}

// ServerParam returns the value of the server query parameter for an
// imageServer setting.
func ServerParam(s string) string {
	for _, o := range ImageServers {
		if o.Value == s && s != "auto" {
			return s
		}
	}
	return "0"
}

func ValidOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
