package config

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"mangadex/internal/domain"
	"mangadex/internal/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var configTemplate = `# config.yaml

# Language
# Only chapters in this language are listed
#
# Default: "en"
#
language: "en"

# Adult content
# Default visibility of R18+ titles, can be overridden per search
#
# Default: "none"
#
# Options: "none", "all", "only"
#
showR18: "none"

# Thumbnail quality
#
# Default: "standard"
#
# Options: "standard", "low"
#
thumbnailQuality: "standard"

# Image server
#
# Default: "auto"
#
# Options: "auto", "na", "na2", "eu", "eu2", "row"
#
imageServer: "auto"

# User agent sent with every request
# Leave empty to use the default
#
#userAgent: ""

# Rate limit
# Maximum number of requests per rateLimitPeriod seconds
#
# Default: 4 requests per 1 second
#
rateLimit: 4
rateLimitPeriod: 1

# Request timeout in seconds
#
# Default: 30
#
requestTimeout: 30

# Retry attempts for failed requests
# 1 means no retries
#
# Default: 1
#
retryAttempts: 1

# Cloudflare bypass
# Sends browser-like headers and TLS settings, only needed when requests get blocked
#
# Default: false
#
cloudflareBypass: false

# Check interval in minutes for the monitor command
#
# Default: 15
#
checkInterval: 15

# Monitored Manga
# Custom name mapped to the manga id
#
monitoredManga:
  One Piece: "5"

# mangadex logs file
# If not defined, logs to stderr only
# Make sure to use forward slashes and include the filename with extension. e.g. "logs/mangadex.log", "C:/mangadex/logs/mangadex.log"
#
# Optional
#
#logPath: ""

# Log level
#
# Default: "INFO"
#
# Options: "ERROR", "DEBUG", "INFO", "WARN", "TRACE"
#
logLevel: "INFO"

# Log Max Size
#
# Default: 50
#
# Max log size in megabytes
#
#logMaxSize: 50

# Log Max Backups
#
# Default: 3
#
# Max amount of old log files
#
#logMaxBackups: 3
`

func (c *AppConfig) writeConfig(configPath string, configFile string) error {
	cfgPath := filepath.Join(configPath, configFile)

	// check if configPath exists, if not create it
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		err := os.MkdirAll(configPath, os.ModePerm)
		if err != nil {
			log.Println(err)
			return err
		}
	}

	// check if config exists, if not create it
	if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {

		f, err := os.Create(cfgPath)
		if err != nil { // perm 0666
			// handle failed create
			log.Printf("error creating file: %q", err)
			return err
		}
		defer f.Close()

		if _, err = f.WriteString(configTemplate); err != nil {
			log.Printf("error writing contents to file: %v %q", configPath, err)
			return err
		}

		return f.Sync()
	}

	return nil
}

type Config interface {
	UpdateConfig() error
	DynamicReload(log logger.Logger)
	Preferences() domain.Preferences
	SetPreference(key, value string) error
}

type AppConfig struct {
	Config *domain.Config
	m      *sync.Mutex
}

func New(configPath string, version string) *AppConfig {
	c := &AppConfig{
		m: new(sync.Mutex),
	}
	c.defaults()
	c.Config = &domain.Config{
		Version:    version,
		ConfigPath: configPath,
	}

	c.load(configPath)
	c.loadFromEnv()

	if _, err := domain.LookupLocale(c.Config.Language); err != nil {
		log.Printf("%v, falling back to \"en\"", err)
		c.Config.Language = "en"
	}

	return c
}

func (c *AppConfig) defaults() {
	viper.SetDefault("language", "en")
	viper.SetDefault("showR18", "none")
	viper.SetDefault("thumbnailQuality", "standard")
	viper.SetDefault("imageServer", "auto")
	viper.SetDefault("userAgent", "")
	viper.SetDefault("rateLimit", 4)
	viper.SetDefault("rateLimitPeriod", 1)
	viper.SetDefault("requestTimeout", 30)
	viper.SetDefault("retryAttempts", 1)
	viper.SetDefault("cloudflareBypass", false)
	viper.SetDefault("checkInterval", 15)
	viper.SetDefault("monitoredManga", make(map[string]string))
	viper.SetDefault("logPath", "")
	viper.SetDefault("logLevel", "INFO")
	viper.SetDefault("logMaxSize", 50)
	viper.SetDefault("logMaxBackups", 3)
}

func (c *AppConfig) loadFromEnv() {
	prefix := "MANGADEX__"

	envs := os.Environ()
	for _, env := range envs {
		if strings.HasPrefix(env, prefix) {
			envPair := strings.SplitN(env, "=", 2)

			if envPair[1] != "" {
				switch envPair[0] {
				case prefix + "LANGUAGE":
					c.Config.Language = envPair[1]
				case prefix + "SHOW_R18":
					c.Config.ShowR18 = envPair[1]
				case prefix + "THUMBNAIL_QUALITY":
					c.Config.ThumbnailQuality = envPair[1]
				case prefix + "IMAGE_SERVER":
					c.Config.ImageServer = envPair[1]
				case prefix + "USER_AGENT":
					c.Config.UserAgent = envPair[1]
				case prefix + "RATE_LIMIT":
					if i, _ := strconv.ParseInt(envPair[1], 10, 32); i > 0 {
						c.Config.RateLimit = int(i)
					}
				case prefix + "RETRY_ATTEMPTS":
					if i, _ := strconv.ParseInt(envPair[1], 10, 32); i > 0 {
						c.Config.RetryAttempts = int(i)
					}
				case prefix + "CLOUDFLARE_BYPASS":
					c.Config.CloudflareBypass = envPair[1] == "true"
				case prefix + "CHECK_INTERVAL":
					if i, _ := strconv.ParseInt(envPair[1], 10, 32); i > 0 {
						c.Config.CheckInterval = int(i)
					}
				case prefix + "LOG_LEVEL":
					c.Config.LogLevel = envPair[1]
				case prefix + "LOG_PATH":
					c.Config.LogPath = envPair[1]
				case prefix + "LOG_MAX_SIZE":
					if i, _ := strconv.ParseInt(envPair[1], 10, 32); i > 0 {
						c.Config.LogMaxSize = int(i)
					}
				case prefix + "LOG_MAX_BACKUPS":
					if i, _ := strconv.ParseInt(envPair[1], 10, 32); i > 0 {
						c.Config.LogMaxBackups = int(i)
					}
				}
			}
		}
	}
}

func (c *AppConfig) load(configPath string) {
	viper.SetConfigType("yaml")

	if configPath != "" {
		// clean trailing slash from configPath
		configPath = path.Clean(configPath)

		// check if path and file exists
		// if not, create path and file
		if err := c.writeConfig(configPath, "config.yaml"); err != nil {
			log.Printf("write error: %q", err)
		}

		viper.SetConfigFile(path.Join(configPath, "config.yaml"))
	} else {
		viper.SetConfigName("config")

		// Search config in directories
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/mangadex")
		viper.AddConfigPath("$HOME/.mangadex")
	}

	// a missing config file is fine, defaults apply
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("config read error: %q", err)
		}
	}

	if err := viper.Unmarshal(c.Config); err != nil {
		log.Fatalf("Could not unmarshal config file: %v: err %q", viper.ConfigFileUsed(), err)
	}
}

func (c *AppConfig) DynamicReload(log logger.Logger) {
	viper.WatchConfig()

	viper.OnConfigChange(func(_ fsnotify.Event) {
		c.m.Lock()
		defer c.m.Unlock()

		logLevel := viper.GetString("logLevel")
		c.Config.LogLevel = logLevel
		log.SetLogLevel(c.Config.LogLevel)

		logPath := viper.GetString("logPath")
		c.Config.LogPath = logPath

		c.Config.ShowR18 = viper.GetString("showR18")
		c.Config.ThumbnailQuality = viper.GetString("thumbnailQuality")
		c.Config.ImageServer = viper.GetString("imageServer")

		if lang := viper.GetString("language"); lang != c.Config.Language {
			if _, err := domain.LookupLocale(lang); err != nil {
				log.Error().Err(err).Msg("ignoring language change")
			} else {
				c.Config.Language = lang
			}
		}

		log.Debug().Msg("config file reloaded!")
	})
}

// Preferences returns a snapshot of the current settings. Callers take a new
// snapshot per operation, so reloads and SetPreference apply to the next one.
func (c *AppConfig) Preferences() domain.Preferences {
	c.m.Lock()
	defer c.m.Unlock()

	locale, err := domain.LookupLocale(c.Config.Language)
	if err != nil {
		locale = domain.Locales[0]
	}

	return domain.Preferences{
		ContentRating: domain.ParseContentRating(c.Config.ShowR18),
		Thumbnail:     domain.ParseThumbnailQuality(c.Config.ThumbnailQuality),
		Server:        c.Config.ImageServer,
		Locale:        locale,
	}
}

// SetPreference validates and stores one of the user facing settings, then
// writes it back to the config file.
func (c *AppConfig) SetPreference(key, value string) error {
	c.m.Lock()

	switch key {
	case "showR18":
		if !domain.ValidOption(domain.ContentRatings, value) {
			c.m.Unlock()
			return errors.Errorf("invalid value %q for %s", value, key)
		}
		c.Config.ShowR18 = value
	case "thumbnailQuality":
		if !domain.ValidOption(domain.ThumbnailQualities, value) {
			c.m.Unlock()
			return errors.Errorf("invalid value %q for %s", value, key)
		}
		c.Config.ThumbnailQuality = value
	case "imageServer":
		if !domain.ValidOption(domain.ImageServers, value) {
			c.m.Unlock()
			return errors.Errorf("invalid value %q for %s", value, key)
		}
		c.Config.ImageServer = value
	case "language":
		if _, err := domain.LookupLocale(value); err != nil {
			c.m.Unlock()
			return err
		}
		c.Config.Language = value
	default:
		c.m.Unlock()
		return errors.Errorf("unknown setting %q", key)
	}

	c.m.Unlock()

	return c.UpdateConfig()
}

func (c *AppConfig) configFile() string {
	if c.Config.ConfigPath != "" {
		return path.Join(c.Config.ConfigPath, "config.yaml")
	}
	return viper.ConfigFileUsed()
}

func (c *AppConfig) UpdateConfig() error {
	filePath := c.configFile()
	if filePath == "" {
		return errors.New("no config file in use, pass --config to create one")
	}

	f, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("could not read config filePath: %s: %w", filePath, err)
	}

	c.m.Lock()
	lines := strings.Split(string(f), "\n")
	lines = c.processLines(lines)
	c.m.Unlock()

	output := strings.Join(lines, "\n")
	if err := os.WriteFile(filePath, []byte(output), 0o644); err != nil {
		return fmt.Errorf("could not write config file: %s: %w", filePath, err)
	}

	return nil
}

type managedLine struct {
	key      string
	value    string
	optional bool
	help     []string
}

func (c *AppConfig) managedLines() []managedLine {
	return []managedLine{
		{key: "language", value: c.Config.Language, help: []string{"# Language", "#", `# Default: "en"`}},
		{key: "showR18", value: c.Config.ShowR18, help: []string{"# Adult content", "#", `# Options: "none", "all", "only"`}},
		{key: "thumbnailQuality", value: c.Config.ThumbnailQuality, help: []string{"# Thumbnail quality", "#", `# Options: "standard", "low"`}},
		{key: "imageServer", value: c.Config.ImageServer, help: []string{"# Image server", "#", `# Options: "auto", "na", "na2", "eu", "eu2", "row"`}},
		{key: "logLevel", value: c.Config.LogLevel, help: []string{"# Log level", "#", `# Default: "INFO"`, "#", `# Options: "ERROR", "DEBUG", "INFO", "WARN", "TRACE"`}},
		{key: "logPath", value: c.Config.LogPath, optional: true, help: []string{"# Log Path", "#", "# Optional"}},
	}
}

func (c *AppConfig) processLines(lines []string) []string {
	managed := c.managedLines()

	// keep track of not found values to append at bottom
	found := make(map[string]bool, len(managed))

	for i, line := range lines {
		for _, m := range managed {
			if found[m.key] || !isKeyLine(line, m.key) {
				continue
			}
			lines[i] = m.render()
			found[m.key] = true
		}
	}

	for _, m := range managed {
		if found[m.key] {
			continue
		}
		lines = append(lines, m.help...)
		lines = append(lines, "#")
		lines = append(lines, m.render())
	}

	return lines
}

func (m managedLine) render() string {
	if m.optional && m.value == "" {
		return fmt.Sprintf(`#%s: ""`, m.key)
	}
	return fmt.Sprintf(`%s: "%s"`, m.key, m.value)
}

// isKeyLine matches "key:" and the commented out "#key:" form.
func isKeyLine(line, key string) bool {
	trimmed := strings.TrimPrefix(strings.TrimSpace(line), "#")
	return strings.HasPrefix(trimmed, key+":")
}
