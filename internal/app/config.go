package app

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env"
	"github.com/sirupsen/logrus"

	"github.com/klabast/wb-services/movement-calendar/internal/calendar"
	"github.com/klabast/wb-services/movement-calendar/internal/journal"
	"github.com/klabast/wb-services/movement-calendar/internal/view"
)

// Constants
const (
	DefaultGutterWidth = 6
	DefaultGutterPx    = 80
	DefaultGlyphWidth  = 8
	DefaultGlyphHeight = 14
	MaxViewportHeight  = 10000
	MaxOverlayBody     = 64 << 10
	DefaultLocale      = "en-GB"

	// Error messages
	ErrEditModeDisabled  = "Edit mode disabled"
	ErrInvalidDateFormat = "Invalid date format"
	ErrInvalidTimeFormat = "Invalid time format"
	ErrDateNotInCalendar = "Date not in calendar"
	ErrInvalidParameter  = "Invalid parameter"
	ErrInvalidFormat     = "Invalid format"
	ErrInvalidBody       = "Invalid request body"
	ErrBodyTooLarge      = "Request body too large"
	ErrInternalServer    = "Internal server error"

	// Mode strings
	ModeServe = "serve"
	ModeEdit  = "edit"

	// ICS constants
	ICSProductID = "-//Winterberg//Movement Calendar//EN"
	ICSDomain    = "movement-calendar.winterberg.de"
)

// Config is read from the environment
type Config struct {
	Year        int    `env:"CALENDAR_YEAR"`
	Locale      string `env:"CALENDAR_LOCALE"`
	Holidays    string `env:"CALENDAR_HOLIDAYS"`
	GutterWidth int    `env:"GUTTER_WIDTH" envDefault:"6"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	AuthFile    string `env:"AUTH_FILE"`
}

// Global variables
var (
	Settings      Config
	Grid          *calendar.Grid
	CalendarMutex sync.RWMutex
	Journal       = journal.New()
	EditMode      bool

	// Clock is the source of "now" for today markers and default timestamps
	Clock = time.Now

	Log = logrus.NewEntry(logrus.StandardLogger())

	// Embedded page (set by main)
	IndexHTML []byte
)

// LoadConfig parses the environment; the year defaults to the current one
func LoadConfig() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing environment variables: %w", err)
	}
	if cfg.Year == 0 {
		cfg.Year = Clock().Year()
	}
	if cfg.Locale == "" {
		cfg.Locale = platformLocale()
	}
	switch {
	case cfg.GutterWidth <= 0:
		cfg.GutterWidth = DefaultGutterWidth
	case cfg.GutterWidth < view.MinGutterWidth:
		cfg.GutterWidth = view.MinGutterWidth
	}
	return cfg, nil
}

// platformLocale returns the supported locale named by LC_ALL, LC_TIME or
// LANG in that order, DefaultLocale otherwise
func platformLocale() string {
	for _, name := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		// de_DE.UTF-8@euro -> de-DE
		value, _, _ = strings.Cut(value, ".")
		value, _, _ = strings.Cut(value, "@")
		if value == "C" || value == "POSIX" {
			return DefaultLocale
		}
		tag := strings.ReplaceAll(value, "_", "-")
		if _, err := calendar.LookupLocale(tag); err != nil {
			Log.WithField(name, os.Getenv(name)).Warnf("⚠️  unsupported platform locale, using %s", DefaultLocale)
			return DefaultLocale
		}
		return tag
	}
	return DefaultLocale
}

// Setup builds the locale and calendar grid for cfg and makes them current
func Setup(cfg Config) error {
	if cfg.Year < 1 || cfg.Year > 9999 {
		return fmt.Errorf("invalid calendar year %d", cfg.Year)
	}

	loc, err := calendar.LookupLocale(cfg.Locale)
	if err != nil {
		return err
	}

	grid := calendar.Layout(calendar.YearRange(cfg.Year), loc, calendar.Holidays(cfg.Holidays, cfg.Year))

	CalendarMutex.Lock()
	Settings = cfg
	Grid = grid
	CalendarMutex.Unlock()

	Log.WithFields(logrus.Fields{
		"year":     cfg.Year,
		"locale":   loc.Tag.String(),
		"holidays": cfg.Holidays,
		"cells":    grid.Len(),
	}).Info("calendar ready")
	return nil
}

// CurrentGrid returns the grid and settings under the read lock
func CurrentGrid() (*calendar.Grid, Config) {
	CalendarMutex.RLock()
	defer CalendarMutex.RUnlock()
	return Grid, Settings
}
