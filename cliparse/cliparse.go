package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	WebhookURL    string
	WebhookToken  string
	GroupID       string
	ChannelTarget string
	DayStartHour  int
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("dutybot", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or snapshot file path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (file, sqlite or postgres)")

	// Messaging transport
	fs.StringVar(&cfg.WebhookURL, "webhook-url", "", "Outbound webhook base URL")
	fs.StringVar(&cfg.WebhookToken, "webhook-token", "", "Shared webhook bearer token (prefer env)")
	fs.StringVar(&cfg.GroupID, "group", "", "Group id for roster sync")
	fs.StringVar(&cfg.ChannelTarget, "channel", "", "Announcement channel target")

	fs.IntVar(&cfg.DayStartHour, "day-start", -1, "Hour (0-23) where the duty day begins")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3319 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}

	if cfg.WebhookURL == "" {
		cfg.WebhookURL = os.Getenv("WEBHOOK_URL")
	}
	if cfg.WebhookURL == "" {
		return Config{}, errors.New("webhook URL required (use -webhook-url or WEBHOOK_URL env)")
	}

	if cfg.WebhookToken == "" {
		cfg.WebhookToken = os.Getenv("WEBHOOK_TOKEN")
	}

	if cfg.GroupID == "" {
		cfg.GroupID = os.Getenv("GROUP_ID")
	}
	if cfg.ChannelTarget == "" {
		cfg.ChannelTarget = os.Getenv("CHANNEL_TARGET")
	}
	if cfg.ChannelTarget == "" {
		cfg.ChannelTarget = cfg.GroupID
	}
	if cfg.ChannelTarget == "" {
		return Config{}, errors.New("channel target required (use -channel or CHANNEL_TARGET env)")
	}

	if cfg.DayStartHour < 0 {
		if hourStr := os.Getenv("DAY_START_HOUR"); hourStr != "" {
			hour, err := strconv.Atoi(hourStr)
			if err != nil {
				return Config{}, errors.New("invalid DAY_START_HOUR env variable")
			}
			cfg.DayStartHour = hour
		} else {
			cfg.DayStartHour = 5 // default
		}
	}
	if cfg.DayStartHour < 0 || cfg.DayStartHour > 23 {
		return Config{}, errors.New("day start hour must be between 0 and 23")
	}

	return cfg, nil
}
