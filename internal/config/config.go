package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// EnvWebhookURL overrides alert.webhook_url when set. Keeps the secret out
// of the config file.
const EnvWebhookURL = "JOBSCOUT_WEBHOOK_URL"

type Profile struct {
	// TitleKeywords: a posting's title must contain at least one (case-insensitive).
	TitleKeywords []string `yaml:"title_keywords"`
	// ExcludeKeywords: a posting's title must contain none of these.
	ExcludeKeywords []string `yaml:"exclude_keywords"`
	// Locations: the posting's location must contain at least one.
	Locations []string `yaml:"locations"`
	// Industries: each one found in title+description adds +5 to the score.
	Industries []string `yaml:"industries"`
}

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Poll struct {
		IntervalMinutes int `yaml:"interval_minutes"`
	} `yaml:"poll"`

	Alert struct {
		WebhookURL     string `yaml:"webhook_url"`
		Username       string `yaml:"username"`
		AvatarURL      string `yaml:"avatar_url"`
		SpacingSeconds int    `yaml:"spacing_seconds"`
	} `yaml:"alert"`

	Profile Profile `yaml:"profile"`

	Sources struct {
		LinkedIn struct {
			Enabled  bool   `yaml:"enabled"`
			Keywords string `yaml:"keywords"`
			Location string `yaml:"location"`
		} `yaml:"linkedin"`

		Indeed struct {
			Enabled  bool   `yaml:"enabled"`
			Query    string `yaml:"query"`
			Location string `yaml:"location"`
		} `yaml:"indeed"`

		Email struct {
			Enabled     bool   `yaml:"enabled"`
			IMAPHost    string `yaml:"imap_host"`
			IMAPPort    int    `yaml:"imap_port"`
			Username    string `yaml:"username"`
			Mailbox     string `yaml:"mailbox"`
			MaxMessages int    `yaml:"max_messages"`
		} `yaml:"email"`
	} `yaml:"sources"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}

	if env := os.Getenv(EnvWebhookURL); env != "" {
		cfg.Alert.WebhookURL = env
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = "."
	}
	if cfg.Poll.IntervalMinutes == 0 {
		cfg.Poll.IntervalMinutes = 15
	}
	if cfg.Alert.SpacingSeconds == 0 {
		cfg.Alert.SpacingSeconds = 1
	}
	if cfg.Alert.Username == "" {
		cfg.Alert.Username = "Job Search Bot"
	}
	if cfg.Sources.Email.Mailbox == "" {
		cfg.Sources.Email.Mailbox = "INBOX"
	}
	if cfg.Sources.Email.IMAPPort == 0 {
		cfg.Sources.Email.IMAPPort = 993
	}
	if cfg.Sources.Email.MaxMessages == 0 {
		cfg.Sources.Email.MaxMessages = 50
	}
}
