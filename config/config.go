package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		Expiry int    `yaml:"expiry"` // Token expiry in minutes
	} `yaml:"jwt"`

	SMTP struct {
		Host        string `yaml:"host"`
		Port        int    `yaml:"port"`
		Username    string `yaml:"username"`
		Password    string `yaml:"password"`
		SenderEmail string `yaml:"senderEmail"`
		SenderName  string `yaml:"senderName"`
	} `yaml:"smtp"`

	Admin struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"admin"`

	Scoring struct {
		AskPoint int `yaml:"askPoint"` // Points credited for asking a question
	} `yaml:"scoring"`

	Jobs struct {
		LeaderboardEveryMinutes int `yaml:"leaderboardEveryMinutes"`
		CleanupEveryMinutes     int `yaml:"cleanupEveryMinutes"`
	} `yaml:"jobs"`
}

// LoadConfig reads the configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	// Environment overrides for deployment
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		cfg.Database.URI = uri
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}

	if cfg.Scoring.AskPoint == 0 {
		cfg.Scoring.AskPoint = 5
	}
	if cfg.Jobs.LeaderboardEveryMinutes == 0 {
		cfg.Jobs.LeaderboardEveryMinutes = 60
	}
	if cfg.Jobs.CleanupEveryMinutes == 0 {
		cfg.Jobs.CleanupEveryMinutes = 5
	}

	return &cfg, nil
}
