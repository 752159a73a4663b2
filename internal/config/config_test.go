package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIBaseURL:     "https://api.github.com/",
			UserAgent:      "repoforge-core",
			TimeoutSeconds: 30,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty base URL", func(c *Config) { c.GitHub.APIBaseURL = "" }, true},
		{"base URL without trailing slash", func(c *Config) { c.GitHub.APIBaseURL = "https://api.github.com" }, true},
		{"empty user agent", func(c *Config) { c.GitHub.UserAgent = "" }, true},
		{"zero timeout", func(c *Config) { c.GitHub.TimeoutSeconds = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpstreamTimeout(t *testing.T) {
	cfg := GitHubConfig{TimeoutSeconds: 15}
	if got := cfg.UpstreamTimeout(); got != 15*time.Second {
		t.Errorf("UpstreamTimeout() = %v, want %v", got, 15*time.Second)
	}
}

func TestGetServerAddress(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "9090"
	if got := cfg.GetServerAddress(); got != "127.0.0.1:9090" {
		t.Errorf("GetServerAddress() = %q, want %q", got, "127.0.0.1:9090")
	}
}
