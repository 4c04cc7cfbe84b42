package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/dramahub/internal/flagx"
	"github.com/goccy/go-json"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// are strings such as "5s" or "1m".
type jsonConfig struct {
	ServerURL           string `json:"server_url"`
	OnlineCheckInterval string `json:"online_check_interval"`
	RequestTimeout      string `json:"request_timeout"`
}

// parseJSON overlays cfg with the JSON file named by -c or -config. Empty
// fields in the file leave the current value untouched.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if err := setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval); err != nil {
		return fmt.Errorf("online_check_interval: %w", err)
	}
	if err := setDuration(&cfg.RequestTimeout, jc.RequestTimeout); err != nil {
		return fmt.Errorf("request_timeout: %w", err)
	}
	return nil
}

func setDuration(dst *time.Duration, s string) error {
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
