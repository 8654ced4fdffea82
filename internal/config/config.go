package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration for gtt, stored in ~/.gtt/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	GitLab GitLabConfig `json:"gitlab"`
	Timer  TimerConfig  `json:"timer"`
	Report ReportConfig `json:"report"`
}

// GitLabConfig holds the GraphQL API connection settings.
type GitLabConfig struct {
	// URL is the base URL of the GitLab instance.
	URL string `json:"url"`
	// Token is a personal access token with the "api" scope.
	Token string `json:"token"`
	// Username scopes reports and timelogs; resolved via the API when empty.
	Username string `json:"username"`
}

// TimerConfig holds timestamp-service settings for the start/stop/status
// commands.
type TimerConfig struct {
	// ServerURL is the timestamp service base URL. When empty, the timer
	// state is kept in a local file instead.
	ServerURL string `json:"server_url"`
	// ServiceToken authenticates against the timestamp service and doubles
	// as the session key.
	ServiceToken string `json:"service_token"`
}

// ReportConfig tunes the aggregated report output.
type ReportConfig struct {
	// MinSeconds drops projects and issues whose range total is below this
	// many seconds. Zero keeps everything that doesn't round to nothing.
	MinSeconds int64 `json:"min_seconds"`
	// Palette is the ordered list of chart colors, cycled per group.
	Palette []string `json:"palette"`
}

// DefaultGitLabURL is used when no instance URL is configured.
const DefaultGitLabURL = "https://gitlab.com"

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		GitLab: GitLabConfig{URL: DefaultGitLabURL},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// gtt configuration – ~/.gtt/config.json
//
// Edit this file to point gtt at your GitLab instance. The access token is
// required; everything else is optional.
{
  // ── GitLab GraphQL API ───────────────────────────────────────────────────
  "gitlab": {
    // Base URL of your GitLab instance.
    "url": "https://gitlab.com",

    // Personal access token with the "api" scope (User Settings → Access Tokens).
    "token": "",

    // Username whose timelogs are reported. Leave empty to use the token's user.
    "username": ""
  },

  // ── Timer session service ────────────────────────────────────────────────
  "timer": {
    // Base URL of a running "gtt serve" instance. Leave empty to keep timer
    // state in ~/.gtt/timer.json on this machine only.
    "server_url": "",

    // Opaque token identifying your timer session on the service.
    "service_token": ""
  },

  // ── Report tuning ────────────────────────────────────────────────────────
  "report": {
    // Hide projects/issues with less than this many seconds in the range.
    "min_seconds": 0,

    // Chart colors, cycled per group in the JSON output.
    "palette": []
  }
}
`

// BaseDir returns the root data directory (~/.gtt).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".gtt"), nil
}

// configFilePath returns the path to ~/.gtt/config.json.
func configFilePath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.gtt/config.json, creating it with annotated defaults on first
// run. Lines starting with // are treated as comments and stripped before
// JSON parsing.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return defaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	if cfg.GitLab.URL == "" {
		cfg.GitLab.URL = DefaultGitLabURL
	}

	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
