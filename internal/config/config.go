package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names for required and optional settings.
const (
	EnvLinearAPIKey     = "LINEAR_API_KEY"
	EnvSlackBotToken    = "SLACK_BOT_TOKEN"
	EnvSlackChannelID   = "SLACK_CHANNEL_ID"
	EnvAssistantSlackID = "ASSISTANT_SLACK_ID"
	EnvProjectIDs       = "LINEAR_PROJECT_IDS"
	EnvTeamKeys         = "LINEAR_TEAM_KEYS"
	EnvConfigFile       = "TRIAGEBOT_CONFIG"
)

// DefaultConfigFile is consulted when TRIAGEBOT_CONFIG is not set.
const DefaultConfigFile = "triagebot.yml"

// Message styles for the composed handoff message.
const (
	StyleURL    = "url"
	StyleBranch = "branch"
)

// Default description truncation limits per message style.
const (
	DefaultURLDescriptionLimit    = 500
	DefaultBranchDescriptionLimit = 2000
)

// ValidationError reports every missing required setting at once.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// Settings holds the behavior knobs read from the optional YAML file.
type Settings struct {
	MessageStyle         string `yaml:"message_style"`
	DescriptionLimit     int    `yaml:"description_limit"`
	IncludeBacklog       bool   `yaml:"include_backlog"`
	IncludeUnsetPriority bool   `yaml:"include_unset_priority"`
	SkipDispatched       bool   `yaml:"skip_dispatched"`
}

// Config is the fully resolved, validated configuration for one run.
type Config struct {
	LinearAPIKey     string
	SlackBotToken    string
	SlackChannelID   string
	AssistantSlackID string
	ProjectIDs       []string
	TeamKeys         []string
	Settings         Settings
}

// Load resolves configuration from the environment (with .env loaded first as
// a development convenience; real environment values win) plus the optional
// YAML settings file, and validates it. Validation reports all missing
// required keys in a single ValidationError rather than stopping at the first.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return loadFromLookup(os.Getenv)
}

// loadFromLookup is the testable core of Load.
func loadFromLookup(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		LinearAPIKey:     getenv(EnvLinearAPIKey),
		SlackBotToken:    getenv(EnvSlackBotToken),
		SlackChannelID:   getenv(EnvSlackChannelID),
		AssistantSlackID: getenv(EnvAssistantSlackID),
		ProjectIDs:       ParseList(getenv(EnvProjectIDs)),
		TeamKeys:         ParseList(getenv(EnvTeamKeys)),
	}

	settings, err := loadSettings(getenv(EnvConfigFile))
	if err != nil {
		return nil, err
	}
	cfg.Settings = settings

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	required := []struct {
		key, value string
	}{
		{EnvLinearAPIKey, c.LinearAPIKey},
		{EnvSlackBotToken, c.SlackBotToken},
		{EnvSlackChannelID, c.SlackChannelID},
		{EnvAssistantSlackID, c.AssistantSlackID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}

	switch c.Settings.MessageStyle {
	case StyleURL, StyleBranch:
	default:
		return fmt.Errorf("invalid message_style %q (want %q or %q)", c.Settings.MessageStyle, StyleURL, StyleBranch)
	}
	return nil
}

// loadSettings reads the YAML settings file and applies defaults. An absent
// file is not an error unless it was named explicitly.
func loadSettings(path string) (Settings, error) {
	var settings Settings

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return applySettingsDefaults(settings), nil
		}
		return settings, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return applySettingsDefaults(settings), nil
}

func applySettingsDefaults(s Settings) Settings {
	if s.MessageStyle == "" {
		s.MessageStyle = StyleURL
	}
	if s.DescriptionLimit <= 0 {
		if s.MessageStyle == StyleBranch {
			s.DescriptionLimit = DefaultBranchDescriptionLimit
		} else {
			s.DescriptionLimit = DefaultURLDescriptionLimit
		}
	}
	return s
}

// ParseList splits a comma-separated value into its non-empty trimmed tokens.
// An empty input yields nil, meaning "no filter".
func ParseList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var tokens []string
	for _, part := range strings.Split(value, ",") {
		if token := strings.TrimSpace(part); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
