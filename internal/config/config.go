// Package config loads studyflow settings from YAML files and STUDYFLOW_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database       DatabaseConfig `yaml:"database"`
	Planner        PlannerConfig  `yaml:"planner"`
	Chat           ChatConfig     `yaml:"chat"`
	Server         ServerConfig   `yaml:"server"`
	Events         EventsConfig   `yaml:"events"`
	Calendar       CalendarConfig `yaml:"calendar"`
	VocabularyFile string         `yaml:"vocabulary_file"`
}

type DatabaseConfig struct {
	// Path of the SQLite file. ":memory:" is accepted for throwaway runs.
	Path string `yaml:"path"`
}

type PlannerConfig struct {
	TotalMinutes int `yaml:"total_minutes"`
	BlockMinutes int `yaml:"block_minutes"`
	// DefaultStartHour is a pointer so an explicit 0 (midnight) survives
	// overlay merging.
	DefaultStartHour *int `yaml:"default_start_hour"`
}

type ChatConfig struct {
	HistoryLimit    int `yaml:"history_limit"`
	TranscriptLimit int `yaml:"transcript_limit"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// APIKey, when set, is required on every /api request.
	APIKey string `yaml:"api_key"`
}

type EventsConfig struct {
	// NATSURL empty disables publishing.
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

type CalendarConfig struct {
	CalendarID      string `yaml:"calendar_id"`
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`
}

// DefaultConfig returns the built-in settings rooted at ~/.studyflow.
func DefaultConfig() *Config {
	base := ".studyflow"
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".studyflow")
	}
	return &Config{
		Database: DatabaseConfig{Path: filepath.Join(base, "studyflow.db")},
		Planner: PlannerConfig{
			TotalMinutes:     180,
			BlockMinutes:     50,
			DefaultStartHour: intPtr(9),
		},
		Chat: ChatConfig{
			HistoryLimit:    20,
			TranscriptLimit: 50,
		},
		Server: ServerConfig{Addr: "127.0.0.1:8080"},
		Events: EventsConfig{Subject: "studyflow.plan.rebuilt"},
		Calendar: CalendarConfig{
			CalendarID:      "primary",
			CredentialsFile: filepath.Join(base, "credentials.json"),
			TokenFile:       filepath.Join(base, "token.json"),
		},
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Planner.TotalMinutes <= 0 {
		return fmt.Errorf("planner.total_minutes must be positive, got %d", c.Planner.TotalMinutes)
	}
	if c.Planner.BlockMinutes <= 0 {
		return fmt.Errorf("planner.block_minutes must be positive, got %d", c.Planner.BlockMinutes)
	}
	if h := c.Planner.DefaultStartHour; h != nil && (*h < 0 || *h > 23) {
		return fmt.Errorf("planner.default_start_hour must be between 0 and 23, got %d", *h)
	}
	if c.Chat.HistoryLimit <= 0 || c.Chat.TranscriptLimit <= 0 {
		return fmt.Errorf("chat limits must be positive")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Events.NATSURL != "" && c.Events.Subject == "" {
		return fmt.Errorf("events.subject is required when events.nats_url is set")
	}
	return nil
}

// LoadFromFile parses path over DefaultConfig.
func LoadFromFile(path string) (*Config, error) {
	return decodeFile(path, DefaultConfig())
}

// loadOverlay parses path onto a zero Config so only the keys the file sets
// survive a Merge.
func loadOverlay(path string) (*Config, error) {
	return decodeFile(path, &Config{})
}

func decodeFile(path string, cfg *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Merge copies the non-zero values of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	mergeStr(&c.Database.Path, other.Database.Path)

	mergeInt(&c.Planner.TotalMinutes, other.Planner.TotalMinutes)
	mergeInt(&c.Planner.BlockMinutes, other.Planner.BlockMinutes)
	if h := other.Planner.DefaultStartHour; h != nil {
		c.Planner.DefaultStartHour = intPtr(*h)
	}

	mergeInt(&c.Chat.HistoryLimit, other.Chat.HistoryLimit)
	mergeInt(&c.Chat.TranscriptLimit, other.Chat.TranscriptLimit)

	mergeStr(&c.Server.Addr, other.Server.Addr)
	mergeStr(&c.Server.APIKey, other.Server.APIKey)

	mergeStr(&c.Events.NATSURL, other.Events.NATSURL)
	mergeStr(&c.Events.Subject, other.Events.Subject)

	mergeStr(&c.Calendar.CalendarID, other.Calendar.CalendarID)
	mergeStr(&c.Calendar.CredentialsFile, other.Calendar.CredentialsFile)
	mergeStr(&c.Calendar.TokenFile, other.Calendar.TokenFile)

	mergeStr(&c.VocabularyFile, other.VocabularyFile)
}

func mergeStr(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergeInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

// ApplyEnv overrides c from STUDYFLOW_* variables. Unparseable numbers are
// ignored.
func (c *Config) ApplyEnv() {
	envStr(&c.Database.Path, "STUDYFLOW_DB")
	envInt(&c.Planner.TotalMinutes, "STUDYFLOW_TOTAL_MINUTES")
	envInt(&c.Planner.BlockMinutes, "STUDYFLOW_BLOCK_MINUTES")
	if _, ok := os.LookupEnv("STUDYFLOW_START_HOUR"); ok {
		h := -1
		envInt(&h, "STUDYFLOW_START_HOUR")
		if h >= 0 {
			c.Planner.DefaultStartHour = intPtr(h)
		}
	}
	envInt(&c.Chat.HistoryLimit, "STUDYFLOW_CHAT_HISTORY")
	envStr(&c.Server.Addr, "STUDYFLOW_ADDR")
	envStr(&c.Server.APIKey, "STUDYFLOW_API_KEY")
	envStr(&c.Events.NATSURL, "STUDYFLOW_NATS_URL")
	envStr(&c.Events.Subject, "STUDYFLOW_NATS_SUBJECT")
	envStr(&c.Calendar.CalendarID, "STUDYFLOW_CALENDAR_ID")
	envStr(&c.Calendar.CredentialsFile, "STUDYFLOW_CALENDAR_CREDENTIALS")
	envStr(&c.Calendar.TokenFile, "STUDYFLOW_CALENDAR_TOKEN")
	envStr(&c.VocabularyFile, "STUDYFLOW_VOCABULARY")
}

func envStr(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func envInt(dst *int, name string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}

func intPtr(v int) *int {
	return &v
}
