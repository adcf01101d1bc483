package config

import (
	"fmt"
	"time"
)

// Parser names accepted by ADDRESS_PARSER
const (
	ParserHeuristic = "heuristic"
	ParserLibpostal = "libpostal"
)

// Settings is the process configuration read from the environment
type Settings struct {
	OneMapBaseURL    string
	OneMapToken      string
	OneMapRPS        float64
	OneMapTimeout    time.Duration
	StreetDirURL     string
	StreetDirRPS     float64
	StreetDirTimeout time.Duration

	RetryMaxAttempts int
	RetryBaseDelay   time.Duration
	RetryMaxDelay    time.Duration

	AddressParser string
	DebugParse    bool
	LogLevel      string
	LogFormat     string

	RulesFile string
	Rules     Rules
}

// Load reads .env, the environment and the optional rules file
func Load() (Settings, error) {
	if err := LoadEnv(); err != nil {
		return Settings{}, err
	}

	s := Settings{
		OneMapBaseURL:    GetEnv("ONEMAP_BASE_URL", "https://www.onemap.gov.sg/api/common/elastic/search"),
		OneMapToken:      GetEnv("ONEMAP_TOKEN", ""),
		OneMapRPS:        GetEnvFloat("ONEMAP_RPS", 4),
		OneMapTimeout:    GetEnvMillis("ONEMAP_TIMEOUT_MS", 5*time.Second),
		StreetDirURL:     GetEnv("STREETDIRECTORY_BASE_URL", "https://www.streetdirectory.com/asia_travel/search/"),
		StreetDirRPS:     GetEnvFloat("STREETDIRECTORY_RPS", 1),
		StreetDirTimeout: GetEnvMillis("STREETDIRECTORY_TIMEOUT_MS", 10*time.Second),
		RetryMaxAttempts: GetEnvInt("RETRY_MAX_ATTEMPTS", 5),
		RetryBaseDelay:   GetEnvMillis("RETRY_BASE_DELAY_MS", time.Second),
		RetryMaxDelay:    GetEnvMillis("RETRY_MAX_DELAY_MS", 10*time.Second),
		AddressParser:    GetEnv("ADDRESS_PARSER", ParserHeuristic),
		DebugParse:       GetEnvBool("DEBUG_PARSE", false),
		LogLevel:         GetEnv("LOG_LEVEL", "info"),
		LogFormat:        GetEnv("LOG_FORMAT", "json"),
		RulesFile:        GetEnv("RULES_FILE", ""),
	}

	switch s.AddressParser {
	case ParserHeuristic, ParserLibpostal:
	default:
		return s, fmt.Errorf("invalid ADDRESS_PARSER %q", s.AddressParser)
	}

	rules, err := LoadRules(s.RulesFile)
	if err != nil {
		return s, err
	}
	s.Rules = rules
	return s, nil
}
