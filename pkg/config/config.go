package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	GitHub GitHubConfig
	Output OutputConfig
	Log    LogConfig
}

type GitHubConfig struct {
	APIURL       string
	Timeout      time.Duration
	IssueLimit   int
	ReleaseLimit int
	EnvFile      string
}

type OutputConfig struct {
	Dir string
}

type LogConfig struct {
	Level  string
	Format string
}

const (
	DefaultAPIURL       = "https://api.github.com/"
	DefaultTimeout      = 10
	DefaultIssueLimit   = 10
	DefaultReleaseLimit = 5
	DefaultOutputDir    = "output"
	DefaultEnvFile      = ".env"
)

// Load builds the configuration from environment variables.
// Unlike godotenv.Load, it never writes the dotfile into the process environment;
// the dotfile is only consulted by the credential resolver.
func Load() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIURL:       getEnv("GITHUB_API_URL", DefaultAPIURL),
			Timeout:      time.Duration(getEnvAsInt("GITHUB_TIMEOUT", DefaultTimeout)) * time.Second,
			IssueLimit:   getEnvAsInt("REPODIGEST_ISSUE_LIMIT", DefaultIssueLimit),
			ReleaseLimit: getEnvAsInt("REPODIGEST_RELEASE_LIMIT", DefaultReleaseLimit),
			EnvFile:      getEnv("REPODIGEST_ENV_FILE", DefaultEnvFile),
		},
		Output: OutputConfig{
			Dir: getEnv("REPODIGEST_OUTPUT_DIR", DefaultOutputDir),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as a positive integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}
