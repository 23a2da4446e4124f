package cli

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/betstack/betstack/internal/model"
)

// Config holds CLI configuration
type Config struct {
	ServerURL       string
	Token           string
	CredentialsFile string
	Output          string
	Verbose         bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:       getEnvOrDefault("BETSTACK_SERVER", "http://localhost:8080"),
		Token:           os.Getenv("BETSTACK_TOKEN"),
		CredentialsFile: getEnvOrDefault("BETSTACK_CREDENTIALS_FILE", defaultCredentialsFile()),
		Output:          "text",
		Verbose:         false,
	}
}

// storedCredentials is the credentials file format: the session token
// plus the last known user snapshot
type storedCredentials struct {
	Token string      `json:"token"`
	User  *model.User `json:"user,omitempty"`
}

// LoadToken loads the token from the credentials file if not already
// set via flag or environment
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	creds, err := c.readCredentials()
	if err != nil {
		return err
	}
	if creds != nil {
		c.Token = creds.Token
	}
	return nil
}

func (c *Config) readCredentials() (*storedCredentials, error) {
	data, err := os.ReadFile(c.CredentialsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // No credentials file is fine
		}
		return nil, err
	}

	var creds storedCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		// A corrupt credentials file reads as logged out
		return nil, nil
	}
	return &creds, nil
}

func (c *Config) writeCredentials(creds *storedCredentials) error {
	dir := filepath.Dir(c.CredentialsFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.CredentialsFile, data, 0600)
}

func (c *Config) clearCredentials() error {
	err := os.Remove(c.CredentialsFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func defaultCredentialsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".betstack/credentials.json"
	}
	return filepath.Join(home, ".betstack", "credentials.json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
