// Package conf loads and validates the tool settings from a config file,
// environment variables and command line flags, in increasing precedence.
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// SupportedSpecVersion is the workbook schema version this build validates
// against.
const SupportedSpecVersion = "20200601"

// CatalogSettings selects and parameterizes the remote catalog.
type CatalogSettings struct {
	TestURL       string
	ProductionURL string
	APIVersion    string
	WebsiteID     string
	Timeout       int // seconds per request
	Production    bool
}

// ServerURL returns the catalog base URL for the selected environment.
func (c *CatalogSettings) ServerURL() string {
	if c.Production {
		return c.ProductionURL
	}
	return c.TestURL
}

// RequestTimeout returns the per-request deadline.
func (c *CatalogSettings) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// UploadSettings tunes the upload pipeline.
type UploadSettings struct {
	ForceUpdate bool
	Skip        int
	SpecVersion string
}

// Settings is the root configuration of the tool.
type Settings struct {
	Debug   bool
	Catalog CatalogSettings
	Upload  UploadSettings
}

// Credentials carry the catalog login. They are never read from the config
// file; only flags and environment variables supply them.
type Credentials struct {
	Username     string
	Password     string
	ClientID     string
	ClientSecret string
}

// Complete reports whether the mandatory credential parts are present.
func (c *Credentials) Complete() bool {
	return c.Username != "" && c.Password != "" && c.ClientID != ""
}

var (
	settingsMutex    sync.Mutex
	settingsInstance *Settings
)

// Load reads the configuration and returns the validated settings. Repeated
// calls return the same instance.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()
	if settingsInstance != nil {
		return settingsInstance, nil
	}

	settings := &Settings{}
	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}
	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper sets defaults, config paths and environment binding, then reads
// an optional config file.
func initViper() error {
	viper.SetConfigName("strainsync")
	viper.SetConfigType("yaml")

	for _, path := range configPaths() {
		viper.AddConfigPath(path)
	}

	viper.SetEnvPrefix("STRAINSYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// defaults plus environment are enough
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}
	return nil
}

func configPaths() []string {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "strainsync"))
	}
	return paths
}
