package conf

import "fmt"

// ValidateSettings rejects configurations the tool cannot run with.
func ValidateSettings(settings *Settings) error {
	c := &settings.Catalog
	if c.TestURL == "" && c.ProductionURL == "" {
		return fmt.Errorf("no catalog URL configured")
	}
	if c.Production && c.ProductionURL == "" {
		return fmt.Errorf("production mode selected but no production URL configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("catalog timeout must be positive, got %d", c.Timeout)
	}
	if settings.Upload.Skip < 0 {
		return fmt.Errorf("skip index must not be negative, got %d", settings.Upload.Skip)
	}
	if v := settings.Upload.SpecVersion; v != SupportedSpecVersion {
		return fmt.Errorf("unsupported workbook version %q, this build supports %s", v, SupportedSpecVersion)
	}
	return nil
}
