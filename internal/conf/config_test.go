package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() *Settings {
	return &Settings{
		Catalog: CatalogSettings{
			TestURL:       "https://test.example.org",
			ProductionURL: "https://prod.example.org",
			APIVersion:    "v2",
			Timeout:       30,
		},
		Upload: UploadSettings{SpecVersion: SupportedSpecVersion},
	}
}

func TestValidateSettings(t *testing.T) {
	require.NoError(t, ValidateSettings(validSettings()))

	s := validSettings()
	s.Catalog.TestURL = ""
	s.Catalog.ProductionURL = ""
	assert.Error(t, ValidateSettings(s))

	s = validSettings()
	s.Catalog.Timeout = 0
	assert.Error(t, ValidateSettings(s))

	s = validSettings()
	s.Upload.Skip = -1
	assert.Error(t, ValidateSettings(s))

	s = validSettings()
	s.Upload.SpecVersion = "20190101"
	assert.Error(t, ValidateSettings(s))
}

func TestCatalogServerURL(t *testing.T) {
	s := validSettings()
	assert.Equal(t, "https://test.example.org", s.Catalog.ServerURL())
	s.Catalog.Production = true
	assert.Equal(t, "https://prod.example.org", s.Catalog.ServerURL())
}

func TestCredentialsComplete(t *testing.T) {
	c := Credentials{Username: "u", Password: "p", ClientID: "id"}
	assert.True(t, c.Complete())
	c.Password = ""
	assert.False(t, c.Complete())
}
