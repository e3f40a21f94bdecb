package biolomics

import (
	"github.com/mirri-tools/strainsync/internal/conf"
	"github.com/mirri-tools/strainsync/internal/errors"
)

// NewClientFromSettings builds a Client for the configured catalog
// environment. The credentials must be complete.
func NewClientFromSettings(settings *conf.Settings, credentials *conf.Credentials) (*Client, error) {
	if !credentials.Complete() {
		return nil, errors.Newf("catalog credentials are incomplete: ws_user, ws_password and client_id are required").
			Category(errors.CategoryConfiguration).Component("biolomics").Build()
	}
	return NewClient(Config{
		ServerURL:    settings.Catalog.ServerURL(),
		APIVersion:   settings.Catalog.APIVersion,
		Username:     credentials.Username,
		Password:     credentials.Password,
		ClientID:     credentials.ClientID,
		ClientSecret: credentials.ClientSecret,
		WebsiteID:    settings.Catalog.WebsiteID,
		Timeout:      settings.Catalog.RequestTimeout(),
	})
}
