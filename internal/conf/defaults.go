package conf

import "github.com/spf13/viper"

// setDefaultConfig sets the default value of every configuration parameter.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("catalog.testurl", "https://webservices.bio-aware.com")
	viper.SetDefault("catalog.productionurl", "https://mirri.bio-aware.com")
	viper.SetDefault("catalog.apiversion", "v2")
	viper.SetDefault("catalog.websiteid", "")
	viper.SetDefault("catalog.timeout", 30)
	viper.SetDefault("catalog.production", false)

	viper.SetDefault("upload.forceupdate", false)
	viper.SetDefault("upload.skip", 0)
	viper.SetDefault("upload.specversion", SupportedSpecVersion)
}
