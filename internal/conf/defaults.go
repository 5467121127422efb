// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "Test")
	viper.SetDefault("main.timeas24h", true)
	viper.SetDefault("main.log.enabled", false)
	viper.SetDefault("main.log.path", "zeitnahme.log")

	viper.SetDefault("output.sqlite.enabled", true)
	// output.sqlite.path defaults to "<main.name>.db" when left empty
	viper.SetDefault("output.sqlite.path", "")
	// output.trz.path defaults to "<main.name>.trz" when left empty
	viper.SetDefault("output.trz.path", "")

	viper.SetDefault("ftp.enabled", false)
	viper.SetDefault("ftp.host", "")
	viper.SetDefault("ftp.port", 21)
	viper.SetDefault("ftp.user", "")
	viper.SetDefault("ftp.password", "")
	viper.SetDefault("ftp.directory", "")
	viper.SetDefault("ftp.timeout", 30)
}
