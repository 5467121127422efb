// config.go: settings struct and functions to load and save the
// application configuration.
package conf

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var configFiles embed.FS

// LogConfig contains settings for a log file output.
type LogConfig struct {
	Enabled bool   // true to write a log file
	Path    string // path to the log file
}

// MainSettings contains the application level settings.
type MainSettings struct {
	Name      string    // timing position name, drives default data file names
	TimeAs24h bool      // true for 24-hour clock display
	Log       LogConfig // log file settings
}

// SQLiteSettings contains the database output settings.
type SQLiteSettings struct {
	Enabled bool   // true to enable SQLite output
	Path    string // path to the SQLite database, defaults to "<Name>.db"
}

// TRZSettings contains the flat-file export settings.
type TRZSettings struct {
	Path string // path to the TRZ export file, defaults to "<Name>.trz"
}

// OutputSettings groups the persistence and export outputs.
type OutputSettings struct {
	SQLite SQLiteSettings
	TRZ    TRZSettings
}

// FTPSettings contains the upload target settings.
type FTPSettings struct {
	Enabled   bool   // true to enable FTP uploads
	Host      string // FTP server host name
	Port      int    // FTP server port, default 21
	User      string // FTP user name
	Password  string // FTP password
	Directory string // remote directory to change into before uploading
	Timeout   int    // connection timeout in seconds
}

// Settings contains all application settings.
type Settings struct {
	Debug  bool // true to enable debug log output
	Main   MainSettings
	Output OutputSettings
	FTP    FTPSettings
}

// Load reads the configuration file and environment variables into Settings.
func Load() (*Settings, error) {
	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	applyDerivedDefaults(settings)

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	return settings, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// Set default values for each configuration parameter,
	// function defined in defaults.go
	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create config with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// applyDerivedDefaults fills in the data file paths that the original
// tool derived from the position name.
func applyDerivedDefaults(settings *Settings) {
	if settings.Output.SQLite.Path == "" {
		settings.Output.SQLite.Path = settings.Main.Name + ".db"
	}
	if settings.Output.TRZ.Path == "" {
		settings.Output.TRZ.Path = settings.Main.Name + ".trz"
	}
}

// ValidateSettings checks the loaded settings for consistency.
func ValidateSettings(settings *Settings) error {
	if settings.Main.Name == "" {
		return fmt.Errorf("main.name (timing position) must not be empty")
	}
	if settings.FTP.Enabled {
		if settings.FTP.Host == "" {
			return fmt.Errorf("ftp.host is required when FTP is enabled")
		}
		if settings.FTP.User == "" {
			return fmt.Errorf("ftp.user is required when FTP is enabled")
		}
	}
	return nil
}

// createDefaultConfig creates a default config file and writes it to the
// first default config path.
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[0], "config.yaml")
	defaultConfig := getDefaultConfig()

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	fmt.Println("Created default config file at:", configPath)
	return viper.ReadInConfig()
}

// getDefaultConfig reads the default configuration from the embedded config.yaml file.
func getDefaultConfig() string {
	data, err := fs.ReadFile(configFiles, "config.yaml")
	if err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}
	return string(data)
}

// GetDefaultConfigPaths returns the search paths for the configuration
// file: the working directory first, then the user config directory.
func GetDefaultConfigPaths() ([]string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error resolving user config directory: %w", err)
	}
	return []string{".", filepath.Join(configDir, "zeitnahme")}, nil
}

// SaveSettings writes the given settings as YAML to the given path.
func SaveSettings(settings *Settings, path string) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing settings: %w", err)
	}
	return nil
}

// GetBasePath expands a possibly relative directory to an absolute one,
// creating it when missing.
func GetBasePath(path string) string {
	if path == "" {
		path = "."
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		if err := os.MkdirAll(absPath, 0o755); err != nil {
			log.Printf("failed to create directory %s: %v", absPath, err)
		}
	}
	return absPath
}
