package config

import (
	"reflect"
	"strings"

	"github.com/Zurki/immich-avif-generator/core/database"
	"github.com/Zurki/immich-avif-generator/core/immich"
	"github.com/Zurki/immich-avif-generator/core/logger"
	"github.com/Zurki/immich-avif-generator/core/server"
	"github.com/Zurki/immich-avif-generator/core/store"
	"github.com/Zurki/immich-avif-generator/core/transcode"
	"github.com/Zurki/immich-avif-generator/feature/sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations owned by the packages they
// configure.
type Config struct {
	// Immich holds the remote catalog connection settings.
	Immich immich.Config `mapstructure:"immich"`
	// Store holds the content store settings.
	Store store.Config `mapstructure:"store"`
	// Database holds the index database settings.
	Database database.Config `mapstructure:"database"`
	// Server holds the HTTP server settings.
	Server server.Config `mapstructure:"server"`
	// Sync holds the reconciliation pass settings.
	Sync sync.Config `mapstructure:"sync"`
	// Image holds the transcoder settings.
	Image transcode.Config `mapstructure:"image"`
	// Log holds the logger settings.
	Log logger.Config `mapstructure:"log"`
}

// LoadConfig loads configuration from environment variables and a .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. IMMICH_API_KEY -> immich.api_key)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default
// values in Viper based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
