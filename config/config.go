// config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Configuration stores all the client configurations
type Configuration struct {
	Service          ServiceConfiguration
	AuthCache        CacheConfiguration
	TranslationCache CacheConfiguration
	Authorization    AuthorizationConfiguration
	Audit            AuditConfiguration
}

// ServiceConfiguration stores the identity service endpoint settings
type ServiceConfiguration struct {
	URL     string
	Timeout time.Duration
}

// CacheConfiguration stores the size and age bounds of a single cache instance
type CacheConfiguration struct {
	Size int
	TTL  time.Duration
}

// AuthorizationConfiguration stores decision engine settings
type AuthorizationConfiguration struct {
	AdminRole string
}

// AuditConfiguration stores the decision audit trail settings
type AuditConfiguration struct {
	Enabled bool
	URL     string
}

var config *Configuration

func InitConfig() error {
	viper.AddConfigPath("config") // path to look for the config file in
	viper.SetConfigName("warden") // name of the config file (without extension)
	viper.SetConfigType("yaml")

	viper.AutomaticEnv() // read in environment variables that match

	// Set default configurations
	viper.SetDefault("service.url", "http://localhost:8080")
	viper.SetDefault("service.timeout", "30s")
	viper.SetDefault("authCache.size", 50)
	viper.SetDefault("authCache.ttl", "5m")
	viper.SetDefault("translationCache.size", 50)
	viper.SetDefault("translationCache.ttl", "5m")
	viper.SetDefault("authorization.adminRole", "administrator")
	viper.SetDefault("audit.enabled", false)
	viper.SetDefault("audit.url", "http://localhost:9200")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	// Unmarshal the configuration into the Configuration struct
	err := viper.Unmarshal(&config)
	if err != nil {
		return err
	}

	return nil
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// Default returns the configuration every knob falls back to when the
// embedding application does not load one.
func Default() *Configuration {
	return &Configuration{
		Service:          ServiceConfiguration{URL: "http://localhost:8080", Timeout: 30 * time.Second},
		AuthCache:        CacheConfiguration{Size: 50, TTL: 5 * time.Minute},
		TranslationCache: CacheConfiguration{Size: 50, TTL: 5 * time.Minute},
		Authorization:    AuthorizationConfiguration{AdminRole: "administrator"},
		Audit:            AuditConfiguration{Enabled: false, URL: "http://localhost:9200"},
	}
}
