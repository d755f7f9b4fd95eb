package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dlccontrol/internal/decop"
	"dlccontrol/internal/logger"

	"github.com/spf13/viper"
)

const envPrefix = "DLC"

// appConfig is the resolved configuration of one invocation.
type appConfig struct {
	DLC decop.Config

	// Nil means probe the device.
	WavelengthSetting  *bool
	TemperatureSetting *bool
	ServicePassword    string
	Calibration        float64

	LogLevel string

	DBPath          string
	Port            string
	SigningKey      string
	TokenTTL        time.Duration
	MonitorInterval time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dlc.transport", decop.TransportTCP)
	v.SetDefault("dlc.address", decop.DefaultAddress)
	v.SetDefault("dlc.port", decop.DefaultPort)
	v.SetDefault("dlc.timeout", "5s")
	v.SetDefault("dlc.connect_timeout", "10s")
	v.SetDefault("dlc.serial.baud_rate", decop.DefaultBaudRate)
	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("db.path", "dlccontrol.db")
	v.SetDefault("port", "8080")
	v.SetDefault("auth.token_ttl", "1h")
	v.SetDefault("monitor.interval", "0s")
}

// loadConfig reads file, or configs/config.yml when file is empty, and
// layers DLC_* environment variables on top. A missing default config file
// is not an error.
func loadConfig(v *viper.Viper, file string) error {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", file, err)
		}
		return nil
	}
	v.AddConfigPath("configs")
	v.AddConfigPath(".")
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func optionalBool(v *viper.Viper, key string) *bool {
	if !v.IsSet(key) {
		return nil
	}
	b := v.GetBool(key)
	return &b
}

func readConfig(v *viper.Viper) (appConfig, error) {
	cfg := appConfig{
		DLC: decop.Config{
			Transport:      strings.ToLower(v.GetString("dlc.transport")),
			Address:        v.GetString("dlc.address"),
			Port:           v.GetInt("dlc.port"),
			SerialPath:     v.GetString("dlc.serial.path"),
			BaudRate:       v.GetInt("dlc.serial.baud_rate"),
			ConnectTimeout: v.GetDuration("dlc.connect_timeout"),
			Timeout:        v.GetDuration("dlc.timeout"),
		},
		WavelengthSetting:  optionalBool(v, "dlc.wl_setting_present"),
		TemperatureSetting: optionalBool(v, "dlc.temp_setting_present"),
		ServicePassword:    v.GetString("dlc.service_password"),
		Calibration:        v.GetFloat64("dlc.calibration"),
		LogLevel:           v.GetString("log.level"),
		DBPath:             v.GetString("db.path"),
		Port:               v.GetString("port"),
		SigningKey:         v.GetString("auth.signing_key"),
		TokenTTL:           v.GetDuration("auth.token_ttl"),
		MonitorInterval:    v.GetDuration("monitor.interval"),
	}
	switch cfg.DLC.Transport {
	case decop.TransportTCP:
	case decop.TransportSerial:
		if cfg.DLC.SerialPath == "" {
			return cfg, errors.New("dlc.serial.path is required for the serial transport")
		}
	default:
		return cfg, fmt.Errorf("dlc.transport must be %q or %q, got %q", decop.TransportTCP, decop.TransportSerial, cfg.DLC.Transport)
	}
	if cfg.MonitorInterval < 0 {
		return cfg, fmt.Errorf("monitor.interval must not be negative, got %s", cfg.MonitorInterval)
	}
	return cfg, nil
}
