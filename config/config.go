// Package config loads streamline's runtime configuration from the
// environment, following the same env-var-plus-viper-defaults shape the
// rest of the project's ambient stack uses.
package config

import (
	"os"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultBufferCapacity = 1024
	defaultLogLevel       = "info"
)

type (
	Config struct {
		Executor struct {
			Workers          int `env:"STREAMLINE_WORKERS"`
			SemaphorePermits int `env:"STREAMLINE_PERMITS"`
		}

		Buffered struct {
			Capacity int `env:"STREAMLINE_BUFFER_CAPACITY"`
		}

		Log struct {
			Level string `env:"STREAMLINE_LOG_LEVEL"`
		}

		Telemetry struct {
			MetricsAddr string        `env:"STREAMLINE_METRICS_ADDR"`
			JaegerURL   string        `env:"STREAMLINE_JAEGER_URL"`
			FlushEvery  time.Duration `env:"STREAMLINE_FLUSH_INTERVAL_MS"`
		}
	}
)

func NewConfig() (*Config, error) {
	cfg := &Config{}
	v := viper.New()

	var err error
	if cfg.Executor.Workers, err = parseEnvInt(v, "workers", "STREAMLINE_WORKERS", runtime.NumCPU()); err != nil {
		return nil, err
	}

	if cfg.Executor.SemaphorePermits, err = parseEnvInt(v, "permits", "STREAMLINE_PERMITS", 2*cfg.Executor.Workers); err != nil {
		return nil, err
	}

	if cfg.Buffered.Capacity, err = parseEnvInt(v, "buffer_capacity", "STREAMLINE_BUFFER_CAPACITY", defaultBufferCapacity); err != nil {
		return nil, err
	}

	if cfg.Log.Level, err = parseEnvString(v, "log_level", "STREAMLINE_LOG_LEVEL", defaultLogLevel); err != nil {
		return nil, err
	}

	cfg.Telemetry.MetricsAddr = os.Getenv("STREAMLINE_METRICS_ADDR")
	cfg.Telemetry.JaegerURL = os.Getenv("STREAMLINE_JAEGER_URL")

	flushMS, err := parseEnvInt(v, "flush_interval_ms", "STREAMLINE_FLUSH_INTERVAL_MS", 0)
	if err != nil {
		return nil, err
	}
	cfg.Telemetry.FlushEvery = time.Duration(flushMS) * time.Millisecond

	return cfg, nil
}

func parseEnvInt(v *viper.Viper, key, envVar string, defaultValue ...int) (int, error) {
	err := v.BindEnv(key, envVar)
	if err != nil {
		if len(defaultValue) > 0 {
			return defaultValue[0], err
		}
		return 0, err
	}
	if len(defaultValue) > 0 {
		v.SetDefault(key, defaultValue[0])
	}
	return v.GetInt(key), nil
}

func parseEnvString(v *viper.Viper, key, envVar string, defaultValue ...string) (string, error) {
	err := v.BindEnv(key, envVar)
	if err != nil {
		if len(defaultValue) > 0 {
			return defaultValue[0], err
		}
		return "", err
	}
	if len(defaultValue) > 0 {
		v.SetDefault(key, defaultValue[0])
	}
	return v.GetString(key), nil
}
