/*
 *     Copyright 2025 The Forecaster Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"errors"
	"net"

	logger "github.com/salesforecast/forecaster/internal/fclog"
	"github.com/salesforecast/forecaster/cmd/dependency/base"
)

type Config struct {
	// Base options.
	base.Options `yaml:",inline" mapstructure:",squash"`

	// Network configuration.
	Network NetworkConfig `yaml:"network" mapstructure:"network"`

	// Server configuration.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Model configuration.
	Model ModelConfig `yaml:"model" mapstructure:"model"`

	// Metrics configuration.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

type NetworkConfig struct {
	// EnableIPv6 enables ipv6 for server.
	EnableIPv6 bool `yaml:"enableIPv6" mapstructure:"enableIPv6"`
}

type ServerConfig struct {
	// ListenIP is listen ip, like: 0.0.0.0, 192.168.0.1.
	ListenIP net.IP `yaml:"listenIP" mapstructure:"listenIP"`

	// Server port.
	Port int `yaml:"port" mapstructure:"port"`

	// Server log directory.
	LogDir string `yaml:"logDir" mapstructure:"logDir"`

	// Maximum size in megabytes of log files before rotation (default: 300)
	LogMaxSize int `yaml:"logMaxSize" mapstructure:"logMaxSize"`

	// Maximum number of days to retain old log files (default: 7)
	LogMaxAge int `yaml:"logMaxAge" mapstructure:"logMaxAge"`

	// Maximum number of old log files to keep (default: 50)
	LogMaxBackups int `yaml:"logMaxBackups" mapstructure:"logMaxBackups"`

	// Server storage data directory, relative artifact paths are resolved against it.
	DataDir string `yaml:"dataDir" mapstructure:"dataDir"`
}

type ModelConfig struct {
	// ArtifactPath is the path of the model artifact loaded at startup.
	ArtifactPath string `yaml:"artifactPath" mapstructure:"artifactPath"`
}

type MetricsConfig struct {
	// Enable metrics service.
	Enable bool `yaml:"enable" mapstructure:"enable"`

	// Metrics service address.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// New default configuration.
func New() *Config {
	return &Config{
		Network: NetworkConfig{
			EnableIPv6: DefaultNetworkEnableIPv6,
		},
		Server: ServerConfig{
			Port:          DefaultServerPort,
			LogMaxSize:    logger.DefaultRotateMaxSize,
			LogMaxAge:     logger.DefaultRotateMaxAge,
			LogMaxBackups: logger.DefaultRotateMaxBackups,
		},
		Model: ModelConfig{
			ArtifactPath: DefaultModelArtifactPath,
		},
		Metrics: MetricsConfig{
			Enable: false,
			Addr:   DefaultMetricsAddr,
		},
	}
}

// Validate config parameters.
func (cfg *Config) Validate() error {
	if cfg.Server.ListenIP == nil {
		return errors.New("server requires parameter listenIP")
	}

	if cfg.Server.Port <= 0 {
		return errors.New("server requires parameter port")
	}

	if cfg.Server.LogMaxSize <= 0 {
		return errors.New("server requires parameter logMaxSize")
	}

	if cfg.Model.ArtifactPath == "" {
		return errors.New("model requires parameter artifactPath")
	}

	if cfg.Metrics.Enable {
		if cfg.Metrics.Addr == "" {
			return errors.New("metrics requires parameter addr")
		}
	}

	return nil
}

func (cfg *Config) Convert() error {
	if cfg.Server.ListenIP == nil {
		if cfg.Network.EnableIPv6 {
			cfg.Server.ListenIP = net.IPv6zero
		} else {
			cfg.Server.ListenIP = net.IPv4zero
		}
	}

	return nil
}

// LogRotateConfig returns the log rotation policy of server.
func (cfg *Config) LogRotateConfig() logger.LogRotateConfig {
	return logger.LogRotateConfig{
		MaxSize:    cfg.Server.LogMaxSize,
		MaxAge:     cfg.Server.LogMaxAge,
		MaxBackups: cfg.Server.LogMaxBackups,
	}
}
