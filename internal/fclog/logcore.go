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

package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	CoreLogFileName  = "core.log"
	GinLogFileName   = "gin.log"
	ModelLogFileName = "model.log"
)

const (
	DefaultRotateMaxSize    = 300
	DefaultRotateMaxBackups = 50
	DefaultRotateMaxAge     = 7
)

const (
	encodeTimeFormat = "2006-01-02 15:04:05.000"
)

// LogRotateConfig is the rotation policy of log files.
type LogRotateConfig struct {
	// Maximum size in megabytes of a log file before it gets rotated.
	MaxSize int `yaml:"maxSize" mapstructure:"maxSize"`

	// Maximum number of days to retain old log files.
	MaxAge int `yaml:"maxAge" mapstructure:"maxAge"`

	// Maximum number of old log files to retain.
	MaxBackups int `yaml:"maxBackups" mapstructure:"maxBackups"`

	// Compress rotated log files.
	Compress bool `yaml:"compress" mapstructure:"compress"`
}

// DefaultLogRotateConfig returns the default rotation policy.
func DefaultLogRotateConfig() LogRotateConfig {
	return LogRotateConfig{
		MaxSize:    DefaultRotateMaxSize,
		MaxAge:     DefaultRotateMaxAge,
		MaxBackups: DefaultRotateMaxBackups,
	}
}

// CreateLogger creates a json logger writing to a rotated file at filePath.
func CreateLogger(filePath string, verbose bool, rotate LogRotateConfig) (*zap.Logger, zap.AtomicLevel) {
	rotateConfig := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    rotate.MaxSize,
		MaxAge:     rotate.MaxAge,
		MaxBackups: rotate.MaxBackups,
		LocalTime:  true,
		Compress:   rotate.Compress,
	}
	syncer := zapcore.AddSync(rotateConfig)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(encodeTimeFormat)

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		syncer,
		level,
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.WarnLevel), zap.AddCallerSkip(1)), level
}
