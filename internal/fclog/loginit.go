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
	"os"
	"os/signal"
	"path"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sys/unix"
)

type logInitMeta struct {
	fileName             string
	setSugaredLoggerFunc func(*zap.SugaredLogger)
}

// InitForecaster initializes the loggers of forecaster, console mode writes
// to stderr and otherwise every logger gets its own rotated file under dir.
func InitForecaster(verbose, console bool, dir string, rotate LogRotateConfig) error {
	if console {
		return createConsoleLogger(verbose)
	}

	logDir := filepath.Join(dir, "forecaster")

	var meta = []logInitMeta{
		{
			fileName:             CoreLogFileName,
			setSugaredLoggerFunc: SetCoreLogger,
		},
		{
			fileName:             GinLogFileName,
			setSugaredLoggerFunc: SetGinLogger,
		},
		{
			fileName:             ModelLogFileName,
			setSugaredLoggerFunc: SetModelLogger,
		},
	}

	return createFileLogger(verbose, meta, logDir, rotate)
}

func createConsoleLogger(verbose bool) error {
	levels = nil
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	log, err := config.Build(zap.AddCaller(), zap.AddStacktrace(zap.WarnLevel), zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	sugar := log.Sugar()
	SetCoreLogger(sugar)
	SetGinLogger(sugar)
	SetModelLogger(sugar)
	levels = append(levels, config.Level)
	startLoggerSignalHandler()
	return nil
}

func createFileLogger(verbose bool, meta []logInitMeta, logDir string, rotate LogRotateConfig) error {
	levels = nil

	for _, m := range meta {
		log, level := CreateLogger(path.Join(logDir, m.fileName), verbose, rotate)
		m.setSugaredLoggerFunc(log.Sugar())
		levels = append(levels, level)
	}

	startLoggerSignalHandler()
	return nil
}

// startLoggerSignalHandler toggles debug level on SIGUSR1.
func startLoggerSignalHandler() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, unix.SIGUSR1)

	go func() {
		for range signals {
			if IsDebug() {
				SetLevel(zapcore.InfoLevel)
				continue
			}

			SetLevel(zapcore.DebugLevel)
		}
	}()
}
