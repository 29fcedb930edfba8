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

package fcpath

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Fcpath is the interface used for init project path.
type Fcpath interface {
	WorkHome() string
	WorkHomeMode() fs.FileMode
	LogDir() string
	DataDir() string
	DataDirMode() fs.FileMode

	// Resolve returns path relative to the data directory, absolute paths are kept.
	Resolve(path string) string
}

type fcpath struct {
	workHome     string
	workHomeMode fs.FileMode
	logDir       string
	dataDir      string
	dataDirMode  fs.FileMode
}

// Cache of the fcpath.
var cache struct {
	sync.Once
	f   *fcpath
	err *multierror.Error
}

// Option is a functional option for configuring the fcpath.
type Option func(f *fcpath)

// WithWorkHome set the workhome directory.
func WithWorkHome(dir string) Option {
	return func(f *fcpath) {
		f.workHome = dir
	}
}

// WithWorkHomeMode sets the workHome directory mode
func WithWorkHomeMode(mode fs.FileMode) Option {
	return func(f *fcpath) {
		f.workHomeMode = mode
	}
}

// WithLogDir set the log directory.
func WithLogDir(dir string) Option {
	return func(f *fcpath) {
		f.logDir = dir
	}
}

// WithDataDir set the data directory holding model artifacts.
func WithDataDir(dir string) Option {
	return func(f *fcpath) {
		f.dataDir = dir
	}
}

// WithDataDirMode sets the dataDir mode
func WithDataDirMode(mode fs.FileMode) Option {
	return func(f *fcpath) {
		f.dataDirMode = mode
	}
}

// New returns a new fcpath interface, directories are created on first call.
func New(options ...Option) (Fcpath, error) {
	cache.Do(func() {
		f := &fcpath{
			workHome:     DefaultWorkHome,
			workHomeMode: DefaultWorkHomeMode,
			logDir:       DefaultLogDir,
			dataDir:      DefaultDataDir,
			dataDirMode:  DefaultDataDirMode,
		}

		for _, opt := range options {
			opt(f)
		}

		// Create workhome directory.
		if err := os.MkdirAll(f.workHome, f.workHomeMode); err != nil {
			cache.err = multierror.Append(cache.err, err)
		}

		// Create log directory.
		if err := os.MkdirAll(f.logDir, fs.FileMode(0700)); err != nil {
			cache.err = multierror.Append(cache.err, err)
		}

		// Create data directory.
		if err := os.MkdirAll(f.dataDir, f.dataDirMode); err != nil {
			cache.err = multierror.Append(cache.err, err)
		}

		cache.f = f
	})

	if cache.err.ErrorOrNil() != nil {
		return nil, cache.err
	}

	f := *cache.f
	return &f, nil
}

func (f *fcpath) WorkHome() string {
	return f.workHome
}

func (f *fcpath) WorkHomeMode() fs.FileMode {
	return f.workHomeMode
}

func (f *fcpath) LogDir() string {
	return f.logDir
}

func (f *fcpath) DataDir() string {
	return f.dataDir
}

func (f *fcpath) DataDirMode() fs.FileMode {
	return f.dataDirMode
}

func (f *fcpath) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(f.dataDir, path)
}
