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

package handlers

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-contrib/static"
)

// AssetsPrefix is the url prefix of the form assets.
const AssetsPrefix = "/static"

//go:embed static
var staticFS embed.FS

// assetsFileSystem serves the embedded form assets.
type assetsFileSystem struct {
	http.FileSystem
}

// Exists reports whether filepath names an embedded file under prefix.
func (a assetsFileSystem) Exists(prefix string, filepath string) bool {
	p := strings.TrimPrefix(filepath, prefix)
	if len(p) == len(filepath) || strings.Trim(p, "/") == "" {
		return false
	}

	f, err := a.Open(p)
	if err != nil {
		return false
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return !stat.IsDir()
}

// Assets returns the file system of the form assets.
func Assets() static.ServeFileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	return assetsFileSystem{http.FS(sub)}
}
