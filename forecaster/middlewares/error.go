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

package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/salesforecast/forecaster/forecaster/gateway"
	"github.com/salesforecast/forecaster/forecaster/service"
	"github.com/salesforecast/forecaster/forecaster/translator"
)

// InvalidRequestKind is the kind of requests whose body can not be bound.
const InvalidRequestKind = "InvalidRequest"

type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// StatusOf returns the http status of an error kind.
func StatusOf(kind string) int {
	switch kind {
	case translator.MissingFieldKind, translator.InvalidTypeKind, InvalidRequestKind:
		return http.StatusUnprocessableEntity
	case gateway.ServiceUnavailableKind:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		err := c.Errors.Last()
		if err == nil {
			return
		}

		// Gin error handler
		if err.IsType(gin.ErrorTypeBind) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Kind:    InvalidRequestKind,
				Message: err.Error(),
			})
			return
		}

		// Forecast error handler
		var kerr service.KindError
		if errors.As(err.Err, &kerr) {
			c.JSON(StatusOf(kerr.Kind()), ErrorResponse{
				Kind:    kerr.Kind(),
				Message: kerr.Error(),
			})
			return
		}

		// Unknown error
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Kind:    service.UnknownKind,
			Message: http.StatusText(http.StatusInternalServerError),
		})
	}
}
