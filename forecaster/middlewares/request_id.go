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
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/salesforecast/forecaster/forecaster/service"
)

const (
	// HeaderRequestID is the header carrying the request id.
	HeaderRequestID = "X-Request-Id"

	// RequestIDKey is the gin context key of the request id.
	RequestIDKey = "requestID"

	// maxRequestIDLength bounds request ids accepted from clients.
	maxRequestIDLength = 128
)

// RequestID reuses the client request id or generates one, and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Request = c.Request.WithContext(service.ContextWithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}
