// Package httpapi exposes the HTTP API layer of the service.
package httpapi

import (
	"github.com/gin-gonic/gin"
)

// jsonError is the error envelope returned by every endpoint.
type jsonError struct {
	Detail string `json:"detail"`
}

// WriteJSONError aborts the request with a {"detail": ...} payload.
func WriteJSONError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, jsonError{Detail: detail})
}
