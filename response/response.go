// Package response defines the uniform {message, data} envelope every
// handler terminates with. Exactly one envelope is written per request.
package response

import "github.com/gin-gonic/gin"

type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// JSON writes the envelope with the given status.
func JSON(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Message: message, Data: data})
}

// Abort writes the envelope and stops the handler chain. For middleware.
func Abort(c *gin.Context, status int, message string, data any) {
	c.AbortWithStatusJSON(status, Envelope{Message: message, Data: data})
}
