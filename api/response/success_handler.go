package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func useEnvelope(c *gin.Context) bool {
	return c.GetBool(EnvelopeKey)
}

// HandleSuccess writes data with 200
func HandleSuccess(c *gin.Context, data interface{}, message string) {
	write(c, http.StatusOK, data, message)
}

// HandleCreated writes data with 201
func HandleCreated(c *gin.Context, data interface{}, message string) {
	write(c, http.StatusCreated, data, message)
}

// HandleMessage writes a plain text confirmation, or an envelope carrying
// it as message
func HandleMessage(c *gin.Context, message string) {
	if useEnvelope(c) {
		write(c, http.StatusOK, nil, message)
		return
	}
	c.String(http.StatusOK, message)
}

func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func write(c *gin.Context, status int, data interface{}, message string) {
	if !useEnvelope(c) {
		c.JSON(status, data)
		return
	}
	c.JSON(status, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      status,
		RequestID: GetRequestID(c),
	})
}
