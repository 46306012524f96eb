package controllers

import (
	"bytes"
	"io"
	"net/http"

	"machcrm/config"

	"github.com/gin-gonic/gin"
)

var conf config.Configuration

func SetConfigurations(configuration config.Configuration) {
	conf = configuration
}

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

// RespondErrorDetails separates the client-facing error from the operational
// detail so callers can tell retryable failures from validation ones.
func RespondErrorDetails(c *gin.Context, msg, details string, code int) {
	c.JSON(code, gin.H{"error": msg, "details": details})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// readAndRestoreBody lets a middleware peek at the JSON body while leaving it
// readable for the handler's own bind.
func readAndRestoreBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	return bodyBytes, nil
}
