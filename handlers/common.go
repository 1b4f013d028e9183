package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// storageError answers an unhandled database failure. The raw driver error
// is logged, never returned to the client.
func storageError(c *gin.Context, err error) {
	logrus.WithError(err).WithField("path", c.FullPath()).Error("storage error")
	c.JSON(http.StatusInternalServerError, gin.H{
		"message": "Internal server error",
	})
}
