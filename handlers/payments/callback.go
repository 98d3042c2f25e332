package payments

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// MpesaCallback receives Daraja's asynchronous settlement notification.
// The payload is logged and acknowledged unconditionally; no signature
// verification or correlation to a stored transaction happens yet. That is
// the extension point for settlement tracking, not an oversight.
func (h *Handler) MpesaCallback(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.WithError(err).Warn("Failed to read M-Pesa callback body")
	}

	log.WithField("payload", string(body)).Info("Received M-Pesa callback")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Callback received successfully",
	})
}
