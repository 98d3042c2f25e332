package payments

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/codeshem/sokonimbs/metrics"
	"github.com/codeshem/sokonimbs/models"
	"github.com/codeshem/sokonimbs/mpesa"
	"github.com/codeshem/sokonimbs/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// TransactionStore is the slice of the store the payment pipeline needs.
type TransactionStore interface {
	CreateTransaction(txn *models.Transaction) error
	UpdateTransaction(accountRef string, updates map[string]interface{}) error
}

type Handler struct {
	store  TransactionStore
	pusher mpesa.StkPusher
}

func NewHandler(store TransactionStore, pusher mpesa.StkPusher) *Handler {
	return &Handler{store: store, pusher: pusher}
}

type initiatePaymentRequest struct {
	Phone          string  `json:"phone"`
	Amount         float64 `json:"amount"`
	Type           string  `json:"type"`
	OfferName      string  `json:"offerName"`
	RecipientPhone string  `json:"recipientPhone"`
	Points         int     `json:"points"`
}

// InitiatePayment validates the request, records a PENDING transaction,
// prompts the payer's phone via M-Pesa and stores the provider's outcome.
// Nothing is retried: a store failure stops the request before any money
// movement is attempted, and a failed reconciliation write is logged only.
func (h *Handler) InitiatePayment(c *gin.Context) {
	var req initiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body. Amount must be a number and the payload valid JSON.",
			"error":   err.Error(),
		})
		return
	}

	if req.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Phone number is required.",
		})
		return
	}

	phone := utils.FormatPhoneNumber(req.Phone)
	if !utils.IsValidPhoneNumber(phone) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid phone number format. Use a valid Safaricom number, e.g. 0712345678.",
		})
		return
	}

	recipient := phone
	if req.RecipientPhone != "" {
		recipient = utils.FormatPhoneNumber(req.RecipientPhone)
		if !utils.IsValidPhoneNumber(recipient) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid recipient phone number format.",
			})
			return
		}
	}

	if req.Amount <= 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Amount must be a positive number.",
		})
		return
	}

	accountRef := newAccountRef()
	desc := req.Type
	if desc == "" {
		desc = "payment"
	}

	txn := &models.Transaction{
		PayerPhone:      phone,
		RecipientPhone:  recipient,
		Amount:          req.Amount,
		Type:            req.Type,
		OfferName:       req.OfferName,
		Status:          models.StatusPending,
		AccountRef:      accountRef,
		CustomerMessage: fmt.Sprintf("Payment of KES %.2f for %s", req.Amount, req.OfferName),
	}

	if err := h.store.CreateTransaction(txn); err != nil {
		log.WithError(err).WithField("account_ref", accountRef).
			Error("Failed to record pending transaction")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "We could not record your transaction. Please try again later.",
		})
		return
	}

	metrics.PaymentAmount.Observe(req.Amount)

	result := h.pusher.StkPush(c.Request.Context(), mpesa.StkPushRequest{
		Amount:           req.Amount,
		PhoneNumber:      phone,
		AccountReference: accountRef,
		TransactionDesc:  fmt.Sprintf("%s %s", desc, req.OfferName),
	})

	if !result.Success {
		updates := map[string]interface{}{
			"status":               models.StatusFailed,
			"response_code":        result.ResponseCode,
			"response_description": result.ResponseDescription,
		}
		if err := h.store.UpdateTransaction(accountRef, updates); err != nil {
			// The caller still gets the provider outcome; the row stays stale.
			log.WithError(err).WithField("account_ref", accountRef).
				Error("Failed to mark transaction as failed")
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": result.Message,
			"error":   result.ErrorDetail,
		})
		return
	}

	checkoutID := result.CheckoutRequestID
	if checkoutID == "" {
		checkoutID = accountRef
	}
	merchantID := result.MerchantRequestID
	if merchantID == "" {
		merchantID = accountRef
	}

	// Settlement is asynchronous, so the row stays PENDING here; only the
	// correlation identifiers and the provider's verdict are attached.
	updates := map[string]interface{}{
		"checkout_request_id":  checkoutID,
		"merchant_request_id":  merchantID,
		"response_code":        result.ResponseCode,
		"response_description": result.ResponseDescription,
	}
	if err := h.store.UpdateTransaction(accountRef, updates); err != nil {
		log.WithError(err).WithField("account_ref", accountRef).
			Error("Failed to attach provider identifiers to transaction")
	}

	log.WithFields(log.Fields{
		"account_ref":         accountRef,
		"checkout_request_id": checkoutID,
		"amount":              req.Amount,
	}).Info("STK push accepted")

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          result.Message,
		"reference":        checkoutID,
		"CustomerMessage":  result.CustomerMessage,
		"AccountReference": accountRef,
	})
}

// newAccountRef builds a collision-resistant reference from the current time
// and a random suffix. It is the join key between our row and the Daraja
// request.
func newAccountRef() string {
	return fmt.Sprintf("TXN-%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
}
