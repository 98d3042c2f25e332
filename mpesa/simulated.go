package mpesa

import (
	"context"
	"fmt"
	"hash/fnv"

	log "github.com/sirupsen/logrus"
)

// SimulatedClient stands in for Daraja when no credentials are configured.
// It makes no network calls and derives its identifiers from the account
// reference, so the same request always yields the same response.
type SimulatedClient struct{}

func NewSimulatedClient() *SimulatedClient {
	return &SimulatedClient{}
}

func (s *SimulatedClient) StkPush(_ context.Context, req StkPushRequest) StkPushResult {
	h := fnv.New32a()
	h.Write([]byte(req.AccountReference))
	seed := h.Sum32()

	log.WithFields(log.Fields{
		"account_ref": req.AccountReference,
		"phone":       req.PhoneNumber,
		"amount":      req.Amount,
	}).Info("Demo mode: simulating M-Pesa STK push")

	return StkPushResult{
		Success:             true,
		Message:             "Success. Request accepted for processing",
		CheckoutRequestID:   fmt.Sprintf("ws_CO_%010d", seed),
		MerchantRequestID:   fmt.Sprintf("%d-%d-1", seed%100000, seed%10000000),
		ResponseCode:        "0",
		ResponseDescription: "Success. Request accepted for processing",
		CustomerMessage: fmt.Sprintf(
			"A payment request of KES %.2f has been sent to %s. Enter your M-Pesa PIN to complete.",
			req.Amount, req.PhoneNumber,
		),
	}
}
