package mpesa

import "context"

// StkPushRequest carries the fields needed to prompt a customer's phone for
// payment. PhoneNumber must already be in canonical 254... form and
// AccountReference must be unique per call; both are the caller's
// responsibility.
type StkPushRequest struct {
	Amount           float64
	PhoneNumber      string
	AccountReference string
	TransactionDesc  string
}

// StkPushResult is the normalized outcome of a push request. Failure is
// always reported as data, never as a panic or an error escaping the
// client: Success false with a human-readable Message and, when available,
// the provider's raw detail in ErrorDetail.
type StkPushResult struct {
	Success             bool
	Message             string
	CheckoutRequestID   string
	MerchantRequestID   string
	ResponseCode        string
	ResponseDescription string
	CustomerMessage     string
	ErrorDetail         string
}

// StkPusher is implemented by the live Daraja client and by the local
// simulation used when credentials are absent. The implementation is chosen
// once at startup.
type StkPusher interface {
	StkPush(ctx context.Context, req StkPushRequest) StkPushResult
}
