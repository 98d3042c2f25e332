package mpesa

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	ConsumerKey    string
	ConsumerSecret string
	Shortcode      string
	Passkey        string
	BaseURL        string
	CallbackURL    string
	Timeout        time.Duration
}

// LiveClient talks to the Daraja API: an OAuth client-credentials token
// followed by the stkpush processrequest call. All calls share one bounded
// timeout; a timeout counts as a provider failure.
type LiveClient struct {
	http        *resty.Client
	shortcode   string
	passkey     string
	callbackURL string
}

func NewLiveClient(cfg Config) *LiveClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetBasicAuth(cfg.ConsumerKey, cfg.ConsumerSecret)

	return &LiveClient{
		http:        client,
		shortcode:   cfg.Shortcode,
		passkey:     cfg.Passkey,
		callbackURL: cfg.CallbackURL,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type stkPushPayload struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type stkPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
	ErrorCode           string `json:"errorCode"`
	ErrorMessage        string `json:"errorMessage"`
}

func (c *LiveClient) StkPush(ctx context.Context, req StkPushRequest) StkPushResult {
	token, err := c.accessToken(ctx)
	if err != nil {
		log.WithError(err).Error("M-Pesa authentication failed")
		return StkPushResult{
			Success:     false,
			Message:     "Unable to authenticate with M-Pesa. Please try again later.",
			ErrorDetail: err.Error(),
		}
	}

	timestamp := time.Now().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString([]byte(c.shortcode + c.passkey + timestamp))

	payload := stkPushPayload{
		BusinessShortCode: c.shortcode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            int64(math.Round(req.Amount)),
		PartyA:            req.PhoneNumber,
		PartyB:            c.shortcode,
		PhoneNumber:       req.PhoneNumber,
		CallBackURL:       c.callbackURL,
		AccountReference:  req.AccountReference,
		TransactionDesc:   req.TransactionDesc,
	}

	var out stkPushResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(payload).
		SetResult(&out).
		SetError(&out).
		Post("/mpesa/stkpush/v1/processrequest")
	if err != nil {
		log.WithError(err).Error("M-Pesa STK push request failed")
		return StkPushResult{
			Success:     false,
			Message:     "Could not reach M-Pesa. Please try again later.",
			ErrorDetail: err.Error(),
		}
	}

	if resp.IsError() || out.ResponseCode != "0" {
		message := out.ErrorMessage
		if message == "" {
			message = out.ResponseDescription
		}
		if message == "" {
			message = fmt.Sprintf("M-Pesa rejected the request (HTTP %d)", resp.StatusCode())
		}
		log.WithFields(log.Fields{
			"account_ref":   req.AccountReference,
			"response_code": out.ResponseCode,
			"error_code":    out.ErrorCode,
			"status":        resp.StatusCode(),
		}).Warn("M-Pesa STK push rejected")

		return StkPushResult{
			Success:             false,
			Message:             message,
			ResponseCode:        out.ResponseCode,
			ResponseDescription: out.ResponseDescription,
			ErrorDetail:         out.ErrorMessage,
		}
	}

	return StkPushResult{
		Success:             true,
		Message:             out.ResponseDescription,
		CheckoutRequestID:   out.CheckoutRequestID,
		MerchantRequestID:   out.MerchantRequestID,
		ResponseCode:        out.ResponseCode,
		ResponseDescription: out.ResponseDescription,
		CustomerMessage:     out.CustomerMessage,
	}
}

func (c *LiveClient) accessToken(ctx context.Context) (string, error) {
	var out tokenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "client_credentials").
		SetResult(&out).
		Get("/oauth/v1/generate")
	if err != nil {
		return "", err
	}
	if resp.IsError() || out.AccessToken == "" {
		return "", fmt.Errorf("token request returned HTTP %d", resp.StatusCode())
	}
	return out.AccessToken, nil
}
