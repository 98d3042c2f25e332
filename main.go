package main

import (
	"log"
	"time"

	"github.com/codeshem/sokonimbs/config"
	"github.com/codeshem/sokonimbs/handlers/payments"
	"github.com/codeshem/sokonimbs/handlers/status"
	"github.com/codeshem/sokonimbs/metrics"
	"github.com/codeshem/sokonimbs/mpesa"
	"github.com/codeshem/sokonimbs/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)
}

func main() {
	cfg := config.Load()

	if !cfg.StoreConfigured() {
		log.Fatal("Database configuration missing: set DB_USER, DB_HOST and PAYMENTS_DB")
	}

	st, err := store.Connect(store.Config{
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Name:     cfg.DBName,
	})
	if err != nil {
		log.Fatalf("Failed to connect to payments database: %v", err)
	}

	var pusher mpesa.StkPusher
	if cfg.DemoMode() {
		logrus.Warn("M-Pesa credentials not set; provider running in demo mode")
		pusher = mpesa.NewSimulatedClient()
	} else {
		logrus.Info("M-Pesa provider running in live mode")
		pusher = mpesa.NewLiveClient(mpesa.Config{
			ConsumerKey:    cfg.MpesaConsumerKey,
			ConsumerSecret: cfg.MpesaConsumerSecret,
			Shortcode:      cfg.MpesaShortcode,
			Passkey:        cfg.MpesaPasskey,
			BaseURL:        cfg.MpesaBaseURL,
			CallbackURL:    cfg.MpesaCallbackURL,
			Timeout:        cfg.MpesaTimeout,
		})
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(metrics.PrometheusMiddleware("payment-relay"))

	h := payments.NewHandler(st, pusher)

	r.POST("/initiate-payment", h.InitiatePayment)
	r.POST("/callback/mpesa", h.MpesaCallback)
	r.GET("/health", status.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.StaticFile("/", "./public/index.html")

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
