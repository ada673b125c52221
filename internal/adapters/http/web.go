package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"learnhub/internal/adapters/email"
	"learnhub/internal/adapters/http/middleware"
	"learnhub/internal/adapters/http/perf"
	"learnhub/internal/adapters/payment"
	accountStore "learnhub/internal/adapters/storage/account"
	courseStore "learnhub/internal/adapters/storage/course"
	outboxStore "learnhub/internal/adapters/storage/outbox"
	prefsStore "learnhub/internal/adapters/storage/prefs"
	progressStore "learnhub/internal/adapters/storage/progress"
	userStore "learnhub/internal/adapters/storage/user"
	"learnhub/internal/application/navigation"
	"learnhub/internal/platform/ready"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore  accountStore.Store
	UserStore     userStore.Store
	CourseStore   courseStore.Store
	ProgressStore progressStore.Store
	PrefsStore    prefsStore.Store
	OutboxStore   outboxStore.Store
}

// loadCSRFKey reads the CSRF secret from LEARNHUB_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("LEARNHUB_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("LEARNHUB_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("LEARNHUB_ENV") == "production" {
		log.Fatal("LEARNHUB_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set LEARNHUB_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Navigation service globals (set by NewMux)
var navStates *navigation.StateStore
var navRewriter *navigation.Rewriter
var navigator *navigation.Navigator

// Readiness gate signalled by the bootstrap sequence (set by NewMux).
var readyGate *ready.Gate

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var emailReplyTo string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailReplyTo = replyTo
}

// Global payment client instance (set by SetPaymentClient)
var paymentClient payment.Client

// SetPaymentClient sets the global billing client for the application.
func SetPaymentClient(client payment.Client) {
	paymentClient = client
}

// publicBaseURL is the origin used in emailed links (set by SetBaseURL).
var publicBaseURL = "http://localhost:8080"

// SetBaseURL sets the public origin used in emailed links.
func SetBaseURL(url string) {
	publicBaseURL = url
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector, gate *ready.Gate) http.Handler {
	stores = s
	perfCollector = collector
	readyGate = gate
	sessions = middleware.NewSessionStore()
	navStates = navigation.NewStateStore()
	navRewriter = &navigation.Rewriter{States: navStates}
	navigator = &navigation.Navigator{States: navStates, Prefs: s.PrefsStore}
	middleware.SecureCookies = os.Getenv("LEARNHUB_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Recover -> Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
		middleware.Recover,
	)
}
