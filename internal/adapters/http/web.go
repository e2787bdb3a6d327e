package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"fastbreak/internal/adapters/email"
	"fastbreak/internal/adapters/http/middleware"
	"fastbreak/internal/adapters/http/perf"
	"fastbreak/internal/adapters/photo"
	accountStore "fastbreak/internal/adapters/storage/account"
	assignmentStore "fastbreak/internal/adapters/storage/assignment"
	auditStore "fastbreak/internal/adapters/storage/audit"
	availabilityStore "fastbreak/internal/adapters/storage/availability"
	camperStore "fastbreak/internal/adapters/storage/camper"
	contactStore "fastbreak/internal/adapters/storage/contact"
	contentStore "fastbreak/internal/adapters/storage/content"
	guardianStore "fastbreak/internal/adapters/storage/guardian"
	outboxStore "fastbreak/internal/adapters/storage/outbox"
	registrationStore "fastbreak/internal/adapters/storage/registration"
	scheduleStore "fastbreak/internal/adapters/storage/schedule"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore      accountStore.Store
	AvailabilityStore availabilityStore.Store
	ScheduleStore     scheduleStore.Store
	AssignmentStore   assignmentStore.Store
	CamperStore       camperStore.Store
	GuardianStore     guardianStore.Store
	ContactStore      contactStore.Store
	RegistrationStore registrationStore.Store
	ContentStore      contentStore.Store
	AuditStore        auditStore.Store
	OutboxStore       outboxStore.Store
}

// loadCSRFKey reads the CSRF secret from FASTBREAK_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("FASTBREAK_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("FASTBREAK_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("FASTBREAK_ENV") == "production" {
		log.Fatal("FASTBREAK_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set FASTBREAK_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Reply-to address stamped on outgoing mail
var emailReplyTo string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, replyTo string) {
	emailSender = sender
	emailReplyTo = replyTo
}

// Global photo uploader instance (set by SetPhotoUploader)
var photoUploader photo.Uploader

// SetPhotoUploader sets the global photo uploader for the application.
func SetPhotoUploader(u photo.Uploader) {
	photoUploader = u
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("FASTBREAK_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
