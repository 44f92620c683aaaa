package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"gymdesk/internal/adapters/email"
	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/adapters/http/perf"
	accountStore "gymdesk/internal/adapters/storage/account"
	auditStore "gymdesk/internal/adapters/storage/audit"
	classStore "gymdesk/internal/adapters/storage/gymclass"
	memberStore "gymdesk/internal/adapters/storage/member"
	noticeStore "gymdesk/internal/adapters/storage/notice"
	paymentStore "gymdesk/internal/adapters/storage/payment"
	trainerStore "gymdesk/internal/adapters/storage/trainer"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore accountStore.Store
	MemberStore  memberStore.Store
	TrainerStore trainerStore.Store
	ClassStore   classStore.Store
	PaymentStore paymentStore.Store
	NoticeStore  noticeStore.Store
	AuditStore   auditStore.Store
}

// loadCSRFKey reads the CSRF secret from GYMDESK_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("GYMDESK_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("GYMDESK_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("GYMDESK_ENV") == "production" {
		log.Fatal("GYMDESK_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set GYMDESK_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 20

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("GYMDESK_ENV") == "production"

	mux := http.NewServeMux()
	registerRoutes(mux)

	csrfKey := loadCSRFKey()
	trustedOrigins := []string{"localhost:8080", "127.0.0.1:8080"}
	if v := os.Getenv("GYMDESK_TRUSTED_ORIGIN"); v != "" {
		trustedOrigins = append(trustedOrigins, v)
	}

	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, trustedOrigins, middleware.SecureCookies),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}

// registerRoutes attaches every API route to the mux. Auth gating happens
// per route group: reads and writes need a session, destructive and
// reporting routes need the admin role.
func registerRoutes(mux *http.ServeMux) {
	admin := middleware.RequireRole("admin")

	mux.HandleFunc("/api/login", handleLogin)
	mux.HandleFunc("/api/logout", handleLogout)
	mux.Handle("/api/me", middleware.RequireAuth(http.HandlerFunc(handleMe)))
	mux.Handle("/api/password", middleware.RequireAuth(http.HandlerFunc(handleChangePassword)))

	mux.Handle("/api/dashboard", middleware.RequireAuth(http.HandlerFunc(handleDashboard)))

	mux.Handle("/api/members", middleware.RequireAuth(http.HandlerFunc(handleMembers)))
	mux.Handle("/api/members/", middleware.RequireAuth(http.HandlerFunc(handleMemberByID)))

	mux.Handle("/api/trainers", middleware.RequireAuth(http.HandlerFunc(handleTrainers)))
	mux.Handle("/api/trainers/", middleware.RequireAuth(http.HandlerFunc(handleTrainerByID)))

	mux.Handle("/api/classes", middleware.RequireAuth(http.HandlerFunc(handleClasses)))
	mux.Handle("/api/classes/", middleware.RequireAuth(http.HandlerFunc(handleClassByID)))

	mux.Handle("/api/payments", middleware.RequireAuth(http.HandlerFunc(handlePayments)))
	mux.Handle("/api/payments/", middleware.RequireAuth(http.HandlerFunc(handlePaymentByID)))

	mux.Handle("/api/notices", middleware.RequireAuth(http.HandlerFunc(handleNotices)))
	mux.Handle("/api/notices/", middleware.RequireAuth(http.HandlerFunc(handleNoticeByID)))

	mux.Handle("/api/export/members.xlsx", admin(http.HandlerFunc(handleExportMembers)))
	mux.Handle("/api/export/payments.xlsx", admin(http.HandlerFunc(handleExportPayments)))
	mux.Handle("/api/audit", admin(http.HandlerFunc(handleAuditTrail)))
	mux.Handle("/api/perf", admin(http.HandlerFunc(handlePerfStats)))
}
