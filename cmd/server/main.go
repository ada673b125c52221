package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	_ "modernc.org/sqlite"

	emailPkg "learnhub/internal/adapters/email"
	web "learnhub/internal/adapters/http"
	"learnhub/internal/adapters/http/perf"
	"learnhub/internal/adapters/payment"
	"learnhub/internal/adapters/storage"
	accountStorePkg "learnhub/internal/adapters/storage/account"
	courseStorePkg "learnhub/internal/adapters/storage/course"
	outboxStorePkg "learnhub/internal/adapters/storage/outbox"
	prefsStorePkg "learnhub/internal/adapters/storage/prefs"
	progressStorePkg "learnhub/internal/adapters/storage/progress"
	userStorePkg "learnhub/internal/adapters/storage/user"
	"learnhub/internal/application/orchestrators"
	outboxDomain "learnhub/internal/domain/outbox"
	"learnhub/internal/platform/ready"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// WAL mode, foreign keys, and a busy timeout keep SQLite happy under the
	// connection pool.
	dbPath := envOrDefault("LEARNHUB_DB", "learnhub.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStorePkg.NewSQLiteStore(timedDB)
	crsStore := courseStorePkg.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:  acctStore,
		UserStore:     userStorePkg.NewSQLiteStore(timedDB),
		CourseStore:   crsStore,
		ProgressStore: progressStorePkg.NewSQLiteStore(timedDB),
		PrefsStore:    prefsStorePkg.NewSQLiteStore(timedDB),
		OutboxStore:   outboxStorePkg.NewSQLiteStore(timedDB),
	}

	// Seed default admin account if no accounts exist
	adminEmail := envOrDefault("LEARNHUB_ADMIN_EMAIL", "admin@learnhub.dev")
	adminPassword := envOrDefault("LEARNHUB_ADMIN_PASSWORD", "change me please")
	seedDeps := orchestrators.CreateAccountDeps{AccountStore: acctStore, UserStore: stores.UserStore}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Seed a starter catalog so a fresh install has something to browse
	if err := orchestrators.ExecuteSeedCourses(context.Background(), orchestrators.SeedCoursesDeps{CourseStore: crsStore}); err != nil {
		log.Fatalf("failed to seed catalog: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("LEARNHUB_RESEND_KEY")
	emailFrom := envOrDefault("LEARNHUB_RESEND_FROM", "LearnHub <noreply@learnhub.dev>")
	emailReply := envOrDefault("LEARNHUB_REPLY_TO", "support@learnhub.dev")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom, emailReply)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom, emailReply)
		if os.Getenv("LEARNHUB_ENV") == "production" {
			log.Println("WARNING: LEARNHUB_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set LEARNHUB_RESEND_KEY for real delivery)")
		}
	}

	// Configure billing client
	if paymentURL := os.Getenv("LEARNHUB_PAYMENT_URL"); paymentURL != "" {
		web.SetPaymentClient(payment.NewHTTPClient(paymentURL))
		log.Println("Payment client configured")
	} else {
		web.SetPaymentClient(payment.NewNoopClient())
		log.Println("Payment client configured (noop — set LEARNHUB_PAYMENT_URL for real billing)")
	}
	web.SetBaseURL(envOrDefault("LEARNHUB_BASE_URL", "http://localhost:8080"))

	// Outbox background worker replays failed receipt emails
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var sender emailPkg.Sender = emailPkg.NewNoopSender()
	if resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom)
	}
	processor := orchestrators.NewOutboxProcessor(stores.OutboxStore, map[string]orchestrators.ActionExecutor{
		outboxDomain.ActionTypeReceiptEmail: &orchestrators.ReceiptEmailExecutor{Sender: sender},
	})
	go processor.RunWorker(ctx, 1*time.Minute)

	// Readiness gate: signalled once bootstrap is complete
	gate := ready.New()
	mux := web.NewMux("static", stores, collector, gate)
	gate.Signal()

	addr := envOrDefault("LEARNHUB_ADDR", ":8080")
	log.Printf("LearnHub %s starting on %s (env=%s)", version, addr, envOrDefault("LEARNHUB_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
