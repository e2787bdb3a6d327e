package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	emailPkg "fastbreak/internal/adapters/email"
	web "fastbreak/internal/adapters/http"
	"fastbreak/internal/adapters/http/perf"
	"fastbreak/internal/adapters/photo"
	"fastbreak/internal/adapters/storage"
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
	"fastbreak/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// WAL mode, foreign keys, and busy timeout set via DSN pragmas
	dbPath := envOrDefault("FASTBREAK_DB", "fastbreak.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.MigrateDB(db, dbPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	siteContentStore := contentStore.NewSQLiteStore(timedDB)
	mailOutboxStore := outboxStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:      acctStore,
		AvailabilityStore: availabilityStore.NewSQLiteStore(timedDB),
		ScheduleStore:     scheduleStore.NewSQLiteStore(timedDB),
		AssignmentStore:   assignmentStore.NewSQLiteStore(timedDB),
		CamperStore:       camperStore.NewSQLiteStore(timedDB),
		GuardianStore:     guardianStore.NewSQLiteStore(timedDB),
		ContactStore:      contactStore.NewSQLiteStore(timedDB),
		RegistrationStore: registrationStore.NewSQLiteStore(timedDB),
		ContentStore:      siteContentStore,
		AuditStore:        auditStore.NewSQLiteStore(timedDB),
		OutboxStore:       mailOutboxStore,
	}

	// Bootstrap admin on a fresh database. With no credentials
	// configured the seed is skipped with a warning.
	err = orchestrators.ExecuteSeedAdmin(context.Background(), orchestrators.SeedAdminInput{
		Email:    os.Getenv("FASTBREAK_ADMIN_EMAIL"),
		Name:     os.Getenv("FASTBREAK_ADMIN_NAME"),
		Password: os.Getenv("FASTBREAK_ADMIN_PASSWORD"),
	}, orchestrators.SeedAdminDeps{
		AccountStore: acctStore,
		AuditStore:   stores.AuditStore,
		GenerateID:   func() string { return uuid.New().String() },
		Now:          time.Now,
	})
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	if err := orchestrators.ExecuteSeedContent(context.Background(), orchestrators.SeedContentDeps{
		ContentStore: siteContentStore,
		Now:          time.Now,
	}); err != nil {
		log.Fatalf("failed to seed site content: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("FASTBREAK_RESEND_KEY")
	emailFrom := envOrDefault("FASTBREAK_EMAIL_FROM", "Fastbreak Camp <noreply@fastbreakcamp.example>")
	emailReply := envOrDefault("FASTBREAK_REPLY_TO", "hello@fastbreakcamp.example")
	var sender emailPkg.Sender
	if resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if os.Getenv("FASTBREAK_ENV") == "production" {
			log.Println("WARNING: FASTBREAK_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set FASTBREAK_RESEND_KEY for real delivery)")
		}
	}
	web.SetEmailSender(sender, emailReply)

	// Configure photo storage
	s3Bucket := os.Getenv("FASTBREAK_S3_BUCKET")
	if s3Bucket != "" {
		uploader, err := photo.NewS3Uploader(context.Background(), envOrDefault("FASTBREAK_AWS_REGION", "us-east-1"), s3Bucket)
		if err != nil {
			log.Fatalf("failed to configure S3 uploader: %v", err)
		}
		web.SetPhotoUploader(uploader)
		log.Println("Photo uploads configured (S3)")
	} else {
		web.SetPhotoUploader(photo.NewNoopUploader())
		log.Println("Photo uploads configured (noop, set FASTBREAK_S3_BUCKET for real storage)")
	}

	// Background worker retrying queued emails
	stopOutbox := orchestrators.StartOutboxRetryScheduler(context.Background(), orchestrators.OutboxRetryDeps{
		OutboxStore: mailOutboxStore,
		Sender:      sender,
	}, orchestrators.DefaultOutboxRetryConfig())
	defer stopOutbox()

	mux := web.NewMux(envOrDefault("FASTBREAK_STATIC_DIR", "static"), stores, collector)

	addr := envOrDefault("FASTBREAK_ADDR", ":8080")
	log.Printf("Fastbreak %s starting on %s (env=%s, schema=%d)", version, addr, envOrDefault("FASTBREAK_ENV", "development"), storage.LatestSchemaVersion())

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
