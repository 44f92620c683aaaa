package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "modernc.org/sqlite"

	emailPkg "gymdesk/internal/adapters/email"
	web "gymdesk/internal/adapters/http"
	"gymdesk/internal/adapters/http/perf"
	"gymdesk/internal/adapters/storage"
	accountStore "gymdesk/internal/adapters/storage/account"
	auditStore "gymdesk/internal/adapters/storage/audit"
	classStore "gymdesk/internal/adapters/storage/gymclass"
	memberStore "gymdesk/internal/adapters/storage/member"
	noticeStore "gymdesk/internal/adapters/storage/notice"
	paymentStore "gymdesk/internal/adapters/storage/payment"
	trainerStore "gymdesk/internal/adapters/storage/trainer"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	config.LoadDotenvIfPresent()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// WAL mode, foreign keys, and a busy timeout keep concurrent reads
	// cheap and writes serialized without "database is locked" errors.
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
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

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore: acctStore,
		MemberStore:  memberStore.NewSQLiteStore(timedDB),
		TrainerStore: trainerStore.NewSQLiteStore(timedDB),
		ClassStore:   classStore.NewSQLiteStore(timedDB),
		PaymentStore: paymentStore.NewSQLiteStore(timedDB),
		NoticeStore:  noticeStore.NewSQLiteStore(timedDB),
		AuditStore:   auditStore.NewSQLiteStore(timedDB),
	}

	// Seed bootstrap admin account (idempotent)
	err = orchestrators.ExecuteSeedAdmin(context.Background(), orchestrators.SeedAdminInput{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}, orchestrators.SeedAdminDeps{AccountStore: acctStore})
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Seed demo data for development only
	if !cfg.IsProduction() {
		err = orchestrators.ExecuteSeedDemo(context.Background(), orchestrators.SeedDemoDeps{
			MemberStore:  stores.MemberStore,
			TrainerStore: stores.TrainerStore,
			ClassStore:   stores.ClassStore,
			PaymentStore: stores.PaymentStore,
		})
		if err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
	}

	// Configure email sender
	if cfg.ResendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom, cfg.ReplyTo))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if cfg.IsProduction() {
			log.Println("WARNING: GYMDESK_RESEND_API_KEY is not set, receipt delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop; set GYMDESK_RESEND_API_KEY for real delivery)")
		}
	}

	mux := web.NewMux(stores, collector)

	log.Printf("GymDesk %s starting on %s (env=%s)", version, cfg.Addr, cfg.Env)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
