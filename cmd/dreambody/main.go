package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/ai"
	"github.com/dreambody011-stack/dream--body/internal/api"
	"github.com/dreambody011-stack/dream--body/internal/cli"
	"github.com/dreambody011-stack/dream--body/internal/db"
	"github.com/dreambody011-stack/dream--body/internal/lock"
	"github.com/dreambody011-stack/dream--body/internal/models"
	"github.com/dreambody011-stack/dream--body/internal/security"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultAdminID    = "SO3DA2007"
	defaultAdminEmail = "admin@dreambody.com"
	defaultAdminPhone = "0000000000"
	minSecretKeyBytes = 32

	generationLockMargin = 30 * time.Second
)

var insecureSecretKeys = map[string]bool{
	"change_me_in_production":                    true,
	"replace_with_at_least_32_random_characters": true,
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}

	dbPath := getEnv("DB_PATH", filepath.Join("data", "dreambody.db"))
	if len(os.Args) > 1 {
		if err := runCommand(os.Args[1:], dbPath); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey, err := resolveSecretKey()
	if err != nil {
		log.Fatalf("invalid SECRET_KEY: %v", err)
	}
	port, err := resolvePort()
	if err != nil {
		log.Fatalf("invalid PORT: %v", err)
	}
	aiTimeout, err := resolveAITimeout()
	if err != nil {
		log.Fatalf("invalid AI_TIMEOUT: %v", err)
	}
	cookieSecure := getEnvBool("COOKIE_SECURE", false)

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	if err := seedStore(database); err != nil {
		log.Fatalf("store seed failed: %v", err)
	}

	if strings.TrimSpace(os.Getenv("AI_API_KEY")) == "" {
		log.Printf("AI_API_KEY is not set; plan generation will return fallback texts")
	}
	coach := ai.NewCoach(ai.NewGeminiClient(ai.Config{
		APIKey:  os.Getenv("AI_API_KEY"),
		BaseURL: os.Getenv("AI_BASE_URL"),
		Model:   os.Getenv("AI_MODEL"),
		Timeout: aiTimeout,
	}), aiTimeout)

	handler, err := api.NewHandler(database, secretKey, location, cookieSecure, api.Options{
		Planner:                     coach,
		Locker:                      newLocker(),
		GenerationLockTTL:           generationLockTTL(aiTimeout),
		ContextBuilder:              ai.UserContext,
		AllowAdminIDWithoutPassword: getEnvBool("ALLOW_ADMIN_ID_LOGIN_WITHOUT_PASSWORD", false),
	})
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Dream Body",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(csrf.New(csrfMiddlewareConfig(cookieSecure)))

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Dream Body listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func runCommand(args []string, dbPath string) error {
	switch args[0] {
	case "reset-password":
		if len(args) != 2 {
			return errors.New("usage: dreambody reset-password <user-id>")
		}
		return cli.RunResetPasswordCommand(dbPath, args[1], os.Stdout)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// seedStore writes the default packages and the admin profile on first start.
// Without ADMIN_PASSWORD a random one is generated and logged once.
func seedStore(database *gorm.DB) error {
	initialized, err := db.NewStoreKeyRepository(database).Initialized()
	if err != nil {
		return err
	}
	if initialized[models.StoreKeyConfig] {
		return db.SeedStore(database, db.AdminSeed{})
	}

	password := strings.TrimSpace(os.Getenv("ADMIN_PASSWORD"))
	if password == "" {
		password, err = security.RandomString(16, "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789")
		if err != nil {
			return fmt.Errorf("generate admin password: %w", err)
		}
		log.Printf("ADMIN_PASSWORD is not set; generated admin password: %s", password)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	return db.SeedStore(database, db.AdminSeed{
		ID:           getEnv("ADMIN_ID", defaultAdminID),
		Email:        getEnv("ADMIN_EMAIL", defaultAdminEmail),
		Phone:        getEnv("ADMIN_PHONE", defaultAdminPhone),
		PasswordHash: string(hash),
	})
}

func newLocker() lock.Locker {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return lock.NewMemoryLocker()
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		log.Printf("invalid REDIS_DB %q, using 0", os.Getenv("REDIS_DB"))
		redisDB = 0
	}
	client := lock.NewRedisClient(lock.RedisOptions{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	})
	if client == nil {
		log.Printf("redis at %s is unreachable, using in-process locks", addr)
		return lock.NewMemoryLocker()
	}
	return lock.NewRedisLocker(client)
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "header:X-CSRF-Token",
		CookieName:     "dreambody_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: false,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
	}
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if insecureSecretKeys[secret] {
		return "", errors.New("SECRET_KEY uses a placeholder value")
	}
	if len(secret) < minSecretKeyBytes {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyBytes)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := strings.TrimSpace(getEnv("PORT", "8080"))
	port, err := strconv.Atoi(raw)
	if err != nil {
		return "", fmt.Errorf("port %q is not a number", raw)
	}
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("port %d is out of range", port)
	}
	return raw, nil
}

// resolveAITimeout accepts a Go duration ("45s") or a number of seconds.
func resolveAITimeout() (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv("AI_TIMEOUT"))
	if raw == "" {
		return ai.DefaultTimeout, nil
	}
	if seconds, err := strconv.Atoi(raw); err == nil {
		if seconds <= 0 {
			return 0, fmt.Errorf("timeout %q must be positive", raw)
		}
		return time.Duration(seconds) * time.Second, nil
	}
	timeout, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("timeout %q must be positive", raw)
	}
	return timeout, nil
}

// generationLockTTL keeps the per-user generation lock alive for a full AI
// call plus the record write that follows it.
func generationLockTTL(aiTimeout time.Duration) time.Duration {
	return aiTimeout + generationLockMargin
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("invalid %s %q, using %v", key, raw, fallback)
		return fallback
	}
	return value
}
