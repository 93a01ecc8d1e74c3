package api

import (
	"errors"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/ai"
	"github.com/dreambody011-stack/dream--body/internal/db"
	"github.com/dreambody011-stack/dream--body/internal/lock"
	"github.com/dreambody011-stack/dream--body/internal/services"
	"gorm.io/gorm"
)

// Options carries the collaborators the handler cannot build from the database.
type Options struct {
	Planner                     services.PlanGenerator
	Locker                      lock.Locker
	ContextBuilder              services.ContextBuilder
	GenerationLockTTL           time.Duration
	AllowAdminIDWithoutPassword bool
}

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	now          func() time.Time
	loginLimiter *attemptLimiter

	repositories        *db.Repositories
	authService         *services.AuthService
	profileService      *services.ProfileService
	packageService      *services.PackageService
	promoService        *services.PromoService
	offerService        *services.OfferService
	subscriptionService *services.SubscriptionService
	planService         *services.PlanService
	adminService        *services.AdminService
	exportService       *services.ExportService
}

func NewHandler(database *gorm.DB, secret string, location *time.Location, cookieSecure bool, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if options.Planner == nil {
		return nil, errors.New("plan generator is required")
	}
	if location == nil {
		location = time.Local
	}
	if options.Locker == nil {
		options.Locker = lock.NewMemoryLocker()
	}
	if options.ContextBuilder == nil {
		options.ContextBuilder = ai.UserContext
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secret),
		location:     location,
		cookieSecure: cookieSecure,
		now:          time.Now,
		loginLimiter: newAttemptLimiter(),
	}
	return handler.withDependencies(database, options), nil
}

func (handler *Handler) currentTime() time.Time {
	return handler.now().In(handler.location)
}
