package api

import (
	"github.com/dreambody011-stack/dream--body/internal/db"
	"github.com/dreambody011-stack/dream--body/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB, options Options) *Handler {
	repositories := db.NewRepositories(database)
	handler.repositories = repositories

	handler.authService = services.NewAuthService(repositories.Admin, repositories.Users, options.AllowAdminIDWithoutPassword)
	handler.profileService = services.NewProfileService(repositories.Users)
	handler.packageService = services.NewPackageService(repositories.Packages)
	handler.promoService = services.NewPromoService(repositories.Promos, options.Locker)
	handler.offerService = services.NewOfferService(repositories.Offers, repositories.Users)
	handler.subscriptionService = services.NewSubscriptionService(
		repositories.Users,
		handler.packageService,
		handler.promoService,
		options.Planner,
		options.Locker,
		options.GenerationLockTTL,
	)
	handler.planService = services.NewPlanService(
		repositories.Users,
		options.Planner,
		options.Locker,
		options.GenerationLockTTL,
		options.ContextBuilder,
	)
	handler.adminService = services.NewAdminService(repositories.Admin)
	handler.exportService = services.NewExportService(
		repositories.Users,
		repositories.Packages,
		repositories.Promos,
		repositories.Offers,
		repositories.Admin,
		repositories.StoreKeys,
	)
	return handler
}
