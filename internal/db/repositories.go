package db

import "gorm.io/gorm"

type Repositories struct {
	Users     *UserRepository
	Packages  *PackageRepository
	Promos    *PromoRepository
	Offers    *OfferRepository
	Admin     *AdminRepository
	StoreKeys *StoreKeyRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(database),
		Packages:  NewPackageRepository(database),
		Promos:    NewPromoRepository(database),
		Offers:    NewOfferRepository(database),
		Admin:     NewAdminRepository(database),
		StoreKeys: NewStoreKeyRepository(database),
	}
}
