package models

import "time"

const (
	StoreKeyUsers    = "USERS"
	StoreKeyPackages = "PACKAGES"
	StoreKeyPromos   = "PROMOS"
	StoreKeyOffers   = "OFFERS"
	StoreKeyConfig   = "CONFIG"
	StoreKeySession  = "SESSION"
)

// StoreKeys lists every backup key in document order.
var StoreKeys = []string{
	StoreKeyUsers,
	StoreKeyPackages,
	StoreKeyPromos,
	StoreKeyOffers,
	StoreKeyConfig,
	StoreKeySession,
}

// StoreKey records that a collection has been initialised.
type StoreKey struct {
	Key           string    `gorm:"column:name;primaryKey"`
	InitializedAt time.Time `gorm:"not null"`
}
