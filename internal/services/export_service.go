package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/models"
	"gorm.io/gorm"
)

type ExportUserReader interface {
	List(query string) ([]models.User, error)
}

type ExportPackageReader interface {
	List() ([]models.PricingPackage, error)
}

type ExportPromoReader interface {
	List() ([]models.PromoCode, error)
}

type ExportOfferReader interface {
	List() ([]models.Offer, error)
}

type StoreKeyReader interface {
	Initialized() (map[string]bool, error)
}

// SessionInfo is the session record carried in a backup.
type SessionInfo struct {
	Type   string `json:"type"`
	UserID string `json:"userId,omitempty"`
}

// Backup is the whole-store document. A collection that was never
// initialised is null.
type Backup struct {
	Users    json.RawMessage `json:"USERS"`
	Packages json.RawMessage `json:"PACKAGES"`
	Promos   json.RawMessage `json:"PROMOS"`
	Offers   json.RawMessage `json:"OFFERS"`
	Config   json.RawMessage `json:"CONFIG"`
	Session  json.RawMessage `json:"SESSION"`
}

type backupConfig struct {
	Admin models.AdminProfile `json:"admin"`
}

type ExportService struct {
	users     ExportUserReader
	packages  ExportPackageReader
	promos    ExportPromoReader
	offers    ExportOfferReader
	admin     AdminProfileRepository
	storeKeys StoreKeyReader
}

func NewExportService(users ExportUserReader, packages ExportPackageReader, promos ExportPromoReader, offers ExportOfferReader, admin AdminProfileRepository, storeKeys StoreKeyReader) *ExportService {
	return &ExportService{
		users:     users,
		packages:  packages,
		promos:    promos,
		offers:    offers,
		admin:     admin,
		storeKeys: storeKeys,
	}
}

func BackupFileName(now time.Time) string {
	return fmt.Sprintf("backup_%s.json", now.Format("2006-01-02"))
}

func encodeSection(key string, initialized map[string]bool, load func() (any, error)) (json.RawMessage, error) {
	if !initialized[key] {
		return nil, nil
	}
	value, err := load()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	return encoded, nil
}

func (service *ExportService) BuildBackup(session *SessionInfo) (Backup, error) {
	initialized, err := service.storeKeys.Initialized()
	if err != nil {
		return Backup{}, fmt.Errorf("load store keys: %w", err)
	}

	var backup Backup
	sections := []struct {
		key    string
		target *json.RawMessage
		load   func() (any, error)
	}{
		{models.StoreKeyUsers, &backup.Users, func() (any, error) { return service.users.List("") }},
		{models.StoreKeyPackages, &backup.Packages, func() (any, error) { return service.packages.List() }},
		{models.StoreKeyPromos, &backup.Promos, func() (any, error) { return service.promos.List() }},
		{models.StoreKeyOffers, &backup.Offers, func() (any, error) { return service.offers.List() }},
		{models.StoreKeyConfig, &backup.Config, func() (any, error) {
			admin, err := service.admin.Find()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			return backupConfig{Admin: admin}, nil
		}},
	}
	for _, section := range sections {
		encoded, err := encodeSection(section.key, initialized, section.load)
		if err != nil {
			return Backup{}, err
		}
		*section.target = encoded
	}

	if session != nil {
		encoded, err := json.Marshal(session)
		if err != nil {
			return Backup{}, fmt.Errorf("encode %s: %w", models.StoreKeySession, err)
		}
		backup.Session = encoded
	}
	return backup, nil
}
