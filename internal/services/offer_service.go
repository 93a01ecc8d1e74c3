package services

import (
	"errors"
	"strings"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrOfferNotFound = errors.New("offer not found")
	ErrOfferInvalid  = errors.New("invalid offer")
)

const DefaultOfferShowLimit = 3

type OfferRepository interface {
	List() ([]models.Offer, error)
	FindByID(offerID string) (models.Offer, error)
	Create(offer *models.Offer) error
	SetActive(offerID string, active bool) error
	Delete(offerID string) error
}

type OfferService struct {
	offers OfferRepository
	users  UserStore
}

func NewOfferService(offers OfferRepository, users UserStore) *OfferService {
	return &OfferService{offers: offers, users: users}
}

func (service *OfferService) List() ([]models.Offer, error) {
	return service.offers.List()
}

func (service *OfferService) Create(title string, description string, showLimit int, now time.Time) (models.Offer, error) {
	title = strings.TrimSpace(title)
	if title == "" || showLimit < 0 {
		return models.Offer{}, ErrOfferInvalid
	}
	if showLimit == 0 {
		showLimit = DefaultOfferShowLimit
	}

	offer := models.Offer{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(description),
		IsActive:    true,
		ShowLimit:   showLimit,
		CreatedAt:   now.UTC(),
	}
	if err := service.offers.Create(&offer); err != nil {
		return models.Offer{}, err
	}
	return offer, nil
}

// Toggle flips the active flag and returns the updated offer.
func (service *OfferService) Toggle(offerID string) (models.Offer, error) {
	offer, err := service.offers.FindByID(offerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Offer{}, ErrOfferNotFound
	}
	if err != nil {
		return models.Offer{}, err
	}

	offer.IsActive = !offer.IsActive
	if err := service.offers.SetActive(offer.ID, offer.IsActive); err != nil {
		return models.Offer{}, err
	}
	return offer, nil
}

func (service *OfferService) Delete(offerID string) error {
	return service.offers.Delete(offerID)
}

// SelectOffer picks the first active offer the user has seen fewer than
// ShowLimit times. Offers must be in creation order.
func SelectOffer(offers []models.Offer, seen map[string]int) (models.Offer, bool) {
	for _, offer := range offers {
		if offer.IsActive && seen[offer.ID] < offer.ShowLimit {
			return offer, true
		}
	}
	return models.Offer{}, false
}

func (service *OfferService) NextOffer(user models.User) (models.Offer, bool, error) {
	offers, err := service.offers.List()
	if err != nil {
		return models.Offer{}, false, err
	}
	offer, ok := SelectOffer(offers, user.SeenOffers)
	return offer, ok, nil
}

// ActiveOffers lists the active offers for the announcement banner.
func (service *OfferService) ActiveOffers() ([]models.Offer, error) {
	offers, err := service.offers.List()
	if err != nil {
		return nil, err
	}
	active := make([]models.Offer, 0, len(offers))
	for _, offer := range offers {
		if offer.IsActive {
			active = append(active, offer)
		}
	}
	return active, nil
}

func (service *OfferService) RecordImpression(userID string, offerID string) (models.User, error) {
	if _, err := service.offers.FindByID(offerID); errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrOfferNotFound
	} else if err != nil {
		return models.User{}, err
	}

	return mutateUser(service.users, userID, func(user *models.User) error {
		if user.SeenOffers == nil {
			user.SeenOffers = map[string]int{}
		}
		user.SeenOffers[offerID]++
		return nil
	})
}
