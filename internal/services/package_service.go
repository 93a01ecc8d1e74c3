package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/dreambody011-stack/dream--body/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPackageNotFound = errors.New("package not found")
	ErrPackageInvalid  = errors.New("invalid package")
)

type PackageRepository interface {
	List() ([]models.PricingPackage, error)
	FindByID(packageID string) (models.PricingPackage, error)
	Create(pricingPackage *models.PricingPackage) error
	Update(pricingPackage *models.PricingPackage) error
	Delete(packageID string) error
}

type PackageInput struct {
	Name           string
	Price          string
	DurationMonths int
	Features       []string
	// Version, when non-zero, must match the stored version.
	Version uint
}

type PackageService struct {
	packages PackageRepository
}

func NewPackageService(packages PackageRepository) *PackageService {
	return &PackageService{packages: packages}
}

func (service *PackageService) List() ([]models.PricingPackage, error) {
	return service.packages.List()
}

func (service *PackageService) Get(packageID string) (models.PricingPackage, error) {
	pricingPackage, err := service.packages.FindByID(packageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.PricingPackage{}, ErrPackageNotFound
	}
	if err != nil {
		return models.PricingPackage{}, err
	}
	return pricingPackage, nil
}

func normalizePackageInput(input PackageInput) (PackageInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Price = strings.TrimSpace(input.Price)
	if input.Name == "" || input.DurationMonths <= 0 {
		return PackageInput{}, ErrPackageInvalid
	}
	if price, err := strconv.ParseFloat(input.Price, 64); err != nil || price < 0 {
		return PackageInput{}, ErrPackageInvalid
	}

	features := make([]string, 0, len(input.Features))
	for _, feature := range input.Features {
		if trimmed := strings.TrimSpace(feature); trimmed != "" {
			features = append(features, trimmed)
		}
	}
	input.Features = features
	return input, nil
}

func (service *PackageService) Create(input PackageInput) (models.PricingPackage, error) {
	normalized, err := normalizePackageInput(input)
	if err != nil {
		return models.PricingPackage{}, err
	}

	pricingPackage := models.PricingPackage{
		ID:             uuid.NewString(),
		Name:           normalized.Name,
		Price:          normalized.Price,
		DurationMonths: normalized.DurationMonths,
		Features:       normalized.Features,
		Version:        1,
	}
	if err := service.packages.Create(&pricingPackage); err != nil {
		return models.PricingPackage{}, err
	}
	return pricingPackage, nil
}

func (service *PackageService) Update(packageID string, input PackageInput) (models.PricingPackage, error) {
	normalized, err := normalizePackageInput(input)
	if err != nil {
		return models.PricingPackage{}, err
	}

	pricingPackage, err := service.Get(packageID)
	if err != nil {
		return models.PricingPackage{}, err
	}
	if normalized.Version != 0 && normalized.Version != pricingPackage.Version {
		return models.PricingPackage{}, ErrVersionConflict
	}

	pricingPackage.Name = normalized.Name
	pricingPackage.Price = normalized.Price
	pricingPackage.DurationMonths = normalized.DurationMonths
	pricingPackage.Features = normalized.Features
	if err := service.packages.Update(&pricingPackage); err != nil {
		return models.PricingPackage{}, err
	}
	return pricingPackage, nil
}

func (service *PackageService) Delete(packageID string) error {
	return service.packages.Delete(packageID)
}
