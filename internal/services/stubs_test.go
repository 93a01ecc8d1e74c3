package services

import (
	"context"
	"strings"
	"sync"

	"github.com/dreambody011-stack/dream--body/internal/db"
	"github.com/dreambody011-stack/dream--body/internal/models"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]models.User
	updates int
	// beforeUpdate runs once before the next Update, to simulate a racing writer.
	beforeUpdate func(repo *stubUserRepo)
}

func newStubUserRepo(users ...models.User) *stubUserRepo {
	repo := &stubUserRepo{users: map[string]models.User{}}
	for _, user := range users {
		if user.Version == 0 {
			user.Version = 1
		}
		repo.users[user.ID] = user
	}
	return repo
}

func (repo *stubUserRepo) FindByID(userID string) (models.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	user, ok := repo.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return cloneUser(user), nil
}

func (repo *stubUserRepo) Update(user *models.User) error {
	if hook := repo.beforeUpdate; hook != nil {
		repo.beforeUpdate = nil
		hook(repo)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	stored, ok := repo.users[user.ID]
	if !ok || stored.Version != user.Version {
		return db.ErrVersionConflict
	}
	user.Version++
	repo.users[user.ID] = cloneUser(*user)
	repo.updates++
	return nil
}

func (repo *stubUserRepo) ExistsByID(userID string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	_, ok := repo.users[userID]
	return ok, nil
}

func (repo *stubUserRepo) Create(user *models.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if user.Version == 0 {
		user.Version = 1
	}
	repo.users[user.ID] = cloneUser(*user)
	return nil
}

func (repo *stubUserRepo) List(query string) ([]models.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	result := make([]models.User, 0)
	for _, user := range repo.users {
		needle := strings.ToLower(query)
		if needle == "" || strings.Contains(strings.ToLower(user.Name), needle) || strings.Contains(strings.ToLower(user.ID), needle) {
			result = append(result, cloneUser(user))
		}
	}
	return result, nil
}

func (repo *stubUserRepo) ListByIdentifier(identifier string) ([]models.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	result := make([]models.User, 0)
	for _, user := range repo.users {
		if user.ID == identifier || user.Email == identifier || user.Phone == identifier {
			result = append(result, cloneUser(user))
		}
	}
	return result, nil
}

func (repo *stubUserRepo) Delete(userID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	delete(repo.users, userID)
	return nil
}

func (repo *stubUserRepo) UpdatePassword(userID string, passwordHash string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	user, ok := repo.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.PasswordHash = passwordHash
	user.Version++
	repo.users[userID] = user
	return nil
}

func (repo *stubUserRepo) stored(userID string) models.User {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return cloneUser(repo.users[userID])
}

func cloneUser(user models.User) models.User {
	if user.PromoUsage != nil {
		usage := make(map[string]int, len(user.PromoUsage))
		for key, value := range user.PromoUsage {
			usage[key] = value
		}
		user.PromoUsage = usage
	}
	if user.SeenOffers != nil {
		seen := make(map[string]int, len(user.SeenOffers))
		for key, value := range user.SeenOffers {
			seen[key] = value
		}
		user.SeenOffers = seen
	}
	user.WeightHistory = append([]models.WeightEntry(nil), user.WeightHistory...)
	user.PlanHistory = append([]models.PlanHistoryEntry(nil), user.PlanHistory...)
	user.SubscriptionHistory = append([]models.SubscriptionHistoryEntry(nil), user.SubscriptionHistory...)
	if user.PendingRequest != nil {
		pending := *user.PendingRequest
		user.PendingRequest = &pending
	}
	if user.Payment != nil {
		payment := *user.Payment
		user.Payment = &payment
	}
	return user
}

type stubPackageRepo struct {
	packages []models.PricingPackage
}

func newStubPackageRepo(packages ...models.PricingPackage) *stubPackageRepo {
	return &stubPackageRepo{packages: packages}
}

func (repo *stubPackageRepo) List() ([]models.PricingPackage, error) {
	return append([]models.PricingPackage(nil), repo.packages...), nil
}

func (repo *stubPackageRepo) FindByID(packageID string) (models.PricingPackage, error) {
	for _, pricingPackage := range repo.packages {
		if pricingPackage.ID == packageID {
			return pricingPackage, nil
		}
	}
	return models.PricingPackage{}, gorm.ErrRecordNotFound
}

func (repo *stubPackageRepo) Create(pricingPackage *models.PricingPackage) error {
	repo.packages = append(repo.packages, *pricingPackage)
	return nil
}

func (repo *stubPackageRepo) Update(pricingPackage *models.PricingPackage) error {
	for index := range repo.packages {
		if repo.packages[index].ID == pricingPackage.ID {
			if repo.packages[index].Version != pricingPackage.Version {
				return db.ErrVersionConflict
			}
			pricingPackage.Version++
			repo.packages[index] = *pricingPackage
			return nil
		}
	}
	return db.ErrVersionConflict
}

func (repo *stubPackageRepo) Delete(packageID string) error {
	kept := repo.packages[:0]
	for _, pricingPackage := range repo.packages {
		if pricingPackage.ID != packageID {
			kept = append(kept, pricingPackage)
		}
	}
	repo.packages = kept
	return nil
}

type stubPromoRepo struct {
	codes []models.PromoCode
	users *stubUserRepo
}

func (repo *stubPromoRepo) List() ([]models.PromoCode, error) {
	return append([]models.PromoCode(nil), repo.codes...), nil
}

func (repo *stubPromoRepo) FindByCode(code string) (models.PromoCode, error) {
	for _, promo := range repo.codes {
		if promo.Code == code {
			return promo, nil
		}
	}
	return models.PromoCode{}, gorm.ErrRecordNotFound
}

func (repo *stubPromoRepo) Create(promo *models.PromoCode) error {
	repo.codes = append(repo.codes, *promo)
	return nil
}

func (repo *stubPromoRepo) Delete(promoID string) error {
	kept := repo.codes[:0]
	for _, promo := range repo.codes {
		if promo.ID != promoID {
			kept = append(kept, promo)
		}
	}
	repo.codes = kept
	return nil
}

func (repo *stubPromoRepo) UpdateUsage(redeemID string, refundID string, user *models.User) error {
	redeemIndex := -1
	if redeemID != "" {
		for index := range repo.codes {
			if repo.codes[index].ID == redeemID {
				redeemIndex = index
			}
		}
		if redeemIndex < 0 {
			return gorm.ErrRecordNotFound
		}
		used := repo.codes[redeemIndex].CurrentUsageCount
		if refundID == redeemID && used > 0 {
			used--
		}
		if !repo.codes[redeemIndex].MaxUsageTotal.Allows(used) {
			return db.ErrUsageCapReached
		}
	}
	if err := repo.users.Update(user); err != nil {
		return err
	}
	for index := range repo.codes {
		if refundID != "" && repo.codes[index].ID == refundID && repo.codes[index].CurrentUsageCount > 0 {
			repo.codes[index].CurrentUsageCount--
		}
	}
	if redeemIndex >= 0 {
		repo.codes[redeemIndex].CurrentUsageCount++
	}
	return nil
}

type stubPlanner struct {
	mu             sync.Mutex
	workout        string
	diet           string
	regenerated    string
	advice         string
	starterCalls   int
	dietCalls      int
	adviceCalls    int
	lastQuery      string
	lastContext    string
	starterEntered chan struct{}
	starterBlock   chan struct{}
}

func (planner *stubPlanner) GenerateStarterPlans(ctx context.Context, user models.User) (string, string) {
	planner.mu.Lock()
	planner.starterCalls++
	entered, block := planner.starterEntered, planner.starterBlock
	planner.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if block != nil {
		<-block
	}
	return planner.workout, planner.diet
}

func (planner *stubPlanner) RegenerateDietPlan(ctx context.Context, user models.User) string {
	planner.mu.Lock()
	defer planner.mu.Unlock()
	planner.dietCalls++
	return planner.regenerated
}

func (planner *stubPlanner) GenerateFitnessAdvice(ctx context.Context, query string, userContext string) string {
	planner.mu.Lock()
	defer planner.mu.Unlock()
	planner.adviceCalls++
	planner.lastQuery = query
	planner.lastContext = userContext
	return planner.advice
}

func (planner *stubPlanner) starterCallCount() int {
	planner.mu.Lock()
	defer planner.mu.Unlock()
	return planner.starterCalls
}
