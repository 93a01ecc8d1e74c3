package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/models"
	"github.com/dreambody011-stack/dream--body/internal/security"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrRegistrationInvalid     = errors.New("registration is missing required fields")
	ErrPasswordMismatch        = errors.New("passwords do not match")
	ErrProfilePasswordInvalid  = errors.New("current password is incorrect")
	ErrProfilePasswordMismatch = errors.New("new passwords do not match")
	ErrProfileInvalid          = errors.New("invalid profile values")
	ErrWeightInvalid           = errors.New("weight must be positive")
	ErrClientIDExhausted       = errors.New("could not allocate a unique client id")
)

const clientIDAttempts = 16

type ProfileUserRepository interface {
	UserStore
	ExistsByID(userID string) (bool, error)
	Create(user *models.User) error
	List(query string) ([]models.User, error)
	Delete(userID string) error
	UpdatePassword(userID string, passwordHash string) error
}

type RegistrationInput struct {
	Name              string
	Email             string
	Phone             string
	Password          string
	ConfirmPassword   string
	Gender            string
	DOB               string
	Height            float64
	Weight            float64
	FitnessGoal       string
	TargetBody        string
	WeeklyWorkoutDays int
	ActivityLevel     string
	Allergies         string
	FoodDislikes      string
	ForbiddenFoods    string
}

// ProfileUpdateInput carries the client-editable fields. A non-empty
// NewPassword requires OldPassword to match.
type ProfileUpdateInput struct {
	Gender            string
	Height            float64
	Weight            float64
	FitnessGoal       string
	TargetBody        string
	WeeklyWorkoutDays int
	ActivityLevel     string
	Allergies         string
	FoodDislikes      string
	ForbiddenFoods    string
	OldPassword       string
	NewPassword       string
	ConfirmPassword   string
}

// AdminUserUpdate holds the fields an admin may change. Nil pointers keep
// the stored value.
type AdminUserUpdate struct {
	Name          *string
	Email         *string
	Phone         *string
	WorkoutPlan   *string
	DietPlan      *string
	Notes         *string
	TransactionID *string
	Version       uint
}

type ProfileService struct {
	users ProfileUserRepository
	newID func() (string, error)
}

func NewProfileService(users ProfileUserRepository) *ProfileService {
	return &ProfileService{users: users, newID: security.NewClientID}
}

func (service *ProfileService) Get(userID string) (models.User, error) {
	return findUser(service.users, userID)
}

func normalizeGender(gender string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(gender)) {
	case "", models.GenderMale:
		return models.GenderMale, true
	case models.GenderFemale:
		return models.GenderFemale, true
	default:
		return "", false
	}
}

func normalizeActivityLevel(level string) (string, bool) {
	level = strings.ToUpper(strings.TrimSpace(level))
	if level == "" {
		return models.ActivityModeratelyActive, true
	}
	return level, models.IsValidActivityLevel(level)
}

func normalizeDOB(dob string) (string, bool) {
	dob = strings.TrimSpace(dob)
	if dob == "" {
		return "", true
	}
	if _, err := time.Parse("2006-01-02", dob); err != nil {
		return "", false
	}
	return dob, true
}

func (service *ProfileService) allocateID() (string, error) {
	for attempt := 0; attempt < clientIDAttempts; attempt++ {
		candidate, err := service.newID()
		if err != nil {
			return "", fmt.Errorf("generate client id: %w", err)
		}
		taken, err := service.users.ExistsByID(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrClientIDExhausted
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates a client with a fresh login id. Plans stay pending until
// the subscription is activated.
func (service *ProfileService) Register(input RegistrationInput, now time.Time) (models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)
	password := strings.TrimSpace(input.Password)
	if name == "" || email == "" || phone == "" || password == "" {
		return models.User{}, ErrRegistrationInvalid
	}
	if password != strings.TrimSpace(input.ConfirmPassword) {
		return models.User{}, ErrPasswordMismatch
	}

	gender, ok := normalizeGender(input.Gender)
	if !ok {
		return models.User{}, ErrProfileInvalid
	}
	activity, ok := normalizeActivityLevel(input.ActivityLevel)
	if !ok {
		return models.User{}, ErrProfileInvalid
	}
	dob, ok := normalizeDOB(input.DOB)
	if !ok {
		return models.User{}, ErrProfileInvalid
	}
	if input.Height < 0 || input.Weight < 0 || input.WeeklyWorkoutDays < 0 || input.WeeklyWorkoutDays > 7 {
		return models.User{}, ErrProfileInvalid
	}
	workoutDays := input.WeeklyWorkoutDays
	if workoutDays == 0 {
		workoutDays = models.DefaultWeeklyWorkoutDays
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	id, err := service.allocateID()
	if err != nil {
		return models.User{}, err
	}

	created := now.UTC()
	user := models.User{
		ID:                  id,
		PasswordHash:        passwordHash,
		Name:                name,
		Email:               email,
		Phone:               phone,
		Gender:              gender,
		DOB:                 dob,
		CreatedAt:           created,
		Height:              input.Height,
		CurrentWeight:       input.Weight,
		WeightHistory:       []models.WeightEntry{},
		FitnessGoal:         strings.TrimSpace(input.FitnessGoal),
		TargetBody:          strings.TrimSpace(input.TargetBody),
		WeeklyWorkoutDays:   workoutDays,
		ActivityLevel:       activity,
		Allergies:           strings.TrimSpace(input.Allergies),
		FoodDislikes:        strings.TrimSpace(input.FoodDislikes),
		ForbiddenFoods:      strings.TrimSpace(input.ForbiddenFoods),
		WorkoutPlan:         models.PendingPlanSentinel,
		DietPlan:            models.PendingPlanSentinel,
		PlanHistory:         []models.PlanHistoryEntry{},
		SubscriptionHistory: []models.SubscriptionHistoryEntry{},
		PromoUsage:          map[string]int{},
		SeenOffers:          map[string]int{},
		Version:             1,
	}
	if input.Weight > 0 {
		user.WeightHistory = append(user.WeightHistory, models.WeightEntry{Date: created, Weight: input.Weight})
	}

	if err := service.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func recordWeight(user *models.User, weight float64, at time.Time) {
	user.WeightHistory = append(user.WeightHistory, models.WeightEntry{Date: at.UTC(), Weight: weight})
	sort.SliceStable(user.WeightHistory, func(i, j int) bool {
		return user.WeightHistory[i].Date.Before(user.WeightHistory[j].Date)
	})
	user.CurrentWeight = user.WeightHistory[len(user.WeightHistory)-1].Weight
}

func (service *ProfileService) LogWeight(userID string, weight float64, at time.Time) (models.User, error) {
	if weight <= 0 {
		return models.User{}, ErrWeightInvalid
	}
	return mutateUser(service.users, userID, func(user *models.User) error {
		recordWeight(user, weight, at)
		return nil
	})
}

func (service *ProfileService) UpdateProfile(userID string, input ProfileUpdateInput, now time.Time) (models.User, error) {
	gender, ok := normalizeGender(input.Gender)
	if !ok {
		return models.User{}, ErrProfileInvalid
	}
	activity, ok := normalizeActivityLevel(input.ActivityLevel)
	if !ok {
		return models.User{}, ErrProfileInvalid
	}
	if input.Height < 0 || input.Weight < 0 || input.WeeklyWorkoutDays < 0 || input.WeeklyWorkoutDays > 7 {
		return models.User{}, ErrProfileInvalid
	}

	newPassword := strings.TrimSpace(input.NewPassword)
	newHash := ""
	if newPassword != "" {
		if newPassword != strings.TrimSpace(input.ConfirmPassword) {
			return models.User{}, ErrProfilePasswordMismatch
		}
		hash, err := hashPassword(newPassword)
		if err != nil {
			return models.User{}, err
		}
		newHash = hash
	}

	return mutateUser(service.users, userID, func(user *models.User) error {
		if newHash != "" {
			if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(input.OldPassword))) != nil {
				return ErrProfilePasswordInvalid
			}
			user.PasswordHash = newHash
		}

		user.Gender = gender
		user.Height = input.Height
		user.FitnessGoal = strings.TrimSpace(input.FitnessGoal)
		user.TargetBody = strings.TrimSpace(input.TargetBody)
		if input.WeeklyWorkoutDays > 0 {
			user.WeeklyWorkoutDays = input.WeeklyWorkoutDays
		}
		user.ActivityLevel = activity
		user.Allergies = strings.TrimSpace(input.Allergies)
		user.FoodDislikes = strings.TrimSpace(input.FoodDislikes)
		user.ForbiddenFoods = strings.TrimSpace(input.ForbiddenFoods)
		if input.Weight > 0 && input.Weight != user.CurrentWeight {
			recordWeight(user, input.Weight, now)
		}
		return nil
	})
}

func (service *ProfileService) ListUsers(query string) ([]models.User, error) {
	return service.users.List(query)
}

func (service *ProfileService) AdminUpdateUser(userID string, update AdminUserUpdate) (models.User, error) {
	return mutateUser(service.users, userID, func(user *models.User) error {
		if update.Version != 0 && update.Version != user.Version {
			return ErrVersionConflict
		}
		if update.Name != nil {
			name := strings.TrimSpace(*update.Name)
			if name == "" {
				return ErrProfileInvalid
			}
			user.Name = name
		}
		if update.Email != nil {
			user.Email = strings.TrimSpace(*update.Email)
		}
		if update.Phone != nil {
			user.Phone = strings.TrimSpace(*update.Phone)
		}
		if update.WorkoutPlan != nil {
			user.WorkoutPlan = *update.WorkoutPlan
		}
		if update.DietPlan != nil {
			user.DietPlan = *update.DietPlan
		}
		if update.Notes != nil {
			user.Notes = *update.Notes
		}
		if update.TransactionID != nil {
			transactionID := strings.TrimSpace(*update.TransactionID)
			if user.Payment == nil {
				user.Payment = &models.PaymentDetails{Method: models.PaymentInstaPay}
			}
			user.Payment.TransactionID = transactionID
		}
		return nil
	})
}

// DeleteUser removes a client. Promo and offer counters are left as they are.
func (service *ProfileService) DeleteUser(userID string) error {
	return service.users.Delete(userID)
}

// ResetPassword stores a new password for the client without checking the old one.
func (service *ProfileService) ResetPassword(userID string, password string) error {
	if _, err := findUser(service.users, userID); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	if err := service.users.UpdatePassword(userID, hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
