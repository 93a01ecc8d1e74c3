package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DiscountPercentage = "PERCENTAGE"
	DiscountFixed      = "FIXED"
)

const unlimitedUsage = "unlimited"

// UsageCap is a total redemption cap. It is stored as NULL and serialised as
// "unlimited" when no cap applies.
type UsageCap struct {
	Limit     int
	Unlimited bool
}

func Unlimited() UsageCap {
	return UsageCap{Unlimited: true}
}

func CapAt(limit int) UsageCap {
	return UsageCap{Limit: limit}
}

func (usageCap UsageCap) Allows(used int) bool {
	return usageCap.Unlimited || used < usageCap.Limit
}

func (UsageCap) GormDataType() string {
	return "int"
}

func (usageCap UsageCap) Value() (driver.Value, error) {
	if usageCap.Unlimited {
		return nil, nil
	}
	return int64(usageCap.Limit), nil
}

func (usageCap *UsageCap) Scan(value any) error {
	switch typed := value.(type) {
	case nil:
		*usageCap = Unlimited()
	case int64:
		*usageCap = CapAt(int(typed))
	case float64:
		*usageCap = CapAt(int(typed))
	case []byte:
		return usageCap.parse(string(typed))
	case string:
		return usageCap.parse(typed)
	default:
		return fmt.Errorf("unsupported usage cap value %T", value)
	}
	return nil
}

func (usageCap *UsageCap) parse(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, unlimitedUsage) {
		*usageCap = Unlimited()
		return nil
	}
	limit, err := strconv.Atoi(trimmed)
	if err != nil {
		return fmt.Errorf("parse usage cap %q: %w", raw, err)
	}
	*usageCap = CapAt(limit)
	return nil
}

func (usageCap UsageCap) MarshalJSON() ([]byte, error) {
	if usageCap.Unlimited {
		return json.Marshal(unlimitedUsage)
	}
	return json.Marshal(usageCap.Limit)
}

func (usageCap *UsageCap) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		return usageCap.parse(text)
	}
	var limit int
	if err := json.Unmarshal(data, &limit); err != nil {
		return fmt.Errorf("usage cap must be a number or %q", unlimitedUsage)
	}
	*usageCap = CapAt(limit)
	return nil
}

type PromoCode struct {
	ID                string    `gorm:"primaryKey" json:"id"`
	Code              string    `gorm:"uniqueIndex;not null" json:"code"`
	DiscountValue     float64   `gorm:"not null" json:"discount_value"`
	DiscountType      string    `gorm:"not null" json:"discount_type"`
	Deadline          time.Time `gorm:"not null" json:"deadline"`
	MaxUsageTotal     UsageCap  `gorm:"column:max_usage_total" json:"max_usage_total"`
	MaxUsagePerUser   int       `gorm:"not null;default:0" json:"max_usage_per_user"`
	CurrentUsageCount int       `gorm:"not null;default:0" json:"current_usage_count"`
}
