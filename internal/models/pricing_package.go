package models

type PricingPackage struct {
	ID             string   `gorm:"primaryKey" json:"id"`
	Name           string   `gorm:"not null" json:"name"`
	Price          string   `gorm:"not null" json:"price"`
	DurationMonths int      `gorm:"not null" json:"duration_months"`
	Features       []string `gorm:"serializer:json" json:"features"`
	Version        uint     `gorm:"not null;default:1" json:"version"`
}

func DefaultPricingPackages() []PricingPackage {
	return []PricingPackage{
		{ID: "1", Name: "Elite Monthly", Price: "500", DurationMonths: 1, Features: []string{"AI Nutrition", "AI Training", "Daily Support"}},
		{ID: "2", Name: "Championship 3-Month", Price: "1200", DurationMonths: 3, Features: []string{"Priority Support", "Video Review", "Bulk Discount"}},
	}
}
