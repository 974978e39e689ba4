package pricing

import (
	"fmt"
	"sort"

	"github.com/spf13/viper"
)

// GuestTier maps a guest count ceiling to the staff and equipment it needs.
type GuestTier struct {
	MaxGuests    int     `mapstructure:"max_guests" json:"maxGuests"`
	Chefs        int     `mapstructure:"chefs" json:"chefs"`
	Waiters      int     `mapstructure:"waiters" json:"waiters"`
	EquipmentFee float64 `mapstructure:"equipment_fee" json:"equipmentFee"`
}

// HourTier maps a service length ceiling to hourly staff rates.
type HourTier struct {
	MaxHours   int     `mapstructure:"max_hours" json:"maxHours"`
	ChefRate   float64 `mapstructure:"chef_rate" json:"chefRate"`
	WaiterRate float64 `mapstructure:"waiter_rate" json:"waiterRate"`
}

// MileTier applies Rate per mile while the trip is within the tier's bound.
// Inclusive makes the bound "<=" instead of "<".
type MileTier struct {
	MaxMiles  float64 `mapstructure:"max_miles" json:"maxMiles"`
	Inclusive bool    `mapstructure:"inclusive" json:"inclusive"`
	Rate      float64 `mapstructure:"rate" json:"rate"`
}

// DriverTier charges Fee while travel time is strictly below MaxHours.
type DriverTier struct {
	MaxHours float64 `mapstructure:"max_hours" json:"maxHours"`
	Fee      float64 `mapstructure:"fee" json:"fee"`
}

// Tariff is the full set of pricing tables. Tiers are evaluated in ascending order.
type Tariff struct {
	Guests          []GuestTier  `mapstructure:"guests" json:"guests"`
	Hours           []HourTier   `mapstructure:"hours" json:"hours"`
	Miles           []MileTier   `mapstructure:"miles" json:"miles"`
	DefaultMileRate float64      `mapstructure:"default_mile_rate" json:"defaultMileRate"`
	Driver          []DriverTier `mapstructure:"driver" json:"driver"`
	DefaultDriver   float64      `mapstructure:"default_driver_fee" json:"defaultDriverFee"`
	DepositPercent  float64      `mapstructure:"deposit_percent" json:"depositPercent"`
}

// DefaultTariff returns the tables the business quotes with today.
func DefaultTariff() Tariff {
	return Tariff{
		Guests: []GuestTier{
			{MaxGuests: 100, Chefs: 1, Waiters: 2, EquipmentFee: 50},
			{MaxGuests: 200, Chefs: 2, Waiters: 4, EquipmentFee: 100},
			{MaxGuests: 300, Chefs: 3, Waiters: 6, EquipmentFee: 150},
			{MaxGuests: 400, Chefs: 4, Waiters: 8, EquipmentFee: 200},
			{MaxGuests: 500, Chefs: 5, Waiters: 10, EquipmentFee: 250},
		},
		Hours: []HourTier{
			{MaxHours: 5, ChefRate: 22, WaiterRate: 15},
			{MaxHours: 10, ChefRate: 20, WaiterRate: 13.5},
			{MaxHours: 15, ChefRate: 18, WaiterRate: 12},
		},
		Miles: []MileTier{
			{MaxMiles: 10, Rate: 1.2},
			{MaxMiles: 20, Inclusive: true, Rate: 0.9},
		},
		DefaultMileRate: 0.7,
		Driver: []DriverTier{
			{MaxHours: 1, Fee: 10},
			{MaxHours: 2, Fee: 20},
			{MaxHours: 3, Fee: 30},
		},
		DefaultDriver:  40,
		DepositPercent: 40,
	}
}

// LoadTariff reads the optional "pricing" config block, falling back to DefaultTariff.
func LoadTariff(v *viper.Viper) (Tariff, error) {
	t := DefaultTariff()
	if v == nil || !v.IsSet("pricing") {
		return t, nil
	}
	if err := v.UnmarshalKey("pricing", &t); err != nil {
		return Tariff{}, fmt.Errorf("failed to parse pricing config: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tariff{}, err
	}
	return t, nil
}

// Validate checks that every table is sorted by its bound and the deposit is a percentage.
func (t Tariff) Validate() error {
	if !sort.SliceIsSorted(t.Guests, func(i, j int) bool { return t.Guests[i].MaxGuests < t.Guests[j].MaxGuests }) {
		return fmt.Errorf("pricing: guest tiers must be in ascending order")
	}
	if !sort.SliceIsSorted(t.Hours, func(i, j int) bool { return t.Hours[i].MaxHours < t.Hours[j].MaxHours }) {
		return fmt.Errorf("pricing: hour tiers must be in ascending order")
	}
	if !sort.SliceIsSorted(t.Miles, func(i, j int) bool { return t.Miles[i].MaxMiles < t.Miles[j].MaxMiles }) {
		return fmt.Errorf("pricing: mile tiers must be in ascending order")
	}
	if !sort.SliceIsSorted(t.Driver, func(i, j int) bool { return t.Driver[i].MaxHours < t.Driver[j].MaxHours }) {
		return fmt.Errorf("pricing: driver tiers must be in ascending order")
	}
	if t.DepositPercent < 0 || t.DepositPercent > 100 {
		return fmt.Errorf("pricing: deposit_percent must be between 0 and 100")
	}
	return nil
}

func (t Tariff) guestTier(guests int) GuestTier {
	if guests < 1 {
		return GuestTier{}
	}
	for _, tier := range t.Guests {
		if guests <= tier.MaxGuests {
			return tier
		}
	}
	return GuestTier{}
}

func (t Tariff) hourTier(hours int) HourTier {
	if hours < 1 {
		return HourTier{}
	}
	for _, tier := range t.Hours {
		if hours <= tier.MaxHours {
			return tier
		}
	}
	return HourTier{}
}

func (t Tariff) mileRate(miles float64) float64 {
	for _, tier := range t.Miles {
		if miles < tier.MaxMiles || (tier.Inclusive && miles == tier.MaxMiles) {
			return tier.Rate
		}
	}
	return t.DefaultMileRate
}

func (t Tariff) driverFee(hours float64) float64 {
	for _, tier := range t.Driver {
		if hours < tier.MaxHours {
			return tier.Fee
		}
	}
	return t.DefaultDriver
}
