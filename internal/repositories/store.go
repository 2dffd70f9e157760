package repositories

import (
	"fmt"
	"time"
)

// SeedFunc populates a freshly constructed store.
type SeedFunc func(*Store) error

// Store owns every entity collection of the process. Construct one in the
// composition root and hand it to the services.
type Store struct {
	Users      UserRepository
	BloodBanks BloodBankRepository
	Inventory  BloodInventoryRepository
	Camps      DonationCampRepository
	Donations  DonationRepository
}

type StoreOption func(*storeConfig)

type storeConfig struct {
	nowFn func() time.Time
}

// WithClock sets the clock used to stamp inventory rows created without a timestamp.
func WithClock(nowFn func() time.Time) StoreOption {
	return func(c *storeConfig) { c.nowFn = nowFn }
}

// NewStore builds empty collections and runs seed, if any.
func NewStore(seed SeedFunc, opts ...StoreOption) (*Store, error) {
	cfg := storeConfig{nowFn: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Store{
		Users:      NewUserRepository(),
		BloodBanks: NewBloodBankRepository(),
		Inventory:  NewBloodInventoryRepository(cfg.nowFn),
		Camps:      NewDonationCampRepository(),
		Donations:  NewDonationRepository(),
	}
	if seed != nil {
		if err := seed(s); err != nil {
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}
	return s, nil
}

// Sizes reports the number of records per collection, keyed by collection name.
func (s *Store) Sizes() map[string]int {
	return map[string]int{
		"users":           s.Users.Count(),
		"blood_banks":     s.BloodBanks.Count(),
		"blood_inventory": s.Inventory.Count(),
		"donation_camps":  s.Camps.Count(),
		"donations":       s.Donations.Count(),
	}
}
