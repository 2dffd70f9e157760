// Package seed provides the demonstration data loaded at startup.
package seed

import (
	"fmt"
	"math/rand/v2"
	"time"

	"bloodportal/internal/models"
	"bloodportal/internal/repositories"
)

const (
	minQuantity = 5
	maxQuantity = 24
)

var bloodBanks = []models.NewBloodBank{
	{
		Name:      "City General Hospital Blood Bank",
		Address:   "123 Main Street",
		City:      "New Delhi",
		State:     "Delhi",
		Phone:     "011-12345678",
		Email:     "blood@citygeneral.org",
		Latitude:  "28.6139",
		Longitude: "77.2090",
	},
	{
		Name:      "Regional Medical Center",
		Address:   "456 Hospital Road",
		City:      "Mumbai",
		State:     "Maharashtra",
		Phone:     "022-87654321",
		Email:     "blood@rmc.org",
		Latitude:  "19.0760",
		Longitude: "72.8777",
	},
	{
		Name:      "Community Blood Services",
		Address:   "789 Health Avenue",
		City:      "Bangalore",
		State:     "Karnataka",
		Phone:     "080-23456789",
		Email:     "donate@communityblood.org",
		Latitude:  "12.9716",
		Longitude: "77.5946",
	},
}

// camps are scheduled relative to the seeding day by their offset in days.
var camps = []struct {
	offsetDays int
	camp       models.NewDonationCamp
}{
	{7, models.NewDonationCamp{
		Name:          "Community Donation Drive",
		Organizer:     "City General Hospital",
		Address:       "City Park",
		City:          "New Delhi",
		State:         "Delhi",
		StartTime:     "09:00",
		EndTime:       "17:00",
		ContactPerson: "Dr. Sharma",
		ContactPhone:  "9876543210",
		ContactEmail:  "drsharma@citygeneral.org",
	}},
	{12, models.NewDonationCamp{
		Name:          "College Blood Donation Camp",
		Organizer:     "Regional Medical Center",
		Address:       "XYZ College Campus",
		City:          "Mumbai",
		State:         "Maharashtra",
		StartTime:     "10:00",
		EndTime:       "16:00",
		ContactPerson: "Prof. Patel",
		ContactPhone:  "9876543211",
		ContactEmail:  "profpatel@college.edu",
	}},
	{17, models.NewDonationCamp{
		Name:          "Corporate Blood Drive",
		Organizer:     "Community Blood Services",
		Address:       "Tech Park",
		City:          "Bangalore",
		State:         "Karnataka",
		StartTime:     "09:30",
		EndTime:       "18:00",
		ContactPerson: "Ms. Reddy",
		ContactPhone:  "9876543212",
		ContactEmail:  "reddy@techcorp.com",
	}},
}

// Sample returns a SeedFunc creating three banks, one inventory row per
// bank/group/component with a random quantity in [5, 24], and three approved
// camps. A nil rng is replaced by a time-seeded one.
func Sample(rng *rand.Rand, now time.Time) repositories.SeedFunc {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return func(s *repositories.Store) error {
		bankIDs := populateBloodBanks(s)
		populateInventory(s, rng, now, bankIDs)
		return populateCamps(s, now)
	}
}

func populateBloodBanks(s *repositories.Store) []int64 {
	ids := make([]int64, 0, len(bloodBanks))
	for _, bank := range bloodBanks {
		ids = append(ids, s.BloodBanks.Create(bank).ID)
	}
	return ids
}

func populateInventory(s *repositories.Store, rng *rand.Rand, now time.Time, bankIDs []int64) {
	for _, bankID := range bankIDs {
		for _, group := range models.BloodGroups {
			for _, component := range models.Components {
				s.Inventory.Create(models.NewBloodInventory{
					BloodBankID: bankID,
					BloodGroup:  group,
					Component:   component,
					Quantity:    minQuantity + rng.IntN(maxQuantity-minQuantity+1),
					LastUpdated: now,
				})
			}
		}
	}
}

func populateCamps(s *repositories.Store, now time.Time) error {
	approved := models.CampStatusApproved
	for _, entry := range camps {
		camp := entry.camp
		camp.Date = now.AddDate(0, 0, entry.offsetDays).Format(models.DateLayout)
		created := s.Camps.Create(camp)
		if _, ok := s.Camps.Update(created.ID, models.DonationCampPatch{Status: &approved}); !ok {
			return fmt.Errorf("approve camp %d: not found", created.ID)
		}
	}
	return nil
}
