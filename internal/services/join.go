package services

import (
	"bloodportal/internal/models"
	"bloodportal/internal/repositories"
)

// Joins are computed at read time and never written back. A reference that
// does not resolve leaves the attached record nil instead of failing.

func bankIDs(banks []models.BloodBank) map[int64]struct{} {
	ids := make(map[int64]struct{}, len(banks))
	for _, b := range banks {
		ids[b.ID] = struct{}{}
	}
	return ids
}

func inventoryBankID(inv models.BloodInventory) int64 { return inv.BloodBankID }

// keepByBank keeps the rows whose bank id is in ids, preserving row order.
func keepByBank[T any](rows []T, ids map[int64]struct{}, bankOf func(T) int64) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if _, ok := ids[bankOf(row)]; ok {
			out = append(out, row)
		}
	}
	return out
}

// lookup memoizes Get calls for the duration of one join.
type lookup[T any] struct {
	get  func(int64) (T, bool)
	seen map[int64]*T
}

func newLookup[T any](get func(int64) (T, bool)) *lookup[T] {
	return &lookup[T]{get: get, seen: make(map[int64]*T)}
}

func (l *lookup[T]) resolve(id int64) *T {
	if rec, ok := l.seen[id]; ok {
		return copyOf(rec)
	}
	rec, ok := l.get(id)
	if !ok {
		l.seen[id] = nil
		return nil
	}
	l.seen[id] = &rec
	return copyOf(&rec)
}

// copyOf gives every joined row its own copy so callers can't alias each other.
func copyOf[T any](rec *T) *T {
	if rec == nil {
		return nil
	}
	cp := *rec
	return &cp
}

func attachBanks(banks repositories.BloodBankRepository, rows []models.BloodInventory) []models.InventoryWithBank {
	bankByID := newLookup(banks.Get)
	out := make([]models.InventoryWithBank, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.InventoryWithBank{
			BloodInventory: row,
			BloodBank:      bankByID.resolve(row.BloodBankID),
		})
	}
	return out
}

func attachDonationDetails(banks repositories.BloodBankRepository, camps repositories.DonationCampRepository, rows []models.Donation) []models.DonationWithDetails {
	bankByID := newLookup(banks.Get)
	campByID := newLookup(camps.Get)
	out := make([]models.DonationWithDetails, 0, len(rows))
	for _, row := range rows {
		enriched := models.DonationWithDetails{
			Donation:  row,
			BloodBank: bankByID.resolve(row.BloodBankID),
		}
		if row.CampID != nil {
			enriched.Camp = campByID.resolve(*row.CampID)
		}
		out = append(out, enriched)
	}
	return out
}
