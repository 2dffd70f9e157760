package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"bloodportal/internal/events"
	"bloodportal/internal/models"
	"bloodportal/internal/repositories"
)

// ─── Constants ────────────────────────────────────────────────────────────────

// LivesPerUnit is the estimate of lives one collected unit can save.
const LivesPerUnit = 3

// ─── Sentinel Errors ──────────────────────────────────────────────────────────

var (
	// ErrBloodGroupRequired is returned when an availability search names no blood group.
	ErrBloodGroupRequired = errors.New("blood group is required")

	// ErrInvalidBloodGroup is returned for a group outside the eight canonical ones.
	ErrInvalidBloodGroup = errors.New("invalid blood group")

	// ErrInvalidComponent is returned for a component outside the four canonical ones.
	ErrInvalidComponent = errors.New("invalid blood component")

	// ErrInvalidStatus is returned for an unknown donation camp status.
	ErrInvalidStatus = errors.New("invalid camp status")

	// ErrBloodBankNotFound is returned when the referenced blood bank does not exist.
	ErrBloodBankNotFound = errors.New("blood bank not found")

	// ErrInventoryNotFound is returned when the referenced inventory row does not exist.
	ErrInventoryNotFound = errors.New("inventory record not found")

	// ErrCampNotFound is returned when the referenced donation camp does not exist.
	ErrCampNotFound = errors.New("donation camp not found")

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// ─── Queries ──────────────────────────────────────────────────────────────────

// AvailabilityQuery searches stock. BloodGroups must already be normalized:
// one entry per group, canonical spelling.
type AvailabilityQuery struct {
	BloodGroups []models.BloodGroup
	State       string
	City        string
}

// BankQuery filters banks; empty fields do not filter. When both State and
// City are set a bank must match both.
type BankQuery struct {
	State string
	City  string
}

// CampQuery filters camps; an empty Status lists every camp.
type CampQuery struct {
	Status models.CampStatus
	State  string
	City   string
}

// ─── Service Interface ────────────────────────────────────────────────────────

// DirectoryService answers the portal's search and listing requests and
// applies the administrative changes to banks, stock, camps and donations.
type DirectoryService interface {
	SearchAvailability(q AvailabilityQuery) ([]models.InventoryWithBank, error)

	ListBloodBanks(q BankQuery) []models.BloodBank
	GetBloodBank(id int64) (models.BloodBank, error)
	CreateBloodBank(ctx context.Context, bank models.NewBloodBank) models.BloodBank
	ListBankInventory(bankID int64, group models.BloodGroup) ([]models.BloodInventory, error)

	AddInventory(ctx context.Context, inv models.NewBloodInventory) (models.BloodInventory, error)
	UpdateInventory(ctx context.Context, id int64, patch models.InventoryPatch) (models.BloodInventory, error)

	ListDonationCamps(q CampQuery) ([]models.DonationCamp, error)
	GetDonationCamp(id int64) (models.DonationCamp, error)
	RegisterDonationCamp(ctx context.Context, camp models.NewDonationCamp) models.DonationCamp
	SetCampStatus(ctx context.Context, id int64, status models.CampStatus) (models.DonationCamp, error)

	RecordDonation(ctx context.Context, donation models.NewDonation) (models.Donation, error)
	ListUserDonations(userID int64) []models.DonationWithDetails

	Statistics() models.Statistics
}

// ─── Implementation ───────────────────────────────────────────────────────────

type directoryService struct {
	store     *repositories.Store
	publisher events.Publisher
	nowFn     func() time.Time
}

// NewDirectoryService wires the store and event publisher. A nil publisher
// falls back to logging events; a nil nowFn uses the UTC wall clock.
func NewDirectoryService(store *repositories.Store, publisher events.Publisher, nowFn func() time.Time) DirectoryService {
	if publisher == nil {
		publisher = events.NewLogPublisher()
	}
	if nowFn == nil {
		nowFn = func() time.Time { return time.Now().UTC() }
	}
	return &directoryService{store: store, publisher: publisher, nowFn: nowFn}
}

// ─── Availability ─────────────────────────────────────────────────────────────

// SearchAvailability returns the stock rows of every requested group, in the
// order the groups were given, narrowed to banks in State and City, each with
// its bank attached.
func (s *directoryService) SearchAvailability(q AvailabilityQuery) ([]models.InventoryWithBank, error) {
	if len(q.BloodGroups) == 0 {
		return nil, ErrBloodGroupRequired
	}
	var rows []models.BloodInventory
	for _, group := range q.BloodGroups {
		if !group.IsValid() {
			return nil, ErrInvalidBloodGroup
		}
		rows = append(rows, s.store.Inventory.ListByGroup(group)...)
	}

	if q.State != "" {
		rows = keepByBank(rows, bankIDs(s.store.BloodBanks.ListByState(q.State)), inventoryBankID)
	}
	if q.City != "" {
		rows = keepByBank(rows, bankIDs(s.store.BloodBanks.ListByCity(q.City)), inventoryBankID)
	}
	return attachBanks(s.store.BloodBanks, rows), nil
}

// ─── Blood Banks ──────────────────────────────────────────────────────────────

func (s *directoryService) ListBloodBanks(q BankQuery) []models.BloodBank {
	var banks []models.BloodBank
	switch {
	case q.State != "":
		banks = s.store.BloodBanks.ListByState(q.State)
	case q.City != "":
		return s.store.BloodBanks.ListByCity(q.City)
	default:
		return s.store.BloodBanks.List()
	}
	if q.City == "" {
		return banks
	}
	out := banks[:0]
	for _, b := range banks {
		if strings.EqualFold(b.City, q.City) {
			out = append(out, b)
		}
	}
	return out
}

func (s *directoryService) GetBloodBank(id int64) (models.BloodBank, error) {
	bank, ok := s.store.BloodBanks.Get(id)
	if !ok {
		return models.BloodBank{}, ErrBloodBankNotFound
	}
	return bank, nil
}

func (s *directoryService) CreateBloodBank(ctx context.Context, in models.NewBloodBank) models.BloodBank {
	bank := s.store.BloodBanks.Create(in)
	log.Printf("[INFO] CreateBloodBank: created bank %q (id=%d) in %s, %s", bank.Name, bank.ID, bank.City, bank.State)
	return bank
}

// ListBankInventory returns the bank's rows, optionally for one group only.
func (s *directoryService) ListBankInventory(bankID int64, group models.BloodGroup) ([]models.BloodInventory, error) {
	if _, ok := s.store.BloodBanks.Get(bankID); !ok {
		return nil, ErrBloodBankNotFound
	}
	if group == "" {
		return s.store.Inventory.ListByBank(bankID), nil
	}
	if !group.IsValid() {
		return nil, ErrInvalidBloodGroup
	}
	return s.store.Inventory.ListByGroupAndBank(group, bankID), nil
}

// ─── Inventory ────────────────────────────────────────────────────────────────

// AddInventory records a stock row for an existing bank, stamped with the
// service clock when no timestamp was supplied.
func (s *directoryService) AddInventory(ctx context.Context, in models.NewBloodInventory) (models.BloodInventory, error) {
	if _, ok := s.store.BloodBanks.Get(in.BloodBankID); !ok {
		return models.BloodInventory{}, ErrBloodBankNotFound
	}
	if in.LastUpdated.IsZero() {
		in.LastUpdated = s.nowFn()
	}
	inv := s.store.Inventory.Create(in)
	log.Printf("[INFO] AddInventory: bank %d now lists %d unit(s) of %s %s (id=%d)", inv.BloodBankID, inv.Quantity, inv.BloodGroup, inv.Component, inv.ID)
	s.publish(ctx, events.InventoryUpdated, inv.ID, inv)
	return inv, nil
}

// UpdateInventory merges patch into the row. LastUpdated moves to now unless
// the patch sets it explicitly.
func (s *directoryService) UpdateInventory(ctx context.Context, id int64, patch models.InventoryPatch) (models.BloodInventory, error) {
	if patch.BloodBankID != nil {
		if _, ok := s.store.BloodBanks.Get(*patch.BloodBankID); !ok {
			return models.BloodInventory{}, ErrBloodBankNotFound
		}
	}
	if patch.LastUpdated == nil {
		now := s.nowFn()
		patch.LastUpdated = &now
	}
	inv, ok := s.store.Inventory.Update(id, patch)
	if !ok {
		return models.BloodInventory{}, ErrInventoryNotFound
	}
	log.Printf("[INFO] UpdateInventory: row %d of bank %d set to %d unit(s)", inv.ID, inv.BloodBankID, inv.Quantity)
	s.publish(ctx, events.InventoryUpdated, inv.ID, inv)
	return inv, nil
}

// ─── Donation Camps ───────────────────────────────────────────────────────────

func (s *directoryService) ListDonationCamps(q CampQuery) ([]models.DonationCamp, error) {
	var camps []models.DonationCamp
	switch {
	case q.Status == "":
		camps = s.store.Camps.List()
	case q.Status.IsValid():
		camps = s.store.Camps.ListByStatus(q.Status)
	default:
		return nil, ErrInvalidStatus
	}

	out := camps[:0]
	for _, c := range camps {
		if q.State != "" && !strings.EqualFold(c.State, q.State) {
			continue
		}
		if q.City != "" && !strings.EqualFold(c.City, q.City) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *directoryService) GetDonationCamp(id int64) (models.DonationCamp, error) {
	camp, ok := s.store.Camps.Get(id)
	if !ok {
		return models.DonationCamp{}, ErrCampNotFound
	}
	return camp, nil
}

// RegisterDonationCamp stores the camp as pending; approval is a separate step.
func (s *directoryService) RegisterDonationCamp(ctx context.Context, in models.NewDonationCamp) models.DonationCamp {
	camp := s.store.Camps.Create(in)
	log.Printf("[INFO] RegisterDonationCamp: camp %q on %s in %s registered (id=%d, status=%s)", camp.Name, camp.Date, camp.City, camp.ID, camp.Status)
	s.publish(ctx, events.CampRegistered, camp.ID, camp)
	return camp
}

func (s *directoryService) SetCampStatus(ctx context.Context, id int64, status models.CampStatus) (models.DonationCamp, error) {
	if !status.IsValid() {
		return models.DonationCamp{}, ErrInvalidStatus
	}
	camp, ok := s.store.Camps.Update(id, models.DonationCampPatch{Status: &status})
	if !ok {
		return models.DonationCamp{}, ErrCampNotFound
	}
	log.Printf("[INFO] SetCampStatus: camp %d is now %s", camp.ID, camp.Status)
	s.publish(ctx, events.CampStatusChanged, camp.ID, camp)
	return camp, nil
}

// ─── Donations ────────────────────────────────────────────────────────────────

// RecordDonation stores a completed donation after checking that its user,
// bank and camp exist.
func (s *directoryService) RecordDonation(ctx context.Context, in models.NewDonation) (models.Donation, error) {
	if _, ok := s.store.Users.Get(in.UserID); !ok {
		return models.Donation{}, ErrUserNotFound
	}
	if _, ok := s.store.BloodBanks.Get(in.BloodBankID); !ok {
		return models.Donation{}, ErrBloodBankNotFound
	}
	if in.CampID != nil {
		if _, ok := s.store.Camps.Get(*in.CampID); !ok {
			return models.Donation{}, ErrCampNotFound
		}
	}
	if in.DonationDate.IsZero() {
		in.DonationDate = s.nowFn()
	}
	donation := s.store.Donations.Create(in)
	log.Printf("[INFO] RecordDonation: user %d donated %d ml of %s at bank %d (id=%d)", donation.UserID, donation.Quantity, donation.BloodGroup, donation.BloodBankID, donation.ID)
	s.publish(ctx, events.DonationRecorded, donation.ID, donation)
	return donation, nil
}

func (s *directoryService) ListUserDonations(userID int64) []models.DonationWithDetails {
	return attachDonationDetails(s.store.BloodBanks, s.store.Camps, s.store.Donations.ListByUser(userID))
}

// ─── Statistics ───────────────────────────────────────────────────────────────

// Statistics counts records at call time. BloodUnitsCollected is the number
// of donation records, not the sum of their quantities.
func (s *directoryService) Statistics() models.Statistics {
	units := s.store.Donations.Count()
	return models.Statistics{
		DonorsRegistered:    s.store.Users.Count(),
		BloodUnitsCollected: units,
		ApprovedCamps:       s.store.Camps.CountByStatus(models.CampStatusApproved),
		LivesSaved:          units * LivesPerUnit,
		LastUpdated:         s.nowFn(),
	}
}

// ─── Internal Helpers ─────────────────────────────────────────────────────────

// publish is best effort: the mutation has already happened.
func (s *directoryService) publish(ctx context.Context, t events.Type, id int64, payload any) {
	publishEvent(ctx, s.publisher, events.Event{Type: t, EntityID: id, OccurredAt: s.nowFn(), Payload: payload})
}

func publishEvent(ctx context.Context, publisher events.Publisher, ev events.Event) {
	if err := publisher.Publish(ctx, ev); err != nil {
		log.Printf("[WARN] publish: %s for entity %d not delivered: %v", ev.Type, ev.EntityID, err)
	}
}
