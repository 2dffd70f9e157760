package repositories

import (
	"errors"
	"strings"
	"time"

	"bloodportal/internal/models"
)

// ErrUsernameTaken is the only rejection the store makes: usernames are unique
// across all users and the check must happen atomically with the write.
var ErrUsernameTaken = errors.New("username already exists")

// Lookups return (record, false) when the id does not exist. They never
// return an error for a missing record.

type UserRepository interface {
	Get(id int64) (models.User, bool)
	GetByUsername(username string) (models.User, bool)
	Create(user models.NewUser) (models.User, error)
	Update(id int64, patch models.UserPatch) (models.User, bool, error)
	SetAdmin(id int64, isAdmin bool) (models.User, bool)
	List() []models.User
	Count() int
}

type BloodBankRepository interface {
	Get(id int64) (models.BloodBank, bool)
	List() []models.BloodBank
	ListByState(state string) []models.BloodBank
	ListByCity(city string) []models.BloodBank
	Create(bank models.NewBloodBank) models.BloodBank
	Update(id int64, patch models.BloodBankPatch) (models.BloodBank, bool)
	Count() int
}

type BloodInventoryRepository interface {
	Get(id int64) (models.BloodInventory, bool)
	List() []models.BloodInventory
	ListByBank(bloodBankID int64) []models.BloodInventory
	ListByGroupAndBank(group models.BloodGroup, bloodBankID int64) []models.BloodInventory
	ListByGroup(group models.BloodGroup) []models.BloodInventory
	Create(inv models.NewBloodInventory) models.BloodInventory
	Update(id int64, patch models.InventoryPatch) (models.BloodInventory, bool)
	Count() int
}

type DonationCampRepository interface {
	Get(id int64) (models.DonationCamp, bool)
	List() []models.DonationCamp
	ListApproved() []models.DonationCamp
	ListByStatus(status models.CampStatus) []models.DonationCamp
	ListByState(state string) []models.DonationCamp
	ListByCity(city string) []models.DonationCamp
	Create(camp models.NewDonationCamp) models.DonationCamp
	Update(id int64, patch models.DonationCampPatch) (models.DonationCamp, bool)
	CountByStatus(status models.CampStatus) int
	Count() int
}

type DonationRepository interface {
	Get(id int64) (models.Donation, bool)
	List() []models.Donation
	ListByUser(userID int64) []models.Donation
	ListByBloodBank(bloodBankID int64) []models.Donation
	ListByCamp(campID int64) []models.Donation
	Create(donation models.NewDonation) models.Donation
	Count() int
}

// concrete implementations

type userRepository struct {
	rows *collection[models.User]
}

func NewUserRepository() UserRepository {
	return &userRepository{rows: newCollection[models.User](nil)}
}

func (r *userRepository) Get(id int64) (models.User, bool) {
	return r.rows.get(id)
}

// GetByUsername matches case-sensitively.
func (r *userRepository) GetByUsername(username string) (models.User, bool) {
	return r.rows.find(func(u models.User) bool { return u.Username == username })
}

func (r *userRepository) Create(in models.NewUser) (models.User, error) {
	user, ok := r.rows.insertUnless(
		func(existing models.User) bool { return existing.Username == in.Username },
		func(id int64) models.User {
			return models.User{
				ID:         id,
				Username:   in.Username,
				Password:   in.Password,
				Name:       in.Name,
				Email:      in.Email,
				Phone:      in.Phone,
				BloodGroup: in.BloodGroup,
				Address:    in.Address,
				City:       in.City,
				State:      in.State,
				IsAdmin:    false,
			}
		},
	)
	if !ok {
		return models.User{}, ErrUsernameTaken
	}
	return user, nil
}

// Update returns found=false for an unknown id and ErrUsernameTaken when the
// patch would duplicate another user's username.
func (r *userRepository) Update(id int64, patch models.UserPatch) (models.User, bool, error) {
	user, found, clashed := r.rows.updateUnless(id,
		patch.Apply,
		func(candidate, other models.User) bool { return candidate.Username == other.Username },
	)
	if clashed {
		return models.User{}, true, ErrUsernameTaken
	}
	return user, found, nil
}

func (r *userRepository) SetAdmin(id int64, isAdmin bool) (models.User, bool) {
	return r.rows.update(id, func(u *models.User) { u.IsAdmin = isAdmin })
}

func (r *userRepository) List() []models.User {
	return r.rows.list(nil)
}

func (r *userRepository) Count() int {
	return r.rows.count(nil)
}

type bloodBankRepository struct {
	rows *collection[models.BloodBank]
}

func NewBloodBankRepository() BloodBankRepository {
	return &bloodBankRepository{rows: newCollection[models.BloodBank](nil)}
}

func (r *bloodBankRepository) Get(id int64) (models.BloodBank, bool) {
	return r.rows.get(id)
}

func (r *bloodBankRepository) List() []models.BloodBank {
	return r.rows.list(nil)
}

func (r *bloodBankRepository) ListByState(state string) []models.BloodBank {
	return r.rows.list(func(b models.BloodBank) bool { return strings.EqualFold(b.State, state) })
}

func (r *bloodBankRepository) ListByCity(city string) []models.BloodBank {
	return r.rows.list(func(b models.BloodBank) bool { return strings.EqualFold(b.City, city) })
}

func (r *bloodBankRepository) Create(in models.NewBloodBank) models.BloodBank {
	return r.rows.insert(func(id int64) models.BloodBank {
		return models.BloodBank{
			ID:        id,
			Name:      in.Name,
			Address:   in.Address,
			City:      in.City,
			State:     in.State,
			Phone:     in.Phone,
			Email:     in.Email,
			Latitude:  in.Latitude,
			Longitude: in.Longitude,
		}
	})
}

func (r *bloodBankRepository) Update(id int64, patch models.BloodBankPatch) (models.BloodBank, bool) {
	return r.rows.update(id, patch.Apply)
}

func (r *bloodBankRepository) Count() int {
	return r.rows.count(nil)
}

type bloodInventoryRepository struct {
	rows  *collection[models.BloodInventory]
	nowFn func() time.Time
}

func NewBloodInventoryRepository(nowFn func() time.Time) BloodInventoryRepository {
	if nowFn == nil {
		nowFn = func() time.Time { return time.Now().UTC() }
	}
	return &bloodInventoryRepository{
		rows:  newCollection[models.BloodInventory](nil),
		nowFn: nowFn,
	}
}

func (r *bloodInventoryRepository) Get(id int64) (models.BloodInventory, bool) {
	return r.rows.get(id)
}

func (r *bloodInventoryRepository) List() []models.BloodInventory {
	return r.rows.list(nil)
}

func (r *bloodInventoryRepository) ListByBank(bloodBankID int64) []models.BloodInventory {
	return r.rows.list(func(inv models.BloodInventory) bool { return inv.BloodBankID == bloodBankID })
}

func (r *bloodInventoryRepository) ListByGroupAndBank(group models.BloodGroup, bloodBankID int64) []models.BloodInventory {
	return r.rows.list(func(inv models.BloodInventory) bool {
		return inv.BloodGroup == group && inv.BloodBankID == bloodBankID
	})
}

func (r *bloodInventoryRepository) ListByGroup(group models.BloodGroup) []models.BloodInventory {
	return r.rows.list(func(inv models.BloodInventory) bool { return inv.BloodGroup == group })
}

// Create stamps LastUpdated with the repository clock when the caller left it zero.
func (r *bloodInventoryRepository) Create(in models.NewBloodInventory) models.BloodInventory {
	lastUpdated := in.LastUpdated
	if lastUpdated.IsZero() {
		lastUpdated = r.nowFn()
	}
	return r.rows.insert(func(id int64) models.BloodInventory {
		return models.BloodInventory{
			ID:          id,
			BloodBankID: in.BloodBankID,
			BloodGroup:  in.BloodGroup,
			Component:   in.Component,
			Quantity:    in.Quantity,
			LastUpdated: lastUpdated,
		}
	})
}

func (r *bloodInventoryRepository) Update(id int64, patch models.InventoryPatch) (models.BloodInventory, bool) {
	return r.rows.update(id, patch.Apply)
}

func (r *bloodInventoryRepository) Count() int {
	return r.rows.count(nil)
}

type donationCampRepository struct {
	rows *collection[models.DonationCamp]
}

func NewDonationCampRepository() DonationCampRepository {
	return &donationCampRepository{rows: newCollection[models.DonationCamp](nil)}
}

func (r *donationCampRepository) Get(id int64) (models.DonationCamp, bool) {
	return r.rows.get(id)
}

func (r *donationCampRepository) List() []models.DonationCamp {
	return r.rows.list(nil)
}

func (r *donationCampRepository) ListApproved() []models.DonationCamp {
	return r.ListByStatus(models.CampStatusApproved)
}

func (r *donationCampRepository) ListByStatus(status models.CampStatus) []models.DonationCamp {
	return r.rows.list(func(c models.DonationCamp) bool { return c.Status == status })
}

func (r *donationCampRepository) ListByState(state string) []models.DonationCamp {
	return r.rows.list(func(c models.DonationCamp) bool { return strings.EqualFold(c.State, state) })
}

func (r *donationCampRepository) ListByCity(city string) []models.DonationCamp {
	return r.rows.list(func(c models.DonationCamp) bool { return strings.EqualFold(c.City, city) })
}

// Create always stores the camp as pending.
func (r *donationCampRepository) Create(in models.NewDonationCamp) models.DonationCamp {
	return r.rows.insert(func(id int64) models.DonationCamp {
		return models.DonationCamp{
			ID:            id,
			Name:          in.Name,
			Organizer:     in.Organizer,
			Address:       in.Address,
			City:          in.City,
			State:         in.State,
			Date:          in.Date,
			StartTime:     in.StartTime,
			EndTime:       in.EndTime,
			ContactPerson: in.ContactPerson,
			ContactPhone:  in.ContactPhone,
			ContactEmail:  in.ContactEmail,
			Status:        models.CampStatusPending,
		}
	})
}

func (r *donationCampRepository) Update(id int64, patch models.DonationCampPatch) (models.DonationCamp, bool) {
	return r.rows.update(id, patch.Apply)
}

func (r *donationCampRepository) CountByStatus(status models.CampStatus) int {
	return r.rows.count(func(c models.DonationCamp) bool { return c.Status == status })
}

func (r *donationCampRepository) Count() int {
	return r.rows.count(nil)
}

type donationRepository struct {
	rows *collection[models.Donation]
}

func NewDonationRepository() DonationRepository {
	return &donationRepository{rows: newCollection(cloneDonation)}
}

func cloneDonation(d models.Donation) models.Donation {
	if d.CampID != nil {
		campID := *d.CampID
		d.CampID = &campID
	}
	return d
}

func (r *donationRepository) Get(id int64) (models.Donation, bool) {
	return r.rows.get(id)
}

func (r *donationRepository) List() []models.Donation {
	return r.rows.list(nil)
}

func (r *donationRepository) ListByUser(userID int64) []models.Donation {
	return r.rows.list(func(d models.Donation) bool { return d.UserID == userID })
}

func (r *donationRepository) ListByBloodBank(bloodBankID int64) []models.Donation {
	return r.rows.list(func(d models.Donation) bool { return d.BloodBankID == bloodBankID })
}

func (r *donationRepository) ListByCamp(campID int64) []models.Donation {
	return r.rows.list(func(d models.Donation) bool { return d.CampID != nil && *d.CampID == campID })
}

func (r *donationRepository) Create(in models.NewDonation) models.Donation {
	return r.rows.insert(func(id int64) models.Donation {
		return models.Donation{
			ID:           id,
			UserID:       in.UserID,
			BloodBankID:  in.BloodBankID,
			CampID:       in.CampID,
			DonationDate: in.DonationDate,
			BloodGroup:   in.BloodGroup,
			Component:    in.Component,
			Quantity:     in.Quantity,
		}
	})
}

func (r *donationRepository) Count() int {
	return r.rows.count(nil)
}
