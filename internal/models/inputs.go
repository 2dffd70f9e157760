package models

import "time"

// Insert shapes carry only the fields a caller may supply. Server-assigned
// fields (ids, User.IsAdmin, DonationCamp.Status) are added by the store.

type NewUser struct {
	Username   string
	Password   string
	Name       string
	Email      string
	Phone      string
	BloodGroup BloodGroup
	Address    string
	City       string
	State      string
}

type NewBloodBank struct {
	Name      string
	Address   string
	City      string
	State     string
	Phone     string
	Email     string
	Latitude  string
	Longitude string
}

type NewBloodInventory struct {
	BloodBankID int64
	BloodGroup  BloodGroup
	Component   Component
	Quantity    int
	LastUpdated time.Time
}

type NewDonationCamp struct {
	Name          string
	Organizer     string
	Address       string
	City          string
	State         string
	Date          string
	StartTime     string
	EndTime       string
	ContactPerson string
	ContactPhone  string
	ContactEmail  string
}

type NewDonation struct {
	UserID       int64
	BloodBankID  int64
	CampID       *int64
	DonationDate time.Time
	BloodGroup   BloodGroup
	Component    Component
	Quantity     int
}

// Patch shapes: a nil field leaves the stored value untouched.

type UserPatch struct {
	Username   *string
	Password   *string
	Name       *string
	Email      *string
	Phone      *string
	BloodGroup *BloodGroup
	Address    *string
	City       *string
	State      *string
}

func (p UserPatch) Apply(u *User) {
	setIf(&u.Username, p.Username)
	setIf(&u.Password, p.Password)
	setIf(&u.Name, p.Name)
	setIf(&u.Email, p.Email)
	setIf(&u.Phone, p.Phone)
	setIf(&u.BloodGroup, p.BloodGroup)
	setIf(&u.Address, p.Address)
	setIf(&u.City, p.City)
	setIf(&u.State, p.State)
}

type BloodBankPatch struct {
	Name      *string
	Address   *string
	City      *string
	State     *string
	Phone     *string
	Email     *string
	Latitude  *string
	Longitude *string
}

func (p BloodBankPatch) Apply(b *BloodBank) {
	setIf(&b.Name, p.Name)
	setIf(&b.Address, p.Address)
	setIf(&b.City, p.City)
	setIf(&b.State, p.State)
	setIf(&b.Phone, p.Phone)
	setIf(&b.Email, p.Email)
	setIf(&b.Latitude, p.Latitude)
	setIf(&b.Longitude, p.Longitude)
}

type InventoryPatch struct {
	BloodBankID *int64
	BloodGroup  *BloodGroup
	Component   *Component
	Quantity    *int
	LastUpdated *time.Time
}

func (p InventoryPatch) Apply(inv *BloodInventory) {
	setIf(&inv.BloodBankID, p.BloodBankID)
	setIf(&inv.BloodGroup, p.BloodGroup)
	setIf(&inv.Component, p.Component)
	setIf(&inv.Quantity, p.Quantity)
	setIf(&inv.LastUpdated, p.LastUpdated)
}

// DonationCampPatch includes Status so the server can move a camp through its
// lifecycle. Public registration payloads never map onto it.
type DonationCampPatch struct {
	Name          *string
	Organizer     *string
	Address       *string
	City          *string
	State         *string
	Date          *string
	StartTime     *string
	EndTime       *string
	ContactPerson *string
	ContactPhone  *string
	ContactEmail  *string
	Status        *CampStatus
}

func (p DonationCampPatch) Apply(c *DonationCamp) {
	setIf(&c.Name, p.Name)
	setIf(&c.Organizer, p.Organizer)
	setIf(&c.Address, p.Address)
	setIf(&c.City, p.City)
	setIf(&c.State, p.State)
	setIf(&c.Date, p.Date)
	setIf(&c.StartTime, p.StartTime)
	setIf(&c.EndTime, p.EndTime)
	setIf(&c.ContactPerson, p.ContactPerson)
	setIf(&c.ContactPhone, p.ContactPhone)
	setIf(&c.ContactEmail, p.ContactEmail)
	setIf(&c.Status, p.Status)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
