package models

import (
	"time"
)

// Text layouts for DonationCamp.Date and the camp start/end times.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type BloodGroup string

const (
	BloodGroupAPos  BloodGroup = "A+"
	BloodGroupANeg  BloodGroup = "A-"
	BloodGroupBPos  BloodGroup = "B+"
	BloodGroupBNeg  BloodGroup = "B-"
	BloodGroupABPos BloodGroup = "AB+"
	BloodGroupABNeg BloodGroup = "AB-"
	BloodGroupOPos  BloodGroup = "O+"
	BloodGroupONeg  BloodGroup = "O-"
)

// BloodGroups lists the canonical groups in display order.
var BloodGroups = []BloodGroup{
	BloodGroupAPos, BloodGroupANeg,
	BloodGroupBPos, BloodGroupBNeg,
	BloodGroupABPos, BloodGroupABNeg,
	BloodGroupOPos, BloodGroupONeg,
}

func (g BloodGroup) IsValid() bool {
	for _, known := range BloodGroups {
		if g == known {
			return true
		}
	}
	return false
}

type Component string

const (
	ComponentWholeBlood     Component = "Whole Blood"
	ComponentPackedRedCells Component = "Packed Red Cells"
	ComponentPlasma         Component = "Plasma"
	ComponentPlatelets      Component = "Platelets"
)

// Components lists the canonical blood components in display order.
var Components = []Component{
	ComponentWholeBlood,
	ComponentPackedRedCells,
	ComponentPlasma,
	ComponentPlatelets,
}

func (c Component) IsValid() bool {
	for _, known := range Components {
		if c == known {
			return true
		}
	}
	return false
}

type CampStatus string

const (
	CampStatusPending   CampStatus = "pending"
	CampStatusApproved  CampStatus = "approved"
	CampStatusCompleted CampStatus = "completed"
	CampStatusCancelled CampStatus = "cancelled"
)

func (s CampStatus) IsValid() bool {
	switch s {
	case CampStatusPending, CampStatusApproved, CampStatusCompleted, CampStatusCancelled:
		return true
	}
	return false
}

// User is a registered donor or administrator. Password holds the credential
// exactly as handed to the store; hashing happens before that.
type User struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	Password   string     `json:"-"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	BloodGroup BloodGroup `json:"bloodGroup,omitempty"`
	Address    string     `json:"address,omitempty"`
	City       string     `json:"city,omitempty"`
	State      string     `json:"state,omitempty"`
	IsAdmin    bool       `json:"isAdmin"`
}

type BloodBank struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
}

// BloodInventory is one stock entry of a bank. BloodBankID is not checked
// against the bank collection.
type BloodInventory struct {
	ID          int64      `json:"id"`
	BloodBankID int64      `json:"bloodBankId"`
	BloodGroup  BloodGroup `json:"bloodGroup"`
	Component   Component  `json:"component"`
	Quantity    int        `json:"quantity"`
	LastUpdated time.Time  `json:"lastUpdated"`
}

// DonationCamp dates and times are kept as text: Date is YYYY-MM-DD,
// StartTime and EndTime are HH:MM.
type DonationCamp struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Organizer     string     `json:"organizer"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	State         string     `json:"state"`
	Date          string     `json:"date"`
	StartTime     string     `json:"startTime"`
	EndTime       string     `json:"endTime"`
	ContactPerson string     `json:"contactPerson"`
	ContactPhone  string     `json:"contactPhone"`
	ContactEmail  string     `json:"contactEmail,omitempty"`
	Status        CampStatus `json:"status"`
}

// Donation is a completed historical donation. UserID, BloodBankID and CampID
// are weak references. Quantity is in millilitres.
type Donation struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	BloodBankID  int64      `json:"bloodBankId"`
	CampID       *int64     `json:"campId,omitempty"`
	DonationDate time.Time  `json:"donationDate"`
	BloodGroup   BloodGroup `json:"bloodGroup"`
	Component    Component  `json:"component"`
	Quantity     int        `json:"quantity"`
}

// Statistics is recomputed on every request.
type Statistics struct {
	DonorsRegistered    int       `json:"donorsRegistered"`
	BloodUnitsCollected int       `json:"bloodUnitsCollected"`
	ApprovedCamps       int       `json:"approvedCamps"`
	LivesSaved          int       `json:"livesSaved"`
	LastUpdated         time.Time `json:"lastUpdated"`
}
