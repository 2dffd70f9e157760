package models

// InventoryWithBank is an inventory row with its bank attached at read time.
// BloodBank is nil when the referenced bank does not exist.
type InventoryWithBank struct {
	BloodInventory
	BloodBank *BloodBank `json:"bloodBank,omitempty"`
}

// DonationWithDetails is a donation with its bank and, when CampID resolves,
// its camp. Either may be nil.
type DonationWithDetails struct {
	Donation
	BloodBank *BloodBank    `json:"bloodBank,omitempty"`
	Camp      *DonationCamp `json:"camp,omitempty"`
}

type Compatibility struct {
	Type         BloodGroup   `json:"type"`
	DonatesTo    []BloodGroup `json:"donatesTo"`
	ReceivesFrom []BloodGroup `json:"receivesFrom"`
}
