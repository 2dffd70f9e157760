package models

import "slices"

// States are the Indian states and union territories offered by the portal.
// Filters do not restrict input to this list.
var States = []string{
	"Andhra Pradesh",
	"Arunachal Pradesh",
	"Assam",
	"Bihar",
	"Chhattisgarh",
	"Delhi",
	"Goa",
	"Gujarat",
	"Haryana",
	"Himachal Pradesh",
	"Jharkhand",
	"Karnataka",
	"Kerala",
	"Madhya Pradesh",
	"Maharashtra",
	"Manipur",
	"Meghalaya",
	"Mizoram",
	"Nagaland",
	"Odisha",
	"Punjab",
	"Rajasthan",
	"Sikkim",
	"Tamil Nadu",
	"Telangana",
	"Tripura",
	"Uttar Pradesh",
	"Uttarakhand",
	"West Bengal",
	"Andaman and Nicobar Islands",
	"Chandigarh",
	"Dadra and Nagar Haveli and Daman and Diu",
	"Jammu and Kashmir",
	"Ladakh",
	"Lakshadweep",
	"Puducherry",
}

var compatibilityChart = map[BloodGroup]Compatibility{
	BloodGroupAPos: {
		Type:         BloodGroupAPos,
		DonatesTo:    []BloodGroup{BloodGroupAPos, BloodGroupABPos},
		ReceivesFrom: []BloodGroup{BloodGroupAPos, BloodGroupANeg, BloodGroupOPos, BloodGroupONeg},
	},
	BloodGroupOPos: {
		Type:         BloodGroupOPos,
		DonatesTo:    []BloodGroup{BloodGroupOPos, BloodGroupAPos, BloodGroupBPos, BloodGroupABPos},
		ReceivesFrom: []BloodGroup{BloodGroupOPos, BloodGroupONeg},
	},
	BloodGroupBPos: {
		Type:         BloodGroupBPos,
		DonatesTo:    []BloodGroup{BloodGroupBPos, BloodGroupABPos},
		ReceivesFrom: []BloodGroup{BloodGroupBPos, BloodGroupBNeg, BloodGroupOPos, BloodGroupONeg},
	},
	BloodGroupABPos: {
		Type:         BloodGroupABPos,
		DonatesTo:    []BloodGroup{BloodGroupABPos},
		ReceivesFrom: slices.Clone(BloodGroups),
	},
	BloodGroupANeg: {
		Type:         BloodGroupANeg,
		DonatesTo:    []BloodGroup{BloodGroupAPos, BloodGroupANeg, BloodGroupABPos, BloodGroupABNeg},
		ReceivesFrom: []BloodGroup{BloodGroupANeg, BloodGroupONeg},
	},
	BloodGroupONeg: {
		Type:         BloodGroupONeg,
		DonatesTo:    slices.Clone(BloodGroups),
		ReceivesFrom: []BloodGroup{BloodGroupONeg},
	},
	BloodGroupBNeg: {
		Type:         BloodGroupBNeg,
		DonatesTo:    []BloodGroup{BloodGroupBPos, BloodGroupBNeg, BloodGroupABPos, BloodGroupABNeg},
		ReceivesFrom: []BloodGroup{BloodGroupBNeg, BloodGroupONeg},
	},
	BloodGroupABNeg: {
		Type:         BloodGroupABNeg,
		DonatesTo:    []BloodGroup{BloodGroupABPos, BloodGroupABNeg},
		ReceivesFrom: []BloodGroup{BloodGroupANeg, BloodGroupBNeg, BloodGroupABNeg, BloodGroupONeg},
	},
}

// CompatibilityFor returns a copy of the chart entry for g.
func CompatibilityFor(g BloodGroup) (Compatibility, bool) {
	c, ok := compatibilityChart[g]
	if !ok {
		return Compatibility{}, false
	}
	return c.clone(), true
}

func (c Compatibility) clone() Compatibility {
	c.DonatesTo = slices.Clone(c.DonatesTo)
	c.ReceivesFrom = slices.Clone(c.ReceivesFrom)
	return c
}

// CompatibilityChart returns every entry in BloodGroups order.
func CompatibilityChart() []Compatibility {
	out := make([]Compatibility, 0, len(BloodGroups))
	for _, g := range BloodGroups {
		out = append(out, compatibilityChart[g].clone())
	}
	return out
}
