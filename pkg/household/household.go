package household

// Owner identifies who an amount belongs to within a household: one of the
// two partners or the joint pot.
type Owner string

const (
	OwnerPartnerA Owner = "partner_a"
	OwnerPartnerB Owner = "partner_b"
	OwnerJoint    Owner = "joint"
)

// IsPartner reports whether the owner is one of the two individuals (not the
// joint pot).
func (o Owner) IsPartner() bool {
	return o == OwnerPartnerA || o == OwnerPartnerB
}

// IsValid reports whether the owner is one of the three known values.
func (o Owner) IsValid() bool {
	return o == OwnerPartnerA || o == OwnerPartnerB || o == OwnerJoint
}

// Other returns the opposite partner. Calling it on OwnerJoint returns
// OwnerJoint.
func (o Owner) Other() Owner {
	switch o {
	case OwnerPartnerA:
		return OwnerPartnerB
	case OwnerPartnerB:
		return OwnerPartnerA
	}
	return OwnerJoint
}

type Household struct {
	Id       int
	Uid      string
	Name     string
	Settings Settings
}

type Settings struct {
	Currency string
	// PartnerAName and PartnerBName are the display names used when rendering
	// settlement statements.
	PartnerAName string
	PartnerBName string
	// IncludeJointInSettlement controls whether entries paid from the joint
	// pot in pooled categories are counted in the settlement pool. Joint money
	// is attributed half to each partner, so the flag changes the reported
	// pool composition but not the resulting debt.
	IncludeJointInSettlement bool
}

// PartnerName resolves an owner to its configured display name.
func (h Household) PartnerName(o Owner) string {
	switch o {
	case OwnerPartnerA:
		return h.Settings.PartnerAName
	case OwnerPartnerB:
		return h.Settings.PartnerBName
	}
	return h.Name
}
