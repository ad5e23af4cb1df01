package engine

import "strings"

// DonationTypeDesignated is any non-statutory donation. It takes the lower limit.
const DonationTypeDesignated = "designated"

var facilityAliases = map[string]string{
	"info_system": FacilityInformationSystem,
}

var knownFacilities = map[string]bool{
	FacilityAutomation:           true,
	FacilityInformationSystem:    true,
	FacilityMeasurement:          true,
	FacilityEnergySaving:         true,
	FacilityGreenhouseGas:        true,
	FacilityEnvironmental:        true,
	FacilityFirePrevention:       true,
	FacilityProtectiveGear:       true,
	FacilityWorkplaceImprovement: true,
}

var knownRndCategories = map[string]bool{
	RndGeneral:         true,
	RndNewGrowthEngine: true,
	RndDesign:          true,
	RndNewTechnology:   true,
}

// NormalizeTag lowercases a tag and folds spaces and hyphens to underscores.
func NormalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(tag)
}

func canonicalFacility(tag string) string {
	tag = NormalizeTag(tag)
	if alias, ok := facilityAliases[tag]; ok {
		return alias
	}
	return tag
}

// ValidFacilityType reports whether at least one investment rule can match tag.
// Smart factory tags are free text and only need to contain "smart factory".
func ValidFacilityType(tag string) bool {
	return knownFacilities[canonicalFacility(tag)] || isSmartFactory(tag)
}

func ValidRndCategory(category string) bool {
	return knownRndCategories[NormalizeTag(category)]
}

// ValidSocialEnterpriseType accepts an empty type, which is treated as a cooperative.
func ValidSocialEnterpriseType(kind string) bool {
	switch NormalizeTag(kind) {
	case "", SocialEnterpriseTypeSocialEnterprise, SocialEnterpriseTypeCooperative:
		return true
	}
	return false
}

// ValidDonationType accepts an empty type, which takes the non-statutory limit.
func ValidDonationType(kind string) bool {
	switch NormalizeTag(kind) {
	case "", DonationTypeStatutory, DonationTypeDesignated:
		return true
	}
	return false
}
