package enums

import "fmt"

// ResourceUnit maps to the resource_unit enum in Postgres.
type ResourceUnit string

const (
	ResourceUnitKgs     ResourceUnit = "kgs"
	ResourceUnitLitres  ResourceUnit = "litres"
	ResourceUnitUnits   ResourceUnit = "units"
	ResourceUnitTons    ResourceUnit = "tons"
	ResourceUnitGallons ResourceUnit = "gallons"
)

var validResourceUnits = []ResourceUnit{
	ResourceUnitKgs,
	ResourceUnitLitres,
	ResourceUnitUnits,
	ResourceUnitTons,
	ResourceUnitGallons,
}

// IsValid checks whether the given unit matches the canonical enum.
func (u ResourceUnit) IsValid() bool {
	for _, candidate := range validResourceUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseResourceUnit converts raw strings into ResourceUnit.
func ParseResourceUnit(value string) (ResourceUnit, error) {
	for _, candidate := range validResourceUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid resource unit %q", value)
}

// ResourceUsageStatus maps to the resource_usage_status enum in Postgres.
type ResourceUsageStatus string

const (
	ResourceUsageAvailable ResourceUsageStatus = "available"
	ResourceUsageInUse     ResourceUsageStatus = "in_use"
	ResourceUsageDepleted  ResourceUsageStatus = "depleted"
)

var validResourceUsageStatuses = []ResourceUsageStatus{
	ResourceUsageAvailable,
	ResourceUsageInUse,
	ResourceUsageDepleted,
}

// IsValid checks whether the given status matches the canonical enum.
func (s ResourceUsageStatus) IsValid() bool {
	for _, candidate := range validResourceUsageStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseResourceUsageStatus converts raw strings into ResourceUsageStatus.
func ParseResourceUsageStatus(value string) (ResourceUsageStatus, error) {
	for _, candidate := range validResourceUsageStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid resource usage status %q", value)
}
