package enums

import "fmt"

// CropStatus maps to the crop_status enum in Postgres.
type CropStatus string

const (
	CropStatusPlanting   CropStatus = "Planting"
	CropStatusGrowing    CropStatus = "Growing"
	CropStatusHarvesting CropStatus = "Harvesting"
)

var validCropStatuses = []CropStatus{
	CropStatusPlanting,
	CropStatusGrowing,
	CropStatusHarvesting,
}

// IsValid checks whether the given status matches the canonical enum.
func (c CropStatus) IsValid() bool {
	for _, candidate := range validCropStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCropStatus converts raw strings into CropStatus.
func ParseCropStatus(value string) (CropStatus, error) {
	for _, candidate := range validCropStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid crop status %q", value)
}
