package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DeviceCategory represents the fixed set of device types accepted for repair
type DeviceCategory int

const (
	DeviceCategoryMobilePhone DeviceCategory = 0
	DeviceCategoryLaptop      DeviceCategory = 1
	DeviceCategoryTablet      DeviceCategory = 2
	DeviceCategorySmartwatch  DeviceCategory = 3
	DeviceCategoryDesktop     DeviceCategory = 4
	DeviceCategoryOther       DeviceCategory = 5
)

var deviceCategoryNames = [...]string{
	"Mobile Phone", "Laptop", "Tablet", "Smartwatch", "Desktop", "Other",
}

// AllDeviceCategories lists every category in checklist order.
func AllDeviceCategories() []DeviceCategory {
	return []DeviceCategory{
		DeviceCategoryMobilePhone,
		DeviceCategoryLaptop,
		DeviceCategoryTablet,
		DeviceCategorySmartwatch,
		DeviceCategoryDesktop,
		DeviceCategoryOther,
	}
}

// ParseDeviceCategory maps a display name onto its category. Unknown names
// fall back to Other so intake never rejects a device outright.
func ParseDeviceCategory(name string) DeviceCategory {
	for i, known := range deviceCategoryNames {
		if known == name {
			return DeviceCategory(i)
		}
	}
	return DeviceCategoryOther
}

func (c DeviceCategory) String() string {
	if !c.Valid() {
		return "Other"
	}
	return deviceCategoryNames[c]
}

// Valid reports whether c is one of the known categories.
func (c DeviceCategory) Valid() bool {
	return c >= DeviceCategoryMobilePhone && c <= DeviceCategoryOther
}

func (c DeviceCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *DeviceCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*c = DeviceCategory(i)
		return nil
	}
	for i, name := range deviceCategoryNames {
		if name == str {
			*c = DeviceCategory(i)
			return nil
		}
	}
	*c = DeviceCategoryOther
	return nil
}

func (c DeviceCategory) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *DeviceCategory) Scan(value interface{}) error {
	if value == nil {
		*c = DeviceCategoryOther
		return nil
	}
	switch v := value.(type) {
	case int64:
		*c = DeviceCategory(v)
	case int:
		*c = DeviceCategory(v)
	}
	return nil
}
