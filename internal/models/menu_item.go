package models

import (
	"encoding/json"
	"fmt"
)

const (
	CategoryNigerian      = "nigerian"
	CategoryInternational = "international"
)

// Dietary tags a MenuItem may carry.
const (
	DietaryVegetarian = "vegetarian"
	DietaryVegan      = "vegan"
	DietaryGlutenFree = "gluten-free"
	DietaryDairyFree  = "dairy-free"
)

// SpiceLevel is ordered: mild < medium < hot < extra-hot.
type SpiceLevel int

const (
	SpiceMild SpiceLevel = iota
	SpiceMedium
	SpiceHot
	SpiceExtraHot
)

var spiceLevelNames = map[SpiceLevel]string{
	SpiceMild:     "mild",
	SpiceMedium:   "medium",
	SpiceHot:      "hot",
	SpiceExtraHot: "extra-hot",
}

func ParseSpiceLevel(s string) (SpiceLevel, error) {
	for level, name := range spiceLevelNames {
		if name == s {
			return level, nil
		}
	}
	return SpiceMild, fmt.Errorf("unknown spice level: %q", s)
}

func (l SpiceLevel) String() string {
	if name, ok := spiceLevelNames[l]; ok {
		return name
	}
	return "mild"
}

func (l SpiceLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *SpiceLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	level, err := ParseSpiceLevel(s)
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// MenuItem is a catalog entry. Prices are whole naira.
// Items are loaded once at startup and never mutated.
type MenuItem struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Price        int        `json:"price"`
	Image        string     `json:"image"`
	Category     string     `json:"category"`
	SpiceLevel   SpiceLevel `json:"spice_level"`
	Allergens    []string   `json:"allergens"`
	Dietary      []string   `json:"dietary"`
	Customizable bool       `json:"customizable"`
	Popular      bool       `json:"popular"`
}

func (m MenuItem) HasDietaryTag(tag string) bool {
	for _, d := range m.Dietary {
		if d == tag {
			return true
		}
	}
	return false
}
