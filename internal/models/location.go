package models

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	City        string      `json:"city"`
	Phone       string      `json:"phone"`
	Hours       string      `json:"hours"`
	Coordinates Coordinates `json:"coordinates"`
}
