// Package factories generates plausible demo data for scripted
// storefront sessions.
package factories

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"

	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/models"
)

var fake = faker.New()

var cities = []string{"Lagos", "Abuja", "Port Harcourt", "Kano"}

type CustomerFactory struct{}

// nigerianPhone builds a local-format number: 0 + a mobile prefix +
// seven digits, which passes the storefront phone check.
func nigerianPhone() string {
	prefixes := []string{"803", "805", "806", "810", "813", "816", "901", "906"}
	prefix := prefixes[rand.Intn(len(prefixes))]
	return fmt.Sprintf("0%s%07d", prefix, rand.Intn(10000000))
}

func (cf *CustomerFactory) CreateCustomerInfo() models.CustomerInfo {
	city := cities[rand.Intn(len(cities))]
	return models.CustomerInfo{
		Name:    fake.Person().Name(),
		Phone:   nigerianPhone(),
		Email:   fake.Internet().Email(),
		Address: fake.Address().StreetAddress(),
		City:    city,
	}
}

// CreateReservationForm builds a valid booking request for the given
// location and slot, dated a few days out.
func (cf *CustomerFactory) CreateReservationForm(location models.Location, slot string) models.ReservationForm {
	date := time.Now().AddDate(0, 0, 1+rand.Intn(14))
	return models.ReservationForm{
		CustomerName:    fake.Person().Name(),
		Phone:           nigerianPhone(),
		Email:           fake.Internet().Email(),
		Date:            date.Format("2006-01-02"),
		Time:            slot,
		Guests:          1 + rand.Intn(8),
		Location:        location.ID,
		SpecialRequests: "",
	}
}
