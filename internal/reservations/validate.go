// Package reservations validates table booking requests. Validation
// is pure: it returns a field-to-message map and leaves it to the
// caller to block submission or highlight fields.
package reservations

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/catalog"
	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/format"
	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/models"
)

// Deliberately loose: anything shaped like non-space@non-space.non-space.
// Full RFC validation rejects addresses real diners type in.
var looseEmailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// fieldMessages maps field and failing rule to the message shown
// inline next to the form field.
var fieldMessages = map[string]map[string]string{
	"customerName": {
		"notblank": "Name is required",
	},
	"phone": {
		"notblank": "Phone number is required",
		"ngphone":  "Please enter a valid Nigerian phone number",
	},
	"email": {
		"notblank":   "Email is required",
		"looseemail": "Please enter a valid email address",
	},
	"date": {
		"required":   "Date is required",
		"futuredate": "Please select a future date",
	},
	"time": {
		"required": "Time is required",
		"timeslot": "Please choose an available time slot",
	},
	"guests": {
		"min": "Number of guests must be between 1 and 20",
		"max": "Number of guests must be between 1 and 20",
	},
	"location": {
		"required": "Location is required",
		"venue":    "Please choose one of our locations",
	},
}

// Validator checks reservation forms against the rules the booking
// form enforces: contact details, a bookable date and slot, a real
// location and a sensible party size.
type Validator struct {
	validate *validator.Validate
	catalog  *catalog.Catalog
	slots    map[string]struct{}
	now      func() time.Time
}

func New(cat *catalog.Catalog, slots []string) *Validator {
	v := &Validator{
		validate: validator.New(),
		catalog:  cat,
		slots:    make(map[string]struct{}, len(slots)),
		now:      time.Now,
	}
	for _, slot := range slots {
		v.slots[slot] = struct{}{}
	}

	// Error maps are keyed by the form field names the UI knows.
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	must := func(tag string, fn validator.Func) {
		if err := v.validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	must("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	must("ngphone", func(fl validator.FieldLevel) bool {
		return format.ValidateNigerianPhone(fl.Field().String())
	})
	must("looseemail", func(fl validator.FieldLevel) bool {
		return looseEmailPattern.MatchString(fl.Field().String())
	})
	must("futuredate", v.validFutureDate)
	must("timeslot", v.validTimeSlot)
	must("venue", v.validVenue)

	return v
}

// WithNow replaces the clock used for the today-or-later date rule.
func (v *Validator) WithNow(now func() time.Time) *Validator {
	v.now = now
	return v
}

// validFutureDate accepts today or any later calendar date. The
// comparison is timezone-naive and ignores time of day.
func (v *Validator) validFutureDate(fl validator.FieldLevel) bool {
	requested, err := time.Parse("2006-01-02", fl.Field().String())
	if err != nil {
		return false
	}
	now := v.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !requested.Before(today)
}

func (v *Validator) validTimeSlot(fl validator.FieldLevel) bool {
	_, ok := v.slots[fl.Field().String()]
	return ok
}

func (v *Validator) validVenue(fl validator.FieldLevel) bool {
	return v.catalog.HasLocation(fl.Field().String())
}

// Validate returns a message for every invalid field; an empty map
// means the form is good to submit. No side effects.
func (v *Validator) Validate(form models.ReservationForm) map[string]string {
	errs := make(map[string]string)

	err := v.validate.Struct(form)
	if err == nil {
		return errs
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["form"] = "Invalid reservation request"
		return errs
	}

	for _, fieldErr := range validationErrs {
		field := fieldErr.Field()
		if msg, ok := fieldMessages[field][fieldErr.Tag()]; ok {
			errs[field] = msg
		} else {
			errs[field] = "Invalid value"
		}
	}
	return errs
}
