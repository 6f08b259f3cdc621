package storefront

import (
	"github.com/lucsky/cuid"
	"github.com/sirupsen/logrus"

	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/models"
)

// reservationAck is the payload of a scheduled reservation
// confirmation. Reservations are never persisted; the confirmation is
// purely an acknowledgment back to the diner.
type reservationAck struct {
	AckID string
	Form  models.ReservationForm
}

// ValidateReservation checks a booking form without submitting it.
func (s *Storefront) ValidateReservation(form models.ReservationForm) map[string]string {
	return s.validator.Validate(form)
}

// SubmitReservation validates the form and, when clean, schedules the
// simulated desk confirmation. The returned map carries field errors;
// submission proceeds only when it is empty. The acknowledgment ID
// lets the caller match the later confirmation event.
func (s *Storefront) SubmitReservation(form models.ReservationForm) (string, map[string]string) {
	if errs := s.validator.Validate(form); len(errs) > 0 {
		return "", errs
	}

	ack := reservationAck{AckID: cuid.New(), Form: form}
	s.tasks.Schedule(&models.Task{
		Due:  s.clock.Now().Add(s.Config.ReservationConfirmDelay),
		Type: models.TaskConfirmReservation,
		Data: ack,
	})

	logrus.Infof("Reservation %s submitted for %s, %s at %s",
		ack.AckID, form.CustomerName, form.Date, form.Time)
	return ack.AckID, nil
}

func (s *Storefront) confirmReservation(ack reservationAck) {
	s.emitReservationEvent(ack)
	logrus.Infof("Reservation %s confirmed for %d guests at %s",
		ack.AckID, ack.Form.Guests, ack.Form.Location)
}
