package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotEligible заявку нельзя изменить или отменить
var ErrNotEligible = errors.New("appointment cannot be modified")

// Reasons for a denied modification
const (
	ReasonNotFound    = "not found"
	ReasonNotEditable = "appointment is not editable in its current state"
	reasonLeadTimeFmt = "appointments can only be modified more than %d hours before they start"
)

// Eligibility результат проверки возможности изменить или отменить заявку
type Eligibility struct {
	Eligible   bool
	Reason     string
	HoursUntil float64
}

// EvaluateEligibility решает, можно ли владельцу изменить заявку в момент now.
// Разрешено, только если до начала строго больше lead (ровно 48 часов уже нельзя).
// a == nil означает, что заявка не найдена, не принадлежит пользователю или удалена.
func EvaluateEligibility(a *Appointment, now time.Time, loc *time.Location, lead time.Duration) Eligibility {
	if a == nil || a.IsDeleted {
		return Eligibility{Reason: ReasonNotFound}
	}

	until := a.Start(loc).Sub(now)
	hours := until.Hours()

	if !a.StateID.IsEditable() {
		return Eligibility{Reason: ReasonNotEditable, HoursUntil: hours}
	}

	if until <= lead {
		return Eligibility{Reason: LeadTimeReason(lead), HoursUntil: hours}
	}

	return Eligibility{Eligible: true, HoursUntil: hours}
}

// LeadTimeReason текст отказа для правила минимального запаса времени
func LeadTimeReason(lead time.Duration) string {
	return fmt.Sprintf(reasonLeadTimeFmt, int(lead.Hours()))
}

// EligibilityError отказ с причиной, совместим с errors.Is(err, ErrNotEligible)
type EligibilityError struct {
	Reason string
}

func (e *EligibilityError) Error() string {
	return ErrNotEligible.Error() + ": " + e.Reason
}

// Is сопоставляет ошибку с ErrNotEligible
func (e *EligibilityError) Is(target error) bool {
	return target == ErrNotEligible
}
