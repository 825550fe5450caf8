package create_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	if req.Day.IsZero() {
		return fmt.Errorf("%w: day is required", ErrInvalidInput)
	}

	if req.Schedule.IsZero() {
		return fmt.Errorf("%w: schedule is required", ErrInvalidInput)
	}

	return nil
}

// validateSlot проверяет, что время входит в дневные слоты и ещё не наступило
func validateSlot(rules domain.Rules, day time.Time, schedule types.TimeString, now time.Time) error {
	if !rules.IsDailySlot(schedule) {
		return fmt.Errorf("%w: %s is not offered", ErrInvalidTimeSlot, schedule)
	}

	if day.Before(rules.Today(now)) {
		return fmt.Errorf("%w: day %s is in the past", ErrInvalidDate, day.Format(domain.DateFormat))
	}

	if !schedule.On(day, rules.Loc()).After(now) {
		return fmt.Errorf("%w: %s %s has already started", ErrInvalidDate, day.Format(domain.DateFormat), schedule)
	}

	return nil
}
