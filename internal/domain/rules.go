package domain

import (
	"time"

	"github.com/m04kA/SMC-MovingService/pkg/types"
)

// Rules бизнес-правила расписания, общие для всех сценариев
type Rules struct {
	DailySlots      []types.TimeString // времена начала, предлагаемые клиенту
	SlotCapacity    int                // максимум активных заявок на (day, schedule)
	EditLeadTime    time.Duration      // изменение разрешено, только если до начала строго больше
	VanBuffer       time.Duration      // буфер фургона после окончания работы
	DefaultDuration types.TimeString   // длительность, если клиент её не указал
	Location        *time.Location     // зона, в которой интерпретируются day и schedule
}

// DefaultRules правила по умолчанию
func DefaultRules() Rules {
	slots := make([]types.TimeString, 0, len(DefaultDailySlots))
	for _, s := range DefaultDailySlots {
		slots = append(slots, types.MustTimeString(s))
	}

	return Rules{
		DailySlots:      slots,
		SlotCapacity:    DefaultSlotCapacity,
		EditLeadTime:    DefaultEditLeadTime,
		VanBuffer:       DefaultVanBuffer,
		DefaultDuration: types.MustTimeString("01:00"),
		Location:        time.UTC,
	}
}

// IsDailySlot проверяет, что время входит в список предлагаемых
func (r Rules) IsDailySlot(t types.TimeString) bool {
	for _, s := range r.DailySlots {
		if s == t {
			return true
		}
	}
	return false
}

// Loc возвращает зону расписания, UTC если не задана
func (r Rules) Loc() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

// Today возвращает текущую дату в зоне расписания (полночь UTC, как хранится day)
func (r Rules) Today(now time.Time) time.Time {
	return DateOnly(now.In(r.Loc()))
}
