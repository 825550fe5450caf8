package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition возвращается при недопустимом переходе между состояниями
var ErrInvalidTransition = errors.New("domain: invalid state transition")

// State состояние заявки. Значения совпадают с id в таблице states.
type State int64

const (
	StatePending   State = 1
	StateScheduled State = 2
	StateEnRoute   State = 3
	StateCompleted State = 4
	StateCancelled State = 5
)

// InitialState состояние, в котором создаётся новая заявка
const InitialState = StateScheduled

var stateNames = map[State]string{
	StatePending:   "pending",
	StateScheduled: "scheduled",
	StateEnRoute:   "en_route",
	StateCompleted: "completed",
	StateCancelled: "cancelled",
}

var transitions = map[State][]State{
	StatePending:   {StateScheduled, StateCancelled},
	StateScheduled: {StateEnRoute, StateCancelled},
	StateEnRoute:   {StateCompleted},
}

// String возвращает имя состояния
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int64(s))
}

// IsEditable возвращает true, если владелец может изменить или отменить заявку
func (s State) IsEditable() bool {
	return s == StatePending || s == StateScheduled
}

// IsTerminal возвращает true для конечных состояний
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateCancelled
}

// CanTransition проверяет, допустим ли переход from -> to
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

