package infrastructure

import (
	"fmt"

	"lotobank/domain/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeTicketSold:
		return "tickets.sold"
	case events.EventTypeTicketCancelled:
		return "tickets.cancelled"
	case events.EventTypeDrawSettled:
		return "draws.settled"
	case events.EventTypeOutcomeDeclared:
		return "draws.outcome_declared"
	case events.EventTypeBalanceSettled:
		return "sellers.balance_settled"
	default:
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"tickets.sold",
		"tickets.cancelled",
		"draws.settled",
		"draws.outcome_declared",
		"sellers.balance_settled",
	}
}
