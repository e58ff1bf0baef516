package events

import (
	"time"

	"github.com/spec-kit/plot-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPlotAllocated EventType = "plot_allocated"
	EventPlotReleased  EventType = "plot_released"
	EventZoneCreated   EventType = "zone_created"
	EventUserCreated   EventType = "user_created"
)

// Actor records who performed the action, taken from the verified claims.
type Actor struct {
	Subject string      `json:"subject"`
	Role    domain.Role `json:"role"`
	Zone    string      `json:"zone"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// PlotAllocatedPayload payload.
type PlotAllocatedPayload struct {
	PlotName    string            `json:"plot_name"`
	ZoneCode    string            `json:"zone_code"`
	Country     string            `json:"country"`
	Status      domain.PlotStatus `json:"status"`
	CompanyName *string           `json:"company_name,omitempty"`
}

// PlotReleasedPayload payload.
type PlotReleasedPayload struct {
	PlotName string `json:"plot_name"`
	ZoneCode string `json:"zone_code"`
	Country  string `json:"country"`
}

// ZoneCreatedPayload payload.
type ZoneCreatedPayload struct {
	ZoneCode string `json:"zone_code"`
	Country  string `json:"country"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	Zone  string      `json:"zone"`
}
