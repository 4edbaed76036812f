package registration

import (
	"time"

	"github.com/uptrace/bun"
)

// DefaultEventID groups registrations when the caller does not name an
// event. There is a single upcoming event in practice.
const DefaultEventID = "prochain-event"

type Registration struct {
	bun.BaseModel `bun:"table:registrations"`

	ID                    int64     `bun:"id,pk,autoincrement" json:"id"`
	FirstName             string    `bun:"first_name,notnull" json:"firstName"`
	LastName              string    `bun:"last_name,notnull" json:"lastName"`
	Email                 string    `bun:"email,notnull" json:"email"`
	Phone                 string    `bun:"phone,notnull" json:"phone"`
	ContactConsent        bool      `bun:"contact_consent,notnull,default:false" json:"contactConsent"`
	AttendanceAttestation bool      `bun:"attendance_attestation,notnull,default:false" json:"attendanceAttestation"`
	EventID               string    `bun:"event_id,notnull,default:'prochain-event'" json:"eventId"`
	CreatedAt             time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt             time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}
