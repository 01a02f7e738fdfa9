package business

import "time"

// Business is the owning tenant. Branches, employees and sessions are always
// scoped to one business.
type Business struct {
	ID        string
	Name      string
	Timezone  string // default reference timezone when no branch applies
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
