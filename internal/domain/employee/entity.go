package employee

import "time"

// Employee - the slice of the HR profile payroll needs: identity and active
// flag. Everything else (position, grade, documents) belongs to the HR
// console and stays out of this service.
type Employee struct {
	ID        string
	OrgID     string
	Code      string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
