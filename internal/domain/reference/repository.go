package reference

import "context"

// Repository reads the reference records from the authoritative store.
type Repository interface {
	ListSections(ctx context.Context) ([]Section, error)
	ListFacilities(ctx context.Context) ([]Facility, error)
	ListTechnicians(ctx context.Context) ([]Technician, error)
	ListUsers(ctx context.Context) ([]User, error)
}
