// Package reference holds the slow-changing lookup records shared read-only
// across dashboard views. They are owned and mutated by the admin-management
// side; this subsystem only reads them.
package reference

import "fmt"

type Section struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Facility struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Technician struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	SectionID uint   `json:"section"`
}

func (t Technician) FullName() string {
	return fmt.Sprintf("%s %s", t.FirstName, t.LastName)
}

type User struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (u User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}
