package registration

import "time"

// Registrant is the persisted record produced by a successful registration.
type Registrant struct {
	ID        int64
	Nombre    string
	Apellido  string
	Email     string
	Telefono  string
	Pais      string
	CreatedAt time.Time
}

// Submission carries the raw, untrusted fields of a registration request.
type Submission struct {
	Nombre   string
	Apellido string
	Email    string
	Telefono string
	Pais     string
}
