package registration

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	nameMinLen    = 2
	nameMaxLen    = 50
	emailMaxLen   = 100
	phoneMinLen   = 7
	phoneMaxLen   = 20
	countryMinLen = 2
	countryMaxLen = 56
)

var (
	// Letters (including accented ones) in words joined by single spaces,
	// apostrophes or hyphens.
	letterPattern = regexp.MustCompile(`^[\p{L}]+(?:[ '-][\p{L}]+)*$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern  = regexp.MustCompile(`^\+?[0-9][0-9 ()-]*$`)
)

// Validate checks a submission against the field rules and returns the list
// of user-facing messages for every rule that failed. An empty slice means
// the submission is acceptable.
func Validate(sub Submission) []string {
	var msgs []string

	msgs = append(msgs, validateName(sub.Nombre, "nombre")...)
	msgs = append(msgs, validateName(sub.Apellido, "apellido")...)

	email := strings.TrimSpace(sub.Email)
	switch {
	case email == "":
		msgs = append(msgs, "El email es obligatorio")
	case utf8.RuneCountInString(email) > emailMaxLen:
		msgs = append(msgs, "El email no puede superar los 100 caracteres")
	case !emailPattern.MatchString(email):
		msgs = append(msgs, "El email no tiene un formato válido")
	}

	if telefono := strings.TrimSpace(sub.Telefono); telefono != "" {
		n := utf8.RuneCountInString(telefono)
		if n < phoneMinLen || n > phoneMaxLen || !phonePattern.MatchString(telefono) {
			msgs = append(msgs, "El teléfono no tiene un formato válido")
		}
	}

	if pais := strings.TrimSpace(sub.Pais); pais != "" {
		n := utf8.RuneCountInString(pais)
		switch {
		case n < countryMinLen || n > countryMaxLen:
			msgs = append(msgs, "El país debe tener entre 2 y 56 caracteres")
		case !letterPattern.MatchString(pais):
			msgs = append(msgs, "El país solo puede contener letras y espacios")
		}
	}

	return msgs
}

func validateName(value, field string) []string {
	name := strings.TrimSpace(value)
	if name == "" {
		return []string{"El " + field + " es obligatorio"}
	}

	var msgs []string
	if n := utf8.RuneCountInString(name); n < nameMinLen || n > nameMaxLen {
		msgs = append(msgs, "El "+field+" debe tener entre 2 y 50 caracteres")
	}
	if !letterPattern.MatchString(name) {
		msgs = append(msgs, "El "+field+" solo puede contener letras y espacios")
	}
	return msgs
}
