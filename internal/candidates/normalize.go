package candidates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"recruitment-backend/internal/validation"
)

// RawSubmission is the form input before normalization, field names as the
// landing page sends them.
type RawSubmission struct {
	Nome        string
	Email       string
	Telefone    string
	Idade       string
	Cargo       string
	Experiencia string
	Motivacao   string
}

const (
	shortFieldCap = 500
	longFieldCap  = 1000

	minNameLen  = 2
	maxNameLen  = 100
	maxEmailLen = 254
	minAge      = 16
	maxAge      = 99
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// Local phone format: (DD) DDDD-DDDD or (DD) DDDDD-DDDD.
	phonePattern = regexp.MustCompile(`^\(\d{2}\)\s\d{4,5}-\d{4}$`)
)

// Normalize sanitizes and validates the raw form input.
func Normalize(raw RawSubmission) (Submission, error) {
	nome := sanitizeText(raw.Nome, shortFieldCap)
	email := sanitizeText(raw.Email, shortFieldCap)
	telefone := sanitizeText(raw.Telefone, shortFieldCap)
	idade := sanitizeText(raw.Idade, shortFieldCap)
	cargo := sanitizeText(raw.Cargo, shortFieldCap)
	experiencia := sanitizeText(raw.Experiencia, longFieldCap)
	motivacao := sanitizeText(raw.Motivacao, longFieldCap)

	for field, value := range map[string]string{
		"nome":     nome,
		"email":    email,
		"telefone": telefone,
		"idade":    idade,
	} {
		if value == "" {
			return Submission{}, validation.New(validation.CodeMissingField, field,
				fmt.Sprintf("o campo %s é obrigatório", field))
		}
	}

	// Length is counted in runes: accented names are the common case here
	// and must not hit the ceiling early just for being multi-byte.
	if n := utf8.RuneCountInString(nome); n < minNameLen || n > maxNameLen {
		return Submission{}, validation.New(validation.CodeInvalidName, "nome",
			"o nome deve ter entre 2 e 100 caracteres")
	}

	if len(email) > maxEmailLen || !emailPattern.MatchString(email) {
		return Submission{}, validation.New(validation.CodeInvalidEmail, "email",
			"por favor, forneça um email válido")
	}

	if !phonePattern.MatchString(telefone) {
		return Submission{}, validation.New(validation.CodeInvalidPhone, "telefone",
			"por favor, forneça um telefone no formato (99) 99999-9999")
	}

	age, err := strconv.Atoi(idade)
	if err != nil || age < minAge || age > maxAge {
		return Submission{}, validation.New(validation.CodeInvalidAge, "idade",
			"a idade deve estar entre 16 e 99 anos")
	}

	return Submission{
		Name:       nome,
		Email:      email,
		Phone:      telefone,
		Age:        age,
		Role:       cargo,
		Experience: experiencia,
		Motivation: motivacao,
	}, nil
}

// sanitizeText trims, strips dangerous characters and URL scheme prefixes,
// and bounds the length.
func sanitizeText(s string, limit int) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '"', '\'', '&':
			return -1
		}
		return r
	}, s)

	for {
		lower := strings.ToLower(s)
		switch {
		case strings.HasPrefix(lower, "javascript:"):
			s = strings.TrimSpace(s[len("javascript:"):])
		case strings.HasPrefix(lower, "data:"):
			s = strings.TrimSpace(s[len("data:"):])
		default:
			runes := []rune(s)
			if len(runes) > limit {
				s = string(runes[:limit])
			}
			return s
		}
	}
}
