// Package filepolicy validates an inbound résumé upload before any provider
// is contacted: extension allow/deny lists, base64 decoding, and the decoded
// size ceiling.
package filepolicy

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"recruitment-backend/internal/shared/util"
	"recruitment-backend/internal/validation"
)

// DefaultMaxBytes is the decoded size ceiling applied when none is configured.
const DefaultMaxBytes = 5 << 20 // 5 MiB

var allowedExtensions = map[string]struct{}{
	"pdf":  {},
	"doc":  {},
	"docx": {},
}

// Extensions that never pass, regardless of the final extension. Checked
// against every dot-separated segment so resume.exe.pdf does not slip
// through the allow-list.
var deniedExtensions = map[string]struct{}{
	"exe": {}, "bat": {}, "cmd": {}, "scr": {}, "vbs": {},
	"js": {}, "jar": {}, "com": {}, "pif": {}, "msi": {}, "dll": {},
}

var base64Alphabet = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

// ValidatedFile is the decoded, sanitized result of a passing upload.
type ValidatedFile struct {
	Data     []byte
	FileName string
	MimeType string
}

// Policy holds the configured limits.
type Policy struct {
	MaxBytes int64
}

// New builds a Policy; a non-positive maxBytes falls back to DefaultMaxBytes.
func New(maxBytes int64) *Policy {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Policy{MaxBytes: maxBytes}
}

// Validate checks the declared filename and decodes the base64 body.
func (p *Policy) Validate(fileName, base64Body string) (ValidatedFile, error) {
	if strings.TrimSpace(fileName) == "" {
		return ValidatedFile{}, validation.New(validation.CodeMissingField, "curriculoNome",
			"o campo curriculoNome é obrigatório")
	}
	if strings.TrimSpace(base64Body) == "" {
		return ValidatedFile{}, validation.New(validation.CodeMissingField, "curriculo",
			"o campo curriculo é obrigatório")
	}

	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return ValidatedFile{}, validation.New(validation.CodeUnsafeFilename, "curriculoNome", "nome de arquivo inválido")
	}

	// Deny-list first: it applies independently of the allow-list.
	for _, segment := range extensionSegments(sanitized) {
		if _, bad := deniedExtensions[segment]; bad {
			return ValidatedFile{}, validation.New(validation.CodeUnsafeFilename, "curriculoNome",
				fmt.Sprintf("extensão não permitida por segurança: %s", segment))
		}
	}

	ext := finalExtension(sanitized)
	if _, ok := allowedExtensions[ext]; !ok {
		return ValidatedFile{}, validation.New(validation.CodeDisallowedExtension, "curriculoNome",
			"apenas arquivos PDF, DOC ou DOCX são aceitos")
	}

	payload := stripDataPrefix(base64Body)
	payload = stripWhitespace(payload)
	if payload == "" || !base64Alphabet.MatchString(payload) {
		return ValidatedFile{}, validation.New(validation.CodeMalformedEncoding, "curriculo",
			"conteúdo do arquivo não está em base64 válido")
	}

	// Cheap pre-check: 4 base64 chars decode to at most 3 bytes.
	if int64(len(payload))/4*3 > p.MaxBytes+3 {
		return ValidatedFile{}, validation.New(validation.CodeFileTooLarge, "curriculo",
			fmt.Sprintf("arquivo excede o limite de %d bytes", p.MaxBytes))
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return ValidatedFile{}, validation.New(validation.CodeMalformedEncoding, "curriculo",
			"conteúdo do arquivo não está em base64 válido")
	}
	if int64(len(data)) > p.MaxBytes {
		return ValidatedFile{}, validation.New(validation.CodeFileTooLarge, "curriculo",
			fmt.Sprintf("arquivo excede o limite de %d bytes", p.MaxBytes))
	}

	mime := MimeForExtension(ext)
	probePDF(sanitized, mime, data)

	return ValidatedFile{
		Data:     data,
		FileName: sanitized,
		MimeType: mime,
	}, nil
}

// stripDataPrefix removes a leading data:...;base64, wrapper if present.
func stripDataPrefix(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if idx := strings.Index(s, ","); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}

// extensionSegments returns every dot-separated segment after the base name,
// lowercased.
func extensionSegments(name string) []string {
	parts := strings.Split(strings.ToLower(name), ".")
	if len(parts) < 2 {
		return nil
	}
	return parts[1:]
}

func finalExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}
