package candidates

import "strconv"

// submitRequest is the inbound JSON body. idade arrives as a string or a
// number depending on the front end, so it binds loosely.
type submitRequest struct {
	Nome          string `json:"nome"`
	Email         string `json:"email"`
	Telefone      string `json:"telefone"`
	Idade         any    `json:"idade"`
	Cargo         string `json:"cargo"`
	Experiencia   string `json:"experiencia"`
	Motivacao     string `json:"motivacao"`
	Curriculo     string `json:"curriculo"`
	CurriculoNome string `json:"curriculoNome"`
}

func (r submitRequest) raw() RawSubmission {
	return RawSubmission{
		Nome:        r.Nome,
		Email:       r.Email,
		Telefone:    r.Telefone,
		Idade:       idadeString(r.Idade),
		Cargo:       r.Cargo,
		Experiencia: r.Experiencia,
		Motivacao:   r.Motivacao,
	}
}

func (r submitRequest) file() FileUpload {
	return FileUpload{
		RawBase64:        r.Curriculo,
		DeclaredFilename: r.CurriculoNome,
	}
}

func idadeString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case nil:
		return ""
	default:
		return ""
	}
}

// successResponse is the wire shape the landing page expects.
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
