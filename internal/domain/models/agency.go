package models

// Diretório de agências: província > município > agência.

type ProvinciaAgencia struct {
	ID        int64  `json:"id"`
	Provincia string `json:"provincia"`
}

type MunicipioAgencia struct {
	ID          int64  `json:"id"`
	Municipio   string `json:"municipio"`
	ProvinciaID int64  `json:"provinciaId,omitempty"`
	Provincia   string `json:"provincia,omitempty"`
}

type Agencia struct {
	ID          int64  `json:"id"`
	Nome        string `json:"nome"`
	MunicipioID int64  `json:"municipioId,omitempty"`
	Municipio   string `json:"municipio,omitempty"`
	Provincia   string `json:"provincia,omitempty"`
}

// Carga is the counter-side waypoint record of a cargo moving between agency
// municipalities, distinct from the customer-facing Entrega request.
type Carga struct {
	ID                 int64  `json:"id"`
	NomeProduto        string `json:"nomeProduto"`
	Destinatario       string `json:"destinatario"`
	AgenciaID          int64  `json:"agenciaId,omitempty"`
	MunicipioOrigemID  int64  `json:"municipioOrigemId,omitempty"`
	MunicipioDestinoID int64  `json:"municipioDestinoId,omitempty"`
	ViaturaID          int64  `json:"viaturaId,omitempty"`

	// joined fields
	Agencia          string `json:"agencia,omitempty"`
	MunicipioOrigem  string `json:"municipioOrigem,omitempty"`
	MunicipioDestino string `json:"municipioDestino,omitempty"`
	Matricula        string `json:"matricula,omitempty"`
}
