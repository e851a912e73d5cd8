package models

// Estados de uma requisição de material.
const (
	ReqStatusPendente    = "Pendente"
	ReqStatusAprovado    = "Aprovado"
	ReqStatusPermitido   = "Permitido"
	ReqStatusRejeitado   = "Rejeitado"
	ReqStatusEmAndamento = "Em andamento"
)

// Estado de cada linha de item dentro da requisição.
const (
	ItemPendente = "pendente"
	ItemAtendido = "atendido"
)

// RequisitionItem is one (material, quantity) line of a requisition.
type RequisitionItem struct {
	Nome       string `json:"nome"`
	Quantidade int    `json:"quantidade"`
}

type Requisition struct {
	ID             int64             `json:"id"`
	Requerente     string            `json:"requerente"`
	DepartamentoID int64             `json:"departamentoId"`
	Departamento   string            `json:"departamento,omitempty"`
	Detalhes       string            `json:"detalhes,omitempty"`
	Status         string            `json:"status"`
	Materiais      []RequisitionItem `json:"materiais"`
	Atendidos      []RequisitionItem `json:"atendidos"`
}

type Material struct {
	ID         int64  `json:"id"`
	Nome       string `json:"nome"`
	Quantidade int    `json:"quantidade"`
	Descricao  string `json:"descricao,omitempty"`
}

type Departamento struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}
