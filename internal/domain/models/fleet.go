package models

import "time"

// Estados de viatura.
const (
	ViaturaDisponivel = "Disponível"
	ViaturaEmUso      = "Em Uso"
	ViaturaManutencao = "Manutenção"
)

// Situações de manutenção.
const (
	ManutencaoEntrada = "Entrada"
	ManutencaoAndando = "Em manutenção"
	ManutencaoEspera  = "Em espera"
	ManutencaoPronto  = "Pronto"
)

type Motorista struct {
	ID          int64  `json:"id"`
	Nome        string `json:"nome"`
	Contacto    string `json:"contacto"`
	NumeroPasse string `json:"numero_passe"`
	Imagem      string `json:"imagem,omitempty"`
}

type Viatura struct {
	ID          int64  `json:"id"`
	Matricula   string `json:"matricula"`
	Codigo      string `json:"codigo"`
	Modelo      string `json:"modelo"`
	ModeloID    int64  `json:"modeloId"`
	MotoristaID int64  `json:"motoristaId"`
	Status      string `json:"status"`
	Imagem      string `json:"imagem,omitempty"`

	Motorista *Motorista `json:"motorista,omitempty"`
}

type Marca struct {
	ID    int64  `json:"id"`
	Marca string `json:"marca"`
}

type Modelo struct {
	ID      int64  `json:"id"`
	Modelo  string `json:"modelo"`
	MarcaID int64  `json:"marcaId,omitempty"`
}

// Entrada registers a vehicle returning to the yard.
type Entrada struct {
	ID               int64     `json:"id"`
	DataHora         time.Time `json:"dataHora"`
	MatriculaVeiculo string    `json:"MatriculaVeiculo"`
	CodigoVeiculo    string    `json:"codigoVeiculo"`
	PasseMotorista   string    `json:"passeMotorista"`
	PasseCobrador    string    `json:"passeCobrador,omitempty"`
	Kilometragem     int64     `json:"kilometragem"`
	TipoViagem       string    `json:"tipoViagem"`
	Agencia          string    `json:"agencia,omitempty"`
	Observacao       string    `json:"observacao,omitempty"`
	TeveAvaria       string    `json:"teveAvaria"`
	DescricaoAvaria  string    `json:"descricaoAvaria,omitempty"`
}

// Saida registers a vehicle leaving the yard.
type Saida struct {
	ID                int64     `json:"id"`
	DataHora          time.Time `json:"dataHora"`
	MatriculaVeiculo  string    `json:"MatriculaVeiculo"`
	CodigoVeiculo     string    `json:"codigoVeiculo"`
	PasseMotorista    string    `json:"passeMotorista"`
	PasseCobrador     string    `json:"passeCobrador,omitempty"`
	KilometragemFinal int64     `json:"kilometragemFinal"`
	TipoViagem        string    `json:"tipoViagem"`
	Agencia           string    `json:"agencia,omitempty"`
	Observacao        string    `json:"observacao,omitempty"`
}

type Abastecimento struct {
	ID           int64  `json:"id"`
	DataHora     string `json:"dataHora"`
	Matricula    string `json:"matricula"`
	Posto        string `json:"posto,omitempty"`
	Combustivel  int64  `json:"combustivel"`
	Kilometragem string `json:"kilometragem,omitempty"`
}

type Manutencao struct {
	ID           int64    `json:"id"`
	PlacaVeiculo string   `json:"placa_veiculo"`
	Kilometragem int64    `json:"kilometragem"`
	Situacao     string   `json:"situacao"`
	Itens        []string `json:"itens,omitempty"`
}
