package models

import "time"

// Uso do bilhete pelo passageiro.
const (
	BilheteUsado    = "Usado"
	BilheteNaoUsado = "Não Usado"
)

// Estado de uma viagem iniciada.
const (
	ViagemEmAndamento = "Em andamento"
	ViagemTerminada   = "Terminada"
)

// Estado de uma reserva.
const (
	ReservaReservado = "Reservado"
	ReservaComprado  = "Comprado"
)

const BilheteDisponivel = "Disponível"

type Viagem struct {
	ID        int64  `json:"id"`
	Destino   string `json:"destino"`
	IDViatura *int64 `json:"idViatura,omitempty"`
}

type Bilhete struct {
	ID             int64     `json:"id"`
	IDViagem       int64     `json:"idViagem"`
	TipoBilhete    string    `json:"tipoBilhete"`
	Preco          int64     `json:"preco"`
	Vendidos       int       `json:"vendidos"`
	MaxPessoas     int       `json:"maxPessoas"`
	DataPartida    time.Time `json:"dataPartida"`
	ValidoAte      time.Time `json:"validoAte"`
	Horario        string    `json:"horario"`
	ContatoAgencia string    `json:"contatoAgencia"`
	Status         string    `json:"status"`
	Destino        string    `json:"destino,omitempty"`
}

type Passageiro struct {
	ID               int64  `json:"id"`
	Nome             string `json:"nome"`
	BI               string `json:"bi"`
	Contacto         string `json:"contacto"`
	IDViagem         int64  `json:"idViagem"`
	IDBilhete        int64  `json:"idBilhete"`
	FicarPeloCaminho bool   `json:"ficarPeloCaminho"`
	Desceu           bool   `json:"desceu"`
	BilheteUse       string `json:"BilheteUse"`
	IDViagemIniciada *int64 `json:"idViagemIniciada,omitempty"`

	// joined fields
	TipoBilhete string `json:"tipoBilhete,omitempty"`
	DataPartida string `json:"dataPartida,omitempty"`
	Destino     string `json:"destino,omitempty"`
}

type Reserva struct {
	ID            int64  `json:"id"`
	Nome          string `json:"nome"`
	BI            string `json:"bi"`
	Contacto      string `json:"contacto"`
	IDBilhete     int64  `json:"idBilhete"`
	IDUser        int64  `json:"user"`
	CodigoReserva string `json:"codigoReserva"`
	Status        string `json:"status"`

	TipoBilhete string `json:"tipoBilhete,omitempty"`
	Destino     string `json:"destino,omitempty"`
}

type ViagemIniciada struct {
	ID         int64     `json:"id"`
	IDViagem   int64     `json:"idViagem"`
	IDViatura  *int64    `json:"idViatura,omitempty"`
	DataInicio time.Time `json:"dataInicio"`
	Status     string    `json:"status"`
	Destino    string    `json:"destino,omitempty"`
}
