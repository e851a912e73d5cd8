package models

// Estados de uma entrega de carga.
const (
	EntregaPendente = "Pendente"
	EntregaAceite   = "Aceite"
	EntregaNegado   = "Negado"
	EntregaEmViagem = "Em Viagem"
	EntregaEntregue = "Entregue"
)

type Entrega struct {
	ID                      int64   `json:"id"`
	NomeDestinatario        string  `json:"nomeDestinatario"`
	BI                      string  `json:"bi"`
	NumeroDestinatario      string  `json:"numeroDestinatario"`
	NumeroRemetente         string  `json:"numeroRemetente"`
	TipoCarga               string  `json:"tipoCarga"`
	AgenciaEntregaProvincia string  `json:"agenciaEntregaProvincia"`
	AgenciaEntregaMunicipio string  `json:"agenciaEntregaMunicipio"`
	AgenciaBuscaProvincia   string  `json:"agenciaBuscaProvincia"`
	AgenciaBuscaMunicipio   string  `json:"agenciaBuscaMunicipio"`
	Descricao               string  `json:"descricao"`
	Peso                    float64 `json:"peso,omitempty"`
	Imagem                  string  `json:"imagem,omitempty"`
	IDUser                  int64   `json:"idUser"`
	Valor                   int64   `json:"valor,omitempty"`
	IDViagemIniciada        *int64  `json:"idViagemIniciada,omitempty"`
	Status                  string  `json:"status"`
}
