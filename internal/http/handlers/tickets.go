package handlers

import (
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/http/middleware"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/mail"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/repositories"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/services"
)

type bilheteInput struct {
	IDViagem       int64  `json:"idViagem"`
	TipoBilhete    string `json:"tipoBilhete"`
	Preco          int64  `json:"preco"`
	MaxPessoas     int    `json:"maxPessoas"`
	DataPartida    string `json:"dataPartida"`
	ValidoAte      string `json:"validoAte"`
	Horario        string `json:"horario"`
	ContatoAgencia string `json:"contatoAgencia"`
}

// POST /admin/bilhetes
func CreateTicket(c *gin.Context) {
	var in bilheteInput
	if !bindJSON(c, &in) {
		return
	}
	if in.IDViagem <= 0 || in.TipoBilhete == "" || in.Preco <= 0 || in.MaxPessoas <= 0 ||
		in.DataPartida == "" || in.ValidoAte == "" || in.Horario == "" {
		respondError(c, http.StatusBadRequest, "Todos os campos do bilhete são obrigatórios.")
		return
	}
	partida, err := time.Parse("2006-01-02 15:04", in.DataPartida)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Formato de dataPartida deve ser YYYY-MM-DD HH:MM.")
		return
	}
	validoAte, err := time.Parse("2006-01-02 15:04", in.ValidoAte)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Formato de validoAte deve ser YYYY-MM-DD HH:MM.")
		return
	}

	tripRepo := repositories.TripRepository{}
	if _, err := tripRepo.GetByID(in.IDViagem); err != nil {
		RespondDomainError(c, err)
		return
	}

	ticketRepo := repositories.TicketRepository{}
	id, err := ticketRepo.Create(models.Bilhete{
		IDViagem:       in.IDViagem,
		TipoBilhete:    in.TipoBilhete,
		Preco:          in.Preco,
		MaxPessoas:     in.MaxPessoas,
		DataPartida:    partida,
		ValidoAte:      validoAte,
		Horario:        in.Horario,
		ContatoAgencia: in.ContatoAgencia,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"estado": "sucesso", "id": id})
}

// GET /admin/bilhetes
// Cada bilhete sai com o destino da viagem e os passageiros já registados.
func GetTickets(c *gin.Context) {
	ticketRepo := repositories.TicketRepository{}
	list, err := ticketRepo.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	passRepo := repositories.PassengerRepository{}
	all, err := passRepo.ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	byTicket := map[int64][]models.Passageiro{}
	for _, p := range all {
		byTicket[p.IDBilhete] = append(byTicket[p.IDBilhete], p)
	}

	type bilheteOut struct {
		models.Bilhete
		Passageiros []models.Passageiro `json:"passageiros"`
	}
	out := make([]bilheteOut, 0, len(list))
	for _, b := range list {
		ps := byTicket[b.ID]
		if ps == nil {
			ps = []models.Passageiro{}
		}
		out = append(out, bilheteOut{Bilhete: b, Passageiros: ps})
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "bilhetes": out})
}

type compraInput struct {
	IDViagem         int64  `json:"idViagem"`
	Nome             string `json:"nome"`
	BI               string `json:"bi"`
	Contacto         string `json:"contacto"`
	FicarPeloCaminho bool   `json:"ficarPeloCaminho"`
}

// POST /admin/bilhetes/comprar
// Compra no balcão: valida viagem, bilhete disponível, validade e lotação.
func BuyTicket(c *gin.Context) {
	var in compraInput
	if !bindJSON(c, &in) {
		return
	}
	if in.IDViagem <= 0 || strings.TrimSpace(in.Nome) == "" {
		respondError(c, http.StatusBadRequest, "Viagem e nome do passageiro são obrigatórios.")
		return
	}

	tripRepo := repositories.TripRepository{}
	if _, err := tripRepo.GetByID(in.IDViagem); err != nil {
		RespondDomainError(c, err)
		return
	}

	ticketRepo := repositories.TicketRepository{}
	bilhete, err := ticketRepo.GetAvailableForTrip(in.IDViagem)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if services.TicketExpired(bilhete.ValidoAte, time.Now()) {
		respondError(c, http.StatusBadRequest, "Este bilhete já não está à venda.")
		return
	}
	if bilhete.Vendidos >= bilhete.MaxPessoas {
		respondError(c, http.StatusBadRequest, "Lotação esgotada para este bilhete.")
		return
	}
	if err := ticketRepo.IncrementVendidos(bilhete.ID); err != nil {
		RespondDomainError(c, err)
		return
	}

	passRepo := repositories.PassengerRepository{}
	id, err := passRepo.Create(models.Passageiro{
		Nome:             in.Nome,
		BI:               in.BI,
		Contacto:         in.Contacto,
		IDViagem:         bilhete.IDViagem,
		IDBilhete:        bilhete.ID,
		FicarPeloCaminho: in.FicarPeloCaminho,
	})
	if err != nil {
		// devolve a vaga quando o passageiro não pôde ser criado
		_ = ticketRepo.DecrementVendidos(bilhete.ID)
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"estado": "sucesso", "idPassageiro": id})
}

type reservaInput struct {
	IDBilhete int64  `json:"idBilhete"`
	Nome      string `json:"nome"`
	BI        string `json:"bi"`
	Contacto  string `json:"contacto"`
}

// POST /admin/reservas
// Gera um código e envia-o ao e-mail do utilizador autenticado.
func CreateReservation(c *gin.Context) {
	var in reservaInput
	if !bindJSON(c, &in) {
		return
	}
	if in.IDBilhete <= 0 || strings.TrimSpace(in.Nome) == "" ||
		strings.TrimSpace(in.BI) == "" || strings.TrimSpace(in.Contacto) == "" {
		respondError(c, http.StatusBadRequest, "Todos os campos da reserva são obrigatórios.")
		return
	}

	ticketRepo := repositories.TicketRepository{}
	if _, err := ticketRepo.GetByID(in.IDBilhete); err != nil {
		RespondDomainError(c, err)
		return
	}

	userID := middleware.GetUserID(c)
	codigo := fmt.Sprintf("RES-%06d", rand.Intn(1000000))
	id, err := ticketRepo.CreateReserva(models.Reserva{
		Nome:          in.Nome,
		BI:            in.BI,
		Contacto:      in.Contacto,
		IDBilhete:     in.IDBilhete,
		IDUser:        userID,
		CodigoReserva: codigo,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	userRepo := repositories.UserRepository{}
	if email, err := userRepo.EmailOf(userID); err == nil {
		mail.SendAsync(mailSender, mail.Message{
			To:      email,
			Subject: "Reserva de bilhete",
			Text:    fmt.Sprintf("A sua reserva foi criada. Código: %s", codigo),
			HTML:    fmt.Sprintf("<p>A sua reserva foi criada. Código: <b>%s</b></p>", codigo),
		})
	}
	c.JSON(http.StatusCreated, gin.H{"estado": "sucesso", "id": id, "codigoReserva": codigo})
}

// GET /admin/reservas
func GetReservations(c *gin.Context) {
	ticketRepo := repositories.TicketRepository{}
	list, err := ticketRepo.ListReservasByStatus(models.ReservaReservado)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "reservas": list})
}

// GET /admin/reservas/user
func GetMyReservations(c *gin.Context) {
	ticketRepo := repositories.TicketRepository{}
	list, err := ticketRepo.ListReservasByUser(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "reservas": list})
}

// DELETE /admin/reservas/:id
func DeleteReservation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ticketRepo := repositories.TicketRepository{}
	if err := ticketRepo.DeleteReserva(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "mensagem": "Reserva removida."})
}

type comprarReservaInput struct {
	CodigoReserva string `json:"codigoReserva"`
}

// POST /admin/reservas/comprar
// Converte a reserva num passageiro, respeitando validade e lotação.
func BuyReservation(c *gin.Context) {
	var in comprarReservaInput
	if !bindJSON(c, &in) {
		return
	}
	if strings.TrimSpace(in.CodigoReserva) == "" {
		respondError(c, http.StatusBadRequest, "O código da reserva é obrigatório.")
		return
	}

	ticketRepo := repositories.TicketRepository{}
	reserva, err := ticketRepo.GetReservaByCodigo(in.CodigoReserva)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if reserva.Status == models.ReservaComprado {
		respondError(c, http.StatusBadRequest, "Esta reserva já foi comprada.")
		return
	}

	bilhete, err := ticketRepo.GetByID(reserva.IDBilhete)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if services.TicketExpired(bilhete.ValidoAte, time.Now()) {
		respondError(c, http.StatusBadRequest, "Este bilhete já não está à venda.")
		return
	}
	if bilhete.Vendidos >= bilhete.MaxPessoas {
		respondError(c, http.StatusBadRequest, "Lotação esgotada para este bilhete.")
		return
	}
	if err := ticketRepo.IncrementVendidos(bilhete.ID); err != nil {
		RespondDomainError(c, err)
		return
	}

	passRepo := repositories.PassengerRepository{}
	passID, err := passRepo.Create(models.Passageiro{
		Nome:      reserva.Nome,
		BI:        reserva.BI,
		Contacto:  reserva.Contacto,
		IDViagem:  bilhete.IDViagem,
		IDBilhete: bilhete.ID,
	})
	if err != nil {
		_ = ticketRepo.DecrementVendidos(bilhete.ID)
		RespondDomainError(c, err)
		return
	}
	if err := ticketRepo.MarkReservaComprada(reserva.ID); err != nil {
		RespondDomainError(c, err)
		return
	}

	userRepo := repositories.UserRepository{}
	if email, err := userRepo.EmailOf(reserva.IDUser); err == nil {
		mail.SendAsync(mailSender, mail.Message{
			To:      email,
			Subject: "Compra de bilhete",
			Text:    "A sua reserva foi convertida em bilhete. Boa viagem!",
			HTML:    "<p>A sua reserva foi convertida em bilhete. Boa viagem!</p>",
		})
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "idPassageiro": passID})
}
