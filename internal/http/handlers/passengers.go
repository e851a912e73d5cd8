package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/repositories"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/services"
)

type passageiroInput struct {
	Nome             string `json:"nome"`
	BI               string `json:"bi"`
	Contacto         string `json:"contacto"`
	IDViagem         int64  `json:"idViagem"`
	FicarPeloCaminho bool   `json:"ficarPeloCaminho"`
}

// POST /admin/passageiros
// Registo direto: a viagem e o seu bilhete disponível precisam de existir.
func CreatePassenger(c *gin.Context) {
	var in passageiroInput
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
	if err := ticketRepo.IncrementVendidos(bilhete.ID); err != nil {
		RespondDomainError(c, err)
		return
	}

	passRepo := repositories.PassengerRepository{}
	id, err := passRepo.Create(models.Passageiro{
		Nome:             in.Nome,
		BI:               in.BI,
		Contacto:         in.Contacto,
		IDViagem:         in.IDViagem,
		IDBilhete:        bilhete.ID,
		FicarPeloCaminho: in.FicarPeloCaminho,
	})
	if err != nil {
		_ = ticketRepo.DecrementVendidos(bilhete.ID)
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"estado": "sucesso", "id": id})
}

// GET /admin/passageiros
// Lista os passageiros com bilhete ainda por usar.
func GetPassengers(c *gin.Context) {
	passRepo := repositories.PassengerRepository{}
	list, err := passRepo.ListByUse(models.BilheteNaoUsado)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "passageiros": list})
}

// GET /admin/passageiros/re
func GetAllPassengers(c *gin.Context) {
	passRepo := repositories.PassengerRepository{}
	list, err := passRepo.ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "passageiros": list})
}

// GET /admin/passageiros/viagensIn
// Passageiros a bordo de viagens em andamento.
func GetPassengersAboard(c *gin.Context) {
	passRepo := repositories.PassengerRepository{}
	list, err := passRepo.ListAboard()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "passageiros": list})
}

// DELETE /admin/passageiros/:id
// Devolve a vaga do bilhete ao remover o passageiro.
func DeletePassenger(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	passRepo := repositories.PassengerRepository{}
	p, err := passRepo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := passRepo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	ticketRepo := repositories.TicketRepository{}
	_ = ticketRepo.DecrementVendidos(p.IDBilhete)

	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "mensagem": "Passageiro removido."})
}

type boardPassengerInput struct {
	PassageiroID     int64 `json:"passageiroId"`
	IDViagemIniciada int64 `json:"idViagemIniciada"`
}

// PUT /admin/passageiro/subir
// Embarca um passageiro atrasado numa viagem já em andamento.
func BoardPassenger(c *gin.Context) {
	var in boardPassengerInput
	if !bindJSON(c, &in) {
		return
	}

	svc := services.TripService{Mailer: mailSender}
	if err := svc.BoardPassenger(in.PassageiroID, in.IDViagemIniciada); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "mensagem": "Passageiro embarcado."})
}

type alightInput struct {
	Passageiros []int64 `json:"passageiros"`
}

// PUT /admin/viagens/iniciadas/:id/passenger
// Marca passageiros como descidos; ids fora da viagem são ignorados.
func AlightPassengers(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in alightInput
	if !bindJSON(c, &in) {
		return
	}
	if len(in.Passageiros) == 0 {
		respondError(c, http.StatusBadRequest, "A lista de passageiros não pode estar vazia.")
		return
	}

	svc := services.TripService{Mailer: mailSender}
	count, err := svc.AlightPassengers(id, in.Passageiros)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "descidos": count})
}
