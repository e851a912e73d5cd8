package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GuiGui-Web114/ARTSys-Back/internal/repositories"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/services"
)

type viagemInput struct {
	Destino   string `json:"destino"`
	IDViatura *int64 `json:"idViatura"`
}

// POST /admin/viagens
func CreateTrip(c *gin.Context) {
	var in viagemInput
	if !bindJSON(c, &in) {
		return
	}
	if strings.TrimSpace(in.Destino) == "" {
		respondError(c, http.StatusBadRequest, "O destino é obrigatório.")
		return
	}

	tripRepo := repositories.TripRepository{}
	id, err := tripRepo.Create(in.Destino, in.IDViatura)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"estado": "sucesso", "id": id})
}

// GET /admin/viagens
func GetTrips(c *gin.Context) {
	tripRepo := repositories.TripRepository{}
	list, err := tripRepo.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "viagens": list})
}

// PUT /admin/viagens/:id
func UpdateTrip(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in viagemInput
	if !bindJSON(c, &in) {
		return
	}

	tripRepo := repositories.TripRepository{}
	v, err := tripRepo.Update(id, strings.TrimSpace(in.Destino), in.IDViatura)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "viagem": v})
}

// DELETE /admin/viagens/:id
func DeleteTrip(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	tripRepo := repositories.TripRepository{}
	if err := tripRepo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "mensagem": "Viagem removida."})
}

type startTripInput struct {
	IDViagem             int64   `json:"idViagem"`
	PassageirosPresentes []int64 `json:"passageirosPresentes"`
	EntregasPresentes    []int64 `json:"entregasPresentes"`
}

// POST /admin/viagens/iniciar
func StartTrip(c *gin.Context) {
	var in startTripInput
	if !bindJSON(c, &in) {
		return
	}
	if in.IDViagem <= 0 {
		respondError(c, http.StatusBadRequest, "A viagem é obrigatória.")
		return
	}

	svc := services.TripService{Mailer: mailSender}
	id, err := svc.Start(in.IDViagem, in.PassageirosPresentes, in.EntregasPresentes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"estado": "sucesso", "idViagemIniciada": id})
}

// GET /admin/viagens/iniciadas
func GetStartedTrips(c *gin.Context) {
	tripRepo := repositories.TripRepository{}
	list, err := tripRepo.ListIniciadas()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "viagensIniciadas": list})
}

// PUT /admin/viagens/iniciadas/:id
func FinishTrip(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	svc := services.TripService{Mailer: mailSender}
	if err := svc.Finish(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "mensagem": "Viagem terminada."})
}
