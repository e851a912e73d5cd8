package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/http/middleware"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/mail"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/repositories"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/services"
)

func deliveryImageURL(list []models.Entrega) []models.Entrega {
	for i := range list {
		if list[i].Imagem != "" {
			list[i].Imagem = env.PublicURL + "/uploads/" + list[i].Imagem
		}
	}
	return list
}

// POST /admin/entregas (multipart, imagem obrigatória)
func CreateDelivery(c *gin.Context) {
	e := models.Entrega{
		NomeDestinatario:        strings.TrimSpace(c.PostForm("nomeDestinatario")),
		BI:                      strings.TrimSpace(c.PostForm("bi")),
		NumeroDestinatario:      strings.TrimSpace(c.PostForm("numeroDestinatario")),
		NumeroRemetente:         strings.TrimSpace(c.PostForm("numeroRemetente")),
		TipoCarga:               strings.TrimSpace(c.PostForm("tipoCarga")),
		AgenciaEntregaProvincia: strings.TrimSpace(c.PostForm("agenciaEntregaProvincia")),
		AgenciaEntregaMunicipio: strings.TrimSpace(c.PostForm("agenciaEntregaMunicipio")),
		AgenciaBuscaProvincia:   strings.TrimSpace(c.PostForm("agenciaBuscaProvincia")),
		AgenciaBuscaMunicipio:   strings.TrimSpace(c.PostForm("agenciaBuscaMunicipio")),
		Descricao:               strings.TrimSpace(c.PostForm("descricao")),
		IDUser:                  middleware.GetUserID(c),
	}
	if e.NomeDestinatario == "" || e.BI == "" || e.NumeroDestinatario == "" ||
		e.NumeroRemetente == "" || e.TipoCarga == "" ||
		e.AgenciaEntregaProvincia == "" || e.AgenciaEntregaMunicipio == "" ||
		e.AgenciaBuscaProvincia == "" || e.AgenciaBuscaMunicipio == "" {
		respondError(c, http.StatusBadRequest, "Todos os campos da entrega são obrigatórios.")
		return
	}
	if peso := c.PostForm("peso"); peso != "" {
		v, err := strconv.ParseFloat(peso, 64)
		if err != nil || v < 0 {
			respondError(c, http.StatusBadRequest, "Peso inválido.")
			return
		}
		e.Peso = v
	}

	imagem, err := uploads.RequireImage(c, "imagem")
	if err != nil {
		respondError(c, http.StatusBadRequest, "A imagem da carga é obrigatória.")
		return
	}
	e.Imagem = imagem

	repo := repositories.DeliveryRepository{}
	id, err := repo.Create(e)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"estado": "sucesso", "id": id})
}

// GET /admin/all/entregas
// Pedidos pendentes, mais recentes primeiro.
func GetPendingDeliveries(c *gin.Context) {
	repo := repositories.DeliveryRepository{}
	list, err := repo.ListByStatuses([]string{models.EntregaPendente})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "entregas": deliveryImageURL(list)})
}

type userDeliveriesInput struct {
	IDUser int64 `json:"idUser"`
}

// POST /admin/all/entregas
// Entregas de um utilizador; sem idUser usa o autenticado.
func GetUserDeliveries(c *gin.Context) {
	var in userDeliveriesInput
	if !bindJSON(c, &in) {
		return
	}
	if in.IDUser <= 0 {
		in.IDUser = middleware.GetUserID(c)
	}

	repo := repositories.DeliveryRepository{}
	list, err := repo.ListByUser(in.IDUser)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "entregas": deliveryImageURL(list)})
}

// GET /admin/all/entregas/trips
// Entregas aceites ou já entregues.
func GetAcceptedDeliveries(c *gin.Context) {
	repo := repositories.DeliveryRepository{}
	list, err := repo.ListByStatuses([]string{models.EntregaAceite, models.EntregaEntregue})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "entregas": deliveryImageURL(list)})
}

// GET /admin/all/entregas/trip
// Entregas atualmente em viagem.
func GetInTransitDeliveries(c *gin.Context) {
	repo := repositories.DeliveryRepository{}
	list, err := repo.ListByStatuses([]string{models.EntregaEmViagem})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "entregas": deliveryImageURL(list)})
}

type aceitarInput struct {
	ID    int64 `json:"id"`
	Valor int64 `json:"valor"`
}

// PUT /admin/entregas/aceitar
// Aceita o pedido, fixa o valor do frete e avisa o dono.
func AcceptDelivery(c *gin.Context) {
	var in aceitarInput
	if !bindJSON(c, &in) {
		return
	}
	if in.ID <= 0 || in.Valor <= 0 {
		respondError(c, http.StatusBadRequest, "Entrega e valor positivo são obrigatórios.")
		return
	}

	repo := repositories.DeliveryRepository{}
	entrega, err := repo.GetByID(in.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := repo.SetAccepted(in.ID, in.Valor); err != nil {
		RespondDomainError(c, err)
		return
	}

	userRepo := repositories.UserRepository{}
	if email, err := userRepo.EmailOf(entrega.IDUser); err == nil {
		mail.SendAsync(mailSender, mail.Message{
			To:      email,
			Subject: "Pedido de entrega aceite",
			Text:    fmt.Sprintf("O seu pedido de entrega foi aceite. Valor do frete: %d Kz.", in.Valor),
			HTML:    fmt.Sprintf("<p>O seu pedido de entrega foi aceite. Valor do frete: <b>%d Kz</b>.</p>", in.Valor),
		})
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "mensagem": "Entrega aceite."})
}

type negarInput struct {
	ID int64 `json:"id"`
}

// PUT /admin/entregas/negar
func DenyDelivery(c *gin.Context) {
	var in negarInput
	if !bindJSON(c, &in) {
		return
	}
	if in.ID <= 0 {
		respondError(c, http.StatusBadRequest, "id inválido")
		return
	}

	repo := repositories.DeliveryRepository{}
	entrega, err := repo.GetByID(in.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := repo.SetStatus(in.ID, models.EntregaNegado); err != nil {
		RespondDomainError(c, err)
		return
	}

	userRepo := repositories.UserRepository{}
	if email, err := userRepo.EmailOf(entrega.IDUser); err == nil {
		mail.SendAsync(mailSender, mail.Message{
			To:      email,
			Subject: "Pedido de entrega negado",
			Text:    "O seu pedido de entrega foi negado.",
			HTML:    "<p>O seu pedido de entrega foi negado.</p>",
		})
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "mensagem": "Entrega negada."})
}

type boardCargoInput struct {
	EntregaID        int64 `json:"entregaId"`
	IDViagemIniciada int64 `json:"idViagemIniciada"`
}

// PUT /admin/carga/subir
// Carrega uma entrega numa viagem já em andamento.
func BoardCargo(c *gin.Context) {
	var in boardCargoInput
	if !bindJSON(c, &in) {
		return
	}

	svc := services.TripService{Mailer: mailSender}
	if err := svc.BoardCargo(in.EntregaID, in.IDViagemIniciada); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "mensagem": "Carga embarcada."})
}

type unloadCargoInput struct {
	Cargas []int64 `json:"cargas"`
}

// PUT /admin/viagens/iniciadas/:id/cargas
// Descarrega entregas da viagem; ids fora dela são ignorados.
func UnloadCargo(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in unloadCargoInput
	if !bindJSON(c, &in) {
		return
	}
	if len(in.Cargas) == 0 {
		respondError(c, http.StatusBadRequest, "A lista de cargas não pode estar vazia.")
		return
	}

	svc := services.TripService{Mailer: mailSender}
	count, err := svc.UnloadCargo(id, in.Cargas)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "entregues": count})
}
