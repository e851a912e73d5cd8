package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/repositories"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/services"
)

// Limite superior de estoque, herdado do esquema INT da tabela.
const maxStock = 2147483647

type requisitionInput struct {
	Requerente   string                   `json:"requerente"`
	Departamento string                   `json:"departamento"`
	Detalhes     string                   `json:"detalhes"`
	Materiais    []models.RequisitionItem `json:"materiais"`
}

// POST /admin/requerir
func CreateRequisition(c *gin.Context) {
	var in requisitionInput
	if !bindJSON(c, &in) {
		return
	}
	if strings.TrimSpace(in.Requerente) == "" || len(in.Materiais) == 0 {
		respondError(c, http.StatusBadRequest, "Requerente e materiais são obrigatórios.")
		return
	}
	for _, item := range in.Materiais {
		if strings.TrimSpace(item.Nome) == "" || item.Quantidade <= 0 {
			respondError(c, http.StatusBadRequest, "Cada material precisa de nome e quantidade positiva.")
			return
		}
	}

	reqRepo := repositories.RequisitionRepository{}
	dep, err := reqRepo.GetDepartamentoByName(strings.TrimSpace(in.Departamento))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	id, err := reqRepo.Create(models.Requisition{
		Requerente:     in.Requerente,
		DepartamentoID: dep.ID,
		Detalhes:       in.Detalhes,
		Materiais:      in.Materiais,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"estado": "sucesso", "id": id})
}

// GET /admin/reqs
func GetRequisitions(c *gin.Context) {
	reqRepo := repositories.RequisitionRepository{}
	list, err := reqRepo.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "requisicoes": list})
}

// PUT /admin/reqs/:id
// Aloca o estoque disponível; 206 quando a requisição fica parcial.
func AllocateRequisition(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	svc := services.AllocatorService{}
	result, err := svc.Allocate(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	status := http.StatusOK
	if result.Partial {
		status = http.StatusPartialContent
	}
	c.JSON(status, gin.H{
		"estado":     "sucesso",
		"mensagem":   result.Message,
		"requisicao": result.Requisition,
	})
}

// PUT /admin/reqs/no/:id
func RejectRequisition(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	setRequisitionStatus(c, id, models.ReqStatusRejeitado, "Requisição rejeitada.")
}

// PUT /admin/reqs/on/:id
func ReopenRequisition(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	setRequisitionStatus(c, id, models.ReqStatusEmAndamento, "Requisição em andamento.")
}

type requisitionIDInput struct {
	ID int64 `json:"id"`
}

// PUT /admin/pedidos/aceitar
func PermitRequisition(c *gin.Context) {
	var in requisitionIDInput
	if !bindJSON(c, &in) {
		return
	}
	setRequisitionStatus(c, in.ID, models.ReqStatusPermitido, "Requisição permitida.")
}

// PUT /admin/pedidos/negar
func DenyRequisition(c *gin.Context) {
	var in requisitionIDInput
	if !bindJSON(c, &in) {
		return
	}
	setRequisitionStatus(c, in.ID, models.ReqStatusRejeitado, "Requisição rejeitada.")
}

func setRequisitionStatus(c *gin.Context, id int64, status, msg string) {
	if id <= 0 {
		respondError(c, http.StatusBadRequest, "id inválido")
		return
	}
	reqRepo := repositories.RequisitionRepository{}
	if err := reqRepo.UpdateStatus(id, status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "mensagem": msg})
}

// GET /admin/departamentos
func GetDepartments(c *gin.Context) {
	reqRepo := repositories.RequisitionRepository{}
	list, err := reqRepo.ListDepartamentos()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "departamentos": list})
}

// GET /admin/material
func GetMaterials(c *gin.Context) {
	matRepo := repositories.MaterialRepository{}
	list, err := matRepo.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "materiais": list})
}

// POST /admin/material
func CreateMaterial(c *gin.Context) {
	var in models.Material
	if !bindJSON(c, &in) {
		return
	}
	if strings.TrimSpace(in.Nome) == "" || in.Quantidade < 0 {
		respondError(c, http.StatusBadRequest, "Nome e quantidade válida são obrigatórios.")
		return
	}

	matRepo := repositories.MaterialRepository{}
	id, err := matRepo.Create(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"estado": "sucesso", "id": id})
}

type restockInput struct {
	ID         int64 `json:"id"`
	Quantidade int   `json:"quantidade"`
}

// PUT /admin/material/estoque
func RestockMaterial(c *gin.Context) {
	var in restockInput
	if !bindJSON(c, &in) {
		return
	}
	if in.ID <= 0 {
		respondError(c, http.StatusBadRequest, "id inválido")
		return
	}
	if in.Quantidade <= 0 {
		respondError(c, http.StatusBadRequest, "A quantidade deve ser positiva.")
		return
	}

	matRepo := repositories.MaterialRepository{}
	m, err := matRepo.GetByID(in.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if int64(m.Quantidade)+int64(in.Quantidade) > maxStock {
		RespondDomainError(c, domain.ConflictError{Resource: "material", Msg: "limite de estoque excedido"})
		return
	}
	if err := matRepo.Increment(in.ID, in.Quantidade); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "mensagem": "Estoque atualizado."})
}
