package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "github.com/GuiGui-Web114/ARTSys-Back/internal/config"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
)

type abastecimentoInput struct {
	Matricula    string `json:"matricula"`
	Posto        string `json:"posto"`
	Combustivel  int64  `json:"combustivel"`
	Kilometragem string `json:"kilometragem"`
}

// POST /admin/abastecimentos
func CreateRefuel(c *gin.Context) {
	var in abastecimentoInput
	if !bindJSON(c, &in) {
		return
	}
	in.Matricula = strings.TrimSpace(in.Matricula)
	if in.Matricula == "" || in.Combustivel <= 0 {
		respondError(c, http.StatusBadRequest, "Matrícula e litros de combustível são obrigatórios.")
		return
	}

	var viaturaID int64
	err := intconfig.DB.QueryRow(`SELECT id FROM viaturas WHERE matricula = ?`, in.Matricula).Scan(&viaturaID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, http.StatusNotFound, "Viatura não encontrada.")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar a viatura")
		return
	}

	res, err := intconfig.DB.Exec(
		`INSERT INTO abastecimentos (data_hora, matricula, posto, combustivel, kilometragem) VALUES (?, ?, ?, ?, ?)`,
		time.Now().Format("2006-01-02 15:04:05"), in.Matricula, in.Posto, in.Combustivel, in.Kilometragem,
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao registar o abastecimento")
		return
	}
	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"estado": "sucesso", "id": id})
}

// GET /admin/all/abastecimentos
func GetRefuels(c *gin.Context) {
	rows, err := intconfig.DB.Query(
		`SELECT id, data_hora, matricula, COALESCE(posto,''), combustivel, COALESCE(kilometragem,'')
		 FROM abastecimentos ORDER BY id DESC`,
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar abastecimentos")
		return
	}
	defer rows.Close()

	list := []models.Abastecimento{}
	for rows.Next() {
		var a models.Abastecimento
		if err := rows.Scan(&a.ID, &a.DataHora, &a.Matricula, &a.Posto, &a.Combustivel, &a.Kilometragem); err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao ler abastecimentos")
			return
		}
		list = append(list, a)
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "abastecimentos": list})
}
