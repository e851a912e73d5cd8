package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	intconfig "github.com/GuiGui-Web114/ARTSys-Back/internal/config"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
)

type manutencaoInput struct {
	PlacaVeiculo string   `json:"placa_veiculo"`
	Kilometragem int64    `json:"kilometragem"`
	Situacao     string   `json:"situacao"`
	Itens        []string `json:"itens"`
}

// POST /admin/add/manutencao
// Cada item verificado vira uma linha própria em manutencao_itens.
func CreateMaintenance(c *gin.Context) {
	var in manutencaoInput
	if !bindJSON(c, &in) {
		return
	}
	in.PlacaVeiculo = strings.TrimSpace(in.PlacaVeiculo)
	if in.PlacaVeiculo == "" {
		respondError(c, http.StatusBadRequest, "A placa do veículo é obrigatória.")
		return
	}
	if in.Situacao == "" {
		in.Situacao = models.ManutencaoEntrada
	}

	tx, err := intconfig.DB.Begin()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao registar a manutenção")
		return
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO manutencoes (placa_veiculo, kilometragem, situacao) VALUES (?, ?, ?)`,
		in.PlacaVeiculo, in.Kilometragem, in.Situacao,
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao registar a manutenção")
		return
	}
	id, _ := res.LastInsertId()

	for _, item := range in.Itens {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, err := tx.Exec(
			`INSERT INTO manutencao_itens (manutencao_id, nome) VALUES (?, ?)`, id, item,
		); err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao registar os itens da manutenção")
			return
		}
	}

	if _, err := tx.Exec(
		`UPDATE viaturas SET status = ? WHERE matricula = ?`, models.ViaturaManutencao, in.PlacaVeiculo,
	); err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao atualizar a viatura")
		return
	}

	if err := tx.Commit(); err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao registar a manutenção")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"estado": "sucesso", "id": id})
}

// GET /admin/manutencao
func GetMaintenances(c *gin.Context) {
	rows, err := intconfig.DB.Query(
		`SELECT id, placa_veiculo, kilometragem, situacao FROM manutencoes ORDER BY id DESC`,
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar manutenções")
		return
	}
	defer rows.Close()

	list := []models.Manutencao{}
	index := map[int64]int{}
	for rows.Next() {
		var m models.Manutencao
		if err := rows.Scan(&m.ID, &m.PlacaVeiculo, &m.Kilometragem, &m.Situacao); err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao ler manutenções")
			return
		}
		m.Itens = []string{}
		index[m.ID] = len(list)
		list = append(list, m)
	}

	itemRows, err := intconfig.DB.Query(`SELECT manutencao_id, nome FROM manutencao_itens ORDER BY id ASC`)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar itens de manutenção")
		return
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var id int64
		var item string
		if err := itemRows.Scan(&id, &item); err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao ler itens de manutenção")
			return
		}
		if i, ok := index[id]; ok {
			list[i].Itens = append(list[i].Itens, item)
		}
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "manutencoes": list})
}

type situacaoInput struct {
	Situacao string `json:"situacao"`
}

// PUT /admin/manutencao/:id
// Quando a manutenção fica Pronto a viatura volta a Disponível.
func UpdateMaintenanceStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in situacaoInput
	if !bindJSON(c, &in) {
		return
	}
	if in.Situacao == "" {
		respondError(c, http.StatusBadRequest, "A situação é obrigatória.")
		return
	}

	res, err := intconfig.DB.Exec(`UPDATE manutencoes SET situacao = ? WHERE id = ?`, in.Situacao, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao atualizar a manutenção")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		respondError(c, http.StatusNotFound, "manutenção não encontrada")
		return
	}

	if in.Situacao == models.ManutencaoPronto {
		if _, err := intconfig.DB.Exec(
			`UPDATE viaturas SET status = ? WHERE matricula = (SELECT placa_veiculo FROM manutencoes WHERE id = ?)`,
			models.ViaturaDisponivel, id,
		); err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao atualizar a viatura")
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "mensagem": "Situação atualizada."})
}
