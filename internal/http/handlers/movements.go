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

// lastMovement devolve o id mais recente de um registo da viatura, 0 se nenhum.
func lastMovement(table, matricula string) (int64, error) {
	var id int64
	err := intconfig.DB.QueryRow(
		`SELECT COALESCE(MAX(id),0) FROM `+table+` WHERE matricula_veiculo = ?`, matricula,
	).Scan(&id)
	return id, err
}

type saidaInput struct {
	MatriculaVeiculo  string `json:"MatriculaVeiculo"`
	CodigoVeiculo     string `json:"codigoVeiculo"`
	PasseMotorista    string `json:"passeMotorista"`
	PasseCobrador     string `json:"passeCobrador"`
	KilometragemFinal int64  `json:"kilometragemFinal"`
	TipoViagem        string `json:"tipoViagem"`
	Agencia           string `json:"agencia"`
	Observacao        string `json:"observacao"`
}

// POST /admin/saidas
// A primeira movimentação é sempre uma saída; uma saída em aberto (sem a
// entrada correspondente) bloqueia a seguinte.
func CreateExit(c *gin.Context) {
	var in saidaInput
	if !bindJSON(c, &in) {
		return
	}
	in.MatriculaVeiculo = strings.TrimSpace(in.MatriculaVeiculo)
	if in.MatriculaVeiculo == "" || in.PasseMotorista == "" {
		respondError(c, http.StatusBadRequest, "Matrícula e passe do motorista são obrigatórios.")
		return
	}

	var viaturaID int64
	var status string
	err := intconfig.DB.QueryRow(
		`SELECT id, status FROM viaturas WHERE matricula = ?`, in.MatriculaVeiculo,
	).Scan(&viaturaID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, http.StatusNotFound, "Viatura não encontrada.")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar a viatura")
		return
	}

	var motoristaID int64
	err = intconfig.DB.QueryRow(
		`SELECT id FROM motoristas WHERE numero_passe = ?`, in.PasseMotorista,
	).Scan(&motoristaID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, http.StatusNotFound, "Motorista não encontrado.")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar o motorista")
		return
	}

	lastSaida, err := lastMovement("saidas", in.MatriculaVeiculo)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao verificar movimentações")
		return
	}
	lastEntrada, err := lastMovement("entradas", in.MatriculaVeiculo)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao verificar movimentações")
		return
	}
	if lastSaida > 0 && lastEntrada < lastSaida {
		respondError(c, http.StatusBadRequest, "A viatura tem uma saída em aberto sem entrada registada.")
		return
	}

	res, err := intconfig.DB.Exec(
		`INSERT INTO saidas (data_hora, matricula_veiculo, codigo_veiculo, passe_motorista, passe_cobrador,
			kilometragem_final, tipo_viagem, agencia, observacao)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now(), in.MatriculaVeiculo, in.CodigoVeiculo, in.PasseMotorista, in.PasseCobrador,
		in.KilometragemFinal, in.TipoViagem, in.Agencia, in.Observacao,
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao registar a saída")
		return
	}
	if _, err := intconfig.DB.Exec(
		`UPDATE viaturas SET status = ? WHERE id = ?`, models.ViaturaEmUso, viaturaID,
	); err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao atualizar a viatura")
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"estado": "sucesso", "id": id})
}

type entradaInput struct {
	MatriculaVeiculo string `json:"MatriculaVeiculo"`
	CodigoVeiculo    string `json:"codigoVeiculo"`
	PasseMotorista   string `json:"passeMotorista"`
	PasseCobrador    string `json:"passeCobrador"`
	Kilometragem     int64  `json:"kilometragem"`
	TipoViagem       string `json:"tipoViagem"`
	Agencia          string `json:"agencia"`
	Observacao       string `json:"observacao"`
	TeveAvaria       string `json:"teveAvaria"`
	DescricaoAvaria  string `json:"descricaoAvaria"`
}

// POST /admin/entradas
// Só entra quem saiu; a quilometragem tem de avançar face à saída. Avaria
// manda a viatura para Manutenção, caso contrário volta a Disponível.
func CreateEntry(c *gin.Context) {
	var in entradaInput
	if !bindJSON(c, &in) {
		return
	}
	in.MatriculaVeiculo = strings.TrimSpace(in.MatriculaVeiculo)
	if in.MatriculaVeiculo == "" || in.PasseMotorista == "" {
		respondError(c, http.StatusBadRequest, "Matrícula e passe do motorista são obrigatórios.")
		return
	}

	var viaturaID int64
	err := intconfig.DB.QueryRow(
		`SELECT id FROM viaturas WHERE matricula = ?`, in.MatriculaVeiculo,
	).Scan(&viaturaID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, http.StatusNotFound, "Viatura não encontrada.")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar a viatura")
		return
	}

	var lastSaidaID, saidaKm int64
	err = intconfig.DB.QueryRow(
		`SELECT id, kilometragem_final FROM saidas WHERE matricula_veiculo = ? ORDER BY id DESC LIMIT 1`,
		in.MatriculaVeiculo,
	).Scan(&lastSaidaID, &saidaKm)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, http.StatusBadRequest, "Não há saída registada para esta viatura.")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao verificar movimentações")
		return
	}
	lastEntrada, err := lastMovement("entradas", in.MatriculaVeiculo)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao verificar movimentações")
		return
	}
	if lastEntrada > lastSaidaID {
		respondError(c, http.StatusBadRequest, "A viatura já tem entrada registada para a última saída.")
		return
	}
	if in.Kilometragem <= saidaKm {
		respondError(c, http.StatusBadRequest, "A quilometragem da entrada deve ser maior que a da saída.")
		return
	}

	res, err := intconfig.DB.Exec(
		`INSERT INTO entradas (data_hora, matricula_veiculo, codigo_veiculo, passe_motorista, passe_cobrador,
			kilometragem, tipo_viagem, agencia, observacao, teve_avaria, descricao_avaria)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now(), in.MatriculaVeiculo, in.CodigoVeiculo, in.PasseMotorista, in.PasseCobrador,
		in.Kilometragem, in.TipoViagem, in.Agencia, in.Observacao, in.TeveAvaria, in.DescricaoAvaria,
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao registar a entrada")
		return
	}

	newStatus := models.ViaturaDisponivel
	if strings.EqualFold(strings.TrimSpace(in.TeveAvaria), "sim") {
		newStatus = models.ViaturaManutencao
	}
	if _, err := intconfig.DB.Exec(
		`UPDATE viaturas SET status = ? WHERE id = ?`, newStatus, viaturaID,
	); err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao atualizar a viatura")
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"estado": "sucesso", "id": id})
}

// GET /admin/all/saidas
func GetExits(c *gin.Context) {
	rows, err := intconfig.DB.Query(
		`SELECT id, data_hora, matricula_veiculo, codigo_veiculo, passe_motorista, COALESCE(passe_cobrador,''),
			kilometragem_final, tipo_viagem, COALESCE(agencia,''), COALESCE(observacao,'')
		 FROM saidas ORDER BY id DESC`,
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar saídas")
		return
	}
	defer rows.Close()

	list := []models.Saida{}
	for rows.Next() {
		var s models.Saida
		if err := rows.Scan(
			&s.ID, &s.DataHora, &s.MatriculaVeiculo, &s.CodigoVeiculo, &s.PasseMotorista, &s.PasseCobrador,
			&s.KilometragemFinal, &s.TipoViagem, &s.Agencia, &s.Observacao,
		); err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao ler saídas")
			return
		}
		list = append(list, s)
	}
	if len(list) == 0 {
		respondError(c, http.StatusNotFound, "Nenhuma saída registada.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "saidas": list})
}

// GET /admin/all/entradas
func GetEntries(c *gin.Context) {
	rows, err := intconfig.DB.Query(
		`SELECT id, data_hora, matricula_veiculo, codigo_veiculo, passe_motorista, COALESCE(passe_cobrador,''),
			kilometragem, tipo_viagem, COALESCE(agencia,''), COALESCE(observacao,''), teve_avaria, COALESCE(descricao_avaria,'')
		 FROM entradas ORDER BY id DESC`,
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar entradas")
		return
	}
	defer rows.Close()

	list := []models.Entrada{}
	for rows.Next() {
		var e models.Entrada
		if err := rows.Scan(
			&e.ID, &e.DataHora, &e.MatriculaVeiculo, &e.CodigoVeiculo, &e.PasseMotorista, &e.PasseCobrador,
			&e.Kilometragem, &e.TipoViagem, &e.Agencia, &e.Observacao, &e.TeveAvaria, &e.DescricaoAvaria,
		); err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao ler entradas")
			return
		}
		list = append(list, e)
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "entradas": list})
}
