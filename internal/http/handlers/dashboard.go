package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	intconfig "github.com/GuiGui-Web114/ARTSys-Back/internal/config"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
)

// GET /admin/dashboard/entregas-mensais
func GetMonthlyDeliveries(c *gin.Context) {
	rows, err := intconfig.DB.Query(
		`SELECT MONTH(created_at) AS mes, COUNT(*) FROM entregas
		 WHERE status = ? AND YEAR(created_at) = YEAR(CURDATE())
		 GROUP BY MONTH(created_at) ORDER BY mes ASC`,
		models.EntregaEntregue,
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar estatísticas")
		return
	}
	defer rows.Close()

	type mensal struct {
		Mes   int `json:"mes"`
		Total int `json:"total"`
	}
	list := []mensal{}
	for rows.Next() {
		var m mensal
		if err := rows.Scan(&m.Mes, &m.Total); err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao ler estatísticas")
			return
		}
		list = append(list, m)
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "entregasMensais": list})
}

// GET /admin/dashboard/estatisticas
func GetStatistics(c *gin.Context) {
	stats := gin.H{}
	counts := []struct {
		key   string
		query string
	}{
		{"motoristas", `SELECT COUNT(*) FROM motoristas`},
		{"viaturasDisponiveis", `SELECT COUNT(*) FROM viaturas WHERE status = 'Disponível'`},
		{"entregasAtivas", `SELECT COUNT(*) FROM entregas WHERE status = 'Em Viagem'`},
		{"entregasNegadas", `SELECT COUNT(*) FROM entregas WHERE status = 'Negado'`},
	}
	for _, q := range counts {
		var n int64
		if err := intconfig.DB.QueryRow(q.query).Scan(&n); err != nil {
			respondError(c, http.StatusInternalServerError, "falha ao buscar estatísticas")
			return
		}
		stats[q.key] = n
	}
	c.JSON(http.StatusOK, gin.H{"estado": "sucesso", "estatisticas": stats})
}

// GET /admin/dashboard/eficiencia-veiculo/:matricula
// Km por litro a partir do próprio registo de abastecimentos: a distância é a
// diferença entre a quilometragem do primeiro e do último abastecimento.
func GetVehicleEfficiency(c *gin.Context) {
	matricula := strings.TrimSpace(c.Param("matricula"))
	if matricula == "" {
		respondError(c, http.StatusBadRequest, "matrícula inválida")
		return
	}

	var registos, totalFuel int64
	err := intconfig.DB.QueryRow(
		`SELECT COUNT(id), COALESCE(SUM(combustivel),0) FROM abastecimentos WHERE matricula = ?`, matricula,
	).Scan(&registos, &totalFuel)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar abastecimentos")
		return
	}
	if registos < 2 {
		c.JSON(http.StatusOK, gin.H{
			"estado":     "sucesso",
			"kmPorLitro": nil,
			"mensagem":   "Dados insuficientes para calcular a eficiência.",
		})
		return
	}

	var kmInicio, kmFim int64
	if err := intconfig.DB.QueryRow(
		`SELECT CAST(kilometragem AS SIGNED) FROM abastecimentos WHERE matricula = ? ORDER BY id ASC LIMIT 1`,
		matricula,
	).Scan(&kmInicio); err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar quilometragem")
		return
	}
	if err := intconfig.DB.QueryRow(
		`SELECT CAST(kilometragem AS SIGNED) FROM abastecimentos WHERE matricula = ? ORDER BY id DESC LIMIT 1`,
		matricula,
	).Scan(&kmFim); err != nil {
		respondError(c, http.StatusInternalServerError, "falha ao buscar quilometragem")
		return
	}

	if totalFuel == 0 {
		c.JSON(http.StatusOK, gin.H{
			"estado":     "sucesso",
			"kmPorLitro": nil,
			"mensagem":   "Consumo de combustível zero no período registado.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"estado":      "sucesso",
		"matricula":   matricula,
		"distanciaKm": kmFim - kmInicio,
		"litros":      totalFuel,
		"kmPorLitro":  float64(kmFim-kmInicio) / float64(totalFuel),
	})
}
