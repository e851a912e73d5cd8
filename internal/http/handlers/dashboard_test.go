package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func efficiencyContext(t *testing.T, matricula string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "matricula", Value: matricula}}
	return c, w
}

func TestVehicleEfficiencyNeedsTwoRefuels(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("FROM abastecimentos WHERE matricula =").
		WithArgs("LD-10-10-AA").
		WillReturnRows(sqlmock.NewRows([]string{"registos", "total"}).AddRow(1, 40))

	c, w := efficiencyContext(t, "LD-10-10-AA")
	GetVehicleEfficiency(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Dados insuficientes para calcular a eficiência.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// A distância sai da quilometragem do primeiro e do último abastecimento,
// não de qualquer outro registo da viatura.
func TestVehicleEfficiencyFromRefuelLog(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("FROM abastecimentos WHERE matricula =").
		WithArgs("LD-10-10-AA").
		WillReturnRows(sqlmock.NewRows([]string{"registos", "total"}).AddRow(3, 100))
	mock.ExpectQuery("ORDER BY id ASC LIMIT 1").
		WithArgs("LD-10-10-AA").
		WillReturnRows(sqlmock.NewRows([]string{"kilometragem"}).AddRow(12000))
	mock.ExpectQuery("ORDER BY id DESC LIMIT 1").
		WithArgs("LD-10-10-AA").
		WillReturnRows(sqlmock.NewRows([]string{"kilometragem"}).AddRow(13000))

	c, w := efficiencyContext(t, "LD-10-10-AA")
	GetVehicleEfficiency(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"distanciaKm":1000`) {
		t.Fatalf("unexpected distance in body: %s", body)
	}
	if !strings.Contains(body, `"kmPorLitro":10`) {
		t.Fatalf("unexpected efficiency in body: %s", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVehicleEfficiencyZeroFuel(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("FROM abastecimentos WHERE matricula =").
		WithArgs("LD-10-10-AA").
		WillReturnRows(sqlmock.NewRows([]string{"registos", "total"}).AddRow(2, 0))
	mock.ExpectQuery("ORDER BY id ASC LIMIT 1").
		WithArgs("LD-10-10-AA").
		WillReturnRows(sqlmock.NewRows([]string{"kilometragem"}).AddRow(12000))
	mock.ExpectQuery("ORDER BY id DESC LIMIT 1").
		WithArgs("LD-10-10-AA").
		WillReturnRows(sqlmock.NewRows([]string{"kilometragem"}).AddRow(12000))

	c, w := efficiencyContext(t, "LD-10-10-AA")
	GetVehicleEfficiency(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Consumo de combustível zero no período registado.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
