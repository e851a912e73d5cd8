package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func TestGetAgenciesListsDirectory(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("FROM agencias a").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "municipio_id", "municipio", "provincia"}).
			AddRow(1, "Agência Central", 2, "Lubango", "Huíla").
			AddRow(2, "Agência Viana", 5, "Viana", "Luanda"))

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	GetAgencies(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Agência Central") || !strings.Contains(body, "Huíla") {
		t.Fatalf("unexpected body: %s", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateCargoRecordRequiresProductAndRecipient(t *testing.T) {
	newMockDB(t)

	c, w := jsonContext(t, http.MethodPost, `{"nomeProduto":"Peças"}`)
	CreateCargoRecord(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Produto e destinatário são obrigatórios.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestCreateCargoRecordStoresNullOptionalIDs(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO cargas").
		WithArgs("Peças", "João Baptista", int64(1), nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(8, 1))

	c, w := jsonContext(t, http.MethodPost, `{"nomeProduto":"Peças","destinatario":"João Baptista","agenciaId":1}`)
	CreateCargoRecord(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
