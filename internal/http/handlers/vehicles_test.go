package handlers

import (
	"bytes"
	"database/sql"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func multipartContext(t *testing.T, fields map[string]string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field error: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer error: %v", err)
	}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", &buf)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	return c, w
}

// Sem motorista no formulário a coluna motorista_id tem de ficar NULL,
// nunca um zero que aponte para um registo inexistente.
func TestCreateVehicleWithoutDriverStoresNull(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT id FROM modelos WHERE").
		WithArgs("Coaster").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO modelos").
		WithArgs("Coaster", int64(0)).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO viaturas").
		WithArgs("LD-11-22-AB", "V07", int64(5), nil, "Disponível", "").
		WillReturnResult(sqlmock.NewResult(12, 1))

	c, w := multipartContext(t, map[string]string{
		"matricula": "LD-11-22-AB",
		"codigo":    "V07",
		"modelo":    "Coaster",
	})
	CreateVehicle(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
