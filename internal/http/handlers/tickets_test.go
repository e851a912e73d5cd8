package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	intconfig "github.com/GuiGui-Web114/ARTSys-Back/internal/config"
)

// newMockDB troca a ligação global por um sqlmock durante o teste.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	prev := intconfig.DB
	intconfig.DB = db
	t.Cleanup(func() {
		intconfig.DB = prev
		db.Close()
	})
	return mock
}

func jsonContext(t *testing.T, method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func ticketRow(vendidos, maxPessoas int, validoAte time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "id_viagem", "tipo_bilhete", "preco", "vendidos", "max_pessoas",
		"data_partida", "valido_ate", "horario", "contato_agencia", "status",
	}).AddRow(7, 9, "Normal", 5000, vendidos, maxPessoas, validoAte.Add(-time.Hour), validoAte, "08:00", "923111222", "Disponível")
}

func TestBuyTicketRejectsExpired(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("FROM viagens WHERE").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "destino", "id_viatura"}).
			AddRow(9, "Lubango", nil))
	mock.ExpectQuery("FROM bilhetes b WHERE b.id_viagem").
		WithArgs(int64(9), "Disponível").
		WillReturnRows(ticketRow(0, 40, time.Now().Add(-time.Hour)))

	c, w := jsonContext(t, http.MethodPost, `{"idViagem":9,"nome":"Ana"}`)
	BuyTicket(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Este bilhete já não está à venda.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBuyTicketRejectsSoldOut(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("FROM viagens WHERE").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "destino", "id_viatura"}).
			AddRow(9, "Lubango", nil))
	mock.ExpectQuery("FROM bilhetes b WHERE b.id_viagem").
		WithArgs(int64(9), "Disponível").
		WillReturnRows(ticketRow(40, 40, time.Now().Add(24*time.Hour)))

	c, w := jsonContext(t, http.MethodPost, `{"idViagem":9,"nome":"Ana"}`)
	BuyTicket(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Lotação esgotada para este bilhete.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBuyReservationRejectsAlreadyPurchased(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("FROM reservas WHERE codigo_reserva").
		WithArgs("RES-000123").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "nome", "bi", "contacto", "id_bilhete", "id_user", "codigo_reserva", "status",
		}).AddRow(4, "Ana", "123456789LA001", "+244923456789", 7, 30, "RES-000123", "Comprado"))

	c, w := jsonContext(t, http.MethodPost, `{"codigoReserva":"RES-000123"}`)
	BuyReservation(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Esta reserva já foi comprada.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
