package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain"
)

func TestIncrementVendidosGuardsCapacity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := TicketRepository{DB: db}

	mock.ExpectExec("UPDATE bilhetes SET vendidos = vendidos").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.IncrementVendidos(3); err != nil {
		t.Fatalf("increment error: %v", err)
	}

	// com lotação cheia a cláusula WHERE não altera nenhuma linha
	mock.ExpectExec("UPDATE bilhetes SET vendidos = vendidos").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.IncrementVendidos(3)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
