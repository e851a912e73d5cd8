package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain"
)

func TestDecrementGuardsStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := MaterialRepository{DB: db}

	mock.ExpectExec("UPDATE materiais SET quantidade = quantidade -").
		WithArgs(10, int64(1), 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.Decrement(db, 1, 10); err != nil {
		t.Fatalf("decrement error: %v", err)
	}

	// sem estoque suficiente a cláusula WHERE não altera nenhuma linha
	mock.ExpectExec("UPDATE materiais SET quantidade = quantidade -").
		WithArgs(50, int64(1), 50).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.Decrement(db, 1, 50)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByNameNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := MaterialRepository{DB: db}

	mock.ExpectQuery("FROM materiais").WithArgs("inexistente").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "quantidade", "descricao"}))

	_, err = repo.GetByName(db, "inexistente")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
