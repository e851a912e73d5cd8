package services

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/repositories"
)

func newAllocator(t *testing.T) (AllocatorService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := AllocatorService{
		DB:      db,
		ReqRepo: repositories.RequisitionRepository{DB: db},
		MatRepo: repositories.MaterialRepository{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func reqHeaderRows(status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "requerente", "departamento_id", "nome", "detalhes", "status"}).
		AddRow(1, "João", 2, "Logística", "", status)
}

func TestAllocatePartialStock(t *testing.T) {
	svc, mock, done := newAllocator(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM requisicoes r").WithArgs(int64(1)).
		WillReturnRows(reqHeaderRows(models.ReqStatusPendente))
	mock.ExpectQuery("FROM requisicao_itens").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"nome", "quantidade", "estado"}).
			AddRow("papel", 50, models.ItemPendente))

	mock.ExpectQuery("FROM materiais").WithArgs("papel").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "quantidade", "descricao"}).
			AddRow(7, "papel", 30, ""))
	mock.ExpectExec("UPDATE materiais SET quantidade = quantidade -").
		WithArgs(30, int64(7), 30).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec("DELETE FROM requisicao_itens").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO requisicao_itens").
		WithArgs(int64(1), "papel", 30, models.ItemAtendido).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO requisicao_itens").
		WithArgs(int64(1), "papel", 20, models.ItemPendente).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("UPDATE requisicoes SET status").
		WithArgs(models.ReqStatusEmAndamento, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery("FROM requisicoes r").WithArgs(int64(1)).
		WillReturnRows(reqHeaderRows(models.ReqStatusEmAndamento))
	mock.ExpectQuery("FROM requisicao_itens").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"nome", "quantidade", "estado"}).
			AddRow("papel", 30, models.ItemAtendido).
			AddRow("papel", 20, models.ItemPendente))
	mock.ExpectCommit()

	result, err := svc.Allocate(1)
	if err != nil {
		t.Fatalf("allocate error: %v", err)
	}
	if !result.Partial {
		t.Fatalf("expected partial allocation")
	}
	if !strings.Contains(result.Message, "Material 'papel' atendido em 30. 20 pendente.") {
		t.Fatalf("unexpected message: %q", result.Message)
	}
	if result.Requisition.Status != models.ReqStatusEmAndamento {
		t.Fatalf("unexpected status: %q", result.Requisition.Status)
	}
	if len(result.Requisition.Atendidos) != 1 || result.Requisition.Atendidos[0].Quantidade != 30 {
		t.Fatalf("unexpected fulfilled lines: %+v", result.Requisition.Atendidos)
	}
	if len(result.Requisition.Materiais) != 1 || result.Requisition.Materiais[0].Quantidade != 20 {
		t.Fatalf("unexpected pending lines: %+v", result.Requisition.Materiais)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAllocateZeroStockStaysPending(t *testing.T) {
	svc, mock, done := newAllocator(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM requisicoes r").WithArgs(int64(1)).
		WillReturnRows(reqHeaderRows(models.ReqStatusPendente))
	mock.ExpectQuery("FROM requisicao_itens").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"nome", "quantidade", "estado"}).
			AddRow("caneta", 10, models.ItemPendente))

	mock.ExpectQuery("FROM materiais").WithArgs("caneta").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "quantidade", "descricao"}).
			AddRow(3, "caneta", 0, ""))

	mock.ExpectExec("DELETE FROM requisicao_itens").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO requisicao_itens").
		WithArgs(int64(1), "caneta", 10, models.ItemPendente).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE requisicoes SET status").
		WithArgs(models.ReqStatusEmAndamento, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery("FROM requisicoes r").WithArgs(int64(1)).
		WillReturnRows(reqHeaderRows(models.ReqStatusEmAndamento))
	mock.ExpectQuery("FROM requisicao_itens").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"nome", "quantidade", "estado"}).
			AddRow("caneta", 10, models.ItemPendente))
	mock.ExpectCommit()

	result, err := svc.Allocate(1)
	if err != nil {
		t.Fatalf("allocate error: %v", err)
	}
	if !result.Partial {
		t.Fatalf("expected partial allocation")
	}
	if !strings.Contains(result.Message, "Material 'caneta' sem estoque: 10 pendente.") {
		t.Fatalf("unexpected message: %q", result.Message)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAllocateUnknownMaterialAbortsBeforeMutation(t *testing.T) {
	svc, mock, done := newAllocator(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM requisicoes r").WithArgs(int64(1)).
		WillReturnRows(reqHeaderRows(models.ReqStatusPendente))
	mock.ExpectQuery("FROM requisicao_itens").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"nome", "quantidade", "estado"}).
			AddRow("papel", 5, models.ItemPendente).
			AddRow("grampeador", 1, models.ItemPendente))

	mock.ExpectQuery("FROM materiais").WithArgs("papel").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "quantidade", "descricao"}).
			AddRow(7, "papel", 30, ""))
	mock.ExpectQuery("FROM materiais").WithArgs("grampeador").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "quantidade", "descricao"}))
	mock.ExpectRollback()

	_, err := svc.Allocate(1)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Material não encontrado: grampeador") {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAllocateFullStock(t *testing.T) {
	svc, mock, done := newAllocator(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM requisicoes r").WithArgs(int64(1)).
		WillReturnRows(reqHeaderRows(models.ReqStatusPendente))
	mock.ExpectQuery("FROM requisicao_itens").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"nome", "quantidade", "estado"}).
			AddRow("papel", 10, models.ItemPendente))

	mock.ExpectQuery("FROM materiais").WithArgs("papel").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "quantidade", "descricao"}).
			AddRow(7, "papel", 30, ""))
	mock.ExpectExec("UPDATE materiais SET quantidade = quantidade -").
		WithArgs(10, int64(7), 10).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec("DELETE FROM requisicao_itens").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO requisicao_itens").
		WithArgs(int64(1), "papel", 10, models.ItemAtendido).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE requisicoes SET status").
		WithArgs(models.ReqStatusAprovado, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery("FROM requisicoes r").WithArgs(int64(1)).
		WillReturnRows(reqHeaderRows(models.ReqStatusAprovado))
	mock.ExpectQuery("FROM requisicao_itens").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"nome", "quantidade", "estado"}).
			AddRow("papel", 10, models.ItemAtendido))
	mock.ExpectCommit()

	result, err := svc.Allocate(1)
	if err != nil {
		t.Fatalf("allocate error: %v", err)
	}
	if result.Partial {
		t.Fatalf("expected complete allocation")
	}
	if result.Message != "Requisição aprovada completamente." {
		t.Fatalf("unexpected message: %q", result.Message)
	}
	if result.Requisition.Status != models.ReqStatusAprovado {
		t.Fatalf("unexpected status: %q", result.Requisition.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
