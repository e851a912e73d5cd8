package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "github.com/GuiGui-Web114/ARTSys-Back/internal/config"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/repositories"
)

// AllocationResult carries the outcome of one allocation pass.
type AllocationResult struct {
	Partial     bool               `json:"parcial"`
	Message     string             `json:"mensagem"`
	Requisition models.Requisition `json:"requisicao"`
}

type AllocatorService struct {
	DB      *sql.DB
	ReqRepo repositories.RequisitionRepository
	MatRepo repositories.MaterialRepository
}

func (s AllocatorService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// Allocate fulfils as much of a requisition's pending lines as current stock
// allows. Lines that cannot be fully served stay pending with the remainder.
// Everything runs inside one transaction so stock is never spent twice.
func (s AllocatorService) Allocate(id int64) (AllocationResult, error) {
	var out AllocationResult

	tx, err := s.db().Begin()
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	req, err := s.ReqRepo.GetByID(tx, id)
	if err != nil {
		return out, err
	}

	// Resolve every material first so an unknown name aborts the whole
	// run before any stock moves.
	mats := make([]models.Material, len(req.Materiais))
	for i, item := range req.Materiais {
		m, err := s.MatRepo.GetByName(tx, item.Nome)
		if domain.IsNotFound(err) {
			return out, domain.ValidationError{Msg: fmt.Sprintf("Material não encontrado: %s", item.Nome)}
		}
		if err != nil {
			return out, err
		}
		mats[i] = m
	}

	var atendidos, pendentes []models.RequisitionItem
	var msgs []string
	for i, item := range req.Materiais {
		m := mats[i]
		if m.Quantidade <= 0 {
			pendentes = append(pendentes, item)
			msgs = append(msgs, fmt.Sprintf("Material '%s' sem estoque: %d pendente.", item.Nome, item.Quantidade))
			continue
		}
		podeAtender := item.Quantidade
		if m.Quantidade < podeAtender {
			podeAtender = m.Quantidade
		}
		if err := s.MatRepo.Decrement(tx, m.ID, podeAtender); err != nil {
			return out, err
		}
		atendidos = append(atendidos, models.RequisitionItem{Nome: item.Nome, Quantidade: podeAtender})
		if sobra := item.Quantidade - podeAtender; sobra > 0 {
			pendentes = append(pendentes, models.RequisitionItem{Nome: item.Nome, Quantidade: sobra})
			msgs = append(msgs, fmt.Sprintf("Material '%s' atendido em %d. %d pendente.", item.Nome, podeAtender, sobra))
		}
	}

	status := models.ReqStatusAprovado
	if len(pendentes) > 0 {
		status = models.ReqStatusEmAndamento
	}
	if err := s.ReqRepo.SaveAllocation(tx, id, atendidos, pendentes, status); err != nil {
		return out, domain.InternalError{Err: err}
	}

	updated, err := s.ReqRepo.GetByID(tx, id)
	if err != nil {
		return out, err
	}
	if err := tx.Commit(); err != nil {
		return out, domain.InternalError{Err: err}
	}

	out.Requisition = updated
	out.Partial = len(pendentes) > 0
	if out.Partial {
		out.Message = "Requisição aprovada parcialmente. " + strings.Join(msgs, " ")
	} else {
		out.Message = "Requisição aprovada completamente."
	}
	return out, nil
}
