package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/GuiGui-Web114/ARTSys-Back/internal/repositories"
	"github.com/phpdave11/gofpdf"
)

// DocsService renders the e-ticket PDF for a passenger.
type DocsService struct {
	PassengerRepo repositories.PassengerRepository
	TicketRepo    repositories.TicketRepository
	Loader        func(int64) (ticketDocData, error)
}

type ticketDocData struct {
	PassengerID   int64
	PassengerName string
	PassengerBI   string
	Contacto      string
	TipoBilhete   string
	Destino       string
	DataPartida   string
	Horario       string
	Preco         int64
	BilheteID     int64
}

func (s DocsService) GenerateETicket(passengerID int64) ([]byte, string, error) {
	data, err := s.loadTicketDocData(passengerID)
	if err != nil {
		return nil, "", err
	}
	return buildETicketPDF(data)
}

func (s DocsService) loadTicketDocData(passengerID int64) (ticketDocData, error) {
	if s.Loader != nil {
		return s.Loader(passengerID)
	}
	var out ticketDocData
	p, err := s.PassengerRepo.GetByID(passengerID)
	if err != nil {
		return out, err
	}
	out.PassengerID = p.ID
	out.PassengerName = p.Nome
	out.PassengerBI = p.BI
	out.Contacto = p.Contacto

	b, err := s.TicketRepo.GetByID(p.IDBilhete)
	if err != nil {
		return out, err
	}
	out.BilheteID = b.ID
	out.TipoBilhete = b.TipoBilhete
	out.Destino = b.Destino
	out.DataPartida = b.DataPartida.Format("2006-01-02")
	out.Horario = b.Horario
	out.Preco = b.Preco
	return out, nil
}

func buildETicketPDF(d ticketDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bilhete Eletrónico", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BILHETE ELETRONICO")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passageiro    : %s", safe(d.PassengerName, "-")),
		fmt.Sprintf("BI            : %s", safe(d.PassengerBI, "-")),
		fmt.Sprintf("Contacto      : %s", safe(d.Contacto, "-")),
		fmt.Sprintf("Tipo          : %s", safe(d.TipoBilhete, "-")),
		fmt.Sprintf("Destino       : %s", safe(d.Destino, "-")),
		fmt.Sprintf("Partida       : %s %s", safe(d.DataPartida, "-"), safe(d.Horario, "-")),
		fmt.Sprintf("Preco         : %s", formatKwanza(d.Preco)),
		fmt.Sprintf("Codigo        : BLT-%d-%d", d.BilheteID, d.PassengerID),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Este bilhete e valido para 1 passageiro. Apresente-o na partida.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("BILHETE_%d_%s.pdf", d.PassengerID, safeFilenamePart(d.PassengerName))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

func formatKwanza(v int64) string {
	if v <= 0 {
		return "Kz 0"
	}
	s := fmt.Sprintf("%d", v)
	var out []byte
	n := len(s)
	for i := 0; i < n; i++ {
		out = append(out, s[i])
		pos := n - i - 1
		if pos > 0 && pos%3 == 0 {
			out = append(out, '.')
		}
	}
	return "Kz " + string(out)
}

// TicketExpired reports whether a ticket's validity window has passed.
func TicketExpired(validoAte time.Time, now time.Time) bool {
	return now.After(validoAte)
}
