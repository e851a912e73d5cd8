package services

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateETicketWithLoader(t *testing.T) {
	svc := DocsService{
		Loader: func(id int64) (ticketDocData, error) {
			return ticketDocData{
				PassengerID:   id,
				PassengerName: "Maria dos Santos",
				PassengerBI:   "123456789LA001",
				Contacto:      "+244923000000",
				TipoBilhete:   "Normal",
				Destino:       "Huambo",
				DataPartida:   "2026-01-15",
				Horario:       "07:30",
				Preco:         15000,
				BilheteID:     8,
			}, nil
		},
	}

	pdf, filename, err := svc.GenerateETicket(5)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if !strings.HasPrefix(filename, "BILHETE_5_") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename: %q", filename)
	}
}

func TestFormatKwanza(t *testing.T) {
	cases := map[int64]string{
		0:       "Kz 0",
		950:     "Kz 950",
		15000:   "Kz 15.000",
		1234567: "Kz 1.234.567",
	}
	for in, want := range cases {
		if got := formatKwanza(in); got != want {
			t.Fatalf("formatKwanza(%d) = %q, want %q", in, got, want)
		}
	}
}
