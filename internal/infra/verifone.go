package infra

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.bug.st/serial"
)

// ResultadoCobro is the outcome of a card charge on the terminal.
type ResultadoCobro struct {
	Aprobado           bool
	CodigoAutorizacion string
	Mensaje            string
}

// VerifoneTerminal drives the card terminal over its serial line. The
// protocol is a single request-response exchange: the backend writes
// "PAGAR:<monto>\n" and the terminal answers one line, "APROBADO:<codigo>"
// on success or a rejection message otherwise.
type VerifoneTerminal struct {
	puerto  string
	baudios int
	timeout time.Duration
}

func NewVerifoneTerminal(puerto string, baudios int, timeout time.Duration) *VerifoneTerminal {
	if baudios <= 0 {
		baudios = 9600
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &VerifoneTerminal{puerto: puerto, baudios: baudios, timeout: timeout}
}

// Cobrar sends the amount to the terminal and waits for its verdict. An
// error means the exchange itself failed (port unavailable, timeout); a
// declined charge comes back as a non-approved ResultadoCobro, not an error.
func (t *VerifoneTerminal) Cobrar(monto decimal.Decimal) (*ResultadoCobro, error) {
	port, err := serial.Open(t.puerto, &serial.Mode{BaudRate: t.baudios})
	if err != nil {
		return nil, fmt.Errorf("verifone: abrir puerto %s: %w", t.puerto, err)
	}
	defer port.Close()

	if err := port.SetReadTimeout(t.timeout); err != nil {
		return nil, fmt.Errorf("verifone: configurar timeout: %w", err)
	}

	comando := fmt.Sprintf("PAGAR:%s\n", monto.StringFixed(2))
	if _, err := port.Write([]byte(comando)); err != nil {
		return nil, fmt.Errorf("verifone: enviar comando: %w", err)
	}

	respuesta, err := t.leerLinea(port)
	if err != nil {
		return nil, err
	}

	if strings.Contains(respuesta, "APROBADO") {
		codigo := ""
		if _, despues, ok := strings.Cut(respuesta, ":"); ok {
			codigo = strings.TrimSpace(despues)
		}
		return &ResultadoCobro{Aprobado: true, CodigoAutorizacion: codigo, Mensaje: respuesta}, nil
	}
	return &ResultadoCobro{Aprobado: false, Mensaje: respuesta}, nil
}

// leerLinea reads until newline or until the read timeout expires. A zero
// byte Read signals the timeout per the serial library's contract.
func (t *VerifoneTerminal) leerLinea(port serial.Port) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := port.Read(buf)
		if err != nil {
			return "", fmt.Errorf("verifone: leer respuesta: %w", err)
		}
		if n == 0 {
			return "", fmt.Errorf("verifone: sin respuesta tras %s", t.timeout)
		}
		if buf[0] == '\n' {
			break
		}
		sb.WriteByte(buf[0])
	}
	return strings.TrimSpace(sb.String()), nil
}
