// Package delivery estima la ventana de entrega de un pedido a partir de la
// disponibilidad agregada. Es una estimación de cara a la farmacia; una vez
// existe envío real, el resultado deja de ser autoritativo.
package delivery

import (
	"math"
	"time"
)

// MaxDays cota superior de la estimación en días.
const MaxDays = 7

// Line par (producto, cantidad pedida) mínimo que necesita el estimador.
type Line struct {
	ProductID string
	Requested int64
}

// Days estima los días de entrega: 1 + ceil(faltante/total * (MaxDays-1)),
// acotado a [1, MaxDays]. Pedido vacío o sin unidades resuelve en 1 día.
func Days(lines []Line, available map[string]int64) int {
	var total, missing int64
	for _, ln := range lines {
		total += ln.Requested
		if short := ln.Requested - available[ln.ProductID]; short > 0 {
			missing += short
		}
	}
	if total <= 0 {
		return 1
	}
	ratio := float64(missing) / float64(total)
	days := 1 + int(math.Ceil(ratio*(MaxDays-1)))
	if days < 1 {
		return 1
	}
	if days > MaxDays {
		return MaxDays
	}
	return days
}

// ETA devuelve los días estimados y la fecha esperada de entrega contada desde
// el momento de creación del pedido.
func ETA(orderTime time.Time, lines []Line, available map[string]int64) (int, time.Time) {
	days := Days(lines, available)
	return days, orderTime.AddDate(0, 0, days)
}

// Remaining devuelve el tiempo restante hasta la ETA, nunca negativo.
func Remaining(orderTime time.Time, lines []Line, available map[string]int64, now time.Time) time.Duration {
	_, eta := ETA(orderTime, lines, available)
	if rem := eta.Sub(now); rem > 0 {
		return rem
	}
	return 0
}
