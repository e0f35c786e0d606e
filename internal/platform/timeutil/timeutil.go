// Package timeutil centraliza todo el manejo de fechas y horas de pared:
// fechas YYYY-MM-DD, horas HH:MM y su comparación. Ningún otro paquete
// debería formatear o comparar horarios por su cuenta.
//
// Todo es hora local del dispositivo, a propósito sin normalizar a UTC:
// el horario de una toma ("08:00") es hora de pared del usuario.
package timeutil

import (
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// FormatDate devuelve t como YYYY-MM-DD (hora local).
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parsea YYYY-MM-DD en hora local.
// FormatDate(ParseDate(s)) == s para toda fecha válida (round-trip sin
// corrimiento de timezone).
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
}

// FormatClock devuelve t como HH:MM (24h, zero-padded, hora local).
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// IsValidClock valida estrictamente el formato HH:MM.
// Se usa al crear/editar medicamentos; el resto del paquete asume
// entradas ya válidas.
func IsValidClock(s string) bool {
	// time.Parse acepta "8:00" con layout "15:04"; acá exigimos zero-padding.
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

// CompareClock compara dos horas HH:MM numéricamente (hora, luego minuto).
// Devuelve -1 si a < b, 0 si iguales, 1 si a > b.
//
// Contrato: las entradas se asumen bien formadas (dos enteros separados
// por ":"). Con entradas malformadas el resultado es indefinido, no un
// error — es responsabilidad del caller validar antes (IsValidClock).
// No hay lógica de "wrap" de día: "23:00" > "01:00" siempre.
func CompareClock(a, b string) int {
	ah, am := splitClock(a)
	bh, bm := splitClock(b)

	if ah != bh {
		if ah < bh {
			return -1
		}
		return 1
	}
	if am != bm {
		if am < bm {
			return -1
		}
		return 1
	}
	return 0
}

// IsClockPassed indica si la hora clock ya pasó respecto de now.
// Estrictamente antes: una toma programada exactamente en el minuto
// actual todavía NO pasó.
func IsClockPassed(clock string, now time.Time) bool {
	return CompareClock(clock, FormatClock(now)) < 0
}

func splitClock(s string) (hour, minute int) {
	parts := strings.SplitN(s, ":", 2)
	hour, _ = strconv.Atoi(parts[0])
	if len(parts) == 2 {
		minute, _ = strconv.Atoi(parts[1])
	}
	return hour, minute
}
