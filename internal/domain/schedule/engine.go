// Package schedule deriva la agenda diaria de tomas a partir de los
// medicamentos y los logs del día. Es el corazón de la app: la home
// (próxima toma), el tablero del día y el resumen salen todos de acá.
//
// Las funciones de este archivo son puras: reciben snapshots ya
// fetcheados más un "now" explícito, así que son deterministas y no
// tocan storage ni reloj. El fetch vive en Service.
package schedule

import (
	"sort"
	"time"

	"med-reminder/internal/domain/doselogs"
	"med-reminder/internal/domain/medications"
	"med-reminder/internal/platform/timeutil"
)

// Entry es una toma programada del día: un (medicamento, horario) con el
// log que le corresponde si ya se registró. Se recalcula en cada
// consulta, nunca se persiste.
type Entry struct {
	Medication    medications.Medication
	ScheduledTime string
	Log           *doselogs.DoseLog
}

// NextDose es la próxima toma accionable de hoy.
type NextDose struct {
	Medication    medications.Medication
	ScheduledTime string
	ScheduledDate string
}

// Summary son los contadores del día. Siempre
// Taken+Missed+Upcoming == Total.
type Summary struct {
	Total    int
	Taken    int
	Missed   int
	Upcoming int
}

// BuildDay arma la agenda completa del día: una entrada por cada horario
// configurado de cada medicamento, apareada con el log que matchee por
// (med id, horario). Horarios duplicados generan entradas duplicadas.
//
// El resultado queda ordenado por horario ascendente (orden estable:
// ante el mismo horario se conserva el orden de los medicamentos de
// entrada). len(resultado) == Σ len(med.Times).
func BuildDay(meds []medications.Medication, logs []doselogs.DoseLog) []Entry {
	entries := make([]Entry, 0, len(meds))

	for _, med := range meds {
		for _, clock := range med.Times {
			entry := Entry{
				Medication:    med,
				ScheduledTime: clock,
			}
			for i := range logs {
				if logs[i].MedID == med.ID && logs[i].ScheduledTime == clock {
					entry.Log = &logs[i]
					break
				}
			}
			entries = append(entries, entry)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return timeutil.CompareClock(entries[i].ScheduledTime, entries[j].ScheduledTime) < 0
	})

	return entries
}

// PickNext elige la próxima toma: la primera entrada sin log "taken"
// cuyo horario todavía no pasó. Una toma programada exactamente en el
// minuto actual sigue siendo elegible.
//
// Una toma vencida sin registrar NO es la próxima: se muestra solo como
// "missed" en el resumen, no como acción pendiente.
func PickNext(entries []Entry, now time.Time) (Entry, bool) {
	clock := timeutil.FormatClock(now)

	for _, e := range entries {
		if e.Log != nil && e.Log.Status == doselogs.StatusTaken {
			continue
		}
		if timeutil.CompareClock(e.ScheduledTime, clock) < 0 {
			continue
		}
		return e, true
	}
	return Entry{}, false
}

// Summarize clasifica cada entrada en exactamente un balde, en este
// orden: log "taken" => taken; horario ya pasado => missed; si no =>
// upcoming.
//
// Un log "skipped" no tiene balde propio: cae en missed o upcoming
// según la hora, igual que una toma sin log. Comportamiento heredado
// que se decidió conservar (ver DESIGN.md).
func Summarize(entries []Entry, now time.Time) Summary {
	s := Summary{Total: len(entries)}

	for _, e := range entries {
		switch {
		case e.Log != nil && e.Log.Status == doselogs.StatusTaken:
			s.Taken++
		case timeutil.IsClockPassed(e.ScheduledTime, now):
			s.Missed++
		default:
			s.Upcoming++
		}
	}
	return s
}
