package schedule

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"med-reminder/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/schedule", func(sr chi.Router) {
		sr.Get("/today", todayHandler(svc))
		sr.Get("/next", nextHandler(svc))
		sr.Get("/summary", summaryHandler(svc))
	})
}

type entryResponse struct {
	MedID         string     `json:"med_id"`
	Name          string     `json:"name"`
	Dosage        string     `json:"dosage"`
	Instructions  string     `json:"instructions,omitempty"`
	ScheduledTime string     `json:"scheduled_time"`
	LogID         string     `json:"log_id,omitempty"`
	Status        string     `json:"status,omitempty"`
	TakenAt       *time.Time `json:"taken_at,omitempty"`
}

type nextDoseResponse struct {
	MedID         string `json:"med_id"`
	Name          string `json:"name"`
	Dosage        string `json:"dosage"`
	Instructions  string `json:"instructions,omitempty"`
	ScheduledTime string `json:"scheduled_time"`
	ScheduledDate string `json:"scheduled_date"`
}

type summaryResponse struct {
	Total    int `json:"total"`
	Taken    int `json:"taken"`
	Missed   int `json:"missed"`
	Upcoming int `json:"upcoming"`
}

func todayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		entries, err := svc.Today(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, toEntryResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func nextHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		next, found, err := svc.Next(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !found {
			// no queda ninguna toma accionable hoy
			w.WriteHeader(http.StatusNoContent)
			return
		}

		writeJSON(w, http.StatusOK, nextDoseResponse{
			MedID:         next.Medication.ID,
			Name:          next.Medication.Name,
			Dosage:        next.Medication.Dosage,
			Instructions:  next.Medication.Instructions,
			ScheduledTime: next.ScheduledTime,
			ScheduledDate: next.ScheduledDate,
		})
	}
}

func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sum, err := svc.Summary(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, summaryResponse{
			Total:    sum.Total,
			Taken:    sum.Taken,
			Missed:   sum.Missed,
			Upcoming: sum.Upcoming,
		})
	}
}

func toEntryResponse(e Entry) entryResponse {
	out := entryResponse{
		MedID:         e.Medication.ID,
		Name:          e.Medication.Name,
		Dosage:        e.Medication.Dosage,
		Instructions:  e.Medication.Instructions,
		ScheduledTime: e.ScheduledTime,
	}
	if e.Log != nil {
		out.LogID = e.Log.ID
		out.Status = string(e.Log.Status)
		out.TakenAt = e.Log.TakenAt
	}
	return out
}

// writeJSON duplicado a propósito por módulo (ver comentario en medications).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
