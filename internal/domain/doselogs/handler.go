package doselogs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"med-reminder/internal/domain/medications"
	"med-reminder/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Registrar una toma de un medicamento concreto
	r.Post("/medications/{medID}/logs", logDoseHandler(svc))

	r.Route("/logs", func(lr chi.Router) {
		lr.Get("/", listLogsByDateHandler(svc))
		lr.Get("/history", historyHandler(svc))
		lr.Patch("/{logID}", updateStatusHandler(svc))
	})
}

type logDoseRequest struct {
	ScheduledDate string `json:"scheduled_date"` // YYYY-MM-DD; vacío => hoy
	ScheduledTime string `json:"scheduled_time"` // HH:MM
	Status        string `json:"status"`         // default taken
	TakenAt       string `json:"taken_at"`       // RFC3339; vacío + taken => ahora
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type doseLogResponse struct {
	ID            string     `json:"id"`
	MedID         string     `json:"med_id"`
	ScheduledDate string     `json:"scheduled_date"`
	ScheduledTime string     `json:"scheduled_time"`
	TakenAt       *time.Time `json:"taken_at,omitempty"`
	Status        string     `json:"status"`
}

type dayLogsResponse struct {
	Date string            `json:"date"`
	Logs []doseLogResponse `json:"logs"`
}

func logDoseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req logDoseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var takenAt *time.Time
		if strings.TrimSpace(req.TakenAt) != "" {
			t, err := time.Parse(time.RFC3339, req.TakenAt)
			if err != nil {
				http.Error(w, "taken_at must be RFC3339", http.StatusBadRequest)
				return
			}
			takenAt = &t
		}

		l, err := svc.Log(r.Context(), claims.UserID, chi.URLParam(r, "medID"), LogInput{
			ScheduledDate: req.ScheduledDate,
			ScheduledTime: req.ScheduledTime,
			Status:        Status(req.Status),
			TakenAt:       takenAt,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrAlreadyLogged):
				http.Error(w, "dose already logged", http.StatusConflict)
			case errors.Is(err, medications.ErrNotFound):
				http.Error(w, "medication not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toDoseLogResponse(l))
	}
}

func listLogsByDateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		date := strings.TrimSpace(r.URL.Query().Get("date"))
		if date == "" {
			http.Error(w, "date query param required (YYYY-MM-DD)", http.StatusBadRequest)
			return
		}

		logs, err := svc.ListByDate(r.Context(), claims.UserID, date)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]doseLogResponse, 0, len(logs))
		for _, l := range logs {
			out = append(out, toDoseLogResponse(l))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		days := 0
		if v := strings.TrimSpace(r.URL.Query().Get("days")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 || n > 90 {
				http.Error(w, "days must be 1..90", http.StatusBadRequest)
				return
			}
			days = n
		}

		history, err := svc.History(r.Context(), claims.UserID, days)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]dayLogsResponse, 0, len(history))
		for _, day := range history {
			logs := make([]doseLogResponse, 0, len(day.Logs))
			for _, l := range day.Logs {
				logs = append(logs, toDoseLogResponse(l))
			}
			out = append(out, dayLogsResponse{Date: day.Date, Logs: logs})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		l, err := svc.UpdateStatus(r.Context(), claims.UserID, chi.URLParam(r, "logID"), Status(req.Status))
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "status must be taken, missed or skipped", http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "dose log not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toDoseLogResponse(l))
	}
}

func toDoseLogResponse(l DoseLog) doseLogResponse {
	return doseLogResponse{
		ID:            l.ID,
		MedID:         l.MedID,
		ScheduledDate: l.ScheduledDate,
		ScheduledTime: l.ScheduledTime,
		TakenAt:       l.TakenAt,
		Status:        string(l.Status),
	}
}

// writeJSON duplicado a propósito por módulo (ver comentario en medications).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
