package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alerandon/insurance-affiliates-app/internal/app/affiliates"
	"github.com/alerandon/insurance-affiliates-app/internal/domain"
)

// Server holds the handlers for the affiliates API.
type Server struct {
	Affiliates *affiliates.Service
	Logger     *slog.Logger
}

func NewServer(svc *affiliates.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{Affiliates: svc, Logger: logger}
}

// ListAffiliates handles GET /affiliates.
// Missing page/limit fall back to the service defaults; filterByDni narrows
// the listing to DNIs containing the given substring.
func (s *Server) ListAffiliates(w http.ResponseWriter, r *http.Request) {
	q := affiliates.ListQuery{
		FilterByDNI: strings.TrimSpace(r.URL.Query().Get("filterByDni")),
	}

	var badParams []string
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badParams = append(badParams, "page must be an integer")
		} else {
			q.Page = n
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badParams = append(badParams, "limit must be an integer")
		} else {
			q.Limit = n
		}
	}
	if len(badParams) > 0 {
		writeValidationError(w, badParams)
		return
	}

	page, err := s.Affiliates.List(r.Context(), q)
	if err != nil {
		s.Logger.Error("list affiliates failed", "error", err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, dataEnvelope{Data: paginatedFromDomain(page)})
}

// RegisterAffiliate handles POST /affiliates.
func (s *Server) RegisterAffiliate(w http.ResponseWriter, r *http.Request) {
	var req registerAffiliateRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		writeValidationError(w, []string{decodeErrorMessage(err)})
		return
	}

	a, err := s.Affiliates.Register(r.Context(), affiliates.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		DNI:         req.DNI,
		Gender:      domain.Gender(req.Gender),
		BirthDate:   req.BirthDate.Time,
	})
	if err != nil {
		s.writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dataEnvelope{Data: affiliateFromDomain(a)})
}

func (s *Server) writeAppError(w http.ResponseWriter, err error) {
	ae := (*affiliates.Error)(nil)
	if errors.As(err, &ae) {
		switch ae.Status {
		case http.StatusBadRequest:
			writeValidationError(w, messagesFromDetails(ae.Details))
			return
		case http.StatusConflict:
			writeConflictError(w, ae.Message)
			return
		}
	}
	s.Logger.Error("register affiliate failed", "error", err)
	writeInternalError(w)
}

// decodeErrorMessage keeps body decode failures in the same message shape as
// field validation. Date parse failures are called out because they are the
// common case.
func decodeErrorMessage(err error) string {
	var parseErr *time.ParseError
	if errors.As(err, &parseErr) {
		return "birthDate must be a valid ISO 8601 date string"
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field + " has an invalid type"
	}
	return "invalid request body"
}
