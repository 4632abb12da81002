package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	memaffiliaterepo "github.com/alerandon/insurance-affiliates-app/internal/adapters/memory/affiliaterepo"
	memclock "github.com/alerandon/insurance-affiliates-app/internal/adapters/memory/clock"
	"github.com/alerandon/insurance-affiliates-app/internal/app/affiliates"
)

func newTestRouter(t *testing.T, now time.Time, defaultLimit int) http.Handler {
	t.Helper()

	repo := memaffiliaterepo.NewRepo()
	clk := memclock.NewManualClock(now)
	svc := affiliates.NewService(repo, clk, defaultLimit)
	return NewRouter(NewServer(svc, nil))
}

func postAffiliate(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/affiliates", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const juanBody = `{
	"firstName": "Juan",
	"lastName": "Pérez",
	"phoneNumber": "+584121234567",
	"dni": "12345678",
	"gender": "M",
	"birthDate": "1975-10-06"
}`

func TestRegisterAffiliate_Created(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, time.Date(2025, time.October, 6, 0, 0, 0, 0, time.UTC), 0)

	rec := postAffiliate(t, h, juanBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			ID           string `json:"id"`
			FullName     string `json:"fullName"`
			DNI          string `json:"dni"`
			BirthDate    string `json:"birthDate"`
			Age          int    `json:"age"`
			USDAnnualFee int    `json:"usdAnnualFee"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.ID == "" || resp.Data.FullName != "Juan Pérez" {
		t.Fatalf("data=%+v", resp.Data)
	}
	if resp.Data.Age != 50 || resp.Data.USDAnnualFee != 15 {
		t.Fatalf("age=%d fee=%d, want 50/15", resp.Data.Age, resp.Data.USDAnnualFee)
	}
	if resp.Data.BirthDate != "1975-10-06" {
		t.Fatalf("birthDate=%q", resp.Data.BirthDate)
	}
}

func TestRegisterAffiliate_DuplicateDNI_Conflict(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, time.Date(2025, time.October, 6, 0, 0, 0, 0, time.UTC), 0)

	if rec := postAffiliate(t, h, juanBody); rec.Code != http.StatusCreated {
		t.Fatalf("first create status=%d", rec.Code)
	}
	rec := postAffiliate(t, h, juanBody)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	var er struct {
		Message    string `json:"message"`
		Error      string `json:"error"`
		StatusCode int    `json:"statusCode"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Message != "DNI already exists" || er.Error != "Conflict" || er.StatusCode != 409 {
		t.Fatalf("error body=%+v", er)
	}
}

func TestRegisterAffiliate_ValidationErrors(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, time.Date(2025, time.October, 6, 0, 0, 0, 0, time.UTC), 0)

	rec := postAffiliate(t, h, `{"firstName": "Juan", "gender": "Z"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	var er struct {
		Message    []string `json:"message"`
		Error      string   `json:"error"`
		StatusCode int      `json:"statusCode"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Error != "Bad Request" || er.StatusCode != 400 {
		t.Fatalf("error body=%+v", er)
	}
	if len(er.Message) == 0 {
		t.Fatalf("expected field messages")
	}
	joined := strings.Join(er.Message, "\n")
	for _, want := range []string{"lastName", "dni", "gender", "birthDate"} {
		if !strings.Contains(joined, want) {
			t.Errorf("messages missing %s: %v", want, er.Message)
		}
	}
}

func TestRegisterAffiliate_MalformedBirthDate(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, time.Date(2025, time.October, 6, 0, 0, 0, 0, time.UTC), 0)

	rec := postAffiliate(t, h, `{"firstName": "Juan", "birthDate": "06/10/1975"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	var body struct {
		Message []string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	want := []string{"birthDate must be a valid ISO 8601 date string"}
	if len(body.Message) != 1 || body.Message[0] != want[0] {
		t.Fatalf("message=%v, want %v", body.Message, want)
	}
}

func TestListAffiliates_DefaultsAndEnvelope(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, time.Date(2025, time.October, 6, 0, 0, 0, 0, time.UTC), 5)

	if rec := postAffiliate(t, h, juanBody); rec.Code != http.StatusCreated {
		t.Fatalf("seed create status=%d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/affiliates", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data struct {
			Items []struct {
				FullName string `json:"fullName"`
				DNI      string `json:"dni"`
			} `json:"items"`
			Page       int  `json:"page"`
			Limit      int  `json:"limit"`
			TotalItems int  `json:"totalItems"`
			HasPrev    bool `json:"hasPrev"`
			HasNext    bool `json:"hasNext"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Page != 1 || resp.Data.Limit != 5 || resp.Data.TotalItems != 1 {
		t.Fatalf("data=%+v", resp.Data)
	}
	if len(resp.Data.Items) != 1 || resp.Data.Items[0].FullName != "Juan Pérez" {
		t.Fatalf("items=%+v", resp.Data.Items)
	}
	if resp.Data.HasPrev || resp.Data.HasNext {
		t.Fatalf("hasPrev=%v hasNext=%v", resp.Data.HasPrev, resp.Data.HasNext)
	}

	// The listing projection must exclude the full-entity fields.
	if strings.Contains(rec.Body.String(), "phoneNumber") || strings.Contains(rec.Body.String(), "birthDate") {
		t.Fatalf("summary leaked entity fields: %s", rec.Body.String())
	}
}

func TestListAffiliates_QueryParams(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, time.Date(2025, time.October, 6, 0, 0, 0, 0, time.UTC), 5)

	bodies := []string{
		strings.Replace(juanBody, "12345678", "V1111111", 1),
		strings.Replace(juanBody, "12345678", "V2222222", 1),
		strings.Replace(juanBody, "12345678", "E3333333", 1),
	}
	for _, b := range bodies {
		if rec := postAffiliate(t, h, b); rec.Code != http.StatusCreated {
			t.Fatalf("seed create status=%d body=%s", rec.Code, rec.Body.String())
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/affiliates?page=2&limit=2&filterByDni=v", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data struct {
			Items      []struct{} `json:"items"`
			Page       int        `json:"page"`
			Limit      int        `json:"limit"`
			TotalItems int        `json:"totalItems"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Page != 2 || resp.Data.Limit != 2 || resp.Data.TotalItems != 2 {
		t.Fatalf("data=%+v", resp.Data)
	}
}

func TestListAffiliates_MalformedPageParam(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, time.Date(2025, time.October, 6, 0, 0, 0, 0, time.UTC), 5)

	req := httptest.NewRequest(http.MethodGet, "/affiliates?page=abc", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "page must be an integer") {
		t.Fatalf("body=%s", rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, time.Now().UTC(), 0)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("status=%d body=%q", rec.Code, rec.Body.String())
	}
}
