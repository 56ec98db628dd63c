package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/HitanshGithub/agentic-finance-ai/internal/statement"
)

func testHandler() *Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewHandler(nil, nil, nil, nil, statement.PlainTextExtractor{}, log)
}

func TestRoot(t *testing.T) {
	rec := httptest.NewRecorder()
	testHandler().Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["status"] == "" {
		t.Error("expected a status field")
	}
}

func TestAnalyzeRejectsInvalidBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("not json"))

	testHandler().Analyze(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeRejectsInvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing profile", body: `{"income":1000,"expenses":[{"category":"Food","amount":100}]}`},
		{name: "no expenses", body: `{"income":1000,"profile":"moderate","expenses":[]}`},
		{name: "negative income", body: `{"income":-1,"profile":"moderate","expenses":[{"category":"Food","amount":100}]}`},
		{name: "negative amount", body: `{"income":1000,"profile":"moderate","expenses":[{"category":"Food","amount":-5}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(tc.body))

			testHandler().Analyze(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestDetectRecurring(t *testing.T) {
	body := `{"expenses":[{"category":"Netflix","amount":500},{"category":"Netflix","amount":500}]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/recurring", strings.NewReader(body))

	testHandler().DetectRecurring(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Recurring []struct {
			Category   string  `json:"category"`
			AnnualCost float64 `json:"annual_cost"`
		} `json:"recurring"`
		TotalMonthly float64 `json:"total_monthly"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp.Recurring) != 1 || resp.Recurring[0].AnnualCost != 6000 {
		t.Errorf("unexpected detection result: %+v", resp)
	}
	if resp.TotalMonthly != 500 {
		t.Errorf("expected total monthly 500, got %v", resp.TotalMonthly)
	}
}

func TestUploadPDF(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "statement.txt")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("Rent Payment 15,000\nMonthly Salary 80,000\nCoffee 150\n"))
	mw.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload-pdf", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	testHandler().UploadPDF(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Expenses []struct {
			Category string  `json:"category"`
			Amount   float64 `json:"amount"`
		} `json:"expenses"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp.Expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %+v", resp.Expenses)
	}
	if resp.Expenses[0].Category != "Rent Payment" || resp.Expenses[0].Amount != 15000 {
		t.Errorf("unexpected first expense: %+v", resp.Expenses[0])
	}
}

func TestUploadPDFMissingFile(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload-pdf", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")

	testHandler().UploadPDF(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
