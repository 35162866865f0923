package applications

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"hireup-backend/internal/shared/server/middleware"
)

func newTestRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if email := c.GetHeader("X-Test-Email"); email != "" {
			c.Set("accountEmail", email)
			c.Set("accountRole", c.GetHeader("X-Test-Role"))
		}
		c.Next()
	})
	NewHandler(svc, "callback-secret").RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func applicantHeaders() map[string]string {
	return map[string]string{"X-Test-Email": "alice@example.com", "X-Test-Role": middleware.RoleApplicant}
}

func TestCreateApplicationEndpoint(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(t, f.svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/applications", gin.H{"jobId": "job-quiz"}, applicantHeaders())
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var app Application
	if err := json.Unmarshal(w.Body.Bytes(), &app); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if app.Status != StageOnlineQuiz {
		t.Fatalf("status = %q, want %q", app.Status, StageOnlineQuiz)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/applications", gin.H{"jobId": "job-quiz"}, applicantHeaders())
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", w.Code)
	}
}

func TestCreateApplicationRequiresApplicantRole(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(t, f.svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/applications", gin.H{"jobId": "job-quiz"}, map[string]string{
		"X-Test-Email": "acme@example.com",
		"X-Test-Role":  middleware.RoleCompany,
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/applications", gin.H{"jobId": "job-quiz"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", w.Code)
	}
}

func TestQuizStartEndpointErrors(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(t, f.svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/applications", gin.H{"jobId": "job-quiz"}, applicantHeaders())
	var app Application
	if err := json.Unmarshal(w.Body.Bytes(), &app); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/applications/"+app.ID+"/quiz/start", nil, applicantHeaders())
	if w.Code != http.StatusOK {
		t.Fatalf("first start status = %d, body %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/api/v1/applications/"+app.ID+"/quiz/start", nil, applicantHeaders())
	if w.Code != http.StatusConflict {
		t.Fatalf("second start status = %d, want 409", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/applications/missing/quiz/start", nil, applicantHeaders())
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing app status = %d, want 404", w.Code)
	}
}

func TestInternalCallbackRequiresServiceToken(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(t, f.svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/applications", gin.H{"jobId": "job-noquiz"}, applicantHeaders())
	var app Application
	if err := json.Unmarshal(w.Body.Bytes(), &app); err != nil {
		t.Fatalf("decode: %v", err)
	}

	payload := gin.H{"questionSimilarity": 0.7}
	path := "/api/v1/internal/applications/" + app.ID + "/interview-question"

	w = doJSON(t, r, http.MethodPost, path, payload, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("no token status = %d, want 403", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, path, payload, map[string]string{"X-Service-Token": "callback-secret"})
	if w.Code != http.StatusOK {
		t.Fatalf("token status = %d, body %s", w.Code, w.Body.String())
	}
	var agg Aggregates
	if err := json.Unmarshal(w.Body.Bytes(), &agg); err != nil {
		t.Fatalf("decode aggregates: %v", err)
	}
	if agg.QuestionsCount != 1 || agg.AverageSimilarity != 0.7 {
		t.Fatalf("aggregates = %+v", agg)
	}
}

func TestRecordQuizCheatingRejectsPartialPayload(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(t, f.svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/applications", gin.H{"jobId": "job-quiz"}, applicantHeaders())
	var app Application
	if err := json.Unmarshal(w.Body.Bytes(), &app); err != nil {
		t.Fatalf("decode: %v", err)
	}

	path := "/api/v1/internal/applications/" + app.ID + "/quiz-cheating"
	token := map[string]string{"X-Service-Token": "callback-secret"}

	full := gin.H{
		"quizEyeCheating":               0.3,
		"quizFaceSpeechCheating":        0.4,
		"quizEyeCheatingDurations":      [][]float64{{0, 1}},
		"quizSpeakingCheatingDurations": [][]float64{{2, 3}},
	}
	if w = doJSON(t, r, http.MethodPut, path, full, token); w.Code != http.StatusOK {
		t.Fatalf("full payload status = %d, body %s", w.Code, w.Body.String())
	}

	// Omitting any of the four fields must reject the update rather than
	// overwrite the stored report with zero values.
	partials := []gin.H{
		{"quizEyeCheatingDurations": [][]float64{{4, 5}}, "quizSpeakingCheatingDurations": [][]float64{{6, 7}}},
		{"quizEyeCheating": 0.9, "quizFaceSpeechCheating": 0.9, "quizSpeakingCheatingDurations": [][]float64{{6, 7}}},
		{"quizEyeCheating": 0.9, "quizFaceSpeechCheating": 0.9, "quizEyeCheatingDurations": [][]float64{{4, 5}}},
		{"quizFaceSpeechCheating": 0.9, "quizEyeCheatingDurations": [][]float64{{4, 5}}, "quizSpeakingCheatingDurations": [][]float64{{6, 7}}},
	}
	for i, payload := range partials {
		if w = doJSON(t, r, http.MethodPut, path, payload, token); w.Code != http.StatusBadRequest {
			t.Fatalf("partial payload %d: status = %d, want 400", i, w.Code)
		}
	}

	stored, err := f.svc.GetByID(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.QuizCheating == nil || stored.QuizCheating.EyeCheating != 0.3 {
		t.Fatalf("cheating = %+v, want the original full report intact", stored.QuizCheating)
	}
}
