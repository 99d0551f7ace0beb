package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/DInduwara/Flood-management-system/internal/service"
	"github.com/DInduwara/Flood-management-system/internal/testutil"
	"github.com/DInduwara/Flood-management-system/models"
	"github.com/DInduwara/Flood-management-system/repository"
)

const secret = "http-test-secret"

func init() { gin.SetMode(gin.TestMode) }

func newTestRouter(t *testing.T, name string) *gin.Engine {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, name)
	clock := repository.WithClock(testutil.StepClock(time.Date(2025, 11, 28, 6, 0, 0, 0, time.UTC), time.Second))
	intake := service.NewIntake(
		repository.NewSosRequestRepository(d, clock),
		repository.NewHelpOfferRepository(d, clock),
		repository.NewReliefCampRepository(d, clock),
		zaptest.NewLogger(t),
	)
	return NewRouter(intake, Options{JWTSecret: secret, AllowedOrigins: []string{"http://localhost:3000"}, Logger: zaptest.NewLogger(t)})
}

func do(t *testing.T, r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	if buf.Len() > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, "http_health")
	w := do(t, r, http.MethodGet, "/api/health/", nil, "garbage-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","message":"Flood SOS API running"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCreateSosRequest(t *testing.T) {
	r := newTestRouter(t, "http_create_sos")

	w := do(t, r, http.MethodPost, "/api/sos-requests/", map[string]any{
		"full_name":                "A. Silva",
		"phone_number":             "0771234567",
		"alternate_phone_number":   nil,
		"district":                 "Colombo",
		"water_level":              "waist",
		"emergency_type":           "trapped_by_flood",
		"number_of_people":         4,
		"phone_battery_percentage": nil,
		"status":                   "resolved",
		"internal_notes":           "sneaky",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	got := decode[map[string]any](t, w)
	assert.Equal(t, "new", got["status"])
	assert.EqualValues(t, 4, got["number_of_people"])
	assert.NotZero(t, got["id"])
	assert.Contains(t, got, "created_at")
	assert.Contains(t, got, "updated_at")
	assert.NotContains(t, got, "internal_notes")

	w = do(t, r, http.MethodPost, "/api/sos-requests/", map[string]any{"full_name": "", "phone_number": "0771234567"}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := decode[map[string][]string](t, w)
	assert.Equal(t, map[string][]string{"full_name": {"This field may not be blank."}}, errs)

	w = do(t, r, http.MethodPost, "/api/sos-requests/", nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs = decode[map[string][]string](t, w)
	assert.Contains(t, errs, "full_name")
	assert.Contains(t, errs, "phone_number")

	w = do(t, r, http.MethodPost, "/api/sos-requests/", "[1,2]", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]any](t, w), "detail")
}

func TestListSosRequests(t *testing.T) {
	r := newTestRouter(t, "http_list_sos")
	operator := testutil.GenerateJWTHS256(t, secret, "desk-1", "operator")

	for _, district := range []string{"colombo", "Kandy", "COLOMBO"} {
		w := do(t, r, http.MethodPost, "/api/sos-requests/", map[string]any{"full_name": "X", "phone_number": "1", "district": district}, "")
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := do(t, r, http.MethodGet, "/api/sos-requests/list/?district=Colombo", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, "COLOMBO", list[0]["district"])
	assert.NotContains(t, list[0], "internal_notes")

	w = do(t, r, http.MethodGet, "/api/sos-requests/list/?district=Colombo", nil, operator)
	list = decode[[]map[string]any](t, w)
	require.Len(t, list, 2)
	assert.Contains(t, list[0], "internal_notes")

	w = do(t, r, http.MethodGet, "/api/sos-requests/list/?status=nonsense", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/sos-requests/list/", nil, "bad-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateSosRequest(t *testing.T) {
	r := newTestRouter(t, "http_update_sos")
	operator := testutil.GenerateJWTHS256(t, secret, "desk-1", "operator")
	volunteer := testutil.GenerateJWTHS256(t, secret, "vol", "volunteer")

	w := do(t, r, http.MethodPost, "/api/sos-requests/", map[string]any{"full_name": "X", "phone_number": "1"}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.PublicSosRequest](t, w)
	path := "/api/sos-requests/" + itoa(created.ID) + "/"

	assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodPatch, path, map[string]any{"status": "verified"}, "").Code)
	assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodPatch, path, map[string]any{"status": "verified"}, volunteer).Code)

	w = do(t, r, http.MethodPatch, path, map[string]any{"status": "verified", "internal_notes": "boat sent"}, operator)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.SosRequest](t, w)
	assert.Equal(t, models.SosStatusVerified, updated.Status)
	assert.Equal(t, "boat sent", updated.InternalNotes)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	w = do(t, r, http.MethodPatch, path, map[string]any{"status": "lost"}, operator)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string][]string](t, w), "status")

	w = do(t, r, http.MethodPatch, path, map[string]any{}, operator)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string][]string](t, w), models.NonFieldErrors)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPatch, "/api/sos-requests/999/", map[string]any{"status": "resolved"}, operator).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPatch, "/api/sos-requests/abc/", map[string]any{"status": "resolved"}, operator).Code)
}

func TestHelpOffers(t *testing.T) {
	r := newTestRouter(t, "http_help")
	w := do(t, r, http.MethodPost, "/api/help-offers/", map[string]any{
		"helper_name":     "Ruwan",
		"helper_phone":    "0779999999",
		"helper_district": "Gampaha",
		"support_details": "Boat",
		"preferred_areas": "",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	offer := decode[models.HelpOffer](t, w)
	assert.NotZero(t, offer.ID)
	assert.Equal(t, "Gampaha", offer.HelperDistrict)

	w = do(t, r, http.MethodPost, "/api/help-offers/", map[string]any{"helper_name": "Ruwan"}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, decode[map[string][]string](t, w), 3)
}

func TestReliefCamps(t *testing.T) {
	r := newTestRouter(t, "http_camps")
	operator := testutil.GenerateJWTHS256(t, secret, "desk-1", "admin")

	assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodPost, "/api/relief-camps/", map[string]any{}, "").Code)

	var ids []int64
	for _, district := range []string{"Kandy", "Colombo"} {
		w := do(t, r, http.MethodPost, "/api/relief-camps/", map[string]any{
			"name": "Camp " + district, "district": district, "location_description": "Hall",
			"capacity": 100, "current_occupancy": 10, "needs": "water, mats",
		}, operator)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		ids = append(ids, decode[models.ReliefCamp](t, w).ID)
	}

	w := do(t, r, http.MethodGet, "/api/relief-camps/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	camps := decode[[]models.ReliefCamp](t, w)
	require.Len(t, camps, 2)
	assert.Equal(t, "Colombo", camps[0].District)

	w = do(t, r, http.MethodPatch, "/api/relief-camps/"+itoa(ids[1])+"/", map[string]any{"is_active": false}, operator)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, decode[models.ReliefCamp](t, w).IsActive)

	camps = decode[[]models.ReliefCamp](t, do(t, r, http.MethodGet, "/api/relief-camps/", nil, ""))
	require.Len(t, camps, 1)
	assert.Equal(t, ids[0], camps[0].ID)

	w = do(t, r, http.MethodPatch, "/api/relief-camps/"+itoa(ids[1])+"/", map[string]any{}, operator)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string][]string](t, w), "is_active")
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t, "http_cors")
	req := httptest.NewRequest(http.MethodOptions, "/api/sos-requests/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

type failingCamps struct{ repository.ReliefCampRepositoryI }

func (failingCamps) ListActive(context.Context) ([]models.ReliefCamp, error) {
	return nil, &repository.PersistenceError{Op: "list active relief camps", Err: errors.New("database is locked")}
}

func TestPersistenceFailureIsGeneric500(t *testing.T) {
	intake := service.NewIntake(nil, nil, failingCamps{}, zaptest.NewLogger(t))
	r := NewRouter(intake, Options{JWTSecret: secret})
	w := do(t, r, http.MethodGet, "/api/relief-camps/", nil, "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"internal server error"}`, w.Body.String())
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
