package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"recruitment-tracker/internal/domain"
	"recruitment-tracker/internal/logger"
	"recruitment-tracker/internal/repository"
	"recruitment-tracker/internal/repository/memory"
	"recruitment-tracker/internal/security"
	"recruitment-tracker/internal/service"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testPassword = "admin-pass"
)

type testEnv struct {
	handler http.Handler
	store   *memory.Store
	tm      security.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithRepo(t, nil)
}

func newTestEnvWithRepo(t *testing.T, repo repository.RecruitmentRepository) *testEnv {
	t.Helper()
	logger.InitializeWithWriter(io.Discard, "error", "text")

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	store := memory.NewStore()
	if repo == nil {
		repo = store
	}
	tm := security.NewTokenManager(testSecret, time.Hour)
	handler := NewRouter(RouterDeps{
		AuthService:        service.NewAuthService(string(hash), tm),
		RecruitmentService: service.NewRecruitmentService(repo),
		Guard:              security.NewAccessGuard(tm),
		Store:              store,
		AllowedOrigins:     []string{"*"},
	})
	return &testEnv{handler: handler, store: store, tm: tm}
}

func (e *testEnv) do(method, path, body, authHeader string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	rr := e.do(http.MethodPost, "/auth", `{"password":"`+testPassword+`"}`, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var session service.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	return "Bearer " + session.Token
}

func (e *testEnv) seed(t *testing.T, hstl, recruited string) domain.Recruitment {
	t.Helper()
	rec := &domain.Recruitment{
		HSTLMember:      hstl,
		RecruitedMember: recruited,
		PaidOut:         domain.PayoutStatusPending,
		CreatedAt:       time.Now().UTC(),
	}
	require.NoError(t, e.store.Create(context.Background(), rec))
	return *rec
}

func (e *testEnv) list(t *testing.T) []domain.Recruitment {
	t.Helper()
	records, err := e.store.List(context.Background())
	require.NoError(t, err)
	return records
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	t.Run("Correct password", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/auth", `{"password":"`+testPassword+`"}`, "")
		require.Equal(t, http.StatusOK, rr.Code)

		var session service.Session
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &session))
		assert.NotEmpty(t, session.Token)
		assert.True(t, session.ExpiresAt.After(time.Now()))
	})

	t.Run("Wrong password", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/auth", `{"password":"nope"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.NotContains(t, rr.Body.String(), "token")
		assert.NotContains(t, rr.Body.String(), "nope")
		assert.Equal(t, "Invalid password", decodeError(t, rr).Message)
	})

	t.Run("Missing password", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/auth", `{}`, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Malformed body", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/auth", `{"password":`, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Other methods", func(t *testing.T) {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			rr := env.do(method, "/auth", "", "")
			assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, method)
			assert.Equal(t, "POST", rr.Header().Get("Allow"), method)
		}
	})
}

func TestSession(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	rr := env.do(http.MethodGet, "/auth/session", "", token)
	require.Equal(t, http.StatusOK, rr.Code)
	var body sessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.IsAdmin)
	assert.False(t, body.ExpiresAt.IsZero())

	rr = env.do(http.MethodGet, "/auth/session", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateThenList(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	rr := env.do(http.MethodPost, "/recruitments", `{"hstlMember":"A","recruitedMember":"B"}`, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created createResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Message)
	require.NotNil(t, created.Recruitment)
	assert.NotEmpty(t, created.Recruitment.ID)
	assert.Equal(t, domain.PayoutStatusPending, created.Recruitment.PaidOut)

	rr = env.do(http.MethodGet, "/recruitments", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var listed []domain.Recruitment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.Recruitment.ID, listed[0].ID)
	assert.Equal(t, "A", listed[0].HSTLMember)
	assert.Equal(t, "B", listed[0].RecruitedMember)
	assert.Equal(t, domain.PayoutStatusPending, listed[0].PaidOut)
}

func TestListOrderAndFilter(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	for _, body := range []string{
		`{"hstlMember":"Alice","recruitedMember":"Bob"}`,
		`{"hstlMember":"Carol","recruitedMember":"Dave","paidOut":"Paid"}`,
	} {
		require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/recruitments", body, token).Code)
	}

	rr := env.do(http.MethodGet, "/recruitments", "", "")
	var listed []domain.Recruitment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "Carol", listed[0].HSTLMember, "newest first")

	rr = env.do(http.MethodGet, "/recruitments?q=bob", "", "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Alice", listed[0].HSTLMember)
}

func TestEmptyListIsArray(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(http.MethodGet, "/recruitments", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	tests := []struct {
		name string
		body string
	}{
		{"Missing recruitedMember", `{"hstlMember":"A"}`},
		{"Blank names", `{"hstlMember":" ","recruitedMember":""}`},
		{"Unknown status", `{"hstlMember":"A","recruitedMember":"B","paidOut":"Sometimes"}`},
		{"Not JSON", `hstlMember=A`},
		{"Empty body", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(http.MethodPost, "/recruitments", tt.body, token)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.NotEmpty(t, decodeError(t, rr).Message)
			assert.Empty(t, env.list(t))
		})
	}

	t.Run("Oversized body", func(t *testing.T) {
		big := `{"hstlMember":"` + strings.Repeat("a", maxBodyBytes) + `","recruitedMember":"B"}`
		rr := env.do(http.MethodPost, "/recruitments", big, token)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, env.list(t))
	})
}

func TestUnauthorizedMutations(t *testing.T) {
	env := newTestEnv(t)
	existing := env.seed(t, "Alice", "Bob")

	expiredTM := security.NewTokenManager(testSecret, -time.Minute)
	expired, _, err := expiredTM.GenerateAdminToken()
	require.NoError(t, err)

	otherTM := security.NewTokenManager(strings.Repeat("z", 32), time.Hour)
	foreign, _, err := otherTM.GenerateAdminToken()
	require.NoError(t, err)

	headers := map[string]string{
		"No header":      "",
		"Garbled token":  "Bearer abc.def.ghi",
		"Expired token":  "Bearer " + expired,
		"Foreign secret": "Bearer " + foreign,
		"Wrong scheme":   "Basic YWRtaW46YWRtaW4=",
	}
	requests := []struct {
		method string
		body   string
	}{
		{http.MethodPost, `{"hstlMember":"X","recruitedMember":"Y"}`},
		{http.MethodPut, `{"id":"` + existing.ID + `","paidOut":"Paid"}`},
		{http.MethodDelete, `{"id":"` + existing.ID + `"}`},
	}

	for name, header := range headers {
		for _, req := range requests {
			t.Run(name+" "+req.method, func(t *testing.T) {
				rr := env.do(req.method, "/recruitments", req.body, header)
				assert.Equal(t, http.StatusUnauthorized, rr.Code)
				assert.NotEmpty(t, decodeError(t, rr).Message)

				records := env.list(t)
				require.Len(t, records, 1)
				assert.Equal(t, existing, records[0])
			})
		}
	}

	t.Run("Expired token message", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/recruitments", `{}`, "Bearer "+expired)
		assert.Equal(t, "Token expired", decodeError(t, rr).Message)
	})
}

func TestUpdatePayout(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)
	existing := env.seed(t, "Alice", "Bob")

	t.Run("Idempotent", func(t *testing.T) {
		body := `{"id":"` + existing.ID + `","paidOut":"Paid"}`
		for i := 0; i < 2; i++ {
			rr := env.do(http.MethodPut, "/recruitments", body, token)
			require.Equal(t, http.StatusOK, rr.Code, "call %d", i+1)
		}

		records := env.list(t)
		require.Len(t, records, 1)
		assert.Equal(t, domain.PayoutStatusPaid, records[0].PaidOut)
		assert.Equal(t, existing.HSTLMember, records[0].HSTLMember)
		assert.Equal(t, existing.RecruitedMember, records[0].RecruitedMember)
		assert.Equal(t, existing.CreatedAt, records[0].CreatedAt)
	})

	t.Run("Legacy status field", func(t *testing.T) {
		rr := env.do(http.MethodPut, "/recruitments", `{"id":"`+existing.ID+`","status":"Pending"}`, token)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.PayoutStatusPending, env.list(t)[0].PaidOut)
	})

	t.Run("Unknown id is a silent success", func(t *testing.T) {
		rr := env.do(http.MethodPut, "/recruitments", `{"id":"1b4e28ba-2fa1-11d2-883f-0016d3cca427","paidOut":"Paid"}`, token)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, env.list(t), 1)
	})

	tests := []struct {
		name string
		body string
	}{
		{"Missing id", `{"paidOut":"Paid"}`},
		{"Missing status", `{"id":"` + existing.ID + `"}`},
		{"Bad status", `{"id":"` + existing.ID + `","paidOut":"Later"}`},
		{"Malformed id", `{"id":"xyz","paidOut":"Paid"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(http.MethodPut, "/recruitments", tt.body, token)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	t.Run("Idempotent", func(t *testing.T) {
		rec := env.seed(t, "Alice", "Bob")
		body := `{"id":"` + rec.ID + `"}`

		assert.Equal(t, http.StatusOK, env.do(http.MethodDelete, "/recruitments", body, token).Code)
		assert.Equal(t, http.StatusOK, env.do(http.MethodDelete, "/recruitments", body, token).Code)
		assert.Empty(t, env.list(t))
	})

	t.Run("Id in query", func(t *testing.T) {
		rec := env.seed(t, "Carol", "Dave")
		rr := env.do(http.MethodDelete, "/recruitments?id="+rec.ID, "", token)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, env.list(t))
	})

	t.Run("Missing id", func(t *testing.T) {
		rr := env.do(http.MethodDelete, "/recruitments", `{}`, token)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	for _, method := range []string{http.MethodPatch, http.MethodHead} {
		rr := env.do(method, "/recruitments", "", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, method)
		assert.Equal(t, "GET, POST, PUT, DELETE", rr.Header().Get("Allow"), method)
	}

	rr := env.do(http.MethodPatch, "/api/recruitments", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, POST, PUT, DELETE", rr.Header().Get("Allow"))
}

func TestAPIPrefixAndNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "Alice", "Bob")

	rr := env.do(http.MethodGet, "/api/recruitments", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Alice")

	for _, path := range []string{"/nope", "/api/nope"} {
		rr = env.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.Equal(t, "API endpoint not found", decodeError(t, rr).Message, path)
	}
}

func TestSummary(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "Alice", "Bob")

	rr := env.do(http.MethodGet, "/recruitments/summary", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var summary domain.PayoutSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Pending)
}

func TestHealthAndCORS(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodOptions, "/recruitments", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", "POST")
	res := httptest.NewRecorder()
	env.handler.ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "*", res.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, res.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestPage(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "Alice", "Bob")
	env.seed(t, "Carol", "<script>x</script>")

	rr := env.do(http.MethodGet, "/?q=ali", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	body := rr.Body.String()
	assert.Contains(t, body, "Alice")
	assert.NotContains(t, body, "Carol")
	assert.NotContains(t, body, "<button onclick")

	rr = env.do(http.MethodGet, "/", "", "")
	assert.NotContains(t, rr.Body.String(), "<script>x</script>")
	assert.Contains(t, rr.Body.String(), "&lt;script&gt;")
}

type failingRepo struct{}

func (failingRepo) List(context.Context) ([]domain.Recruitment, error) {
	return nil, assert.AnError
}
func (failingRepo) Create(context.Context, *domain.Recruitment) error { return assert.AnError }
func (failingRepo) UpdatePayout(context.Context, string, domain.PayoutStatus) error {
	return assert.AnError
}
func (failingRepo) Delete(context.Context, string) error { return assert.AnError }

func TestStoreFailureIsInternalError(t *testing.T) {
	env := newTestEnvWithRepo(t, failingRepo{})
	token := env.login(t)

	cases := []struct {
		method, body string
	}{
		{http.MethodGet, ""},
		{http.MethodPost, `{"hstlMember":"A","recruitedMember":"B"}`},
		{http.MethodPut, `{"id":"abc","paidOut":"Paid"}`},
		{http.MethodDelete, `{"id":"abc"}`},
	}
	for _, c := range cases {
		rr := env.do(c.method, "/recruitments", c.body, token)
		assert.Equal(t, http.StatusInternalServerError, rr.Code, c.method)
		assert.Equal(t, "Internal server error", decodeError(t, rr).Message, c.method)
		assert.NotContains(t, rr.Body.String(), assert.AnError.Error(), c.method)
	}

	rr := env.do(http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
