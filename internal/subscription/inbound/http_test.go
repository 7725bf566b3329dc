package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/eventex/internal/pkg/clock"
	"github.com/shandysiswandi/eventex/internal/pkg/config"
	"github.com/shandysiswandi/eventex/internal/pkg/goerror"
	"github.com/shandysiswandi/eventex/internal/pkg/goroutine"
	"github.com/shandysiswandi/eventex/internal/pkg/hash"
	"github.com/shandysiswandi/eventex/internal/pkg/idempotency"
	"github.com/shandysiswandi/eventex/internal/pkg/instrument"
	"github.com/shandysiswandi/eventex/internal/pkg/mail"
	"github.com/shandysiswandi/eventex/internal/pkg/render"
	"github.com/shandysiswandi/eventex/internal/pkg/router"
	"github.com/shandysiswandi/eventex/internal/pkg/validator"
	"github.com/shandysiswandi/eventex/internal/subscription/entity"
	"github.com/shandysiswandi/eventex/internal/subscription/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryDB struct {
	mu      sync.Mutex
	records map[int64]entity.Subscription
	err     error
}

func (m *memoryDB) CreateSubscription(_ context.Context, in entity.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.records[in.ID] = in
	return nil
}

func (m *memoryDB) GetSubscriptionByID(_ context.Context, id int64) (*entity.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.records[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &sub, nil
}

type outbox struct {
	messages []mail.Message
}

func (o *outbox) Send(_ context.Context, msg mail.Message) error {
	o.messages = append(o.messages, msg)
	return nil
}

type discardEvents struct{}

func (discardEvents) PublishSubscriptionCreated(context.Context, usecase.SubscriptionCreatedEvent) error {
	return nil
}

type counterID struct {
	mu sync.Mutex
	n  int64
}

func (c *counterID) Generate() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return c.n
}

type fixedCID string

func (f fixedCID) Generate() string { return string(f) }

type server struct {
	handler http.Handler
	csrf    *router.CSRF
	db      *memoryDB
	outbox  *outbox
}

func newServer(t *testing.T) *server {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  name: eventex\n"))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	renderer := render.NewLiquid()
	require.NoError(t, renderer.Register(usecase.ConfirmationTemplateName, usecase.ConfirmationTemplate))

	signer, err := hash.NewHMACSHA256("inbound-test")
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	gm := goroutine.NewManager(2)
	t.Cleanup(func() { _ = gm.Wait() })

	s := &server{
		csrf:   router.NewCSRF(signer, false),
		db:     &memoryDB{records: map[int64]entity.Subscription{}},
		outbox: &outbox{},
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        s.db,
		RepoMail:      s.outbox,
		RepoMessaging: discardEvents{},
		Idempotency:   idempotency.New(rdb, "test:"),
		Validator:     v,
		Renderer:      renderer,
		Config:        cfg,
		UID:           &counterID{},
		Clock:         clock.Fixed(time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)),
		Instrument:    instrument.NewNoop(),
		Goroutine:     gm,
	})

	r := router.NewRouter(router.Config{Config: cfg, UUID: fixedCID("cid"), Instrument: instrument.NewNoop()})
	RegisterHTTPEndpoint(r, uc, s.csrf)
	s.handler = r

	return s
}

func (s *server) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *server) postForm(t *testing.T, values url.Values) *httptest.ResponseRecorder {
	t.Helper()

	token := s.csrf.Token(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, FormPath, nil))
	require.NotEmpty(t, token)
	values.Set(router.CSRFFieldName, token)

	req := httptest.NewRequest(http.MethodPost, FormPath, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: router.CSRFCookieName, Value: token})
	return s.do(req)
}

func validForm() url.Values {
	return url.Values{
		"name":  {"Mateus Flavio"},
		"cpf":   {"32783355892"},
		"email": {"mateusflavio@gmail.com"},
		"phone": {"(16) 992636600"},
	}
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestWebEndpoint_Form(t *testing.T) {
	s := newServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, FormPath, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, "<form"))
	assert.Equal(t, 6, strings.Count(body, "<input"))
	assert.Equal(t, 3, strings.Count(body, `type="text"`))
	assert.Equal(t, 1, strings.Count(body, `type="email"`))
	assert.Equal(t, 1, strings.Count(body, `type="submit"`))
	assert.Contains(t, body, "csrfmiddlewaretoken")
	assert.NotNil(t, cookieNamed(rec, router.CSRFCookieName))

	last := -1
	for _, name := range []string{"name", "cpf", "email", "phone"} {
		i := strings.Index(body, `name="`+name+`"`)
		require.Greater(t, i, last, name)
		last = i
	}
}

func TestWebEndpoint_Subscribe(t *testing.T) {
	t.Run("valid post redirects and sends one email", func(t *testing.T) {
		s := newServer(t)

		rec := s.postForm(t, validForm())
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, FormPath, rec.Header().Get("Location"))

		require.Len(t, s.outbox.messages, 1)
		msg := s.outbox.messages[0]
		assert.Equal(t, "Confirmação de inscrição", msg.Subject)
		assert.Equal(t, "contato@eventex.com.br", msg.From)
		assert.Equal(t, []string{"contato@eventex.com.br", "mateusflavio@gmail.com"}, msg.To)
		for _, v := range []string{"Mateus Flavio", "32783355892", "mateusflavio@gmail.com", "(16) 992636600"} {
			assert.Contains(t, msg.TextBody, v)
		}
		assert.Len(t, s.db.records, 1)
	})

	t.Run("success message is shown once after redirect", func(t *testing.T) {
		s := newServer(t)

		rec := s.postForm(t, validForm())
		flash := cookieNamed(rec, router.FlashCookieName)
		require.NotNil(t, flash)

		req := httptest.NewRequest(http.MethodGet, FormPath, nil)
		req.AddCookie(flash)
		page := s.do(req)
		assert.Equal(t, 1, strings.Count(page.Body.String(), "Inscrição realizada com sucesso!"))

		cleared := cookieNamed(page, router.FlashCookieName)
		require.NotNil(t, cleared)
		assert.Negative(t, cleared.MaxAge)

		again := s.do(httptest.NewRequest(http.MethodGet, FormPath, nil))
		assert.NotContains(t, again.Body.String(), "Inscrição realizada com sucesso!")
	})

	t.Run("invalid post re-renders with errors", func(t *testing.T) {
		s := newServer(t)

		rec := s.postForm(t, url.Values{"name": {"Mateus Flavio"}, "cpf": {"123"}})
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, "errorlist")
		assert.Contains(t, body, `value="Mateus Flavio"`)
		assert.Contains(t, body, "CPF deve ter 11 números.")
		assert.Contains(t, body, "Este campo é obrigatório.")
		assert.Nil(t, cookieNamed(rec, router.FlashCookieName))
		assert.Empty(t, s.outbox.messages)
		assert.Empty(t, s.db.records)
	})

	t.Run("empty post is not redirected", func(t *testing.T) {
		s := newServer(t)

		rec := s.postForm(t, url.Values{})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 4, strings.Count(rec.Body.String(), "Este campo é obrigatório."))
		assert.Empty(t, s.outbox.messages)
	})

	t.Run("missing csrf token is forbidden", func(t *testing.T) {
		s := newServer(t)

		req := httptest.NewRequest(http.MethodPost, FormPath, strings.NewReader(validForm().Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := s.do(req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, s.outbox.messages)
	})

	t.Run("store failure renders an error page", func(t *testing.T) {
		s := newServer(t)
		s.db.err = errors.New("db down")

		rec := s.postForm(t, validForm())
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), failureMessage)
		assert.Empty(t, s.outbox.messages)
	})
}

func TestRegisterHTTPEndpoint_RootRedirect(t *testing.T) {
	s := newServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, FormPath, rec.Header().Get("Location"))
}

func TestHTTPEndpoint_API(t *testing.T) {
	postJSON := func(s *server, body, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		return s.do(req)
	}

	decode := func(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
		t.Helper()
		var out map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		return out
	}

	valid := `{"name":"Mateus Flavio","cpf":"327.833.558-92","email":"mateusflavio@gmail.com","phone":"(16) 992636600"}`

	t.Run("create then detail", func(t *testing.T) {
		s := newServer(t)

		rec := postJSON(s, valid, "")
		require.Equal(t, http.StatusCreated, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Inscrição realizada com sucesso!", body["message"])
		data := body["data"].(map[string]any)
		assert.Equal(t, "1", data["id"])
		assert.Equal(t, "32783355892", data["cpf"])
		assert.Equal(t, true, data["confirmation_sent"])

		detail := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/1", nil))
		require.Equal(t, http.StatusOK, detail.Code)
		assert.Equal(t, "Mateus Flavio", decode(t, detail)["data"].(map[string]any)["name"])
	})

	t.Run("field errors are 422", func(t *testing.T) {
		s := newServer(t)

		rec := postJSON(s, `{"name":"","cpf":"1","email":"x","phone":""}`, "")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		errs := decode(t, rec)["error"].(map[string]any)
		assert.Len(t, errs, 4)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		s := newServer(t)

		rec := postJSON(s, `{"name":`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("replayed idempotency key is 409", func(t *testing.T) {
		s := newServer(t)

		require.Equal(t, http.StatusCreated, postJSON(s, valid, "k-1").Code)
		assert.Equal(t, http.StatusConflict, postJSON(s, valid, "k-1").Code)
		assert.Len(t, s.outbox.messages, 1)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		s := newServer(t)

		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/99", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non numeric id is 400", func(t *testing.T) {
		s := newServer(t)

		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/abc", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
