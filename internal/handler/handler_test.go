package handler_test

// End-to-end HTTP tests: a real chi router with real services, backed by
// in-memory fake repositories. Only the store is faked — routing, middleware,
// JSON decoding, validation, and error mapping are all the production code.

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tanvir/jobtrackr/internal/apperror"
	"github.com/tanvir/jobtrackr/internal/auth"
	"github.com/tanvir/jobtrackr/internal/handler"
	"github.com/tanvir/jobtrackr/internal/model"
	"github.com/tanvir/jobtrackr/internal/service"
)

// ---- fake repositories ----

type fakeUserRepo struct {
	byUsername map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUsername: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if _, ok := f.byUsername[user.Username]; ok {
		return apperror.Conflict("User already exists")
	}
	user.ID = primitive.NewObjectID().Hex()
	copied := *user
	f.byUsername[user.Username] = &copied
	return nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, apperror.NotFound("User", username)
	}
	copied := *u
	return &copied, nil
}

type fakeJobRepo struct {
	jobs  map[primitive.ObjectID]*model.Job
	order []primitive.ObjectID
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[primitive.ObjectID]*model.Job)}
}

func (f *fakeJobRepo) Insert(ctx context.Context, job *model.Job) error {
	id := primitive.NewObjectID()
	job.ID = id.Hex()
	copied := *job
	f.jobs[id] = &copied
	f.order = append(f.order, id)
	return nil
}

func (f *fakeJobRepo) List(ctx context.Context) ([]model.Job, error) {
	out := make([]model.Job, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, *f.jobs[id])
	}
	return out, nil
}

func (f *fakeJobRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, apperror.NotFound("Job", id.Hex())
	}
	copied := *j
	return &copied, nil
}

func (f *fakeJobRepo) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*model.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, apperror.NotFound("Job", id.Hex())
	}
	for k, v := range fields {
		s, _ := v.(string)
		switch k {
		case "company":
			j.Company = s
		case "position":
			j.Position = s
		case "status":
			j.Status = s
		}
	}
	copied := *j
	return &copied, nil
}

func (f *fakeJobRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.jobs[id]; !ok {
		return apperror.NotFound("Job", id.Hex())
	}
	delete(f.jobs, id)
	return nil
}

// ---- app wiring ----

// testApp bundles the router and its fakes so tests can reach behind the API
// when asserting on stored state.
type testApp struct {
	router *chi.Mux
	users  *fakeUserRepo
	jobs   *fakeJobRepo
	tokens *auth.TokenService
}

// newTestApp wires the same dependency graph as internal/server, minus the
// real Mongo connection.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!", 0)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	users := newFakeUserRepo()
	jobs := newFakeJobRepo()

	authService := service.NewAuthService(users, auth.NewPasswordServiceForTest(4), tokens, logger)
	jobService := service.NewJobService(jobs, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	jobHandler := handler.NewJobHandler(jobService, logger)

	r := chi.NewRouter()
	r.Get("/", handler.HandleHome)
	r.Post("/register", authHandler.HandleRegister)
	r.Post("/login", authHandler.HandleLogin)
	r.Route("/jobs", func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))
		r.Post("/", jobHandler.HandleCreate)
		r.Get("/", jobHandler.HandleList)
		r.Get("/{id}", jobHandler.HandleGet)
		r.Put("/{id}", jobHandler.HandleUpdate)
		r.Delete("/{id}", jobHandler.HandleDelete)
	})

	return &testApp{router: r, users: users, jobs: jobs, tokens: tokens}
}

// do sends a request through the router. A non-empty token goes into the
// Authorization header.
func (app *testApp) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	app.router.ServeHTTP(rr, req)
	return rr
}

// decodeBody decodes a recorder's JSON body into dst.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(dst); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
}

// login registers a user and returns a valid access token for it.
func (app *testApp) login(t *testing.T) string {
	t.Helper()

	rr := app.do(t, http.MethodPost, "/register", "", `{"username":"alice","password":"pw"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: status = %d, body = %s", rr.Code, rr.Body.String())
	}

	rr = app.do(t, http.MethodPost, "/login", "", `{"username":"alice","password":"pw"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, rr, &body)
	if body.AccessToken == "" {
		t.Fatal("login returned no access_token")
	}
	return body.AccessToken
}
