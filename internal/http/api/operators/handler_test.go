package operators

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/leadbotio/leadbot/internal/platform/auth"
	applog "github.com/leadbotio/leadbot/internal/platform/logging"
	appmiddleware "github.com/leadbotio/leadbot/internal/platform/middleware"
	"github.com/leadbotio/leadbot/internal/platform/respond"
	"github.com/leadbotio/leadbot/internal/runner"
)

func newTestRouter(ctl runner.Control, verifier auth.Verifier) chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("OperatorsTest", "test"))
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))
	Register(api, ctl)
	return router
}

func TestListOperators(t *testing.T) {
	ctl := runner.NewMockControl()
	router := newTestRouter(ctl, &auth.MockVerifier{User: auth.LocalUser()})

	req := httptest.NewRequest(http.MethodGet, "/operators", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "list-operators-test")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var data OperatorsListData
	if err := json.Unmarshal(resp.Body.Bytes(), &data); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if data.Count != 8 {
		t.Errorf("expected 8 operators, got %d", data.Count)
	}
	if !data.EnvReady {
		t.Error("expected envReady true")
	}
	if data.Operators[0].Key != "reuben_lublin" {
		t.Errorf("expected reuben_lublin first, got %s", data.Operators[0].Key)
	}
	for _, op := range data.Operators {
		if op.Status != string(runner.StatusNever) {
			t.Errorf("operator %s: expected never, got %s", op.Key, op.Status)
		}
	}
}

func TestRunOperatorAccepted(t *testing.T) {
	ctl := runner.NewMockControl()
	router := newTestRouter(ctl, &auth.MockVerifier{User: auth.LocalUser()})

	req := httptest.NewRequest(http.MethodPost, "/operators/servicelink_auction/run", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	req.Header.Set(chimiddleware.RequestIDHeader, "run-operator-test")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", resp.Code, resp.Body.String())
	}

	var data RunStartedData
	if err := json.Unmarshal(resp.Body.Bytes(), &data); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if data.RunID == "" {
		t.Error("expected a run ID")
	}
	if data.Operator != "servicelink_auction" {
		t.Errorf("expected operator servicelink_auction, got %s", data.Operator)
	}
}

func TestRunOperatorUnauthorized(t *testing.T) {
	ctl := runner.NewMockControl()
	router := newTestRouter(ctl, &auth.MockVerifier{User: auth.LocalUser()})

	req := httptest.NewRequest(http.MethodPost, "/operators/servicelink_auction/run", nil)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if wwwAuth := resp.Header().Get("WWW-Authenticate"); wwwAuth != "Bearer" {
		t.Errorf("expected WWW-Authenticate: Bearer, got %s", wwwAuth)
	}
}

func TestRunOperatorUnknown(t *testing.T) {
	ctl := runner.NewMockControl()
	router := newTestRouter(ctl, &auth.MockVerifier{User: auth.LocalUser()})

	req := httptest.NewRequest(http.MethodPost, "/operators/no_such_operator/run", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRunOperatorBusy(t *testing.T) {
	ctl := runner.NewMockControl()
	router := newTestRouter(ctl, &auth.MockVerifier{User: auth.LocalUser()})

	first := httptest.NewRequest(http.MethodPost, "/operators/auction_com/run", nil)
	first.Header.Set("Authorization", "Bearer valid-token")
	router.ServeHTTP(httptest.NewRecorder(), first)

	second := httptest.NewRequest(http.MethodPost, "/operators/zome_com/run", nil)
	second.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, second)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRunOperatorUnavailable(t *testing.T) {
	ctl := runner.NewMockControl()
	ctl.StartErr = runner.ErrOperatorUnavailable
	router := newTestRouter(ctl, &auth.MockVerifier{User: auth.LocalUser()})

	req := httptest.NewRequest(http.MethodPost, "/operators/auction_com/run", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRunOperatorEnvNotReady(t *testing.T) {
	ctl := runner.NewMockControl()
	ctl.StartErr = runner.ErrEnvNotReady
	router := newTestRouter(ctl, &auth.MockVerifier{User: auth.LocalUser()})

	req := httptest.NewRequest(http.MethodPost, "/operators/auction_com/run", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestListOperatorsShowsRunning(t *testing.T) {
	ctl := runner.NewMockControl()
	router := newTestRouter(ctl, &auth.MockVerifier{User: auth.LocalUser()})

	run := httptest.NewRequest(http.MethodPost, "/operators/auction_com/run", nil)
	run.Header.Set("Authorization", "Bearer valid-token")
	router.ServeHTTP(httptest.NewRecorder(), run)

	req := httptest.NewRequest(http.MethodGet, "/operators", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var data OperatorsListData
	if err := json.Unmarshal(resp.Body.Bytes(), &data); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	for _, op := range data.Operators {
		if op.Key == "auction_com" && op.Status != string(runner.StatusRunning) {
			t.Errorf("expected auction_com running, got %s", op.Status)
		}
		if !op.DisableRun {
			t.Errorf("operator %s: expected disableRun while busy", op.Key)
		}
	}
}
