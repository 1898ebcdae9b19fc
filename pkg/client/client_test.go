package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/omfj/appwash-cli/pkg/client/api"
)

type recordedRequest struct {
	header http.Header
	body   map[string]any
}

type requestLog struct {
	mu   sync.Mutex
	last map[string]*recordedRequest
}

func (l *requestLog) get(route string) *recordedRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last[route]
}

// newTestServer routes the API paths to handlers that write the given raw
// bodies and records the last request per path.
func newTestServer(t *testing.T, routes map[string]string) (*ClientSet, *requestLog) {
	t.Helper()

	seen := &requestLog{last: make(map[string]*recordedRequest)}
	r := mux.NewRouter()
	for route, body := range routes {
		r.HandleFunc(route, func(w http.ResponseWriter, req *http.Request) {
			rec := &recordedRequest{header: req.Header.Clone()}
			if req.Body != nil {
				_ = json.NewDecoder(req.Body).Decode(&rec.body)
			}
			seen.mu.Lock()
			seen.last[route] = rec
			seen.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		})
	}
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return New(Config{BaseURL: srv.URL, Language: "no", Timeout: 5 * time.Second}), seen
}

func TestLogin(t *testing.T) {
	t.Run("returns token", func(t *testing.T) {
		cs, seen := newTestServer(t, map[string]string{
			"/login": `{"errorCode":0,"login":{"token":"T1"}}`,
		})

		token, err := cs.Auth.Login(context.Background(), "a@b.com", "pw")
		require.NoError(t, err)
		assert.Equal(t, "T1", token)

		req := seen.get("/login")
		require.NotNil(t, req)
		assert.Equal(t, "a@b.com", req.body["email"])
		assert.Equal(t, "pw", req.body["password"])
		assert.Equal(t, "appWash", req.header.Get("platform"))
		assert.Equal(t, "no", req.header.Get("language"))
		assert.Equal(t, DefaultUserAgent, req.header.Get("User-Agent"))
		assert.Empty(t, req.header.Get("token"))
	})

	t.Run("code 63 is invalid credentials", func(t *testing.T) {
		cs, _ := newTestServer(t, map[string]string{
			"/login": `{"errorCode":63,"errorDescription":"wrong password"}`,
		})

		_, err := cs.Auth.Login(context.Background(), "a@b.com", "nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.NotErrorIs(t, err, ErrRemoteFailure)
		code, ok := ErrorCode(err)
		assert.True(t, ok)
		assert.Equal(t, CodeInvalidCredentials, code)
	})

	t.Run("other codes are remote failures", func(t *testing.T) {
		cs, _ := newTestServer(t, map[string]string{
			"/login": `{"errorCode":12}`,
		})

		_, err := cs.Auth.Login(context.Background(), "a@b.com", "pw")
		assert.ErrorIs(t, err, ErrRemoteFailure)
		code, ok := ErrorCode(err)
		assert.True(t, ok)
		assert.Equal(t, 12, code)
		assert.Equal(t, "remote error 12", err.Error())
	})

	t.Run("missing token is malformed", func(t *testing.T) {
		cs, _ := newTestServer(t, map[string]string{
			"/login": `{"errorCode":0,"login":{}}`,
		})

		_, err := cs.Auth.Login(context.Background(), "a@b.com", "pw")
		assert.ErrorIs(t, err, ErrMalformedResponse)
		_, ok := ErrorCode(err)
		assert.False(t, ok)
	})

	t.Run("non JSON body is malformed", func(t *testing.T) {
		cs, _ := newTestServer(t, map[string]string{
			"/login": `<html>maintenance</html>`,
		})

		_, err := cs.Auth.Login(context.Background(), "a@b.com", "pw")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cs := New(Config{BaseURL: url, Timeout: time.Second})
	_, err := cs.Auth.Login(context.Background(), "a@b.com", "pw")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteFailure)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Zero(t, apiErr.Code)
	assert.NotNil(t, apiErr.Err)
}

func TestNon2xxWithoutCode(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/account/getprepaid", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	cs := New(Config{BaseURL: srv.URL})
	_, err := cs.Account.GetBalance(context.Background(), "T1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteFailure)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.HTTPStatus)
	assert.Equal(t, "request failed with HTTP 502", err.Error())
}

func TestListMachines(t *testing.T) {
	cs, seen := newTestServer(t, map[string]string{
		"/location/{id}/connectorsv2": `{"errorCode":0,"data":[
			{"externalId":"101","state":"FREE","serviceType":"WASHING_MACHINE"},
			{"externalId":"102","state":"OCCUPIED","serviceType":"WASHING_MACHINE","lastSessionStart":1660000000}
		]}`,
	})

	machines, err := cs.Machines.ListMachines(context.Background(), "T1", "9944", "WASHING_MACHINE")
	require.NoError(t, err)
	require.Len(t, machines, 2)

	assert.Equal(t, "101", machines[0].ExternalID)
	assert.Equal(t, api.MachineStateFree, machines[0].State)
	_, running := machines[0].StartedAt()
	assert.False(t, running)

	started, running := machines[1].StartedAt()
	assert.True(t, running)
	assert.Equal(t, int64(1660000000), started.Unix())

	req := seen.get("/location/{id}/connectorsv2")
	require.NotNil(t, req)
	assert.Equal(t, "T1", req.header.Get("token"))
	assert.Equal(t, "WASHING_MACHINE", req.body["serviceType"])
}

func TestListMachinesMissingData(t *testing.T) {
	cs, _ := newTestServer(t, map[string]string{
		"/location/{id}/connectorsv2": `{"errorCode":0}`,
	})

	_, err := cs.Machines.ListMachines(context.Background(), "T1", "9944", "")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestMachineActions(t *testing.T) {
	cs, seen := newTestServer(t, map[string]string{
		"/connector/{id}/start": `{"errorCode":0}`,
		"/connector/{id}/stop":  `{"errorCode":34,"errorDescription":"machine not stoppable"}`,
	})

	require.NoError(t, cs.Machines.StartMachine(context.Background(), "T1", "101"))
	assert.Equal(t, api.SourceChannelWebsite, seen.get("/connector/{id}/start").body["sourceChannel"])

	err := cs.Machines.StopMachine(context.Background(), "T1", "101")
	assert.ErrorIs(t, err, ErrRemoteFailure)
	assert.Equal(t, "remote error 34: machine not stoppable", err.Error())
}

func TestAccount(t *testing.T) {
	cs, _ := newTestServer(t, map[string]string{
		"/account/getprepaid": `{"errorCode":0,"data":{"balanceCents":12345,"currency":"NOK"}}`,
		"/account/prepaid/transactions": `{"errorCode":0,"data":[
			{"mutationTimestamp":1660000000,"description":"Wash","externalId":"101","mutationCents":-2500,"currency":"NOK"}
		]}`,
	})

	balance, err := cs.Account.GetBalance(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, int64(12345), balance.BalanceCents)
	assert.Equal(t, "NOK", balance.Currency)

	history, err := cs.Account.ListHistory(context.Background(), "T1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Wash", history[0].Description)
	assert.Equal(t, int64(-2500), history[0].AmountCents)
	assert.Equal(t, int64(1660000000), history[0].Time().Unix())
}

func TestBalanceMissingCurrency(t *testing.T) {
	cs, _ := newTestServer(t, map[string]string{
		"/account/getprepaid": `{"errorCode":0,"data":{"balanceCents":1}}`,
	})

	_, err := cs.Account.GetBalance(context.Background(), "T1")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func findSpan(spans []sdktrace.ReadOnlySpan, name string) sdktrace.ReadOnlySpan {
	for _, span := range spans {
		if span.Name() == name {
			return span
		}
	}
	return nil
}

func TestRequestSpanRecordsErrorCode(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	cs, _ := newTestServer(t, map[string]string{
		"/login": `{"errorCode":63,"errorDescription":"wrong password"}`,
	})

	_, err := cs.Auth.Login(context.Background(), "a@b.com", "nope")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	span := findSpan(recorder.Ended(), "POST /login")
	require.NotNil(t, span)
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Contains(t, span.Attributes(), attribute.Int("appwash.error_code", CodeInvalidCredentials))
	assert.Contains(t, span.Attributes(), attribute.Int("http.response.status_code", http.StatusOK))
}
