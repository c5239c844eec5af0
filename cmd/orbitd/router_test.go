package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"orbit/eventlog"
)

func newTestServer(t *testing.T) (*server, *app) {
	t.Helper()
	a, _, _ := newTestApp(t)

	auditDB, err := eventlog.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, eventlog.AutoMigrate(auditDB))

	auth := newAdminAuth("test-secret", time.Hour)
	hub := newEventHub()
	audit := newAuditLog(auditDB)
	return newServer(a, auth, hub, audit), a
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodGet, "/healthz", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminLoginThenNewStablecoin(t *testing.T) {
	s, a := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/admin/login",
		issueTokenRequest{Subject: "operator"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var issued map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &issued))
	token := issued["token"]
	require.NotEmpty(t, token)

	operatorAddr := demoAddress("router-test-operator")
	poolAddr := demoAddress("router-test-pool")
	a.seedDemoCollaterals(poolAddr, demoAddress("router-test-router"), demoAddress("router-test-oracle"), demoAddress("router-test-oracle-signer"))

	rec = doJSON(t, s.Handler(), http.MethodPost, "/v1/admin/new_stablecoin", newStablecoinRequest{
		Caller:        operatorAddr.String(),
		Token:         demoAddress("router-test-token").String(),
		PeggedTo:      "USD",
		BlendPool:     poolAddr.String(),
		InitialSupply: "1000",
	}, "")
	// No token presented: the admin group requires one.
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, s.Handler(), http.MethodPost, "/v1/admin/new_stablecoin", newStablecoinRequest{
		Caller:        operatorAddr.String(),
		Token:         demoAddress("router-test-token").String(),
		PeggedTo:      "USD",
		BlendPool:     poolAddr.String(),
		InitialSupply: "1000",
	}, token)
	// The operator presented a valid bearer token but is not the address
	// bootstrap registered as the façade's admin, so the façade itself
	// still rejects the call — the HTTP layer only proves who is asking,
	// not that they hold governance authority.
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTreasurySupplyRequiresBearerToken(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/treasury/supply", callerTokenAmountRequest{
		Caller: demoAddress("x").String(),
		Token:  demoAddress("y").String(),
		Amount: "100",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOracleReadRoutesAreUnauthenticated(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodGet, "/v1/bridgeoracle/decimals", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
}
