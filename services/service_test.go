package services

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JigneshCalidad/Achivement-Tracker/api"
	"github.com/JigneshCalidad/Achivement-Tracker/testserver"
)

const testDate = "2025-06-01"

type testEnv struct {
	server    *testserver.Server
	client    *api.Client
	session   *SessionService
	days      *DayService
	mutations *MutationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	srv := testserver.New("test-secret")
	srv.SeedDemo(testDate)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client := api.New(ts.URL)
	days := NewDayService(client)

	return &testEnv{
		server:    srv,
		client:    client,
		session:   NewSessionService(client),
		days:      days,
		mutations: NewMutationService(client, days),
	}
}

func newLoggedInEnv(t *testing.T) *testEnv {
	t.Helper()

	env := newTestEnv(t)
	err := env.session.Login(context.Background(), testserver.DemoEmail, testserver.DemoPassword)
	require.NoError(t, err)
	return env
}
