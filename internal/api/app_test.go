package api

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/npezzotti/go-messageboard/internal/config"
	"github.com/npezzotti/go-messageboard/internal/database"
	"github.com/npezzotti/go-messageboard/internal/stats"
	"github.com/npezzotti/go-messageboard/internal/testutil"
	"github.com/npezzotti/go-messageboard/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewMessageBoardApp(t *testing.T) {
	mux := http.NewServeMux()
	logger := testutil.TestLogger(t)
	db := &database.MockMessageBoardRepository{}
	issuer := token.NewIssuer(logger, db)
	mockStats := &stats.MockStatsUpdater{}
	mockStats.On("RegisterMetric", mock.Anything).Return()
	cfg := &config.Config{
		ServerAddr:     "localhost:8080",
		DatabaseDSN:    "dsn",
		AllowedOrigins: []string{"http://localhost:3000"},
	}

	app := NewMessageBoardApp(mux, logger, db, issuer, mockStats, cfg)

	assert.NotNil(t, app, "expected app to be initialized")
	assert.NotNil(t, app.mux, "expected mux to be initialized")
	assert.Equal(t, app.log, logger, "expected logger to be set")
	assert.Equal(t, app.db, db, "expected db to be set")
	assert.Equal(t, app.tokens, issuer, "expected token issuer to be set")
	assert.Equal(t, app.mux.Addr, cfg.ServerAddr, "expected server address to match config")

	mockStats.AssertCalled(t, "RegisterMetric", stats.TotalRegistrations)
	mockStats.AssertCalled(t, "RegisterMetric", stats.TotalLogins)
	mockStats.AssertCalled(t, "RegisterMetric", stats.AuthRejections)
	mockStats.AssertCalled(t, "RegisterMetric", stats.MessagesPosted)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/register"},
		{http.MethodPost, "/login"},
		{http.MethodGet, "/profile"},
		{http.MethodPut, "/profile"},
		{http.MethodGet, "/messages"},
		{http.MethodPost, "/messages"},
		{http.MethodGet, "/healthz"},
	}
	for _, route := range routes {
		handler, pattern := mux.Handler(&http.Request{
			URL:    &url.URL{Path: route.path},
			Method: route.method,
		})
		assert.NotNil(t, handler, "expected handler for %s %s", route.method, route.path)
		assert.Equal(t, route.method+" "+route.path, pattern, "expected pattern for %s %s", route.method, route.path)
	}
}
