package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/editfolio/editfolio-backend/internal/relay"
)

type stubSMS struct {
	sent int
	err  error
}

func (s *stubSMS) SendSMS(ctx context.Context, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent++
	return nil
}

type stubEmail struct {
	sent int
	err  error
}

func (s *stubEmail) SendEmail(ctx context.Context, subject, body, replyTo string) error {
	if s.err != nil {
		return s.err
	}
	s.sent++
	return nil
}

func contactRouter(r *relay.Relay) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	NewContactHandler(r).Register(g)
	return g
}

func postContact(g *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	return w
}

func TestContactSubmitSuccess(t *testing.T) {
	sms := &stubSMS{}
	email := &stubEmail{}
	g := contactRouter(relay.New(sms, email))

	w := postContact(g, `{"name":"Dana","email":"dana@example.com","message":"Hi"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "true")
	assert.Equal(t, 1, sms.sent)
	assert.Equal(t, 1, email.sent)
}

func TestContactSubmitMissingField(t *testing.T) {
	sms := &stubSMS{}
	g := contactRouter(relay.New(sms, &stubEmail{}))

	w := postContact(g, `{"name":"Dana","email":"dana@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, sms.sent)
}

func TestContactSubmitDownstreamFailure(t *testing.T) {
	g := contactRouter(relay.New(&stubSMS{err: errors.New("twilio down")}, &stubEmail{}))

	w := postContact(g, `{"name":"Dana","email":"dana@example.com","message":"Hi"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
