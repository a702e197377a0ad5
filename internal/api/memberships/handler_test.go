package memberships

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clubero-server/internal/app/http/middleware"
	"clubero-server/internal/domain/membership"
	"clubero-server/internal/infra/identity"
	"clubero-server/internal/service/checkout"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJoiner struct {
	got    checkout.JoinRequest
	result *checkout.JoinResult
	err    error
	calls  int
}

func (f *fakeJoiner) JoinFree(_ context.Context, req checkout.JoinRequest) (*checkout.JoinResult, error) {
	f.calls++
	f.got = req
	return f.result, f.err
}

type fakeLister struct {
	list []membership.Membership
	err  error
}

func (f fakeLister) ListMembershipsByEmail(context.Context, string) ([]membership.Membership, error) {
	return f.list, f.err
}

func setup(t *testing.T, h *Handler) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	v := identity.NewHMACVerifier("test-secret")
	token, err := v.Issue("uid-1", "ana@example.com", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(v, slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.POST("/memberships/free", h.JoinFree)
	r.GET("/memberships", h.ListMine)
	return r, token
}

func call(r *gin.Engine, token, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func logger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestJoinFree(t *testing.T) {
	j := &fakeJoiner{result: &checkout.JoinResult{Success: true, Message: "Joined club successfully", Membership: "m1", Payment: "p1"}}
	r, token := setup(t, NewHandler(j, fakeLister{}, logger()))

	w := call(r, token, http.MethodPost, "/memberships/free", `{"clubId":"c1","clubName":"Chess"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ana@example.com", j.got.Email)
	assert.JSONEq(t, `{"success":true,"message":"Joined club successfully","membership":"m1","payment":"p1"}`, w.Body.String())
}

func TestJoinFree_AlreadyMember(t *testing.T) {
	j := &fakeJoiner{result: &checkout.JoinResult{Success: true, Message: "Already a member of this club", AlreadyMember: true, Membership: "m0"}}
	r, token := setup(t, NewHandler(j, fakeLister{}, logger()))

	w := call(r, token, http.MethodPost, "/memberships/free", `{"clubId":"c1","clubName":"Chess"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"alreadyMember":true`)
}

func TestJoinFree_Rejections(t *testing.T) {
	t.Run("other email", func(t *testing.T) {
		j := &fakeJoiner{}
		r, token := setup(t, NewHandler(j, fakeLister{}, logger()))
		w := call(r, token, http.MethodPost, "/memberships/free", `{"clubId":"c1","clubName":"Chess","email":"bob@example.com"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Zero(t, j.calls)
	})

	t.Run("invalid request", func(t *testing.T) {
		j := &fakeJoiner{err: checkout.ErrInvalidRequest}
		r, token := setup(t, NewHandler(j, fakeLister{}, logger()))
		w := call(r, token, http.MethodPost, "/memberships/free", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store fault", func(t *testing.T) {
		j := &fakeJoiner{err: checkout.ErrPersistence}
		r, token := setup(t, NewHandler(j, fakeLister{}, logger()))
		w := call(r, token, http.MethodPost, "/memberships/free", `{"clubId":"c1","clubName":"Chess"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestListMine(t *testing.T) {
	r, token := setup(t, NewHandler(&fakeJoiner{}, fakeLister{list: []membership.Membership{{ID: "m1", ClubID: "c1"}}}, logger()))
	w := call(r, token, http.MethodGet, "/memberships", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"clubId":"c1"`)

	r, token = setup(t, NewHandler(&fakeJoiner{}, fakeLister{err: errors.New("down")}, logger()))
	w = call(r, token, http.MethodGet, "/memberships", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
