package mux

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"qrng-server/pkg/model"
)

func TestPostOperatorAuth(t *testing.T) {
	setupJWT()
	a := assert.New(t)

	m, store := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	operator := store.addOperator("alice", "super-secret")

	var errObj errorResponse
	assertPost(t, ts, "/operator/auth", operatorAuthPayload{Username: "alice", Password: "wrong"}, &errObj, 401)
	assertPost(t, ts, "/operator/auth", operatorAuthPayload{Username: "nobody", Password: "super-secret"}, &errObj, 401)

	var resp operatorAuthResponse
	assertPost(t, ts, "/operator/auth", operatorAuthPayload{Username: "alice", Password: "super-secret"}, &resp, 200)
	a.NotEmpty(resp.JWT)
	a.Equal(operator.ID, resp.Operator.ID)
	a.Equal("alice", resp.Operator.Username)
}

func TestPostOperator(t *testing.T) {
	setupJWT()
	a := assert.New(t)

	m, store := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	store.addOperator("alice", "super-secret")

	assertPost(t, ts, "/operator", operatorCreatePayload{Username: "bob", Password: "also-secret"}, nil, 401)

	var auth operatorAuthResponse
	assertPost(t, ts, "/operator/auth", operatorAuthPayload{Username: "alice", Password: "super-secret"}, &auth, 200)

	var created model.Operator
	assertPost(t, ts, "/operator", operatorCreatePayload{Username: "bob", Password: "also-secret"}, &created, 201, auth.JWT)
	a.Equal("bob", created.Username)
	a.Greater(created.ID, int64(0))

	var errObj errorResponse
	assertPost(t, ts, "/operator", operatorCreatePayload{Username: "", Password: "also-secret"}, &errObj, 400, auth.JWT)

	assertPost(t, ts, "/operator", operatorCreatePayload{Username: "carol", Password: "short"}, &errObj, 400, auth.JWT)
	a.Equal(model.ErrPasswordTooShort.Error(), errObj.Message)

	assertPost(t, ts, "/operator", operatorCreatePayload{Username: "bob", Password: "also-secret"}, &errObj, 409, auth.JWT)

	_, err := store.GetOperatorByUsernameAndPassword(context.Background(), "bob", "also-secret")
	a.NoError(err)
}

func TestGetOperator(t *testing.T) {
	setupJWT()
	a := assert.New(t)

	m, store := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	store.addOperator("alice", "super-secret")
	store.addOperator("bob", "also-secret")

	assertGet(t, ts, "/operator", nil, 401)

	var auth operatorAuthResponse
	assertPost(t, ts, "/operator/auth", operatorAuthPayload{Username: "alice", Password: "super-secret"}, &auth, 200)

	var operators []*model.Operator
	assertGet(t, ts, "/operator", &operators, 200, auth.JWT)
	a.Equal(2, len(operators))

	usernames := make(map[string]bool)
	for _, op := range operators {
		usernames[op.Username] = true
	}
	a.True(usernames["alice"])
	a.True(usernames["bob"])
}
