package mux

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"qrng-server/internal/jwt"
	"qrng-server/pkg/bitstring"
)

const unknownUUID = "00000000-0000-4000-8000-00000000dead"

func TestGetSample(t *testing.T) {
	a := assert.New(t)

	m, store := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	var list []*sampleResponse
	assertGet(t, ts, "/sample", &list, 200)
	a.Equal(0, len(list))

	sample, _ := store.CreateSample(context.Background(), "quantum", bitstring.Bits("0011"))
	assertGet(t, ts, "/sample", &list, 200)
	a.Equal(1, len(list))
	a.Equal(sample.UUID, list[0].UUID)

	var errObj errorResponse
	assertGet(t, ts, "/sample?start=-1", &errObj, 400)
	assertGet(t, ts, "/sample?rows=101", &errObj, 400)
}

func TestGetSampleUUID(t *testing.T) {
	a := assert.New(t)

	m, store := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	sample, _ := store.CreateSample(context.Background(), "classical", bitstring.Bits("00110101"))

	var resp sampleResponse
	assertGet(t, ts, "/sample/"+sample.UUID, &resp, 200)
	a.Equal(sample.UUID, resp.UUID)
	a.Equal("00110101", resp.Bits)
	a.Equal("53", resp.Integer)
	a.Equal("35", resp.Hex)

	var errObj errorResponse
	assertGet(t, ts, "/sample/"+unknownUUID, &errObj, 404)
}

func TestGetSampleUUIDTests(t *testing.T) {
	a := assert.New(t)

	m, store := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	sample, _ := store.CreateSample(context.Background(), "quantum", bitstring.Bits("00110101"))

	var resp sampleTestsResponse
	assertGet(t, ts, "/sample/"+sample.UUID+"/tests", &resp, 200)
	a.Equal(sample.UUID, resp.UUID)
	a.Equal("quantum", resp.Source)
	a.Equal(8, resp.Length)
	a.Equal(4, resp.Zeros)
	a.Equal(4, resp.Ones)
	a.Equal(6, resp.RunsObserved)
	a.InDelta(1.0, resp.Entropy, 1e-9)
	a.InDelta(1.0, resp.PValue, 1e-6)
}

func TestPostSampleUUIDDerive(t *testing.T) {
	a := assert.New(t)

	m, store := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	short, _ := store.CreateSample(context.Background(), "quantum", bitstring.Bits("0000000100000010"))
	long, _ := store.CreateSample(context.Background(), "quantum", bitstring.Bits(strings.Repeat("01", 64)))

	var resp deriveResponse
	assertPost(t, ts, "/sample/"+short.UUID+"/derive", derivePayload{Kind: "token"}, &resp, 200)
	a.Equal("token", resp.Kind)
	a.Equal("AQI", resp.Result)

	assertPost(t, ts, "/sample/"+long.UUID+"/derive", derivePayload{Kind: "uuid"}, &resp, 200)
	a.Equal(36, len(resp.Result))
	a.Equal("4", resp.Result[14:15]) // RFC 4122 version nibble

	assertPost(t, ts, "/sample/"+short.UUID+"/derive", derivePayload{Kind: "hmac", Message: "hello"}, &resp, 200)
	a.Equal("hello", resp.Message)
	a.Equal(64, len(resp.Result))

	var errObj errorResponse
	// uuid derivation needs at least 128 bits
	assertPost(t, ts, "/sample/"+short.UUID+"/derive", derivePayload{Kind: "uuid"}, &errObj, 400)
	// hmac needs a message
	assertPost(t, ts, "/sample/"+short.UUID+"/derive", derivePayload{Kind: "hmac"}, &errObj, 400)
	// unknown kind
	assertPost(t, ts, "/sample/"+short.UUID+"/derive", derivePayload{Kind: "sha1"}, &errObj, 400)
	// unknown sample
	assertPost(t, ts, "/sample/"+unknownUUID+"/derive", derivePayload{Kind: "token"}, &errObj, 404)
}

func TestDeleteSampleUUID(t *testing.T) {
	setupJWT()
	a := assert.New(t)

	m, store := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	sample, _ := store.CreateSample(context.Background(), "quantum", bitstring.Bits("0011"))

	var errObj errorResponse
	assertDelete(t, ts, "/sample/"+sample.UUID, &errObj, 401)

	operator := store.addOperator("admin", "secret-password")
	token, err := jwt.Sign(operator.ID)
	a.NoError(err)

	var status map[string]string
	assertDelete(t, ts, "/sample/"+sample.UUID, &status, 200, token)
	a.Equal("OK", status["status"])

	assertDelete(t, ts, "/sample/"+sample.UUID, &errObj, 404, token)
}
