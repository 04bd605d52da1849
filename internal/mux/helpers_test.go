package mux

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"qrng-server/internal/jwt"
	"qrng-server/pkg/bitstring"
	"qrng-server/pkg/model"
)

func setupJWT() {
	jwt.LoadKeysFromFiles(filepath.Join("testdata", "public.pem"), filepath.Join("testdata", "private.key"))
}

func newTestMux(t *testing.T) (*Mux, *memoryStore) {
	t.Helper()

	m := NewMux("")
	store := newMemoryStore()
	m.samples = store
	m.operators = store
	return m, store
}

// memoryStore lets handler tests run without Postgres
type memoryStore struct {
	mu        sync.Mutex
	samples   map[string]*model.Sample
	operators map[int64]*memoryOperator
	nextID    int64
}

type memoryOperator struct {
	operator *model.Operator
	password string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		samples:   make(map[string]*model.Sample),
		operators: make(map[int64]*memoryOperator),
	}
}

func (s *memoryStore) CreateSample(_ context.Context, source string, bits bitstring.Bits) (*model.Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	sample := &model.Sample{
		ID:        s.nextID,
		UUID:      uuid.New().String(),
		Source:    source,
		Bits:      bits.String(),
		BitLength: bits.Len(),
		Created:   time.Now(),
	}

	s.samples[sample.UUID] = sample
	return sample, nil
}

func (s *memoryStore) GetSampleByUUID(_ context.Context, sampleUUID string) (*model.Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sample, ok := s.samples[sampleUUID]
	if !ok {
		return nil, sql.ErrNoRows
	}

	return sample, nil
}

func (s *memoryStore) GetSamples(_ context.Context, start int64, rows int) ([]*model.Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	samples := make([]*model.Sample, 0, len(s.samples))
	for _, sample := range s.samples {
		samples = append(samples, sample)
	}

	if start >= int64(len(samples)) {
		return []*model.Sample{}, nil
	}

	samples = samples[start:]
	if len(samples) > rows {
		samples = samples[:rows]
	}

	return samples, nil
}

func (s *memoryStore) DeleteSampleByUUID(_ context.Context, sampleUUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.samples[sampleUUID]; !ok {
		return sql.ErrNoRows
	}

	delete(s.samples, sampleUUID)
	return nil
}

func (s *memoryStore) addOperator(username, password string) *model.Operator {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	operator := &model.Operator{
		ID:       s.nextID,
		Username: username,
		Created:  time.Now(),
		Updated:  time.Now(),
	}

	s.operators[operator.ID] = &memoryOperator{operator: operator, password: password}
	return operator
}

func (s *memoryStore) CreateOperator(_ context.Context, username, password string) (*model.Operator, error) {
	if len(password) < 6 {
		return nil, model.ErrPasswordTooShort
	}

	s.mu.Lock()
	for _, op := range s.operators {
		if strings.EqualFold(op.operator.Username, username) {
			s.mu.Unlock()
			return nil, model.ErrDuplicateKey
		}
	}
	s.mu.Unlock()

	return s.addOperator(username, password), nil
}

func (s *memoryStore) GetOperatorByID(_ context.Context, id int64) (*model.Operator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	op, ok := s.operators[id]
	if !ok {
		return nil, sql.ErrNoRows
	}

	return op.operator, nil
}

func (s *memoryStore) GetOperatorByUsernameAndPassword(_ context.Context, username, password string) (*model.Operator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, op := range s.operators {
		if op.operator.Username == username && op.password == password {
			return op.operator, nil
		}
	}

	return nil, model.ErrInvalidUsernameOrPassword
}

func (s *memoryStore) GetOperators(_ context.Context, start int64, rows int) ([]*model.Operator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	operators := make([]*model.Operator, 0, len(s.operators))
	for _, op := range s.operators {
		operators = append(operators, op.operator)
	}

	return operators, nil
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	if len(signedJWT) > 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", signedJWT[0]))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := ioutil.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGetWithResp(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return nil
	}

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) {
	t.Helper()
	resp := assertGetWithResp(t, ts, path, respObj, statusCode, signedJWT...)
	if resp != nil {
		_ = resp.Body.Close()
	}
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, signedJWT ...string) {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case string:
		body = strings.NewReader(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			t.Error(err)
			return
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Error(err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp := assertDo(t, req, respObj, statusCode, signedJWT...)
	if resp != nil {
		_ = resp.Body.Close()
	}
}

func assertDelete(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return
	}

	resp := assertDo(t, req, respObj, statusCode, signedJWT...)
	if resp != nil {
		_ = resp.Body.Close()
	}
}
