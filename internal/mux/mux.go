package mux

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	gmux "github.com/gorilla/mux"

	appconfig "qrng-server/internal/config"
	"qrng-server/internal/jwt"
	"qrng-server/internal/rng"
	"qrng-server/pkg/bitstring"
	"qrng-server/pkg/model"
)

type ctxKey int

const (
	ctxOperatorKey ctxKey = iota
	ctxSampleKey
)

const uuidPattern = `(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}`

// sampleStore archives generated bit sequences
type sampleStore interface {
	CreateSample(ctx context.Context, source string, bits bitstring.Bits) (*model.Sample, error)
	GetSampleByUUID(ctx context.Context, uuid string) (*model.Sample, error)
	GetSamples(ctx context.Context, start int64, rows int) ([]*model.Sample, error)
	DeleteSampleByUUID(ctx context.Context, uuid string) error
}

// operatorStore manages operator accounts for the admin surface
type operatorStore interface {
	CreateOperator(ctx context.Context, username, password string) (*model.Operator, error)
	GetOperatorByID(ctx context.Context, id int64) (*model.Operator, error)
	GetOperatorByUsernameAndPassword(ctx context.Context, username, password string) (*model.Operator, error)
	GetOperators(ctx context.Context, start int64, rows int) ([]*model.Operator, error)
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config    config
	version   string
	samples   sampleStore
	operators operatorStore
	sources   func(name string) (rng.Source, error)

	// store for testing purposes
	authRouter *gmux.Router
}

type config struct {
	// maxBits caps the length of a single bit request
	maxBits int
	// feedInterval is the delay between websocket feed batches
	feedInterval time.Duration
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	cfg := appconfig.Instance()

	this := &Mux{
		Router:    gmux.NewRouter(),
		version:   version,
		samples:   postgresStore{},
		operators: postgresStore{},
		sources:   rng.FromName,
		config: config{
			maxBits:      cfg.MaxBits,
			feedInterval: time.Duration(cfg.FeedIntervalMS) * time.Millisecond,
		},
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodGet).Path("/").Handler(this.getIndex())
		r.Methods(http.MethodGet).PathPrefix("/static/").Handler(this.getStatic())
		r.Methods(http.MethodGet).Path("/circuit").Handler(this.getCircuit())
		r.Methods(http.MethodPost).Path("/generate").Handler(this.postGenerate())
		r.Methods(http.MethodPost).Path("/compare").Handler(this.postCompare())
		r.Methods(http.MethodPost).Path("/number").Handler(this.postNumber())
		r.Methods(http.MethodGet).Path("/feed/ws").Handler(this.getFeedWS())
		r.Methods(http.MethodGet).Path("/sample").Handler(this.getSample())
		r.Methods(http.MethodPost).Path("/operator/auth").Handler(this.postOperatorAuth())

		sr := r.PathPrefix("/sample/{uuid:" + uuidPattern + "}").Subrouter()
		sr.Use(this.sampleMiddleware)
		sr.Methods(http.MethodGet).Path("").Handler(this.getSampleUUID())
		sr.Methods(http.MethodGet).Path("/tests").Handler(this.getSampleUUIDTests())
		sr.Methods(http.MethodPost).Path("/derive").Handler(this.postSampleUUIDDerive())
	}

	// requires bearer authorization
	{
		r := this.authRouter
		r.Methods(http.MethodGet).Path("/operator").Handler(this.getOperator())
		r.Methods(http.MethodPost).Path("/operator").Handler(this.postOperator())

		sr := r.PathPrefix("/sample/{uuid:" + uuidPattern + "}").Subrouter()
		sr.Use(this.sampleMiddleware)
		sr.Methods(http.MethodDelete).Path("").Handler(this.deleteSampleUUID())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := jwt.ValidOperatorID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		operator, err := m.operators.GetOperatorByID(r.Context(), id)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxOperatorKey, operator)
		w.Header().Set("QRNGServer-OperatorID", strconv.FormatInt(operator.ID, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func (m *Mux) sampleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sample, err := m.samples.GetSampleByUUID(r.Context(), gmux.Vars(r)["uuid"])
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxSampleKey, sample)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// postgresStore backs the store interfaces with the models package
type postgresStore struct{}

func (postgresStore) CreateSample(ctx context.Context, source string, bits bitstring.Bits) (*model.Sample, error) {
	return model.CreateSample(ctx, source, bits)
}

func (postgresStore) GetSampleByUUID(ctx context.Context, uuid string) (*model.Sample, error) {
	return model.GetSampleByUUID(ctx, uuid)
}

func (postgresStore) GetSamples(ctx context.Context, start int64, rows int) ([]*model.Sample, error) {
	return model.GetSamples(ctx, start, rows)
}

func (postgresStore) DeleteSampleByUUID(ctx context.Context, uuid string) error {
	return model.DeleteSampleByUUID(ctx, uuid)
}

func (postgresStore) CreateOperator(ctx context.Context, username, password string) (*model.Operator, error) {
	return model.CreateOperator(ctx, username, password)
}

func (postgresStore) GetOperatorByID(ctx context.Context, id int64) (*model.Operator, error) {
	return model.GetOperatorByID(ctx, id)
}

func (postgresStore) GetOperatorByUsernameAndPassword(ctx context.Context, username, password string) (*model.Operator, error) {
	return model.GetOperatorByUsernameAndPassword(ctx, username, password)
}

func (postgresStore) GetOperators(ctx context.Context, start int64, rows int) ([]*model.Operator, error) {
	return model.GetOperators(ctx, start, rows)
}
