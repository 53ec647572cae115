package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LeandroLuccerini/similarity/pkg/kit"
	"github.com/LeandroLuccerini/similarity/pkg/normalize"
	"github.com/LeandroLuccerini/similarity/pkg/similarity"
	"github.com/LeandroLuccerini/similarity/pkg/translit"
)

// MaxBatchPairs bounds a single batch request.
const MaxBatchPairs = 100

// ErrBadRequest reports a request the caller can fix.
var ErrBadRequest = errors.New("bad request")

// Normalizer kinds accepted by the normalize endpoint.
const (
	NormalizeString = "string"
	NormalizeDate   = "date"
)

// Service holds what the endpoints score and normalize with.
type Service struct {
	Set            *similarity.Set
	Strings        *normalize.StringNormalizer
	Dates          *normalize.DateNormalizer
	Transliterator translit.Mode
}

// NewService builds every strategy and normalizer from cfg.
func NewService(cfg similarity.Config) (*Service, error) {
	set, err := similarity.NewSet(cfg)
	if err != nil {
		return nil, err
	}
	strs, err := normalize.NewStringNormalizer(cfg.Transliterator)
	if err != nil {
		return nil, err
	}
	mode := cfg.Transliterator
	if mode == "" {
		mode = translit.ModeUnidecode
	}
	return &Service{
		Set:            set,
		Strings:        strs,
		Dates:          normalize.NewDateNormalizer(cfg.Date.TwoDigitYearThreshold),
		Transliterator: mode,
	}, nil
}

// Shared request/response types used by both HTTP and MCP transports.

type pairReq struct {
	A string `json:"a"`
	B string `json:"b"`
}

type similarityReq struct {
	Type string `json:"type"`
	A    string `json:"a"`
	B    string `json:"b"`
}

type similarityResp struct {
	Type  string  `json:"type"`
	A     string  `json:"a"`
	B     string  `json:"b"`
	Score float64 `json:"score"`
}

type batchReq struct {
	Type  string    `json:"type"`
	Pairs []pairReq `json:"pairs"`
}

type batchItem struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Score float64 `json:"score"`
	Error string  `json:"error,omitempty"`
}

type batchResp struct {
	Results []batchItem `json:"results"`
}

type normalizeReq struct {
	Kind  string
	Value string
}

type normalizeResp struct {
	Kind       string `json:"kind"`
	Value      string `json:"value"`
	Normalized string `json:"normalized"`
	OK         bool   `json:"ok"`
}

type typesResp struct {
	Types []similarity.Kind `json:"types"`
}

// Endpoints groups the transport-agnostic operations.
type Endpoints struct {
	Similarity kit.Endpoint
	Batch      kit.Endpoint
	Normalize  kit.Endpoint
	ListTypes  kit.Endpoint
}

// MakeEndpoints wires svc into logged endpoints; panics surface as errors.
func MakeEndpoints(svc *Service, logger *slog.Logger) Endpoints {
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.Logging(logger, name), kit.Recover())(ep)
	}
	return Endpoints{
		Similarity: wrap("similarity", similarityEndpoint(svc)),
		Batch:      wrap("similarity_batch", batchEndpoint(svc)),
		Normalize:  wrap("normalize", normalizeEndpoint(svc)),
		ListTypes:  wrap("list_types", listTypesEndpoint()),
	}
}

func similarityEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*similarityReq)
		score, err := svc.Set.Score(similarity.Kind(req.Type), req.A, req.B)
		if err != nil {
			return nil, err
		}
		return similarityResp{Type: req.Type, A: req.A, B: req.B, Score: score}, nil
	}
}

func batchEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*batchReq)
		if len(req.Pairs) == 0 {
			return nil, fmt.Errorf("%w: pairs array is empty", ErrBadRequest)
		}
		if len(req.Pairs) > MaxBatchPairs {
			return nil, fmt.Errorf("%w: too many pairs (max %d, got %d)", ErrBadRequest, MaxBatchPairs, len(req.Pairs))
		}
		sim, err := svc.Set.Get(similarity.Kind(req.Type))
		if err != nil {
			return nil, err
		}
		results := make([]batchItem, len(req.Pairs))
		for i, p := range req.Pairs {
			results[i] = batchItem{A: p.A, B: p.B}
			score, err := sim.Similarity(p.A, p.B)
			if err != nil {
				results[i].Error = err.Error()
				continue
			}
			results[i].Score = score
		}
		return batchResp{Results: results}, nil
	}
}

func normalizeEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*normalizeReq)
		resp := normalizeResp{Kind: req.Kind, Value: req.Value}
		switch req.Kind {
		case NormalizeString:
			resp.Normalized, resp.OK = svc.Strings.Normalize(req.Value)
		case NormalizeDate:
			resp.Normalized, resp.OK = svc.Dates.Normalize(req.Value)
		default:
			return nil, fmt.Errorf("%w: unknown normalizer %q (want %s or %s)", ErrBadRequest, req.Kind, NormalizeString, NormalizeDate)
		}
		return resp, nil
	}
}

func listTypesEndpoint() kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return typesResp{Types: similarity.Kinds()}, nil
	}
}

// isClientError reports whether err should map to a 4xx.
func isClientError(err error) bool {
	return errors.Is(err, ErrBadRequest) ||
		errors.Is(err, similarity.ErrInvalidInput) ||
		errors.Is(err, similarity.ErrUnsupportedKind)
}
