package router

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mitchellh/mapstructure"
	"github.com/pointpass/backend/config"
	"github.com/pointpass/backend/internal/model"
	"github.com/pointpass/backend/pkg/authenticator"
	"github.com/pointpass/backend/pkg/errorx"
	"github.com/pointpass/backend/pkg/logger"
	"github.com/pointpass/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can enrich the context (for
// example with the authenticated user id) or abort the request by returning
// an error.
type MiddlewareFunc func(ctx context.Context, r *http.Request) (context.Context, error)

// CloserFunc runs after the response is written, with the error the handler
// returned (nil on success).
type CloserFunc func(ctx context.Context, r *http.Request, err error)

type Router struct {
	mux *http.ServeMux

	db             *gorm.DB
	cfg            config.Configs
	logger         logger.Logger
	tokenEngine    authenticator.TokenEngine[model.AccessToken]
	identityEngine authenticator.TokenEngine[model.IdentityToken]

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		db:             db,
		cfg:            cfg,
		logger:         logger,
		tokenEngine:    authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.AccessToken),
		identityEngine: authenticator.NewTokenEngine[model.IdentityToken](cfg.Auth.IdentityToken),
	}
}

// Branch returns a router sharing the same mux but with an independent
// middleware chain.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.afters = append([]MiddlewareFunc{}, r.afters...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}

func wrapHandler[Request, Response any](
	router *Router, method string, handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		ctx = xcontext.WithDB(ctx, router.db)
		ctx = xcontext.WithConfigs(ctx, router.cfg)
		ctx = xcontext.WithLogger(ctx, router.logger)
		ctx = xcontext.WithTokenEngine(ctx, router.tokenEngine)
		ctx = xcontext.WithIdentityEngine(ctx, router.identityEngine)

		err := func() error {
			if req.Method != method {
				return errorx.New(errorx.BadRequest, "Not supported method %s", req.Method)
			}

			var err error
			for _, m := range router.befores {
				if ctx, err = m(ctx, req); err != nil {
					return err
				}
			}

			request := new(Request)
			switch method {
			case http.MethodGet:
				if err := decodeQuery(req, request); err != nil {
					return errorx.New(errorx.BadRequest, "Cannot parse the request")
				}
			case http.MethodPost:
				if req.Body != nil && req.ContentLength != 0 {
					if err := json.NewDecoder(req.Body).Decode(request); err != nil {
						return errorx.New(errorx.BadRequest, "Cannot parse the request")
					}
				}
			}

			resp, err := handler(ctx, request)
			if err != nil {
				return err
			}

			for _, m := range router.afters {
				if ctx, err = m(ctx, req); err != nil {
					return err
				}
			}

			return writeJSON(w, newResponse(resp))
		}()

		if err != nil {
			if werr := writeJSON(w, newErrorResponse(err)); werr != nil {
				router.logger.Errorf("Cannot write the error response: %v", werr)
			}
		}

		for _, closer := range router.closers {
			closer(ctx, req, err)
		}
	}
}

// decodeQuery binds url query values to the request struct through its json
// tags.
func decodeQuery(req *http.Request, target any) error {
	values := map[string]string{}
	for key := range req.URL.Query() {
		values[key] = req.URL.Query().Get(key)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(values)
}
