// Package natsrpc serves the registered paginators over NATS request/reply.
//
// A request is published to <prefix>.<collection>.<method> with a JSON page
// request as payload; the reply carries either the connection or an error.
package natsrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/syntrixbase/pager/internal/config"
	"github.com/syntrixbase/pager/internal/ctxkeys"
	"github.com/syntrixbase/pager/internal/pager"
	"github.com/syntrixbase/pager/pkg/model"
)

// natsConnectFunc allows test injection
var natsConnectFunc = nats.Connect

// RequestIDHeader carries the caller's request id, generated when absent.
const RequestIDHeader = "X-Request-ID"

const defaultRequestTimeout = 30 * time.Second

// Reply is the payload answered to every request.
type Reply struct {
	Data  *model.Connection `json:"data,omitempty"`
	Error *ReplyError       `json:"error,omitempty"`
}

// ReplyError uses the same codes as the REST surface.
type ReplyError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Responder answers paginate requests on a queue subscription.
type Responder struct {
	registry    *pager.Registry
	cfg         config.NATSConfig
	logger      *slog.Logger
	maxPageSize int
	timeout     time.Duration

	mu  sync.Mutex
	nc  *nats.Conn
	sub *nats.Subscription
}

// Option configures a Responder.
type Option func(*Responder)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Responder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxPageSize rejects first/last above n; zero disables the cap.
func WithMaxPageSize(n int) Option {
	return func(r *Responder) { r.maxPageSize = n }
}

// WithRequestTimeout bounds each request; zero disables the bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(r *Responder) { r.timeout = d }
}

func NewResponder(registry *pager.Registry, cfg config.NATSConfig, opts ...Option) *Responder {
	r := &Responder{
		registry: registry,
		cfg:      cfg,
		logger:   slog.Default(),
		timeout:  defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "natsrpc")
	return r
}

// Subject is the wildcard subject the responder subscribes to.
func (r *Responder) Subject() string {
	return r.cfg.SubjectPrefix + ".*.*"
}

// Start connects and subscribes. It is an error to start twice.
func (r *Responder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nc != nil {
		return errors.New("nats responder already started")
	}

	nc, err := natsConnectFunc(r.cfg.URL, nats.Name("pager"), nats.MaxReconnects(-1))
	if err != nil {
		return fmt.Errorf("failed to connect to nats: %w", err)
	}

	sub, err := nc.QueueSubscribe(r.Subject(), r.cfg.QueueGroup, r.handleMsg)
	if err != nil {
		nc.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", r.Subject(), err)
	}

	r.nc, r.sub = nc, sub
	r.logger.Info("NATS responder listening", "subject", r.Subject(), "queue", r.cfg.QueueGroup)
	return nil
}

// Stop drains in-flight requests and closes the connection.
func (r *Responder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nc == nil {
		return nil
	}
	err := r.nc.Drain()
	r.nc, r.sub = nil, nil
	return err
}

func (r *Responder) handleMsg(msg *nats.Msg) {
	requestID := msg.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	ctx := ctxkeys.WithRequestID(context.Background(), requestID)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	data, err := json.Marshal(r.Handle(ctx, msg.Subject, msg.Data))
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to encode reply", "error", err)
		return
	}
	if err := msg.Respond(data); err != nil {
		r.logger.WarnContext(ctx, "Failed to respond", "subject", msg.Subject, "error", err)
	}
}

// Handle runs one request addressed to subject and builds its reply.
func (r *Responder) Handle(ctx context.Context, subject string, payload []byte) Reply {
	collection, method, ok := r.parseSubject(subject)
	if !ok {
		return errorReply(fmt.Errorf("%w: subject %s", model.ErrNotFound, subject))
	}
	ctx = ctxkeys.WithCollection(ctx, collection)

	req, err := model.DecodePageRequest(bytes.NewReader(payload))
	if err != nil {
		return errorReply(fmt.Errorf("%w: %v", model.ErrInvalidArgument, err))
	}
	if err := req.CheckLimits(r.maxPageSize); err != nil {
		return errorReply(err)
	}

	conn, err := r.registry.Call(ctx, collection, method, req)
	if err != nil {
		reply := errorReply(err)
		if reply.Error.Code == codeInternalError {
			r.logger.ErrorContext(ctx, "Failed to paginate", "error", err)
		}
		return reply
	}
	return Reply{Data: conn}
}

func (r *Responder) parseSubject(subject string) (collection, method string, ok bool) {
	rest, ok := strings.CutPrefix(subject, r.cfg.SubjectPrefix+".")
	if !ok {
		return "", "", false
	}
	collection, method, ok = strings.Cut(rest, ".")
	if !ok || collection == "" || method == "" || strings.Contains(method, ".") {
		return "", "", false
	}
	return collection, method, true
}
