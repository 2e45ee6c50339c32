package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/smartcontractkit/chainlink-chain-config/chain"
	"github.com/smartcontractkit/chainlink-chain-config/pkg/logger"
)

const (
	// Default retry configuration for RPC calls
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = 500 * time.Millisecond
	DefaultRetryTimeout  = 10 * time.Second
)

// ErrChainRequired is returned by transaction operations when the client has no default chain and
// the call does not name one.
var ErrChainRequired = errors.New("chain is required: configure a default chain or pass one per call")

// Caller is the JSON-RPC transport. It is satisfied by *rpc.Client.
type Caller interface {
	CallContext(ctx context.Context, result any, method string, args ...any) error
}

// RetryConfig configures how failed RPC calls are retried. JSON-RPC error responses and context
// cancellation are never retried.
type RetryConfig struct {
	Attempts uint
	Delay    time.Duration
	// Timeout bounds each attempt when the caller's context has no deadline.
	Timeout time.Duration
}

func defaultRetryConfig() RetryConfig {
	return RetryConfig{
		Attempts: DefaultRetryAttempts,
		Delay:    DefaultRetryDelay,
		Timeout:  DefaultRetryTimeout,
	}
}

// Client is a minimal JSON-RPC client that applies the hooks of a chain descriptor: responses are
// formatted, fees are estimated and transactions are serialized the way the chain requires.
type Client struct {
	caller  Caller
	chain   *chain.Chain
	retry   RetryConfig
	limiter *rate.Limiter
	metrics *Metrics
	lggr    logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithDefaultChain sets the chain used by calls that do not pass one.
func WithDefaultChain(ch chain.Chain) Option {
	return func(c *Client) {
		c.chain = &ch
	}
}

// WithRetryConfig overrides the retry configuration.
func WithRetryConfig(cfg RetryConfig) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// WithRateLimit limits the rate of outgoing RPC calls.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithMetrics records RPC call metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(lggr logger.Logger) Option {
	return func(c *Client) {
		if lggr != nil {
			c.lggr = lggr
		}
	}
}

// New creates a client over an existing transport.
func New(caller Caller, opts ...Option) (*Client, error) {
	if caller == nil {
		return nil, errors.New("caller is required")
	}

	c := &Client{
		caller: caller,
		retry:  defaultRetryConfig(),
		lggr:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lggr = c.lggr.Named("client")

	return c, nil
}

// Dial connects to the first HTTP URL of the chain's default RPC group and uses the chain as the
// client's default.
func Dial(ctx context.Context, ch chain.Chain, opts ...Option) (*Client, error) {
	url, ok := ch.DefaultRPCURL()
	if !ok {
		return nil, fmt.Errorf("no default rpc url for %s", ch)
	}

	cfg := defaultRetryConfig()
	var rpcClient *rpc.Client
	err := retry.Do(func() error {
		dialCtx, cancel := ensureTimeout(ctx, cfg.Timeout)
		defer cancel()

		var err error
		rpcClient, err = rpc.DialContext(dialCtx, url)

		return err
	}, retry.Context(ctx), retry.Attempts(cfg.Attempts), retry.Delay(cfg.Delay), retry.LastErrorOnly(true))
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", ch, err)
	}

	return New(rpcClient, append([]Option{WithDefaultChain(ch)}, opts...)...)
}

// Close closes the transport if it can be closed.
func (c *Client) Close() {
	if closer, ok := c.caller.(interface{ Close() }); ok {
		closer.Close()
	}
}

// Chain returns the default chain, if configured.
func (c *Client) Chain() (chain.Chain, bool) {
	if c.chain == nil {
		return chain.Chain{}, false
	}

	return *c.chain, true
}

// ChainParameter describes the chain argument of this client's calls.
func (c *Client) ChainParameter() chain.ChainParameter {
	return chain.GetChainParameter(c.chain)
}

// CallOption configures a single call.
type CallOption func(*callOptions)

type callOptions struct {
	chain        *chain.Chain
	explicitNull bool
}

// WithChain runs the call against ch instead of the default chain.
func WithChain(ch chain.Chain) CallOption {
	return func(o *callOptions) {
		o.chain = &ch
		o.explicitNull = false
	}
}

// WithoutChain runs the call without any chain, ignoring the default: responses get the generic
// formatting only and transactions the generic serialization.
func WithoutChain() CallOption {
	return func(o *callOptions) {
		o.chain = nil
		o.explicitNull = true
	}
}

func newCallOptions(opts []CallOption) callOptions {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// chainFor resolves the chain of a call. A zero Chain (no hooks) is returned when the call runs
// without one. required calls fail with ErrChainRequired unless the caller opted out explicitly.
func (c *Client) chainFor(o callOptions, required bool) (chain.Chain, error) {
	param := c.ChainParameter()
	ch := param.Resolve(c.chain, o.chain, o.explicitNull)
	if ch == nil {
		if required && param.Required && !o.explicitNull {
			return chain.Chain{}, ErrChainRequired
		}

		return chain.Chain{}, nil
	}

	return *ch, nil
}

// call performs a JSON-RPC call with rate limiting, retries and metrics.
func (c *Client) call(ctx context.Context, result any, method string, args ...any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	traceID := uuid.New()
	start := time.Now()
	var retryCount uint
	err := retry.Do(func() error {
		callCtx, cancel := ensureTimeout(ctx, c.retry.Timeout)
		defer cancel()

		return c.caller.CallContext(callCtx, result, method, args...)
	},
		retry.Context(ctx),
		retry.Attempts(max(c.retry.Attempts, 1)),
		retry.Delay(c.retry.Delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return ctx.Err() == nil && isRetryable(err)
		}),
		retry.OnRetry(func(n uint, err error) {
			retryCount++
			c.lggr.Warnw("RPC call failed, retrying",
				"traceID", traceID.String(),
				"method", method,
				"attempt", n+1,
				"error", err,
			)
		}),
	)
	c.metrics.observe(method, time.Since(start), err)

	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if retryCount > 0 {
		c.lggr.Infow("RPC call succeeded after retries",
			"traceID", traceID.String(),
			"method", method,
			"retries", retryCount,
		)
	}

	return nil
}

// isRetryable reports whether err is a transport failure. Errors returned by the node are final.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var rpcErr rpc.Error

	return !errors.As(err, &rpcErr)
}

// ensureTimeout applies timeout to ctx unless it already has a deadline.
func ensureTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}
