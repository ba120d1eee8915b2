// Package redislist streams the elements of a Redis list.
//
// The list is read lazily in pages with LRANGE, so a stream over a long list
// only holds one page in memory and only talks to Redis when a consumer
// pulls. A failed read surfaces as a fault on the stream; pulling again
// retries the same page.
package redislist

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	lferrors "github.com/vnykmshr/lazyflow/pkg/common/errors"
	"github.com/vnykmshr/lazyflow/pkg/common/validation"
	"github.com/vnykmshr/lazyflow/pkg/streaming/stream"
)

// Options configures a list stream.
type Options struct {
	// PageSize is the number of elements fetched per LRANGE call
	PageSize int64

	// Start is the index of the first element to read
	Start int64

	// Timeout bounds each Redis round trip; zero means no extra bound
	Timeout time.Duration
}

// DefaultOptions returns the default list stream options.
func DefaultOptions() Options {
	return Options{
		PageSize: 100,
		Timeout:  5 * time.Second,
	}
}

func (o Options) validate() error {
	if err := validation.ValidatePositive("redislist", "page_size", int(o.PageSize)); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative("redislist", "start", int(o.Start)); err != nil {
		return err
	}
	return validation.ValidateNonNegative("redislist", "timeout", int(o.Timeout))
}

// RedisError represents a failed Redis operation.
type RedisError struct {
	Operation string
	Key       string
	Err       error
}

func (e *RedisError) Error() string {
	return "redis error in " + e.Operation + " " + e.Key + ": " + e.Err.Error()
}

func (e *RedisError) Unwrap() error {
	return e.Err
}

// Is reports every RedisError as a source failure.
func (e *RedisError) Is(target error) bool {
	return target == lferrors.ErrSourceFailed
}

type listSource struct {
	client redis.Cmdable
	key    string
	opts   Options
	next   int64
	page   []string
}

func (s *listSource) Next(ctx context.Context) (string, bool, error) {
	if len(s.page) == 0 {
		if err := s.fetch(ctx); err != nil {
			return "", false, err
		}
		if len(s.page) == 0 {
			return "", false, nil
		}
	}
	v := s.page[0]
	s.page = s.page[1:]
	return v, true, nil
}

func (s *listSource) fetch(ctx context.Context) error {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}
	page, err := s.client.LRange(ctx, s.key, s.next, s.next+s.opts.PageSize-1).Result()
	if err != nil {
		return &RedisError{Operation: "lrange", Key: s.key, Err: err}
	}
	s.next += int64(len(page))
	s.page = page
	return nil
}

// New returns a stream over the elements of the list at key.
func New(client redis.Cmdable, key string, opts Options) (*stream.Stream[string], error) {
	if err := validation.ValidateNotNil("redislist", "client", client); err != nil {
		return nil, err
	}
	if err := validation.ValidateNotEmpty("redislist", "key", key); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	src := &listSource{client: client, key: key, opts: opts, next: opts.Start}
	return stream.New[string](src).Named("redis " + key), nil
}

// JSON returns a stream that decodes each list element as JSON into T.
// An element that fails to decode becomes a fault on that element only.
func JSON[T any](client redis.Cmdable, key string, opts Options) (*stream.Stream[T], error) {
	raw, err := New(client, key, opts)
	if err != nil {
		return nil, err
	}
	return stream.Map(raw, func(s string) (T, error) {
		var v T
		err := json.Unmarshal([]byte(s), &v)
		return v, err
	}), nil
}
