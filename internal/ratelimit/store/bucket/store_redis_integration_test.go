//go:build integration

package bucket_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"idcheck/internal/ratelimit/store/bucket"
	"idcheck/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	store *bucket.RedisStore
	ctx   context.Context
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	s := &RedisStoreSuite{ctx: context.Background()}
	s.store = bucket.NewRedisStore(containers.NewRedisContainer(t).Client)
	suite.Run(t, s)
}

func (s *RedisStoreSuite) TestAllowUpToLimit() {
	const limit = 3

	for i := range limit {
		result, err := s.store.Allow(s.ctx, "resend:x:limit", limit, time.Minute)
		s.Require().NoError(err)
		s.True(result.Allowed, "event %d within the limit", i+1)
		s.Equal(limit-i-1, result.Remaining)
	}

	result, err := s.store.Allow(s.ctx, "resend:x:limit", limit, time.Minute)
	s.Require().NoError(err)
	s.False(result.Allowed)
	s.Equal(0, result.Remaining)
	s.WithinDuration(time.Now().Add(time.Minute), result.ResetAt, 5*time.Second)
}

func (s *RedisStoreSuite) TestWindowSlides() {
	const limit = 2

	for range limit {
		_, err := s.store.Allow(s.ctx, "resend:x:slide", limit, 500*time.Millisecond)
		s.Require().NoError(err)
	}
	denied, err := s.store.Allow(s.ctx, "resend:x:slide", limit, 500*time.Millisecond)
	s.Require().NoError(err)
	s.False(denied.Allowed)

	time.Sleep(600 * time.Millisecond)

	allowed, err := s.store.Allow(s.ctx, "resend:x:slide", limit, 500*time.Millisecond)
	s.Require().NoError(err)
	s.True(allowed.Allowed)
}

func (s *RedisStoreSuite) TestReset() {
	const limit = 1

	_, err := s.store.Allow(s.ctx, "resend:x:reset", limit, time.Minute)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Reset(s.ctx, "resend:x:reset"))

	result, err := s.store.Allow(s.ctx, "resend:x:reset", limit, time.Minute)
	s.Require().NoError(err)
	s.True(result.Allowed)
}
