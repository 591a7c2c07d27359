package common_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelmon-go/internal/application/common"
)

type pingQuery struct{ value int }

type pingHandler struct{}

func (pingHandler) Handle(_ context.Context, request common.Request) (common.Response, error) {
	q := request.(*pingQuery)
	return q.value * 2, nil
}

func TestMediator_Dispatch(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingQuery](m, pingHandler{}))

	resp, err := m.Send(context.Background(), &pingQuery{value: 21})

	require.NoError(t, err)
	assert.Equal(t, 42, resp)
}

func TestMediator_RejectsDuplicateAndMissing(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingQuery](m, pingHandler{}))

	assert.Error(t, common.RegisterHandler[*pingQuery](m, pingHandler{}))
	assert.Error(t, common.RegisterHandler[*pingQuery](m, nil))

	_, err := m.Send(context.Background(), "unregistered")
	assert.Error(t, err)

	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingQuery](m, pingHandler{}))

	var calls []string
	trace := func(name string) common.Middleware {
		return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
			calls = append(calls, name+":before")
			resp, err := next(ctx, request)
			calls = append(calls, name+":after")
			return resp, err
		}
	}
	m.Use(trace("outer"))
	m.Use(trace("inner"))

	_, err := m.Send(context.Background(), &pingQuery{value: 1})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, calls)
}

func TestMediator_MiddlewareCanShortCircuit(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingQuery](m, pingHandler{}))
	blocked := errors.New("blocked")
	m.Use(func(context.Context, common.Request, common.HandlerFunc) (common.Response, error) {
		return nil, blocked
	})

	_, err := m.Send(context.Background(), &pingQuery{value: 1})

	assert.ErrorIs(t, err, blocked)
}

func TestLoggerFromContext(t *testing.T) {
	logger, hook := test.NewNullLogger()
	ctx := common.WithLogger(context.Background(), logger.WithField("component", "test"))

	common.LoggerFromContext(ctx).Warn("careful")

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "test", hook.LastEntry().Data["component"])

	// Missing logger falls back to a discarding one
	assert.NotPanics(t, func() { common.LoggerFromContext(context.Background()).Info("dropped") })
}
