// Package payment 封装对Stripe支付网关的访问
package payment

import (
	"context"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.opentelemetry.io/otel/attribute"

	"github.com/thestorykeeper/bookkeeper/internal/infrastructure/config"
	"github.com/thestorykeeper/bookkeeper/pkg/circuitbreaker"
	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
	"github.com/thestorykeeper/bookkeeper/pkg/metrics"
	"github.com/thestorykeeper/bookkeeper/pkg/tracing"
)

// Intent 支付意向
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// Gateway 支付网关接口,便于测试替换
type Gateway interface {
	// CreateIntent 创建支付意向,amount单位为货币最小单位(分)
	CreateIntent(ctx context.Context, amount int64) (*Intent, error)
}

// StripeGateway 基于Stripe的支付网关
// 设计说明:
// 1. 外部依赖,调用包在熔断器内:网关故障时快速失败,
//    避免请求堆积拖垮下单链路
// 2. 网关返回的错误通过Upstream包装,错误消息透传给前端展示
type StripeGateway struct {
	api      *client.API
	currency string
	breaker  *circuitbreaker.CircuitBreaker
}

// NewStripeGateway 创建Stripe网关
func NewStripeGateway(cfg *config.Config) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.Stripe.SecretKey, nil)

	breaker := circuitbreaker.New("stripe", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.Requests >= 10 && counts.FailureRate() >= 0.5
		},
	})
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
	})

	return &StripeGateway{
		api:      api,
		currency: cfg.Stripe.Currency,
		breaker:  breaker,
	}
}

// CreateIntent 创建支付意向
func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64) (*Intent, error) {
	ctx, span := tracing.StartSpan(ctx, "payment", "stripe.CreateIntent")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("payment.amount", amount),
		attribute.String("payment.currency", g.currency),
	)

	var intent *stripe.PaymentIntent
	err := g.breaker.Execute(func() error {
		params := &stripe.PaymentIntentParams{
			Amount:   stripe.Int64(amount),
			Currency: stripe.String(g.currency),
			PaymentMethodTypes: stripe.StringSlice([]string{
				"card",
			}),
		}
		params.Context = ctx

		var err error
		intent, err = g.api.PaymentIntents.New(params)
		return err
	})
	if err != nil {
		metrics.PaymentIntentFailuresTotal.Inc()
		metrics.CircuitBreakerRequests.WithLabelValues("stripe", "failure").Inc()
		span.RecordError(err)
		return nil, apperrors.Upstream(err, upstreamMessage(err))
	}
	metrics.CircuitBreakerRequests.WithLabelValues("stripe", "success").Inc()

	return &Intent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
	}, nil
}

// upstreamMessage 提取可透传给前端的网关错误消息
func upstreamMessage(err error) string {
	if err == circuitbreaker.ErrOpenState {
		return "payment service temporarily unavailable"
	}
	if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	return err.Error()
}
