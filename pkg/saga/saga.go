// Package saga 实现带补偿的多步骤操作框架
//
// 文档库不提供跨集合事务,下单这类跨集合写入(图书状态流转、
// 广告位清理、订单落库)以Saga方式组织:
// 1. 将流程拆分为多个独立步骤
// 2. 每个步骤有对应的补偿操作
// 3. 某步失败时按逆序执行已完成步骤的补偿
package saga

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Step 表示Saga中的一个步骤
// Action是正向操作,Compensate是补偿操作;两者都要求幂等(允许重试)
type Step struct {
	Name       string                          // 步骤名称(用于日志和调试)
	Action     func(ctx context.Context) error // 正向操作
	Compensate func(ctx context.Context) error // 补偿操作
}

// Saga 表示一次多步骤操作
type Saga struct {
	steps    []Step        // 所有步骤
	executed []Step        // 已执行的步骤(用于补偿)
	timeout  time.Duration // 整体超时时间
}

// New 创建一个Saga
//
// 示例:
//
//	sg := saga.New(10 * time.Second)
//	sg.AddStep("transition book", markPending, revertAvailable)
//	sg.AddStep("insert order", insertOrder, nil)
//	err := sg.Execute(ctx)
func New(timeout time.Duration) *Saga {
	return &Saga{
		steps:   make([]Step, 0),
		timeout: timeout,
	}
}

// AddStep 添加一个步骤
// 步骤按添加顺序执行,按逆序补偿;最后一步通常无需补偿(Compensate可为nil)
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
}

// Execute 按顺序执行所有步骤
// 某步失败时逆序执行已完成步骤的补偿,返回失败步骤的错误。
// 补偿只保证最终一致:执行期间其他请求可能观察到中间状态
func (s *Saga) Execute(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for i, step := range s.steps {
		select {
		case <-ctx.Done():
			// 超时触发补偿;补偿使用新Context,避免补偿本身也被超时打断
			s.compensate(context.Background())
			return fmt.Errorf("saga timed out: %w", ctx.Err())
		default:
		}

		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				s.compensate(context.Background())
				return fmt.Errorf("step[%d:%s] failed: %w", i, step.Name, err)
			}
		}

		s.executed = append(s.executed, step)
	}

	return nil
}

// compensate 逆序执行已完成步骤的补偿
// 某个补偿失败不中断后续补偿(尽最大努力),失败记录日志等待人工介入
func (s *Saga) compensate(ctx context.Context) {
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]

		if step.Compensate != nil {
			if err := step.Compensate(ctx); err != nil {
				log.Printf("saga compensate failed [step:%s]: %v", step.Name, err)
			}
		}
	}

	s.executed = nil
}
