package saga

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestSaga_Execute_Success 测试所有步骤成功的场景
func TestSaga_Execute_Success(t *testing.T) {
	executed := make([]string, 0)

	sg := New(5 * time.Second)

	sg.AddStep("流转图书状态",
		func(ctx context.Context) error {
			executed = append(executed, "流转图书状态")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "回滚图书状态")
			return nil
		},
	)

	sg.AddStep("写入订单",
		func(ctx context.Context) error {
			executed = append(executed, "写入订单")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "删除订单")
			return nil
		},
	)

	err := sg.Execute(context.Background())
	if err != nil {
		t.Fatalf("Saga执行失败: %v", err)
	}

	// 验证执行顺序
	if len(executed) != 2 {
		t.Errorf("期望执行2个步骤，实际执行%d个", len(executed))
	}

	if executed[0] != "流转图书状态" || executed[1] != "写入订单" {
		t.Errorf("执行顺序错误: %v", executed)
	}
}

// TestSaga_Execute_FailureAndCompensate 测试步骤失败触发逆序补偿
func TestSaga_Execute_FailureAndCompensate(t *testing.T) {
	executed := make([]string, 0)

	sg := New(5 * time.Second)

	// 步骤1：流转图书状态（成功）
	sg.AddStep("流转图书状态",
		func(ctx context.Context) error {
			executed = append(executed, "流转图书状态")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "回滚图书状态")
			return nil
		},
	)

	// 步骤2：清理广告位（成功）
	sg.AddStep("清理广告位",
		func(ctx context.Context) error {
			executed = append(executed, "清理广告位")
			return nil
		},
		nil, // 广告位清理无需补偿
	)

	// 步骤3：写入订单（失败）
	sg.AddStep("写入订单",
		func(ctx context.Context) error {
			executed = append(executed, "写入订单")
			return errors.New("write failed")
		},
		func(ctx context.Context) error {
			executed = append(executed, "删除订单")
			return nil
		},
	)

	err := sg.Execute(context.Background())
	if err == nil {
		t.Fatal("Saga应该失败但返回成功")
	}

	// 正向3步 + 补偿1步（步骤2的补偿为nil，跳过）
	expected := []string{"流转图书状态", "清理广告位", "写入订单", "回滚图书状态"}

	if len(executed) != len(expected) {
		t.Fatalf("期望执行%d个步骤，实际执行%d个: %v", len(expected), len(executed), executed)
	}

	for i, step := range expected {
		if executed[i] != step {
			t.Errorf("步骤%d期望'%s'，实际'%s'", i, step, executed[i])
		}
	}
}

// TestSaga_Execute_WrapsStepError 验证步骤错误通过%w包装后可被errors.Is识别
// 调用方依赖这一点区分"图书不可用"和其他失败
func TestSaga_Execute_WrapsStepError(t *testing.T) {
	sentinel := errors.New("book not available")

	sg := New(5 * time.Second)
	sg.AddStep("流转图书状态",
		func(ctx context.Context) error { return sentinel },
		nil,
	)

	err := sg.Execute(context.Background())
	if err == nil {
		t.Fatal("期望失败")
	}

	if !errors.Is(err, sentinel) {
		t.Errorf("期望errors.Is能识别原始错误, 实际: %v", err)
	}
}

// TestSaga_Execute_Timeout 测试超时触发补偿
func TestSaga_Execute_Timeout(t *testing.T) {
	executed := make([]string, 0)

	sg := New(100 * time.Millisecond)

	sg.AddStep("快速步骤",
		func(ctx context.Context) error {
			executed = append(executed, "快速步骤")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "快速步骤补偿")
			return nil
		},
	)

	sg.AddStep("慢速步骤",
		func(ctx context.Context) error {
			select {
			case <-time.After(200 * time.Millisecond):
				executed = append(executed, "慢速步骤")
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
		func(ctx context.Context) error {
			executed = append(executed, "慢速步骤补偿")
			return nil
		},
	)

	err := sg.Execute(context.Background())
	if err == nil {
		t.Fatal("Saga应该超时但返回成功")
	}

	// 验证触发了补偿
	if len(executed) < 2 {
		t.Errorf("超时后应该触发补偿，实际执行: %v", executed)
	}

	if executed[len(executed)-1] != "快速步骤补偿" {
		t.Errorf("期望最后一步是补偿，实际: %v", executed)
	}
}

// TestSaga_CompensateFailureContinues 某个补偿失败不中断后续补偿
func TestSaga_CompensateFailureContinues(t *testing.T) {
	executed := make([]string, 0)

	sg := New(5 * time.Second)

	sg.AddStep("步骤1",
		func(ctx context.Context) error {
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "补偿1")
			return nil
		},
	)

	sg.AddStep("步骤2",
		func(ctx context.Context) error {
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "补偿2")
			return errors.New("compensate failed")
		},
	)

	sg.AddStep("步骤3",
		func(ctx context.Context) error {
			return errors.New("boom")
		},
		nil,
	)

	err := sg.Execute(context.Background())
	if err == nil {
		t.Fatal("期望失败")
	}

	// 补偿2失败后补偿1仍应执行
	expected := []string{"补偿2", "补偿1"}
	if len(executed) != len(expected) {
		t.Fatalf("期望补偿%d次，实际%d次: %v", len(expected), len(executed), executed)
	}
	for i, step := range expected {
		if executed[i] != step {
			t.Errorf("补偿顺序错误: %v", executed)
		}
	}
}

// BenchmarkSaga_Execute 性能基准测试
func BenchmarkSaga_Execute(b *testing.B) {
	sg := New(5 * time.Second)

	sg.AddStep("步骤1", func(ctx context.Context) error { return nil }, nil)
	sg.AddStep("步骤2", func(ctx context.Context) error { return nil }, nil)
	sg.AddStep("步骤3", func(ctx context.Context) error { return nil }, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sg.Execute(context.Background())
		sg.executed = nil
	}
}
