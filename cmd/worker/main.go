package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/thestorykeeper/bookkeeper/internal/infrastructure/config"
	"github.com/thestorykeeper/bookkeeper/pkg/mq"
)

// 事件队列与订阅的路由键
const (
	queueName = "bookkeeper.events"
)

var routingKeys = []string{"book.*", "order.*", "payment.*"}

// main 事件审计Worker入口
// 订阅API进程发布的领域事件并落审计日志,
// 消息处理失败时Nack重新入队,由MQ负责重投
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if !cfg.MQ.Enabled {
		log.Fatal("MQ未启用,事件Worker无事可做(配置mq.enabled后再启动)")
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - Exchange: %s\n", cfg.MQ.Exchange)
	fmt.Printf("  - Queue: %s\n", queueName)

	// 2. 创建消费者
	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, "topic", queueName, routingKeys)
	if err != nil {
		log.Fatalf("创建消费者失败: %v", err)
	}
	defer consumer.Close()

	// 3. 退出信号取消消费循环
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("收到退出信号,停止消费...")
		cancel()
	}()

	// 4. 消费事件,逐条落审计日志
	if err := consumer.Consume(ctx, handleEvent); err != nil {
		log.Fatalf("消费事件失败: %v", err)
	}

	log.Println("Worker已退出")
}

// handleEvent 校验事件体并落审计日志
// 返回错误会触发Nack重新入队,坏格式的消息直接丢弃避免毒丸循环
func handleEvent(body []byte) error {
	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		log.Printf("丢弃无法解析的事件: %v, body=%s", err, body)
		return nil
	}

	log.Printf("[事件审计] product_id=%v occurred_at=%v body=%s",
		fields["product_id"], fields["occurred_at"], body)
	return nil
}
