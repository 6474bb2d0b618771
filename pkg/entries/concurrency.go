package entries

import "github.com/vanderheijden86/kcards/pkg/model"

// Goroutines explains lightweight threads and the GMP scheduler.
func Goroutines(id string) (*model.QuestionCard, error) {
	return model.NewQuestionCard(
		question(id, "Goroutine 与调度模型",
			"什么是 goroutine? 它和操作系统线程有什么区别? Go 的调度器是如何工作的?",
			"go", "concurrency", "goroutine", "scheduler"),
		model.Success("核心要点",
			model.Bullets(
				"goroutine 是由 Go 运行时管理的轻量级线程, 初始栈只有几 KB 并可动态增长",
				"使用 go 关键字启动, 创建和切换的开销远小于系统线程",
				"调度器采用 GMP 模型: G 是 goroutine, M 是系统线程, P 是逻辑处理器",
				"GOMAXPROCS 决定同时运行 Go 代码的 P 的数量",
			),
		),
		model.Info("GMP 调度",
			model.Paragraph("每个 P 持有一个本地运行队列。M 必须绑定 P 才能执行 G; 本地队列为空时会从全局队列或其他 P 窃取任务 (work stealing)。"),
			model.Numbered(
				"go func() 创建 G 并放入当前 P 的本地队列",
				"M 从 P 的队列中取出 G 执行",
				"G 阻塞在系统调用时, P 会与 M 解绑并交给其他 M",
				"自 Go 1.14 起支持基于信号的异步抢占",
			),
		),
		model.Warning("常见陷阱",
			model.Bullets(
				"main 函数返回时所有 goroutine 都会被终止, 需要用 WaitGroup 等待",
				"没有退出条件的 goroutine 会造成泄漏",
				"循环变量在 Go 1.22 之前被所有迭代共享",
			),
		),
		model.Secondary("代码示例",
			model.CodeBlock("go", goroutineWaitGroup, model.WithMaxHeight(20), model.WithTitle("waitgroup.go")),
		),
	)
}

const goroutineWaitGroup = `package main

import (
	"fmt"
	"sync"
)

func main() {
	var wg sync.WaitGroup
	results := make([]int, 5)

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = i * i
		}(i)
	}

	wg.Wait()
	fmt.Println(results)
}
`

// Channels covers channel semantics, select and common pipeline patterns.
func Channels(id string) (*model.QuestionCard, error) {
	return model.NewQuestionCard(
		question(id, "Channel 与 select",
			"Go 中的 channel 有哪些类型? 有缓冲和无缓冲 channel 的区别是什么? select 如何使用?",
			"go", "concurrency", "channel", "select"),
		model.Success("核心要点",
			model.Bullets(
				"不要通过共享内存来通信, 而要通过通信来共享内存",
				"无缓冲 channel 的发送和接收必须同时就绪, 天然实现同步",
				"有缓冲 channel 在缓冲区满之前发送不会阻塞",
				"close 之后仍可接收剩余数据, 再接收得到零值和 ok=false",
				"select 在多个 channel 操作中随机选择一个就绪的分支",
			),
		),
		model.Info("channel 状态表",
			model.Bullets(
				"nil channel: 发送和接收都永久阻塞, close 会 panic",
				"已关闭 channel: 发送会 panic, 接收立即返回零值",
				"重复 close 会 panic",
			),
		),
		model.Warning("注意",
			model.Paragraph("应由**发送方**关闭 channel。接收方关闭 channel 可能导致仍在发送的 goroutine panic。"),
		),
		model.Secondary("代码示例",
			model.CodeBlock("go", channelPipeline, model.WithMaxHeight(25), model.WithTitle("pipeline.go")),
			model.CodeBlock("go", channelSelect, model.WithMaxHeight(25), model.WithTitle("select.go")),
		),
	)
}

const channelPipeline = `package main

import "fmt"

func gen(nums ...int) <-chan int {
	out := make(chan int)
	go func() {
		defer close(out)
		for _, n := range nums {
			out <- n
		}
	}()
	return out
}

func square(in <-chan int) <-chan int {
	out := make(chan int)
	go func() {
		defer close(out)
		for n := range in {
			out <- n * n
		}
	}()
	return out
}

func main() {
	for v := range square(gen(1, 2, 3, 4)) {
		fmt.Println(v)
	}
}
`

const channelSelect = `package main

import (
	"fmt"
	"time"
)

func main() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(350 * time.Millisecond)

	for {
		select {
		case t := <-ticker.C:
			fmt.Println("tick", t.Format("15:04:05.000"))
		case <-timeout:
			fmt.Println("超时退出")
			return
		}
	}
}
`

// SyncPrimitives covers the sync package and the atomic operations.
func SyncPrimitives(id string) (*model.QuestionCard, error) {
	return model.NewQuestionCard(
		question(id, "sync 包与并发安全",
			"Go 的 sync 包提供了哪些同步原语? Mutex 和 RWMutex 如何选择? 什么是数据竞争?",
			"go", "concurrency", "sync", "mutex"),
		model.Success("核心要点",
			model.Bullets(
				"Mutex 提供互斥锁, RWMutex 允许多个读者并发",
				"Once 保证初始化逻辑只执行一次",
				"WaitGroup 等待一组 goroutine 结束",
				"sync.Map 适合读多写少且 key 稳定的场景",
				"atomic 包提供无锁的原子操作",
			),
		),
		model.Warning("常见陷阱",
			model.Bullets(
				"Mutex 不可复制, 含锁的结构体应通过指针传递",
				"Go 的锁不可重入, 同一 goroutine 重复加锁会死锁",
				"使用 go test -race 检测数据竞争",
			),
		),
		model.Secondary("代码示例",
			model.CodeBlock("go", syncCounter, model.WithMaxHeight(20), model.WithTitle("counter.go")),
		),
	)
}

const syncCounter = `package main

import (
	"fmt"
	"sync"
	"sync/atomic"
)

type SafeCounter struct {
	mu sync.Mutex
	m  map[string]int
}

func (c *SafeCounter) Inc(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key]++
}

func main() {
	c := SafeCounter{m: make(map[string]int)}
	var hits atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc("key")
			hits.Add(1)
		}()
	}
	wg.Wait()
	fmt.Println(c.m["key"], hits.Load())
}
`

// Context covers cancellation, deadlines and request-scoped values.
func Context(id string) (*model.QuestionCard, error) {
	return model.NewQuestionCard(
		question(id, "context 包的使用",
			"context 包解决了什么问题? 如何用它实现超时控制和取消传播?",
			"go", "concurrency", "context"),
		model.Success("核心要点",
			model.Bullets(
				"context 在调用链之间传递取消信号、截止时间和请求范围的值",
				"context.Background() 是根节点, 派生出 WithCancel、WithTimeout、WithDeadline、WithValue",
				"父 context 取消时所有子 context 都会被取消",
				"ctx.Done() 返回一个在取消时关闭的 channel, ctx.Err() 说明原因",
			),
		),
		model.Warning("使用规范",
			model.Numbered(
				"context 作为函数的第一个参数, 命名为 ctx",
				"不要把 context 存在结构体中",
				"不要传递 nil context, 不确定时使用 context.TODO()",
				"WithValue 只用于请求范围的数据, 不要用来传递可选参数",
				"派生出的 cancel 函数必须调用, 否则会泄漏",
			),
		),
		model.Secondary("代码示例",
			model.CodeBlock("go", contextTimeout, model.WithMaxHeight(20), model.WithTitle("timeout.go")),
		),
	)
}

const contextTimeout = `package main

import (
	"context"
	"errors"
	"fmt"
	"time"
)

func slowQuery(ctx context.Context) (string, error) {
	select {
	case <-time.After(2 * time.Second):
		return "result", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := slowQuery(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		fmt.Println("查询超时")
	}
}
`
