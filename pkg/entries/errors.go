package entries

import "github.com/vanderheijden86/kcards/pkg/model"

// ErrorHandling covers error values, wrapping and inspection.
func ErrorHandling(id string) (*model.QuestionCard, error) {
	return model.NewQuestionCard(
		question(id, "错误处理",
			"Go 为什么不使用异常? 如何定义、包装和判断错误?",
			"go", "error", "errors"),
		model.Success("核心要点",
			model.Bullets(
				"error 是只有一个 Error() string 方法的接口",
				"错误作为普通返回值显式处理",
				"fmt.Errorf 配合 %w 包装错误并保留错误链",
				"errors.Is 判断错误链中是否包含某个哨兵错误",
				"errors.As 从错误链中提取特定类型的错误",
			),
		),
		model.Info("三种错误风格",
			model.Numbered(
				"哨兵错误: var ErrNotFound = errors.New(\"not found\")",
				"自定义错误类型: 携带上下文字段的结构体",
				"不透明错误: 只暴露行为 (如 Temporary() bool)",
			),
		),
		model.Warning("常见陷阱",
			model.Bullets(
				"不要用 == 比较被包装过的错误",
				"不要既记录日志又返回同一个错误",
				"错误信息使用小写开头, 不以标点结尾",
			),
		),
		model.Secondary("代码示例",
			model.CodeBlock("go", errorsWrap, model.WithMaxHeight(25), model.WithTitle("wrap.go")),
		),
	)
}

const errorsWrap = `package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var ErrNotFound = errors.New("not found")

type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string { return e.Query + ": " + e.Err.Error() }
func (e *QueryError) Unwrap() error { return e.Err }

func lookup(key string) error {
	return &QueryError{Query: key, Err: ErrNotFound}
}

func main() {
	err := fmt.Errorf("load user: %w", lookup("id=7"))

	if errors.Is(err, ErrNotFound) {
		fmt.Println("记录不存在:", err)
	}

	var qe *QueryError
	if errors.As(err, &qe) {
		fmt.Println("失败的查询:", qe.Query)
	}

	_, err = os.Open("/no/such/file")
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Println("文件不存在")
	}
}
`

// DeferPanicRecover covers defer ordering and panic recovery.
func DeferPanicRecover(id string) (*model.QuestionCard, error) {
	return model.NewQuestionCard(
		question(id, "defer、panic 与 recover",
			"defer 的执行顺序是怎样的? 参数什么时候求值? recover 能捕获哪些 panic?",
			"go", "defer", "panic", "recover"),
		model.Success("核心要点",
			model.Bullets(
				"defer 语句在函数返回前按后进先出 (LIFO) 顺序执行",
				"defer 的参数在声明时立即求值",
				"defer 可以读取和修改命名返回值",
				"recover 只有在 defer 调用的函数中直接调用才有效",
				"panic 会沿调用栈向上展开, 依次执行各层的 defer",
			),
		),
		model.Warning("注意",
			model.Bullets(
				"不要在循环中大量 defer, 资源会在函数结束时才释放",
				"recover 无法捕获其他 goroutine 中的 panic",
				"并发 map 写入等 fatal error 无法被 recover",
			),
		),
		model.Secondary("代码示例",
			model.CodeBlock("go", deferOrder, model.WithMaxHeight(15), model.WithTitle("order.go")),
			model.CodeBlock("go", deferRecover, model.WithMaxHeight(15), model.WithTitle("recover.go")),
		),
	)
}

const deferOrder = `func main() {
	for i := 0; i < 3; i++ {
		defer fmt.Println("defer", i)
	}
	fmt.Println("body")
}
// 输出:
// body
// defer 2
// defer 1
// defer 0
`

const deferRecover = `package main

import (
	"errors"
	"fmt"
)

func safeDiv(a, b int) (q int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered: %v", r)
		}
	}()
	return a / b, nil
}

func main() {
	_, err := safeDiv(1, 0)
	fmt.Println(err)

	var re interface{ RuntimeError() }
	fmt.Println(errors.As(err, &re))
}
`
