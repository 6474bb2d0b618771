package entries

import "github.com/vanderheijden86/kcards/pkg/model"

// GoBasics covers the language fundamentals: packages, variables, control
// flow and functions.
func GoBasics(id string) (*model.QuestionCard, error) {
	return model.NewQuestionCard(
		question(id, "Go 语言基础",
			"Go 语言有哪些基本语法特性? 请说明包、变量声明、控制结构和函数的写法。",
			"go", "basics", "syntax"),
		model.Success("核心要点",
			model.Bullets(
				"每个源文件都属于一个包, 可执行程序的入口是 main 包中的 main 函数",
				"变量可用 var 声明, 函数内部可用 := 简短声明并自动推导类型",
				"只有 for 一种循环结构, if 和 switch 支持初始化语句",
				"函数可以返回多个值, 错误通常作为最后一个返回值",
				"首字母大写的标识符对包外可见",
			),
			model.Paragraph("Go 强调**简洁**与**显式**: 未使用的变量和导入都会导致编译失败。"),
		),
		model.Secondary("代码示例",
			model.CodeBlock("go", basicsHello, model.WithMaxHeight(100), model.WithTitle("hello.go")),
			model.CodeBlock("go", basicsTour, model.WithMaxHeight(100), model.WithTitle("tour.go")),
		),
	)
}

const basicsHello = `package main

import "fmt"

func main() {
	var greeting string = "你好"
	name := "Go"
	fmt.Printf("%s, %s!\n", greeting, name)
}
`

const basicsTour = `package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
)

// 常量与 iota
const (
	KB = 1 << (10 * (iota + 1))
	MB
	GB
)

type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

func (d Weekday) String() string {
	return [...]string{"日", "一", "二", "三", "四", "五", "六"}[d]
}

// 多返回值
func divmod(a, b int) (int, int, error) {
	if b == 0 {
		return 0, 0, errors.New("除数不能为 0")
	}
	return a / b, a % b, nil
}

// 命名返回值
func hypot(x, y float64) (h float64) {
	h = math.Sqrt(x*x + y*y)
	return
}

// 可变参数
func sum(nums ...int) int {
	total := 0
	for _, n := range nums {
		total += n
	}
	return total
}

// 函数是一等公民
func apply(xs []int, f func(int) int) []int {
	out := make([]int, 0, len(xs))
	for _, x := range xs {
		out = append(out, f(x))
	}
	return out
}

// 闭包
func counter() func() int {
	n := 0
	return func() int {
		n++
		return n
	}
}

type Point struct {
	X, Y float64
}

func (p Point) Dist(q Point) float64 {
	return hypot(q.X-p.X, q.Y-p.Y)
}

func (p *Point) Scale(f float64) {
	p.X *= f
	p.Y *= f
}

func classify(n int) string {
	switch {
	case n < 0:
		return "负数"
	case n == 0:
		return "零"
	case n%2 == 0:
		return "偶数"
	default:
		return "奇数"
	}
}

func main() {
	fmt.Println(KB, MB, GB)
	fmt.Println("今天是星期", Wednesday)

	if q, r, err := divmod(17, 5); err == nil {
		fmt.Println("商", q, "余数", r)
	}
	if _, _, err := divmod(1, 0); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
	}

	fmt.Println(sum(1, 2, 3, 4))
	fmt.Println(apply([]int{1, 2, 3}, func(x int) int { return x * x }))

	next := counter()
	next()
	fmt.Println("计数:", next())

	p := Point{3, 4}
	fmt.Println(p.Dist(Point{}))
	p.Scale(2)
	fmt.Printf("%+v\n", p)

	for i := 0; i < 3; i++ {
		fmt.Println(i, classify(i))
	}

	words := strings.Fields("go is fun")
	for i, w := range words {
		fmt.Println(i, strings.ToUpper(w))
	}

	n := 0
	for n < 3 {
		n++
	}

	for {
		if n > 5 {
			break
		}
		n++
	}
	fmt.Println("n =", n)

	var arr [3]int
	arr[0] = 1
	fmt.Println(len(arr), arr)

	var ptr *int = &n
	*ptr = 42
	fmt.Println(n)
}
`
