package entries

import "github.com/vanderheijden86/kcards/pkg/model"

// Interfaces covers implicit satisfaction, type assertions and nil interfaces.
func Interfaces(id string) (*model.QuestionCard, error) {
	return model.NewQuestionCard(
		question(id, "接口 (interface)",
			"Go 的接口是如何实现的? 为什么说 Go 的接口是隐式实现的? 空接口和类型断言怎么用?",
			"go", "interface", "types"),
		model.Success("核心要点",
			model.Bullets(
				"类型只要实现了接口的全部方法就自动满足该接口, 无需显式声明",
				"接口值由动态类型和动态值两部分组成",
				"any (interface{}) 可以保存任意类型的值",
				"类型断言 v, ok := x.(T) 和类型选择 switch x.(type) 用于取回具体类型",
				"接口应当小而专注, 如 io.Reader 和 io.Writer",
			),
		),
		model.Warning("nil 接口陷阱",
			model.Paragraph("只有动态类型和动态值都为 nil 时接口才等于 nil。把一个值为 nil 的 *T 赋给接口后, 接口本身**不是** nil。"),
			model.CodeBlock("go", interfaceNil, model.WithMaxHeight(15)),
		),
		model.Secondary("代码示例",
			model.CodeBlock("go", interfaceShapes, model.WithMaxHeight(25), model.WithTitle("shapes.go")),
		),
	)
}

const interfaceNil = `type MyErr struct{}

func (*MyErr) Error() string { return "boom" }

func find() error {
	var p *MyErr = nil
	return p // 返回的 error 不等于 nil
}

func main() {
	fmt.Println(find() == nil) // false
}
`

const interfaceShapes = `package main

import (
	"fmt"
	"math"
)

type Shape interface {
	Area() float64
	Perimeter() float64
}

type Rect struct{ W, H float64 }
type Circle struct{ R float64 }

func (r Rect) Area() float64      { return r.W * r.H }
func (r Rect) Perimeter() float64 { return 2 * (r.W + r.H) }

func (c Circle) Area() float64      { return math.Pi * c.R * c.R }
func (c Circle) Perimeter() float64 { return 2 * math.Pi * c.R }

func describe(s Shape) string {
	switch v := s.(type) {
	case Rect:
		return fmt.Sprintf("矩形 %.0fx%.0f", v.W, v.H)
	case Circle:
		return fmt.Sprintf("圆 r=%.1f", v.R)
	default:
		return "未知图形"
	}
}

func main() {
	for _, s := range []Shape{Rect{3, 4}, Circle{1}} {
		fmt.Printf("%s 面积 %.2f\n", describe(s), s.Area())
	}
}
`

// SlicesAndMaps covers slice headers, append growth and map semantics.
func SlicesAndMaps(id string) (*model.QuestionCard, error) {
	return model.NewQuestionCard(
		question(id, "切片与 map",
			"切片的底层结构是什么? append 扩容机制是怎样的? map 是并发安全的吗?",
			"go", "slice", "map", "types"),
		model.Success("核心要点",
			model.Bullets(
				"切片由指向底层数组的指针、长度 len 和容量 cap 组成",
				"append 超出容量时会分配新数组并复制元素",
				"多个切片可能共享同一底层数组, 修改会相互影响",
				"map 是哈希表的引用, 遍历顺序是随机的",
				"map 不是并发安全的, 并发读写会触发 fatal error",
			),
		),
		model.Info("扩容规则",
			model.Paragraph("Go 1.18 起: 容量小于 256 时翻倍; 之后按 `newcap += (newcap + 3*256) / 4` 平滑增长, 最终还会按内存规格向上取整。"),
		),
		model.Warning("常见陷阱",
			model.Bullets(
				"向 nil map 写入会 panic, 读取返回零值",
				"从大数组截取小切片会让整个数组无法被回收",
				"range 得到的是元素副本",
			),
		),
		model.Secondary("代码示例",
			model.CodeBlock("go", slicesShare, model.WithMaxHeight(20), model.WithTitle("share.go")),
			model.CodeBlock("go", mapsCount, model.WithMaxHeight(20), model.WithTitle("wordcount.go")),
		),
	)
}

const slicesShare = `package main

import "fmt"

func main() {
	a := []int{1, 2, 3, 4, 5}
	b := a[1:3]        // len=2 cap=4
	b[0] = 20          // a[1] 也变成 20
	b = append(b, 30)  // 覆盖 a[3]
	fmt.Println(a, b)  // [1 20 3 30 5] [20 3 30]

	c := make([]int, len(a))
	copy(c, a)         // 独立副本
	c[0] = 100
	fmt.Println(a[0], c[0])
}
`

const mapsCount = `package main

import (
	"fmt"
	"sort"
	"strings"
)

func main() {
	counts := make(map[string]int)
	for _, w := range strings.Fields("a b a c b a") {
		counts[w]++
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Println(k, counts[k])
	}

	if _, ok := counts["z"]; !ok {
		fmt.Println("z 不存在")
	}
	delete(counts, "a")
}
`

// Generics covers type parameters and constraints.
func Generics(id string) (*model.QuestionCard, error) {
	return model.NewQuestionCard(
		question(id, "泛型",
			"Go 1.18 引入的泛型如何使用? 什么是类型约束?",
			"go", "generics", "types"),
		model.Success("核心要点",
			model.Bullets(
				"函数和类型都可以声明类型参数, 写在方括号中",
				"约束是接口, 可以包含方法集和类型集 (如 ~int | ~string)",
				"comparable 约束支持 == 和 !=, any 没有限制",
				"调用时通常可以省略类型实参, 由编译器推导",
			),
		),
		model.Info("何时使用泛型",
			model.Paragraph("当同一段逻辑需要作用于多种元素类型 (容器、切片工具函数) 时使用泛型; 如果只是需要调用方法, 普通接口通常更合适。"),
		),
		model.Secondary("代码示例",
			model.CodeBlock("go", genericsMap, model.WithMaxHeight(25), model.WithTitle("generics.go")),
		),
	)
}

const genericsMap = `package main

import "fmt"

type Number interface {
	~int | ~int64 | ~float64
}

func Sum[T Number](xs []T) T {
	var total T
	for _, x := range xs {
		total += x
	}
	return total
}

func Map[T, U any](xs []T, f func(T) U) []U {
	out := make([]U, 0, len(xs))
	for _, x := range xs {
		out = append(out, f(x))
	}
	return out
}

type Stack[T any] struct {
	items []T
}

func (s *Stack[T]) Push(v T) { s.items = append(s.items, v) }

func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, true
}

func main() {
	fmt.Println(Sum([]float64{1.5, 2.5}))
	fmt.Println(Map([]int{1, 2}, func(i int) string { return fmt.Sprint(i * 10) }))

	var s Stack[string]
	s.Push("go")
	v, _ := s.Pop()
	fmt.Println(v)
}
`
