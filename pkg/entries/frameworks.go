package entries

import "github.com/vanderheijden86/kcards/pkg/model"

// GinWeb is a usage walkthrough of the Gin web framework. The samples are
// shown as text only.
func GinWeb(id string) (*model.QuestionCard, error) {
	return model.NewQuestionCard(
		question(id, "Gin Web 框架入门",
			"如何使用 Gin 编写一个 REST API? 路由分组、中间件和参数绑定怎么写?",
			"go", "web", "gin", "framework"),
		model.Success("核心要点",
			model.Bullets(
				"gin.Default() 自带 Logger 和 Recovery 中间件",
				"路由支持路径参数 :id 和通配符 *path",
				"router.Group 用于按前缀组织路由并挂载中间件",
				"ShouldBindJSON 把请求体绑定到结构体并按 binding 标签校验",
				"c.Next() 和 c.Abort() 控制中间件链",
			),
		),
		model.Info("请求处理流程",
			model.Numbered(
				"引擎根据基数树 (radix tree) 匹配路由",
				"依次执行全局中间件、分组中间件",
				"执行处理函数并写出响应",
			),
		),
		model.Secondary("代码示例",
			model.CodeBlock("go", ginServer, model.WithMaxHeight(30), model.WithTitle("main.go")),
		),
	)
}

const ginServer = `package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type CreateUser struct {
	Name  string ` + "`json:\"name\" binding:\"required\"`" + `
	Email string ` + "`json:\"email\" binding:\"required,email\"`" + `
}

func timing() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		c.Header("X-Elapsed", time.Since(start).String())
	}
}

func main() {
	r := gin.Default()
	r.Use(timing())

	api := r.Group("/api/v1")
	{
		api.GET("/users/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
		})
		api.POST("/users", func(c *gin.Context) {
			var req CreateUser
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusCreated, req)
		})
	}

	r.Run(":8080")
}
`

// GormORM is a usage walkthrough of the GORM library. The samples are shown as
// text only.
func GormORM(id string) (*model.QuestionCard, error) {
	return model.NewQuestionCard(
		question(id, "GORM 基本用法",
			"如何用 GORM 定义模型、执行增删改查和事务?",
			"go", "database", "gorm", "orm"),
		model.Success("核心要点",
			model.Bullets(
				"嵌入 gorm.Model 获得 ID、CreatedAt、UpdatedAt、DeletedAt 字段",
				"AutoMigrate 根据结构体创建或更新表结构",
				"链式调用 Where/Order/Limit 构建查询",
				"db.Transaction 在闭包返回错误时自动回滚",
			),
		),
		model.Warning("常见陷阱",
			model.Bullets(
				"Updates 传结构体时零值字段会被忽略, 需要用 map 或 Select",
				"DeletedAt 存在时 Delete 是软删除, 查询会自动过滤",
				"关联数据需要 Preload, 否则会出现 N+1 查询",
			),
		),
		model.Secondary("代码示例",
			model.CodeBlock("go", gormCRUD, model.WithMaxHeight(30), model.WithTitle("store.go")),
		),
	)
}

const gormCRUD = `package store

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Code  string ` + "`gorm:\"uniqueIndex\"`" + `
	Price uint
}

func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, db.AutoMigrate(&Product{})
}

func Example(db *gorm.DB) error {
	db.Create(&Product{Code: "D42", Price: 100})

	var p Product
	db.Where("code = ?", "D42").First(&p)

	db.Model(&p).Updates(map[string]any{"price": 0})

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&Product{Code: "F1"}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}
`
