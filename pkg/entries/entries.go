// Package entries holds the built-in knowledge entries. Each topic lives in its
// own file and exposes a factory taking only the id the catalog assigns.
package entries

import "github.com/vanderheijden86/kcards/pkg/model"

// Category is the category shared by every built-in entry.
const Category = "Go"

// Factory builds a fresh card for the given id.
type Factory func(id string) (*model.QuestionCard, error)

// Module associates a topic key with its factory.
type Module struct {
	Key     string
	Factory Factory
}

// registry is populated once at package init and never modified.
var registry = []Module{
	{Key: "go-basics", Factory: GoBasics},
	{Key: "goroutines", Factory: Goroutines},
	{Key: "channels", Factory: Channels},
	{Key: "interfaces", Factory: Interfaces},
	{Key: "error-handling", Factory: ErrorHandling},
	{Key: "defer-panic-recover", Factory: DeferPanicRecover},
	{Key: "slices-maps", Factory: SlicesAndMaps},
	{Key: "generics", Factory: Generics},
	{Key: "context", Factory: Context},
	{Key: "sync", Factory: SyncPrimitives},
	{Key: "gin-web", Factory: GinWeb},
	{Key: "gorm-orm", Factory: GormORM},
}

// Modules returns the built-in modules in registration order. The returned
// slice is a copy; callers may not alter the registry.
func Modules() []Module {
	out := make([]Module, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the factory registered for key.
func Lookup(key string) (Factory, bool) {
	for _, m := range registry {
		if m.Key == key {
			return m.Factory, true
		}
	}
	return nil, false
}

// question is the shorthand every topic file uses to build its record.
func question(id, title, content string, tags ...string) model.Question {
	return model.NewQuestion(id, title, Category, content, tags...)
}
