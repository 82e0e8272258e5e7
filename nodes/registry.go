package nodes

import (
	"fmt"
	"sort"
)

// Node 是宿主可注册的节点：最小契约只有输入声明.
// 各变体的 Encode 签名不同，宿主按节点类名做具体类型断言后调用.
type Node interface {
	Spec() NodeSpec
}

// Factory 按节点选项构造节点实例.
type Factory func(opts ...Option) Node

// Registry 节点类名 → 工厂的注册表，对应宿主的节点类映射.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry 创建空注册表.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register 注册节点工厂.类名重复时报错.
func (r *Registry) Register(class string, factory Factory) error {
	if _, ok := r.factories[class]; ok {
		return fmt.Errorf("node class already registered: %s", class)
	}
	r.factories[class] = factory
	return nil
}

// New 按类名构造节点实例.
func (r *Registry) New(class string, opts ...Option) (Node, error) {
	factory, ok := r.factories[class]
	if !ok {
		return nil, fmt.Errorf("unknown node class: %s", class)
	}
	return factory(opts...), nil
}

// Spec 返回类名对应节点的输入声明.
func (r *Registry) Spec(class string) (NodeSpec, error) {
	node, err := r.New(class)
	if err != nil {
		return NodeSpec{}, err
	}
	return node.Spec(), nil
}

// Classes 返回已注册的类名，按字典序.
func (r *Registry) Classes() []string {
	classes := make([]string, 0, len(r.factories))
	for class := range r.factories {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

// RegisterDefaults 注册全部内置节点变体.
func RegisterDefaults(r *Registry) error {
	defaults := map[string]Factory{
		ClassCLIPTextEncodeCached: func(opts ...Option) Node { return NewCLIPTextEncodeCached(opts...) },
		ClassFluxTextEncodeCached: func(opts ...Option) Node { return NewFluxTextEncodeCached(opts...) },
		ClassFluxTextEncode:       func(opts ...Option) Node { return NewFluxTextEncode(opts...) },
	}
	for class, factory := range defaults {
		if err := r.Register(class, factory); err != nil {
			return err
		}
	}
	return nil
}
