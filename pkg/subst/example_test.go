package subst_test

import (
	"fmt"
	"os"

	"github.com/lwmacct/260829-go-pkg-subst/pkg/subst"
)

// Example_expand 演示基于环境变量的一次性展开。
func Example_expand() {
	_ = os.Setenv("API_KEY", "sk-12345")
	defer func() { _ = os.Unsetenv("API_KEY") }()

	result, _ := subst.Expand(`key=${API_KEY}`)
	fmt.Println(result)

	// Output:
	// key=sk-12345
}

// Example_fallback 演示默认值回退语义。
func Example_fallback() {
	s := subst.New(subst.Map(nil))

	result, _ := s.Resolve(`host=${HOST:-localhost}`)
	fmt.Println(result)

	// Output:
	// host=localhost
}

// Example_nested 演示替换结果的递归展开。
func Example_nested() {
	s := subst.New(subst.Map(map[string]string{
		"dsn":  "postgres://${host}:${port}/app",
		"host": "db.internal",
		"port": "5432",
	}))

	result, _ := s.Resolve(`${dsn}`)
	fmt.Println(result)

	// Output:
	// postgres://db.internal:5432/app
}

// Example_escape 演示 "$${" 转义，占位符保持字面量。
func Example_escape() {
	s := subst.New(subst.Map(map[string]string{"HOME": "/root"}))

	result, _ := s.Resolve(`$${HOME} is ${HOME}`)
	fmt.Println(result)

	// Output:
	// ${HOME} is /root
}

// Example_cycle 演示循环引用的错误链。
func Example_cycle() {
	s := subst.New(subst.Map(map[string]string{
		"A": `${B}`,
		"B": `${A}`,
	}))

	_, err := s.Resolve(`${A}`)
	fmt.Println(err)

	// Output:
	// subst: cyclic substitution: A->B->A
}
