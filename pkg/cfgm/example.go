package cfgm

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	yamlv3 "go.yaml.in/yaml/v3"
)

// ExampleYAML 根据配置结构体生成带注释的 YAML 示例。
//
// 每个字段的 desc 标签作为行尾注释；嵌套结构体前空一行，
// desc 作为小节注释。字符串值使用单引号，时间间隔按 "30s" 格式输出。
//
// 示例：
//
//	yaml := cfgm.ExampleYAML(DefaultConfig())
//	os.WriteFile("config.example.yaml", yaml, 0644)
func ExampleYAML(defaultConfig any) []byte {
	var b strings.Builder
	b.WriteString("# 配置示例文件, 复制此文件为 config.yaml 并根据需要修改\n")

	val := reflect.ValueOf(defaultConfig)
	writeExampleFields(&b, val, val.Type(), 0)

	return []byte(b.String())
}

// MarshalJSON 将配置结构体输出为带缩进的 JSON。
//
// 与 [ExampleYAML] 对应的机器可读形式，key 同样来自 json tag。
func MarshalJSON(defaultConfig any) []byte {
	data, err := json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		return nil
	}

	return append(data, '\n')
}

func writeExampleFields(b *strings.Builder, val reflect.Value, typ reflect.Type, depth int) {
	if typ.Kind() == reflect.Pointer {
		if val.IsNil() {
			return
		}
		val = val.Elem()
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	indent := strings.Repeat("  ", depth)
	for i := range typ.NumField() {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}

		key := configTagName(field)
		if key == "" {
			continue
		}
		desc := field.Tag.Get("desc")

		if isStructType(field.Type) {
			b.WriteString("\n")
			if desc != "" {
				b.WriteString(indent + "# " + desc + "\n")
			}
			b.WriteString(indent + key + ":\n")
			writeExampleFields(b, val.Field(i), field.Type, depth+1)

			continue
		}

		writeExampleValue(b, indent, key, desc, val.Field(i), field.Type)
	}
}

func writeExampleValue(b *strings.Builder, indent, key, desc string, val reflect.Value, typ reflect.Type) {
	comment := ""
	if desc != "" {
		comment = " # " + desc
	}

	// 非空集合按块格式输出，注释放在 key 行
	if (val.Kind() == reflect.Map || val.Kind() == reflect.Slice) && val.Len() > 0 {
		b.WriteString(indent + key + ":" + comment + "\n")
		data, err := yamlv3.Marshal(val.Interface())
		if err != nil {
			return
		}
		for line := range strings.Lines(strings.TrimRight(string(data), "\n")) {
			b.WriteString(indent + "  " + strings.TrimRight(line, "\n") + "\n")
		}

		return
	}

	b.WriteString(indent + key + ": " + exampleScalar(val, typ) + comment + "\n")
}

func exampleScalar(val reflect.Value, typ reflect.Type) string {
	switch typ {
	case durationType:
		return val.Interface().(time.Duration).String()
	case timeType:
		return val.Interface().(time.Time).Format(time.RFC3339)
	}

	switch val.Kind() {
	case reflect.String:
		return "'" + val.String() + "'"
	case reflect.Map:
		return "{}"
	case reflect.Slice:
		return "[]"
	default:
		return fmt.Sprintf("%v", val.Interface())
	}
}
