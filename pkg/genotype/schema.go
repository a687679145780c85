package genotype

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	errs "github.com/matzehuels/potplant/pkg/errors"
	"github.com/matzehuels/potplant/pkg/mesh"
	"github.com/matzehuels/potplant/pkg/plant"
)

// maxExactInt is the largest integer a JSON number carries exactly.
const maxExactInt = 1 << 53

// bind checks node against the type of dst and stores it there. The
// reference shape is the Go type itself: struct fields by json name,
// slices by their element type.
func bind(node any, dst reflect.Value, path string) error {
	switch dst.Kind() {
	case reflect.Struct:
		obj, ok := node.(map[string]any)
		if !ok {
			return violation(path, "want object, got %s", describe(node))
		}
		t := dst.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := jsonName(f)
			if name == "" {
				continue
			}
			child, ok := obj[name]
			if !ok {
				return violation(join(path, name), "missing key")
			}
			if err := bind(child, dst.Field(i), join(path, name)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Slice:
		arr, ok := node.([]any)
		if !ok {
			return violation(path, "want array, got %s", describe(node))
		}
		out := reflect.MakeSlice(dst.Type(), len(arr), len(arr))
		for i, el := range arr {
			if err := bind(el, out.Index(i), path+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil

	case reflect.Pointer:
		// Only the optional outline tag is a pointer.
		if node == nil {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		s, ok := node.(string)
		if !ok || dst.Type().Elem().Kind() != reflect.String {
			return violation(path, "want null or string, got %s", describe(node))
		}
		p := reflect.New(dst.Type().Elem())
		p.Elem().SetString(s)
		dst.Set(p)
		return nil

	case reflect.Float64, reflect.Float32:
		n, ok := node.(float64)
		if !ok {
			return violation(path, "want number, got %s", describe(node))
		}
		dst.SetFloat(n)
		return nil

	case reflect.Int, reflect.Int64, reflect.Int32:
		n, ok := node.(float64)
		if !ok {
			return violation(path, "want number, got %s", describe(node))
		}
		if n != math.Trunc(n) || math.Abs(n) > maxExactInt {
			return violation(path, "want whole number, got %v", n)
		}
		dst.SetInt(int64(n))
		return nil
	}
	return errs.New(errs.ErrCodeInternal, "%s: unsupported field kind %s", path, dst.Kind())
}

// checkResolutions rejects any entity whose resolution exceeds
// mesh.MaxResolution.
func checkResolutions(d plant.Data) error {
	check := func(path string, n int) error {
		if n > mesh.MaxResolution {
			return violation(path, "resolution %d exceeds %d", n, mesh.MaxResolution)
		}
		return nil
	}
	if err := check("potData.meshParams.resolution", d.PotData.MeshParams.Resolution); err != nil {
		return err
	}
	for i, e := range d.StalkData {
		if err := check(fmt.Sprintf("stalkData[%d].meshParams.resolution", i), e.MeshParams.Resolution); err != nil {
			return err
		}
	}
	for i, e := range d.LeafData {
		if err := check(fmt.Sprintf("leafData[%d].meshParams.resolution", i), e.MeshParams.Resolution); err != nil {
			return err
		}
	}
	return nil
}

func violation(path, format string, args ...any) error {
	return errs.Violation(path, format, args...)
}

func jsonName(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func describe(node any) string {
	switch node.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", node)
}

// Paths lists every leaf path of the reference tree. Array elements are
// written as [0].
func Paths() []string {
	var out []string
	var walk func(t reflect.Type, path string)
	walk = func(t reflect.Type, path string) {
		switch t.Kind() {
		case reflect.Struct:
			for i := 0; i < t.NumField(); i++ {
				if name := jsonName(t.Field(i)); name != "" {
					walk(t.Field(i).Type, join(path, name))
				}
			}
		case reflect.Slice:
			walk(t.Elem(), path+"[0]")
		default:
			out = append(out, path)
		}
	}
	walk(reflect.TypeOf(plant.Data{}), "")
	return out
}
