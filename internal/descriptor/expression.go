package descriptor

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"filebrowser/internal/fileinfo"
)

// FilterEnv is the environment a filter expression is evaluated against.
type FilterEnv struct {
	Name  string `expr:"name"`
	Path  string `expr:"path"`
	Ext   string `expr:"ext"`
	IsDir bool   `expr:"isDir"`
}

// CompileFilter compiles a boolean expression such as
//
//	isDir || (ext in ["png", "webp"] && !(name startsWith "tmp_"))
//
// into a Filter. An empty expression yields a nil Filter.
func CompileFilter(code string) (Filter, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	program, err := expr.Compile(code, expr.Env(FilterEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", code, err)
	}
	return func(e fileinfo.Entry) bool {
		ok, err := evaluate(program, e)
		return err == nil && ok
	}, nil
}

func evaluate(program *vm.Program, e fileinfo.Entry) (bool, error) {
	env := FilterEnv{
		Name:  e.Name(),
		Path:  e.CanonicalPath(),
		Ext:   fileinfo.Ext(e.Name()),
		IsDir: e.IsDir(),
	}
	output, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	// expr.AsBool() guarantees a bool result
	return output.(bool), nil
}
