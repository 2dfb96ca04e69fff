// Package osexit содержит анализатор, запрещающий прямой вызов os.Exit
// в функции main пакета main: при таком выходе не выполняются defer,
// и сервер не успевает корректно остановиться.
package osexit

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

var Analyzer = &analysis.Analyzer{
	Name: "osexit",
	Doc:  "check for os.Exit usage in main function of main package",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	for _, file := range pass.Files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Name.Name != "main" || fn.Recv != nil || fn.Body == nil {
				continue
			}

			ast.Inspect(fn.Body, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}

				sel, ok := call.Fun.(*ast.SelectorExpr)
				if !ok {
					return true
				}

				if obj, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func); ok && obj.FullName() == "os.Exit" {
					pass.Reportf(call.Pos(), "avoid direct os.Exit usage in main function of main package")
				}
				return true
			})
		}
	}

	return nil, nil
}
