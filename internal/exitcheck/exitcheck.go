// Package exitcheck определяет анализатор, который запрещает прямой вызов os.Exit в функции main пакета main.
package exitcheck

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

// Analyzer запрещает использовать прямой вызов os.Exit в функции main пакета main.
var Analyzer = &analysis.Analyzer{
	Name: "exitcheck",
	Doc:  "check for direct use of os.Exit in the main function of the main package",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}
	for _, file := range pass.Files {
		for _, decl := range file.Decls {
			if mainFunc, ok := decl.(*ast.FuncDecl); ok && mainFunc.Recv == nil && mainFunc.Name.Name == "main" {
				inspectMainFunc(pass, mainFunc)
			}
		}
	}
	return nil, nil
}

func inspectMainFunc(pass *analysis.Pass, mainFunc *ast.FuncDecl) {
	ast.Inspect(mainFunc, func(node ast.Node) bool {
		if call, ok := node.(*ast.CallExpr); ok && isExitCall(pass, call) {
			pass.Reportf(call.Pos(), "direct use of os.Exit in main function of main package is not allowed")
		}
		return true
	})
}

// isExitCall смотрит на тип, поэтому ловит и os, импортированный под другим именем.
func isExitCall(pass *analysis.Pass, call *ast.CallExpr) bool {
	fun, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	fn, ok := pass.TypesInfo.Uses[fun.Sel].(*types.Func)
	if !ok || fn.Pkg() == nil {
		return false
	}
	return fn.Pkg().Path() == "os" && fn.Name() == "Exit"
}
