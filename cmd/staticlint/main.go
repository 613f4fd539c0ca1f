// Staticlint собирает в один multichecker стандартные анализаторы, staticcheck и собственный exitcheck.
//
// Запуск:
//
//	go run ./cmd/staticlint ./...
//
// Каждый анализатор работает независимо, поэтому одно и то же место может попасть в вывод несколько раз.
package main

import (
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/asmdecl"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/framepointer"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"

	"github.com/theheadmen/jsonmock/internal/exitcheck"
)

func main() {
	multichecker.Main(analyzers()...)
}

func analyzers() []*analysis.Analyzer {
	// Добавляем стандартные анализаторы пакета golang.org/x/tools/go/analysis/passes
	checks := []*analysis.Analyzer{
		asmdecl.Analyzer,
		errorsas.Analyzer,
		framepointer.Analyzer,
		httpresponse.Analyzer,
		lostcancel.Analyzer,
		printf.Analyzer,
		structtag.Analyzer,
		unreachable.Analyzer,
		exitcheck.Analyzer, // Добавляем собственный анализатор
	}

	// Добавляем все анализаторы SA класса staticcheck.io
	for _, v := range staticcheck.Analyzers {
		if strings.HasPrefix(v.Analyzer.Name, "SA") {
			checks = append(checks, v.Analyzer)
		}
	}

	// ST1000 и ST1005 из stylecheck: комментарий пакета и текст ошибок
	for _, v := range stylecheck.Analyzers {
		if v.Analyzer.Name == "ST1000" || v.Analyzer.Name == "ST1005" {
			checks = append(checks, v.Analyzer)
		}
	}

	return checks
}
