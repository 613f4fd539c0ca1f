package main

import (
	"os"
	sys "os"
)

func main() {
	defer func() {
		os.Exit(2) // want "direct use of os.Exit in main function of main package is not allowed"
	}()
	sys.Exit(1) // want "direct use of os.Exit in main function of main package is not allowed"
}

func helper() {
	os.Exit(3)
}
