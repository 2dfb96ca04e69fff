package main

import (
	"os"
	sys "os"
)

func main() {
	defer func() {}()
	os.Exit(1)  // want "avoid direct os.Exit usage in main function of main package"
	sys.Exit(2) // want "avoid direct os.Exit usage in main function of main package"
}

func helper() {
	os.Exit(3)
}
