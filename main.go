package main

import (
	"os"

	"github.com/dirbridge/dirbridge/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
