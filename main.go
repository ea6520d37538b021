package main

import (
	"os"

	"github.com/cortejtech/agency-admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
