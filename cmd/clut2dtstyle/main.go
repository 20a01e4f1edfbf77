package main

import (
	"os"

	"clut2dtstyle/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
