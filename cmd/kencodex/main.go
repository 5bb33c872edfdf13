package main

import (
	"github.com/Eignex/kencodex/cmd/kencodex/cmd"
)

func main() {
	cmd.Execute()
}
