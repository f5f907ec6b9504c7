package main

import (
	"github.com/TemaXo00/musium-web-application/cmd"
)

func main() {
	cmd.Execute()
}
