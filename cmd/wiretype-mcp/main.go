package main

import (
	"github.com/usestring/wiretype-mcp/cmd/wiretype-mcp/cmd"
)

func main() {
	cmd.Execute()
}
