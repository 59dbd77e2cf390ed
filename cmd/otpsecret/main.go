// filepath: cmd/otpsecret/main.go
package main

import "otpsecret/internal/cli"

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}
