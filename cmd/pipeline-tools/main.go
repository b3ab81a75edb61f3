package main

import "github.com/adrianmusante/pipeline-tools/internal/cli"

func main() {
	cli.Execute()
}
