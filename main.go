package main

import "github.com/sadopc/kegelcoach/internal/cli"

func main() {
	cli.Execute()
}
