package main

import "github.com/rand/loupe/internal/cmd"

func main() {
	cmd.Execute()
}
