package main

import "github.com/pfrederiksen/tg-notify/internal/cli"

func main() {
	cli.Execute()
}
