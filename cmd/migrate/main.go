package main

import (
	"log"
	"os"

	"minihotel/config"
	"minihotel/helper"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Migration command is required. Use 'up', 'down', 'drop' or 'step-up'")
	}

	cfg := config.Get()

	commands := map[string]func(*config.Config) error{
		"up":      helper.Up,
		"down":    helper.Down,
		"drop":    helper.Drop,
		"step-up": helper.StepUp,
	}

	run, ok := commands[os.Args[1]]
	if !ok {
		log.Fatalf("Unknown migration command %q. Use 'up', 'down', 'drop' or 'step-up'", os.Args[1])
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}
