package main

import (
	"bufio"
	"fmt"
	"strings"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
)

// ChatCmd is the "chat" subcommand.
type ChatCmd struct{}

// Run executes the chat command: an interactive question loop that ends on
// EOF or "exit".
func (c *ChatCmd) Run(deps *Dependencies) error {
	engine, err := buildEngine(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", helpdesk.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Ask a question (or \"exit\" to quit):")

	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		resp, err := engine.Ask(deps.Ctx, question)
		if err != nil {
			// One bad turn should not end the session.
			fmt.Fprintf(deps.Stderr, "error: %s\n", helpdesk.ErrorMessage(err))
			continue
		}

		printResponse(deps.Stdout, resp)
		fmt.Fprintln(deps.Stdout)
	}

	return scanner.Err()
}
