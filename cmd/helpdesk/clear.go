package main

import (
	"fmt"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
)

// ClearCmd is the "clear" subcommand.
type ClearCmd struct {
	Force bool `help:"Confirm deletion"`
}

// Run executes the clear command.
func (c *ClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintln(deps.Stderr, "This deletes all stored records and the document catalog. Re-run with --force to confirm.")
		return helpdesk.Errorf(helpdesk.EINVALID, "clear requires --force")
	}

	if err := deps.Store.Clear(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", helpdesk.ErrorMessage(err))
		return err
	}
	if err := deps.Catalog.DeleteAllDocuments(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", helpdesk.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Knowledge base cleared.")
	return nil
}
