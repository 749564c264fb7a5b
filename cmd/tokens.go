package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gnolang/qcheck/query"
)

// tokensCmd: qcheck tokens <query>
var tokensCmd = &cobra.Command{
	Use:   "tokens <query>",
	Short: "Print the tokens of a query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTokens(cmd.OutOrStdout(), args[0])
	},
}

// treeCmd: qcheck tree <query>
var treeCmd = &cobra.Command{
	Use:   "tree <query>",
	Short: "Print the group structure of a query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTree(cmd.OutOrStdout(), args[0])
	},
}

func printTokens(out io.Writer, input string) error {
	for _, tok := range query.Tokenize(input) {
		if _, err := fmt.Fprintln(out, tok.String()); err != nil {
			return err
		}
	}
	return nil
}

func printTree(out io.Writer, input string) error {
	tree, err := query.Parse(input)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, tree.String())
	return err
}
