package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pantry"
	"github.com/etnz/pantry/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `gro topic [<topic>...]

  Shows the user manual. Without a topic, shows the list of topics;
  '*' shows all of them.
`
}

func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	doc, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	// the manual does not need the pantry: use the default theme.
	printMarkdown(pantry.DefaultSettings().Theme, doc)
	return subcommands.ExitSuccess
}
