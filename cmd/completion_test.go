package cmd

import (
	"flag"
	"testing"
)

func TestCompletion(t *testing.T) {
	c := completion(flag.CommandLine)
	for _, name := range []string{"add", "buy", "topic", "help"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("no completion for %q", name)
		}
	}
	if _, ok := c.Sub["add"].Flags["q"]; !ok {
		t.Error("no completion for add -q")
	}
	if _, ok := c.Flags["data"]; !ok {
		t.Error("no completion for -data")
	}
	if c.Sub["topic"].Args == nil {
		t.Error("no completion for topic names")
	}
}
