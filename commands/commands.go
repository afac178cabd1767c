package commands

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrAmbiguousCommand = errors.New("ambiguous command")
)

type cmd func()

type Commands struct {
	log      *log.Logger
	commands map[string]cmd
}

func NewCommands(log *log.Logger) *Commands {
	return &Commands{log: log, commands: make(map[string]cmd)}
}

// Exec runs the command with the given name, or the only command the name is a prefix of.
func (c *Commands) Exec(command string) error {
	cmd, err := c.find(command)
	if err != nil {
		c.log.Printf("Command %q: %v", command, err)
		return err
	}
	cmd()
	return nil
}

func (c *Commands) find(command string) (cmd, error) {
	if cmd, ok := c.commands[command]; ok {
		return cmd, nil
	}
	if command == "" {
		return nil, ErrUnknownCommand
	}

	var matches []string
	for name := range c.commands {
		if strings.HasPrefix(name, command) {
			matches = append(matches, name)
		}
	}
	switch len(matches) {
	case 0:
		return nil, ErrUnknownCommand
	case 1:
		return c.commands[matches[0]], nil
	default:
		slices.Sort(matches)
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousCommand, strings.Join(matches, ", "))
	}
}

func (c *Commands) Register(name string, command func()) {
	c.commands[name] = command
}

// Names lists the registered commands in alphabetical order.
func (c *Commands) Names() []string {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
