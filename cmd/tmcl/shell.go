package main

import (
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/spf13/cobra"
	"go.tigermatt.uk/tmcl"
)

const unselectedPrompt = "[none] > "

func shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell [DEVICE]",
		Short: "Interactive session",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShell,
	}
}

func runShell(_ *cobra.Command, args []string) error {
	s, err := newSession(knownPorts(args...))
	if err != nil {
		return err
	}
	defer s.Close()

	sh := ishell.New()
	sh.SetPrompt(unselectedPrompt)
	for _, cmd := range shellCmds(s) {
		sh.AddCmd(cmd)
	}

	if len(args) == 1 {
		if err := s.Select(args[0]); err != nil {
			return err
		}
		sh.SetPrompt(prompt(s))
	}

	sh.Run()
	return nil
}

func prompt(s *tmcl.Session) string {
	if s.Selected() == "" {
		return unselectedPrompt
	}
	return fmt.Sprintf("[%s %s] > ", s.Selected(), s.State())
}

// selectPort selects by name, or by index into the port list.
func selectPort(s *tmcl.Session, arg string) error {
	if i, err := strconv.Atoi(arg); err == nil && !contains(s.Ports(), arg) {
		return s.SelectIndex(i)
	}
	return s.Select(arg)
}

func shellCmds(s *tmcl.Session) []*ishell.Cmd {
	run := func(get bool) func(c *ishell.Context) {
		return func(c *ishell.Context) {
			cmd, err := parseCommand(cfg.Address, c.Args)
			if err != nil {
				c.Err(err)
				return
			}

			var r tmcl.Reply
			if get {
				r, err = s.Get(cmd)
			} else {
				r, err = s.Send(cmd)
			}
			c.SetPrompt(prompt(s))
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(formatReply(r, get))
		}
	}

	return []*ishell.Cmd{
		{
			Name: "ports",
			Help: "list selectable ports",
			Func: func(c *ishell.Context) {
				for i, p := range s.Ports() {
					c.Printf("%d: %s\n", i, p)
				}
			},
		},
		{
			Name: "select",
			Help: "select NAME|INDEX",
			Func: func(c *ishell.Context) {
				if len(c.Args) != 1 {
					c.Err(fmt.Errorf("usage: select NAME|INDEX"))
					return
				}
				if err := selectPort(s, c.Args[0]); err != nil {
					c.Err(err)
					return
				}
				c.SetPrompt(prompt(s))
			},
		},
		{
			Name: "open",
			Help: "open the selected port",
			Func: func(c *ishell.Context) {
				if err := s.Open(); err != nil {
					c.Err(err)
				}
				c.SetPrompt(prompt(s))
			},
		},
		{
			Name: "close",
			Help: "close the port",
			Func: func(c *ishell.Context) {
				if err := s.Close(); err != nil {
					c.Err(err)
				}
				c.SetPrompt(prompt(s))
			},
		},
		{
			Name: "status",
			Help: "show the connection state",
			Func: func(c *ishell.Context) {
				sc := s.Config()
				c.Printf("port=%q state=%s baud=%d delay=%s\n",
					s.Selected(), s.State(), sc.BaudRate, sc.PairingDelay)
			},
		},
		{
			Name: "send",
			Help: "send INSTR TYPE BANK VALUE",
			Func: run(false),
		},
		{
			Name: "get",
			Help: "get INSTR TYPE BANK [VALUE]",
			Func: run(true),
		},
	}
}
