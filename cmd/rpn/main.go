package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/zephyrtronium/rpn"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("rpn: ")
	var (
		cfgname, mode, state string
		places               int
		exprs                []string
	)
	flag.StringVar(&cfgname, "config", "", "YAML configuration file")
	flag.StringVar(&mode, "mode", "", "input syntax, algebraic or rpn (default algebraic)")
	flag.IntVar(&places, "places", -1, "decimal places kept by division and irrational functions (default 16)")
	flag.StringVar(&state, "state", "", "YAML file to load the session from and save it to on exit")
	flag.Func("e", "evaluate a line and exit (any number of times)", func(s string) error {
		exprs = append(exprs, s)
		return nil
	})
	flag.Parse()

	cfg, err := loadConfig(cfgname)
	if err != nil {
		log.Fatal(err)
	}
	if mode != "" {
		cfg.Mode = mode
	}
	if places >= 0 {
		cfg.Places = &places
	}
	if state != "" {
		cfg.State = state
	}
	m, ok := rpn.ParseMode(cfg.Mode)
	if !ok {
		log.Fatalf("unknown mode %q", cfg.Mode)
	}
	opts, err := cfg.options()
	if err != nil {
		log.Fatal(err)
	}
	e := rpn.New(opts...)
	if cfg.State != "" {
		if err := loadState(e, cfg.State); err != nil {
			log.Fatal(err)
		}
	}

	if len(exprs) != 0 {
		for _, line := range exprs {
			r, err := e.Run(line, m)
			if err != nil {
				log.Fatal(err)
			}
			show(os.Stdout, r)
		}
	} else {
		repl(e, m, cfg.Prompt)
	}

	if cfg.State != "" {
		if err := saveState(e, cfg.State); err != nil {
			log.Fatal(err)
		}
	}
}

// repl reads lines from stdin until EOF or quit. The line "mode" switches
// between algebraic and RPN input.
func repl(e *rpn.Engine, m rpn.Mode, prompt string) {
	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prompt)
		if !in.Scan() {
			break
		}
		line := strings.TrimSpace(in.Text())
		if line == "mode" {
			m = 1 - m
			fmt.Println(m)
			continue
		}
		r, err := e.Run(line, m)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		show(os.Stdout, r)
		if r.Kind == rpn.ReplyQuit {
			return
		}
	}
	if err := in.Err(); err != nil {
		log.Fatal(err)
	}
}

// show writes a reply. Stacks are printed deepest first with the level of each
// value, so that the top of the stack is 1: and is on the last line.
func show(w io.Writer, r rpn.Reply) {
	switch r.Kind {
	case rpn.ReplyStack:
		for i, v := range r.Stack {
			fmt.Fprintf(w, "%d: %v\n", len(r.Stack)-i, v)
		}
	case rpn.ReplyCommands:
		fmt.Fprintln(w, strings.Join(r.Commands, " "))
	}
}
