package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/viant/custard/model/flow"
	"github.com/viant/custard/model/identity"
	"github.com/viant/custard/model/task"
	"github.com/viant/custard/service/console"
)

// Prompt asks the console for the outcome of every cycle:
// c continue, r reload, f full reload, p partial reload, s stop this task,
// a stop all, e fail the cycle. With Crates set, a partial reload picks one
// of them instead of reading a free-form list.
type Prompt struct {
	Message string               `yaml:"message"`
	Crates  []identity.CrateName `yaml:"crates,omitempty"`
	console *console.Console
}

func (p *Prompt) Validate() error {
	for _, crate := range p.Crates {
		if _, err := identity.NewCrateName(string(crate)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Prompt) Defaults() {
	p.Message = "next [c/r/f/p/s/a/e]?"
}

func (p *Prompt) Run(access task.Access) func(ctx context.Context) flow.ControlFlow {
	return func(context.Context) flow.ControlFlow {
		answer, err := p.console.Ask(fmt.Sprintf("%v %v", access.Name, p.Message))
		if err != nil {
			if errors.Is(err, io.EOF) {
				return flow.StopThis()
			}
			return flow.Err(err)
		}
		switch strings.ToLower(answer) {
		case "c":
			return flow.Continue()
		case "r":
			return flow.Reload()
		case "f":
			return flow.FullReload()
		case "p":
			return p.partialReload()
		case "s":
			return flow.StopThis()
		case "a":
			return flow.StopAll()
		case "e":
			return flow.Err(flow.ErrNotInCycle)
		}
		p.console.Println(fmt.Sprintf("%v: %q", flow.ErrUnknownInput, answer))
		return flow.Continue()
	}
}

// partialReload asks for the crates to reload and a confirmation; declining
// yields an empty, no-op reload.
func (p *Prompt) partialReload() flow.ControlFlow {
	crates, err := p.reloadCrates()
	if err != nil {
		return flow.PartialReload()
	}
	set := identity.NewCrateSet(crates...)
	ok, err := p.console.Confirm(fmt.Sprintf("reload %v?", set))
	if err != nil || !ok {
		return flow.PartialReload()
	}
	return flow.PartialReload(set.Names()...)
}

func (p *Prompt) reloadCrates() ([]identity.CrateName, error) {
	if len(p.Crates) > 0 {
		options := make([]string, len(p.Crates))
		for i, crate := range p.Crates {
			options[i] = string(crate)
		}
		choice, err := p.console.Choose("crate to reload?", options)
		if err != nil {
			return nil, err
		}
		return []identity.CrateName{identity.CrateName(choice)}, nil
	}
	line, err := p.console.Ask("crates to reload (comma separated)?")
	if err != nil {
		return nil, err
	}
	var ret []identity.CrateName
	for _, item := range strings.Split(line, ",") {
		name, err := identity.NewCrateName(strings.TrimSpace(item))
		if err != nil {
			continue
		}
		ret = append(ret, name)
	}
	return ret, nil
}

func (p *Prompt) HandleControlFlowUpdate(identity.FullTaskName, identity.FullTaskName, flow.ControlFlow) bool {
	return false
}

func (p *Prompt) Retire(name identity.FullTaskName) {
	p.console.Println(fmt.Sprintf("%v: retired", name))
}
