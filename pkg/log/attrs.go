package log

import (
	"log/slog"

	"github.com/viant/custard/model/flow"
	"github.com/viant/custard/model/identity"
)

func Crate[T ~string](name T) slog.Attr {
	return slog.String("crate", string(name))
}

func Task(name identity.FullTaskName) slog.Attr {
	return slog.String("task", name.String())
}

func Datachunk(name identity.FullDatachunkName) slog.Attr {
	return slog.String("datachunk", name.String())
}

func Outcome(outcome flow.ControlFlow) slog.Attr {
	return slog.String("outcome", outcome.String())
}

func Action(action flow.Action) slog.Attr {
	return slog.String("action", action.String())
}

func Type(name string) slog.Attr {
	return slog.String("type", name)
}

func Error(err error) slog.Attr {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return slog.String("error", msg)
}
