package execute

import (
	"errors"
	"testing"

	"github.com/ppiankov/loadwatch/internal/model"
)

func TestExecuteAlwaysRefuses(t *testing.T) {
	auths := []model.GlobalAuthority{
		{Planning: model.Allowed, Execution: model.Denied, Mode: model.ModeNormal, State: model.StateNormal},
		{Planning: model.Denied, Execution: model.Denied, Mode: model.ModeContainment, State: model.StateOverloaded},
		// Even a forged ALLOWED execution permission must not execute.
		{Planning: model.Allowed, Execution: model.Allowed, Mode: model.ModeNormal, State: model.StateNormal},
	}

	for _, auth := range auths {
		err := Execute("reschedule-calendar", auth)
		if err == nil {
			t.Fatalf("execution must always fail, authority %+v", auth)
		}

		var execErr *Error
		if !errors.As(err, &execErr) {
			t.Errorf("expected *execute.Error, got %T", err)
		}
		if err.Error() != "Automation disabled in current system version" {
			t.Errorf("error text = %q", err.Error())
		}
	}
}
