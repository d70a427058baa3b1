package stateMachine

import (
	"testing"

	"github.com/ivkamenev/school_schedule_bot/src/repository/interfaces"
	"github.com/ivkamenev/school_schedule_bot/src/telegram/update_handlers/constants"
)

func TestStateNameForStage(t *testing.T) {
	cases := []struct {
		stage interfaces.BroadcastStage
		want  string
	}{
		{interfaces.BroadcastNone, constants.IDLE_STATE},
		{interfaces.BroadcastAwaitingGroup, constants.BROADCAST_WAIT_GROUP_STATE},
		{interfaces.BroadcastAwaitingText, constants.BROADCAST_WAIT_TEXT_STATE},
	}
	for _, c := range cases {
		if got := stateNameForStage(c.stage); got != c.want {
			t.Errorf("stateNameForStage(%d) = %q, want %q", c.stage, got, c.want)
		}
	}
}
