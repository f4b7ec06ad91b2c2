package steps

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	dbmodels "fin-tools-backend/models/db"
)

func TestDeclarationsValidate(t *testing.T) {
	step := declarationsStep{}
	ctx := context.Background()

	t.Run(`blanket confirmation when no declarations are configured`, func(t *testing.T) {
		sc := &StepContext{
			StepDef: dbmodels.StepDefinition{Key: step.Key()},
			Data:    dbmodels.StepPayload{"confirmed": true},
		}
		hMsg, err := step.Validate(ctx, sc)
		require.NoError(t, err)
		require.Empty(t, hMsg)

		sc.Data = dbmodels.StepPayload{"confirmed": false}
		hMsg, err = step.Validate(ctx, sc)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`every configured declaration must be accepted`, func(t *testing.T) {
		stepDef := dbmodels.StepDefinition{
			Key: step.Key(),
			Config: map[string]interface{}{
				"declarations": []interface{}{"accuracy", "authority"},
			},
		}
		sc := &StepContext{
			StepDef: stepDef,
			Data: dbmodels.StepPayload{
				"accepted": map[string]interface{}{"accuracy": true},
			},
		}
		hMsg, err := step.Validate(ctx, sc)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)

		sc.Data = dbmodels.StepPayload{
			"accepted": map[string]interface{}{"accuracy": true, "authority": true},
		}
		hMsg, err = step.Validate(ctx, sc)
		require.NoError(t, err)
		require.Empty(t, hMsg)
	})

	t.Run(`missing accepted map fails`, func(t *testing.T) {
		sc := &StepContext{
			StepDef: dbmodels.StepDefinition{
				Key:    step.Key(),
				Config: map[string]interface{}{"declarations": []interface{}{"accuracy"}},
			},
			Data: dbmodels.StepPayload{},
		}
		hMsg, err := step.Validate(ctx, sc)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})
}
