package rule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleRule_Accessors(t *testing.T) {
	r := New("discount", 5, nil, nil)

	assert.Equal(t, "discount", r.Name())
	assert.Equal(t, 5, r.Priority())
}

func TestSimpleRule_Evaluate(t *testing.T) {
	evalErr := errors.New("lookup failed")

	tests := []struct {
		name      string
		condition Condition
		want      bool
		wantErr   error
	}{
		{
			name:      "nil condition never matches",
			condition: nil,
			want:      false,
		},
		{
			name:      "condition result is returned",
			condition: func(ctx context.Context) (bool, error) { return true, nil },
			want:      true,
		},
		{
			name:      "condition error is returned",
			condition: func(ctx context.Context) (bool, error) { return false, evalErr },
			wantErr:   evalErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New("r", 1, tt.condition, nil)

			got, err := r.Evaluate(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSimpleRule_Execute(t *testing.T) {
	t.Run("nil action is a no-op", func(t *testing.T) {
		r := New("r", 1, nil, nil)
		require.NoError(t, r.Execute(context.Background()))
	})

	t.Run("action runs and its error is returned", func(t *testing.T) {
		execErr := errors.New("write failed")
		ran := false
		r := New("r", 1, nil, func(ctx context.Context) error {
			ran = true
			return execErr
		})

		err := r.Execute(context.Background())
		require.ErrorIs(t, err, execErr)
		assert.True(t, ran)
	})
}
