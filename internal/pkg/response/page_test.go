package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageResponse(t *testing.T) {
	t.Run("nil items marshal as empty array", func(t *testing.T) {
		resp := NewPageResponse[string](nil, 1, 50, 0)

		raw, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"items":[]`)
	})

	t.Run("page count rounds up", func(t *testing.T) {
		resp := NewPageResponse([]int{1, 2, 3}, 1, 10, 25)
		assert.Equal(t, 3, resp.Pages)

		resp = NewPageResponse([]int{1, 2, 3}, 1, 10, 30)
		assert.Equal(t, 3, resp.Pages)
	})

	t.Run("zero page size yields zero pages", func(t *testing.T) {
		resp := NewPageResponse([]int{1}, 1, 0, 5)
		assert.Equal(t, 0, resp.Pages)
	})
}
