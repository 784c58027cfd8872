package database

import (
	"testing"

	modelspkg "tapcard/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesCircle(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*modelspkg.Circle); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include Circle")
}
