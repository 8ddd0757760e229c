//go:build unit

package api_test

import (
	"encoding/json"
	"testing"
	"time"

	reqdto "salon-scheduler/internal/handler/dto/request"

	"github.com/stretchr/testify/require"
)

func jsonUnmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func mustParseDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := reqdto.ParseDate(s)
	require.NoError(t, err)
	return date
}
